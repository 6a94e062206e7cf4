package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/telops/backend/internal/domain/catalog"
	"github.com/telops/backend/internal/domain/shared"
	"github.com/telops/backend/internal/domain/shared/valueobject"
)

// ArticleService handles catalog business operations
type ArticleService struct {
	articleRepo    catalog.ArticleRepository
	eventPublisher shared.EventPublisher
}

// NewArticleService creates a new ArticleService
func NewArticleService(articleRepo catalog.ArticleRepository) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ArticleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new catalog article
func (s *ArticleService) Create(ctx context.Context, req CreateArticleRequest) (*ArticleResponse, error) {
	if existing, err := s.articleRepo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Article code is already in use")
	}

	unitPrice := valueobject.NewMoneyXOF(req.UnitPrice)
	article, err := catalog.NewArticle(req.Code, req.Name, catalog.ArticleCategory(req.Category), unitPrice, req.Stock)
	if err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, article)

	response := ToArticleResponse(article)
	return &response, nil
}

// GetByID retrieves an article by ID
func (s *ArticleService) GetByID(ctx context.Context, articleID uuid.UUID) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	response := ToArticleResponse(article)
	return &response, nil
}

// GetByCode retrieves an article by its unique code
func (s *ArticleService) GetByCode(ctx context.Context, code string) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToArticleResponse(article)
	return &response, nil
}

// List retrieves articles with filtering and pagination
func (s *ArticleService) List(ctx context.Context, filter ArticleListFilter) ([]ArticleResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	articles, err := s.articleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.articleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToArticleResponses(articles), total, nil
}

// Update updates an article's name, price or active state
func (s *ArticleService) Update(ctx context.Context, articleID uuid.UUID, req UpdateArticleRequest) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := article.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.UnitPrice != nil {
		unitPrice := valueobject.NewMoneyXOF(*req.UnitPrice)
		if err := article.UpdatePrice(unitPrice); err != nil {
			return nil, err
		}
	}

	if req.Active != nil {
		if *req.Active {
			article.Activate()
		} else {
			article.Deactivate()
		}
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, article)

	response := ToArticleResponse(article)
	return &response, nil
}

// AdjustStock applies a signed delta to a tracked article's stock.
// Restocks use a positive delta; corrections may be negative but can never
// drive the stock below zero.
func (s *ArticleService) AdjustStock(ctx context.Context, articleID uuid.UUID, req AdjustStockRequest) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if err := article.AdjustStock(req.Delta); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, article)

	response := ToArticleResponse(article)
	return &response, nil
}

// Delete removes an article from the catalog
func (s *ArticleService) Delete(ctx context.Context, articleID uuid.UUID) error {
	if _, err := s.articleRepo.FindByID(ctx, articleID); err != nil {
		return err
	}
	return s.articleRepo.Delete(ctx, articleID)
}

func (s *ArticleService) publishEvents(ctx context.Context, article *catalog.Article) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range article.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	article.ClearDomainEvents()
}
