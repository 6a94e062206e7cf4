package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/telops/backend/internal/domain/catalog"
	"github.com/telops/backend/internal/domain/partner"
	"github.com/telops/backend/internal/domain/sales"
	"github.com/telops/backend/internal/domain/shared"
)

// maxReferenceRetries bounds the regenerate-and-retry loop when two creators
// race for the same yearly sequence number.
const maxReferenceRetries = 5

// SaleService drives the sale lifecycle. Item mutation and cancellation run
// through the unit of work so stock movement, item changes and the derived
// total commit or roll back together.
type SaleService struct {
	saleRepo       sales.SaleRepository
	clientRepo     partner.ClientRepository
	uow            sales.UnitOfWork
	eventPublisher shared.EventPublisher
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo sales.SaleRepository, clientRepo partner.ClientRepository, uow sales.UnitOfWork) *SaleService {
	return &SaleService{
		saleRepo:   saleRepo,
		clientRepo: clientRepo,
		uow:        uow,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a draft sale with a freshly allocated reference. The unique
// constraint on the reference is the authority; on a conflict the service
// allocates a fresh sequence and retries.
func (s *SaleService) Create(ctx context.Context, actorID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	clientName := req.ClientName
	if req.ClientID != nil {
		client, err := s.clientRepo.FindByID(ctx, *req.ClientID)
		if err != nil {
			return nil, err
		}
		clientName = client.Name
	}

	year := time.Now().Year()

	var lastErr error
	for attempt := 0; attempt < maxReferenceRetries; attempt++ {
		reference, err := s.saleRepo.NextReference(ctx, year)
		if err != nil {
			return nil, err
		}

		sale, err := sales.NewSale(reference, req.ClientID, clientName, actorID)
		if err != nil {
			return nil, err
		}

		if err := s.saleRepo.Save(ctx, sale); err != nil {
			if errors.Is(err, shared.ErrReferenceConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}

		s.publishEvents(ctx, sale)

		response := ToSaleResponse(sale)
		return &response, nil
	}

	return nil, lastErr
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByReference retrieves a sale by its unique reference
func (s *SaleService) GetByReference(ctx context.Context, reference string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleListItemResponse, int64, error) {
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
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.StartDate != nil {
		domainFilter.Filters["created_after"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["created_before"] = *filter.EndDate
	}

	salesList, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSaleListItemResponses(salesList), total, nil
}

// AddItem adds a line item to a draft sale. The article row is locked, the
// stock check-and-decrement, item insert and total recompute commit in one
// transaction. On insufficient stock nothing changes.
func (s *SaleService) AddItem(ctx context.Context, saleID uuid.UUID, req AddSaleItemRequest) (*SaleResponse, error) {
	var response SaleResponse

	err := s.uow.Execute(ctx, func(repos sales.UnitOfWorkRepos) error {
		sale, err := repos.Sales.FindByID(ctx, saleID)
		if err != nil {
			return err
		}

		article, err := repos.Articles.FindByIDForUpdate(ctx, req.ArticleID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return catalog.ErrArticleNotFound
			}
			return err
		}
		if !article.IsSellable() {
			return catalog.ErrArticleNotFound
		}

		if _, err := sale.AddItem(article, req.Quantity); err != nil {
			return err
		}

		if err := repos.Articles.Save(ctx, article); err != nil {
			return err
		}
		if err := repos.Sales.SaveWithLock(ctx, sale); err != nil {
			return err
		}

		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// RemoveItem removes a line item from a draft sale, restoring tracked stock
// within the same transaction.
func (s *SaleService) RemoveItem(ctx context.Context, saleID, itemID uuid.UUID) (*SaleResponse, error) {
	var response SaleResponse

	err := s.uow.Execute(ctx, func(repos sales.UnitOfWorkRepos) error {
		sale, err := repos.Sales.FindByID(ctx, saleID)
		if err != nil {
			return err
		}

		removed, err := sale.RemoveItem(itemID)
		if err != nil {
			return err
		}

		article, err := repos.Articles.FindByIDForUpdate(ctx, removed.ArticleID)
		if err != nil {
			return err
		}
		if err := article.ReleaseStock(removed.Quantity); err != nil {
			return err
		}

		if err := repos.Articles.Save(ctx, article); err != nil {
			return err
		}
		if err := repos.Sales.SaveWithLock(ctx, sale); err != nil {
			return err
		}

		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Validate transitions a draft sale to VALIDATED, stamping the actor
func (s *SaleService) Validate(ctx context.Context, saleID, actorID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.CheckTotalInvariant(); err != nil {
		return nil, err
	}
	if err := sale.Validate(actorID); err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// Complete transitions a validated sale to COMPLETED. The published
// SaleCompleted event opens the invoice in the billing context.
func (s *SaleService) Complete(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.CheckTotalInvariant(); err != nil {
		return nil, err
	}
	if err := sale.Complete(); err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// Cancel cancels a draft sale, restoring tracked stock for all of its items
// in a single transaction.
func (s *SaleService) Cancel(ctx context.Context, saleID uuid.UUID, req CancelSaleRequest) (*SaleResponse, error) {
	var response SaleResponse
	var cancelled *sales.Sale

	err := s.uow.Execute(ctx, func(repos sales.UnitOfWorkRepos) error {
		sale, err := repos.Sales.FindByID(ctx, saleID)
		if err != nil {
			return err
		}

		items := make([]sales.SaleItem, len(sale.Items))
		copy(items, sale.Items)

		if err := sale.Cancel(req.Reason); err != nil {
			return err
		}

		if err := s.restoreStock(ctx, repos, items); err != nil {
			return err
		}

		if err := repos.Sales.SaveWithLock(ctx, sale); err != nil {
			return err
		}

		cancelled = sale
		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, cancelled)

	return &response, nil
}

// Delete removes a draft sale, cascading its items and restoring stock
func (s *SaleService) Delete(ctx context.Context, saleID uuid.UUID) error {
	return s.uow.Execute(ctx, func(repos sales.UnitOfWorkRepos) error {
		sale, err := repos.Sales.FindByID(ctx, saleID)
		if err != nil {
			return err
		}

		if !sale.IsDraft() {
			return shared.NewDomainError(shared.CodeSaleNotEditable, "Only draft sales can be deleted")
		}

		if err := s.restoreStock(ctx, repos, sale.Items); err != nil {
			return err
		}

		return repos.Sales.Delete(ctx, sale.ID)
	})
}

func (s *SaleService) restoreStock(ctx context.Context, repos sales.UnitOfWorkRepos, items []sales.SaleItem) error {
	for _, item := range items {
		article, err := repos.Articles.FindByIDForUpdate(ctx, item.ArticleID)
		if err != nil {
			return err
		}
		if err := article.ReleaseStock(item.Quantity); err != nil {
			return err
		}
		if err := repos.Articles.Save(ctx, article); err != nil {
			return err
		}
	}
	return nil
}

func (s *SaleService) publishEvents(ctx context.Context, sale *sales.Sale) {
	if s.eventPublisher == nil || sale == nil {
		return
	}
	for _, event := range sale.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	sale.ClearDomainEvents()
}
