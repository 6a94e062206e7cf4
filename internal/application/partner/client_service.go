package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/telops/backend/internal/domain/partner"
	"github.com/telops/backend/internal/domain/sales"
	"github.com/telops/backend/internal/domain/shared"
)

// ClientService handles client registry operations
type ClientService struct {
	clientRepo partner.ClientRepository
	saleRepo   sales.SaleRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository, saleRepo sales.SaleRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		saleRepo:   saleRepo,
	}
}

// Create registers a new client with a generated code
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	code, err := s.clientRepo.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}

	client, err := partner.NewClient(code, req.Name, partner.ClientCategory(req.Category))
	if err != nil {
		return nil, err
	}

	if req.Phone != "" || req.Email != "" || req.Address != "" {
		if err := client.UpdateContact(req.Phone, req.Email, req.Address); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, filter ClientListFilter) ([]ClientResponse, int64, error) {
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

	clients, err := s.clientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.clientRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToClientResponses(clients), total, nil
}

// Update updates a client. Contact details are always editable; the name is
// frozen once any sale references the client.
func (s *ClientService) Update(ctx context.Context, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != client.Name {
		referenced, err := s.isReferenced(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if referenced {
			return nil, shared.NewDomainError("CLIENT_REFERENCED",
				"Client name cannot change once sales reference the client")
		}
		if err := client.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	phone, email, address := client.Phone, client.Email, client.Address
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Address != nil {
		address = *req.Address
	}
	if err := client.UpdateContact(phone, email, address); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// FindOrCreate resolves a client by name for a first sale, creating the
// record when no client with that exact name exists yet.
func (s *ClientService) FindOrCreate(ctx context.Context, name string, category partner.ClientCategory) (*ClientResponse, error) {
	filter := shared.DefaultFilter()
	filter.Search = name
	filter.PageSize = 1

	existing, err := s.clientRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 && existing[0].Name == name {
		response := ToClientResponse(&existing[0])
		return &response, nil
	}

	return s.Create(ctx, CreateClientRequest{Name: name, Category: string(category)})
}

// Delete removes a client that no sale references
func (s *ClientService) Delete(ctx context.Context, clientID uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return err
	}

	referenced, err := s.isReferenced(ctx, clientID)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewDomainError("CLIENT_REFERENCED", "Client is referenced by sales and cannot be deleted")
	}

	return s.clientRepo.Delete(ctx, clientID)
}

func (s *ClientService) isReferenced(ctx context.Context, clientID uuid.UUID) (bool, error) {
	filter := shared.DefaultFilter()
	filter.Filters["client_id"] = clientID

	count, err := s.saleRepo.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
