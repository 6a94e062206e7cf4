package partner

import (
	"strings"
	"time"

	"github.com/telops/backend/internal/domain/shared"
)

// ClientCategory classifies customers
type ClientCategory string

const (
	CategoryResidential  ClientCategory = "RESIDENTIAL"
	CategoryProfessional ClientCategory = "PROFESSIONAL"
)

// IsValid checks if the category is a known ClientCategory
func (c ClientCategory) IsValid() bool {
	switch c {
	case CategoryResidential, CategoryProfessional:
		return true
	}
	return false
}

// String returns the string representation of ClientCategory
func (c ClientCategory) String() string {
	return string(c)
}

// Client represents a customer record. Clients are created explicitly or
// looked up/created on their first sale. Once a sale references a client,
// only contact details remain editable.
type Client struct {
	shared.BaseAggregateRoot
	Code     string `gorm:"uniqueIndex;size:50;not null"`
	Name     string `gorm:"size:200;not null"`
	Category ClientCategory
	Phone    string `gorm:"size:30"`
	Email    string `gorm:"size:200"`
	Address  string `gorm:"size:500"`
}

// NewClient creates a new client record
func NewClient(code, name string, category ClientCategory) (*Client, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)

	if code == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_CODE", "Client code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot exceed 200 characters")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown client category")
	}

	client := &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Category:          category,
	}

	client.AddDomainEvent(NewClientCreatedEvent(client))

	return client, nil
}

// UpdateContact updates the client's contact details.
// Contact edits stay legal after the client is referenced by sales.
func (c *Client) UpdateContact(phone, email, address string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is malformed")
	}
	c.Phone = strings.TrimSpace(phone)
	c.Email = email
	c.Address = strings.TrimSpace(address)
	c.UpdatedAt = time.Now()
	return nil
}

// Rename changes the client name. The caller must verify the client is not
// yet referenced by any sale.
func (c *Client) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}
