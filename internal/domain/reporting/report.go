package reporting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/telops/backend/internal/domain/shared"
)

// Report is a free-form activity report written by a staff member for a
// given period.
type Report struct {
	shared.BaseAggregateRoot
	Title       string    `gorm:"size:200;not null"`
	Body        string    `gorm:"type:text;not null"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	PeriodStart time.Time `gorm:"not null"`
	PeriodEnd   time.Time `gorm:"not null"`
}

// NewReport creates a new activity report
func NewReport(title, body string, authorID uuid.UUID, periodStart, periodEnd time.Time) (*Report, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Report title cannot be empty")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Report body cannot be empty")
	}
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Report requires an author")
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Report period end cannot precede its start")
	}

	return &Report{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Body:              body,
		AuthorID:          authorID,
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
	}, nil
}

// Update replaces the report's title and body
func (r *Report) Update(title, body string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Report title cannot be empty")
	}
	if strings.TrimSpace(body) == "" {
		return shared.NewDomainError("INVALID_BODY", "Report body cannot be empty")
	}

	r.Title = title
	r.Body = body
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}
