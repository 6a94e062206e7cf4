package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/telops/backend/internal/domain/sales"
)

// GormUnitOfWork implements sales.UnitOfWork on top of a database
// transaction. Every repository handed to the callback is bound to the same
// transaction, so stock decrement and sale mutation commit or roll back
// together.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside a transaction. Returning an error rolls back.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(repos sales.UnitOfWorkRepos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := sales.UnitOfWorkRepos{
			Sales:    NewGormSaleRepository(tx),
			Articles: NewGormArticleRepository(tx),
		}
		return fn(repos)
	})
}

var _ sales.UnitOfWork = (*GormUnitOfWork)(nil)
