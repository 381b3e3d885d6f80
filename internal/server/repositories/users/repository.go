// Package users declares the relational store contract for user records.
package users

import (
	"context"

	"github.com/dmitrijs2005/profilekeeper/internal/server/models"
)

// Repository is the relational store of user records.
type Repository interface {
	// GetByEmail returns common.ErrorNotFound when no user has that email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns common.ErrorNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Create inserts user. A duplicate email or id yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) error
}
