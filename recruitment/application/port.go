package application

import (
	"context"

	"github.com/talencee/careers/pkg/kernel"
)

type Repository interface {
	// Create persists a new application
	Create(ctx context.Context, application *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// Count returns the number of stored applications
	Count(ctx context.Context) (int64, error)
}
