package content

import "context"

type Repository interface {
	// Get returns the site document or ErrContentNotFound
	Get(ctx context.Context) (*Content, error)

	// Save inserts or replaces the site document
	Save(ctx context.Context, c *Content) error
}
