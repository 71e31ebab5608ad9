package contentinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/talencee/careers/recruitment/content"
)

// PostgresContentRepository keeps the site document as one JSON row
type PostgresContentRepository struct {
	db *sqlx.DB
}

// NewPostgresContentRepository creates a new content repository
func NewPostgresContentRepository(db *sqlx.DB) *PostgresContentRepository {
	return &PostgresContentRepository{
		db: db,
	}
}

type contentModel struct {
	ID        string    `db:"id"`
	Document  string    `db:"document"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// document is the stored JSON shape; id and timestamps live in columns
type document struct {
	Hero         content.Hero          `json:"hero"`
	Services     []content.Card        `json:"services"`
	Features     []content.Card        `json:"features"`
	Testimonials []content.Testimonial `json:"testimonials"`
	Footer       content.Footer        `json:"footer"`
	CTA          content.CTA           `json:"cta"`
}

func (m *contentModel) toEntity() (*content.Content, error) {
	var doc document
	if err := json.Unmarshal([]byte(m.Document), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode content document: %w", err)
	}
	c := &content.Content{
		ID:           content.SiteContentID,
		Hero:         doc.Hero,
		Services:     doc.Services,
		Features:     doc.Features,
		Testimonials: doc.Testimonials,
		Footer:       doc.Footer,
		CTA:          doc.CTA,
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
	c.Normalize()
	return c, nil
}

// Get returns the site document
func (r *PostgresContentRepository) Get(ctx context.Context) (*content.Content, error) {
	query := r.db.Rebind(`SELECT id, document, created_at, updated_at FROM site_content WHERE id = ?`)

	var model contentModel
	if err := r.db.GetContext(ctx, &model, query, content.SiteContentID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, content.ErrContentNotFound()
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	return model.toEntity()
}

// Save upserts the site document and stamps UpdatedAt
func (r *PostgresContentRepository) Save(ctx context.Context, c *content.Content) error {
	raw, err := json.Marshal(document{
		Hero:         c.Hero,
		Services:     c.Services,
		Features:     c.Features,
		Testimonials: c.Testimonials,
		Footer:       c.Footer,
		CTA:          c.CTA,
	})
	if err != nil {
		return fmt.Errorf("failed to encode content document: %w", err)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO site_content (id, document, created_at, updated_at)
		VALUES (:id, :document, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`

	model := contentModel{
		ID:        content.SiteContentID.String(),
		Document:  string(raw),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to save content: %w", err)
	}

	c.ID = content.SiteContentID
	c.UpdatedAt = now
	return nil
}
