package contentsrv

import (
	"context"

	"github.com/talencee/careers/pkg/errx"
	"github.com/talencee/careers/pkg/logx"
	"github.com/talencee/careers/recruitment/content"
)

// ContentService reads and replaces the landing page document
type ContentService struct {
	contentRepo content.Repository
}

// NewContentService creates a new instance of the content service
func NewContentService(contentRepo content.Repository) *ContentService {
	return &ContentService{
		contentRepo: contentRepo,
	}
}

// GetContent returns the document, or nil when none has been created yet
func (s *ContentService) GetContent(ctx context.Context) (*content.Content, error) {
	c, err := s.contentRepo.Get(ctx)
	if err != nil {
		if errx.IsCode(err, content.CodeContentNotFound) {
			return nil, nil
		}
		return nil, errx.Wrap(err, "failed to load content", errx.TypeInternal)
	}
	return c, nil
}

// UpdateContent validates and stores a full replacement of the document
func (s *ContentService) UpdateContent(ctx context.Context, req content.UpdateContentRequest) (*content.Content, error) {
	if !req.HasRequiredSections() {
		return nil, content.ErrSectionsRequired()
	}

	c := req.ToContent()
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.contentRepo.Save(ctx, c); err != nil {
		return nil, errx.Wrap(err, "failed to save content", errx.TypeInternal)
	}

	logx.Infof("Site content updated at %s", c.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"))
	return c, nil
}
