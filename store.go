package logintheme

import (
	"context"

	"github.com/oarkflow/logintheme/models"
)

type (
	// ContextStore the preview fixture storage interface
	ContextStore interface {
		// Get the render context stored for the page under name
		Get(ctx context.Context, pageID PageID, name string) (*models.RenderContext, error)

		// Put store the render context under name, keyed by its page id
		Put(ctx context.Context, name string, rc *models.RenderContext) error

		// List the fixture names stored for the page
		List(ctx context.Context, pageID PageID) ([]string, error)
	}
)
