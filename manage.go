package logintheme

import (
	"context"
	"io"

	"github.com/oarkflow/logintheme/i18n"
	"github.com/oarkflow/logintheme/models"
)

// Manager page rendering interface
type Manager interface {
	// Render the page the context asks for, in the preferred locale
	Render(ctx context.Context, w io.Writer, rc *models.RenderContext, preference string) error
	// Ready reports whether pages can be rendered without waiting
	Ready() bool
	// Catalog the message catalog pages are localized with
	Catalog() *i18n.Catalog
}
