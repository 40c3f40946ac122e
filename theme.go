package logintheme

import (
	"html/template"
	"io"

	"github.com/oarkflow/logintheme/i18n"
	"github.com/oarkflow/logintheme/models"
	"github.com/oarkflow/logintheme/styles"
)

// PageID identifies the page the identity server asks for
type PageID string

// pages with a dedicated renderer; every other id gets the default renderer
const (
	PageLogin    PageID = "login.ftl"
	PageRegister PageID = "register.ftl"
)

func (id PageID) String() string {
	return string(id)
}

type (
	// PageProps input of a page renderer, built per render
	PageProps struct {
		Context         *models.RenderContext
		I18n            *i18n.Localizer
		Template        Template
		Classes         *styles.Classes
		DoUseDefaultCss bool
	}

	// Renderer renders one page
	Renderer interface {
		Render(w io.Writer, props *PageProps) error
	}

	// Template the shared shell every page renders into
	Template interface {
		Render(w io.Writer, props *ShellProps) error
	}

	// ShellProps what a page hands to the shell
	ShellProps struct {
		Context *models.RenderContext
		I18n    *i18n.Localizer
		Classes *styles.Classes

		DocumentTitle         string
		BodyClassName         string
		DisplayMessage        bool
		DisplayInfo           bool
		DisplayRequiredFields bool

		// HeaderNode replaces the per page title pair when HeaderExplicit is set,
		// and is the fallback for pages without one
		HeaderNode          template.HTML
		HeaderExplicit      bool
		InfoNode            template.HTML
		SocialProvidersNode template.HTML
		Content             template.HTML
	}
)

// NewShellProps shell props with the page's context and the shell defaults
func NewShellProps(p *PageProps) *ShellProps {
	return &ShellProps{
		Context:        p.Context,
		I18n:           p.I18n,
		Classes:        p.Classes,
		DisplayMessage: true,
	}
}
