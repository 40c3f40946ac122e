package manage

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/errors"
	"github.com/oarkflow/logintheme/i18n"
	"github.com/oarkflow/logintheme/models"
	"github.com/oarkflow/logintheme/pages"
	"github.com/oarkflow/logintheme/styles"
)

var _ logintheme.Manager = (*Manager)(nil)

// NewDefaultManager create a manager over the embedded catalog and stylesheets
func NewDefaultManager(cfg *Config, log *zap.Logger) *Manager {
	if cfg == nil {
		cfg = DefaultConfig
	}
	if log == nil {
		log = zap.NewNop()
	}
	loader := styles.NewLoader(styles.Resources(), log)
	shell := pages.NewTemplate(loader, log)
	if cfg.ResourcesBase != "" {
		shell.ResourcesBase = cfg.ResourcesBase
	}
	shell.LocalePath = cfg.LocalePath

	return &Manager{
		cfg:      cfg,
		log:      log,
		catalog:  i18n.MustCatalog(log),
		styles:   loader,
		shell:    shell,
		selector: pages.NewSelector(pages.DefaultCallbacks),
		classes:  styles.NewClasses(cfg.DoUseDefaultCss, cfg.Classes),
	}
}

// Manager adapts render contexts and hands them to the selected page
type Manager struct {
	cfg      *Config
	log      *zap.Logger
	catalog  *i18n.Catalog
	styles   *styles.Loader
	shell    *pages.Template
	selector *pages.Selector
	classes  *styles.Classes
}

// Start loading the stylesheets; renders wait for it
func (m *Manager) Start(ctx context.Context) {
	m.styles.Start(ctx)
}

func (m *Manager) Ready() bool {
	return m.styles.Ready()
}

func (m *Manager) Catalog() *i18n.Catalog {
	return m.catalog
}

// Selector the page selector, for inspecting what has been loaded
func (m *Manager) Selector() *pages.Selector {
	return m.selector
}

// Adapt the raw context with the manager's locale policy
func (m *Manager) Adapt(raw *models.RenderContext, preference string) *View {
	return Adapt(raw, preference, m.cfg.HonorServerLocale)
}

// Render adapt, wait for the stylesheets, select the page and render it into w
func (m *Manager) Render(ctx context.Context, w io.Writer, raw *models.RenderContext, preference string) error {
	if raw == nil {
		return errors.ErrMissingContext
	}
	view := m.Adapt(raw, preference)

	if err := m.waitReady(ctx); err != nil {
		return err
	}

	id := logintheme.PageID(view.Context.PageID)
	renderer, err := m.selector.Select(id)()
	if err != nil {
		return fmt.Errorf("manage: load page %s: %w", id, err)
	}

	loc := m.catalog.Localizer(view.Locale)
	m.log.Debug("render page",
		zap.String("page", id.String()),
		zap.String("server_locale", view.ServerLocale),
		zap.String("preference", view.Preference),
		zap.String("locale", loc.LanguageTag()),
	)
	return renderer.Render(w, &logintheme.PageProps{
		Context:         view.Context,
		I18n:            loc,
		Template:        m.shell,
		Classes:         m.classes,
		DoUseDefaultCss: m.cfg.DoUseDefaultCss,
	})
}

func (m *Manager) waitReady(ctx context.Context) error {
	if m.styles.Ready() {
		return nil
	}
	if m.cfg.ReadyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.ReadyTimeout)
		defer cancel()
	}
	err := m.styles.Wait(ctx)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", errors.ErrStylesNotReady, err)
	}
	return err
}
