package server

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/errors"
	"github.com/oarkflow/logintheme/models"
	"github.com/oarkflow/logintheme/store"
	"github.com/oarkflow/logintheme/styles"
)

// paths the shell links stylesheets and language switches to
const (
	ResourcesPath = "/resources"
	LocalePath    = "/locale/"
)

// NewServer create the theme server
func NewServer(cfg *Config, manager logintheme.Manager, contexts logintheme.ContextStore, log *zap.Logger) *Server {
	if cfg == nil {
		cfg = NewConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	srv := &Server{
		Config:  cfg,
		Manager: manager,
		Store:   contexts,
		Log:     log,
		metrics: newMetrics(),
	}
	if cfg.PreviewCacheTTL > 0 {
		srv.previews = cache.New(cfg.PreviewCacheTTL, 2*cfg.PreviewCacheTTL)
	}
	srv.app = srv.routes()
	return srv
}

// Server serves rendered pages, previews of stored fixtures and the theme resources
type Server struct {
	Config               *Config
	Manager              logintheme.Manager
	Store                logintheme.ContextStore
	Log                  *zap.Logger
	ResponseErrorHandler ResponseErrorHandler
	InternalErrorHandler InternalErrorHandler

	metrics  *metrics
	previews *cache.Cache
	app      *fiber.App
}

// App the fiber application, for mounting or testing
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serve on the configured address until Shutdown
func (s *Server) Listen() error {
	s.Log.Info("listening", zap.String("addr", s.Config.Addr))
	return s.app.Listen(s.Config.Addr)
}

// Shutdown stop accepting requests and wait for the open ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) routes() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "logintheme",
		BodyLimit:             s.Config.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.ErrorHandler,
	})
	app.Use(s.requestLogger)

	app.Post("/render", s.HandleRenderRequest)
	app.Get("/preview/:pageId/fixtures", s.HandleFixturesRequest)
	app.Get("/preview/:pageId", s.HandlePreviewRequest)
	app.Get(LocalePath+":tag", s.HandleLocaleRequest)
	app.Use(ResourcesPath, filesystem.New(filesystem.Config{
		Root:   http.FS(styles.Resources()),
		MaxAge: 3600,
	}))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		if !s.Manager.Ready() {
			return ctx.SendStatus(fiber.StatusServiceUnavailable)
		}
		return ctx.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func (s *Server) requestLogger(ctx *fiber.Ctx) error {
	start := time.Now()
	id := ctx.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Set(fiber.HeaderXRequestID, id)

	if err := ctx.Next(); err != nil {
		if herr := s.ErrorHandler(ctx, err); herr != nil {
			return herr
		}
	}
	s.Log.Info("request",
		zap.String("id", id),
		zap.String("method", ctx.Method()),
		zap.String("path", ctx.Path()),
		zap.Int("status", ctx.Response().StatusCode()),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// preference the locale the visitor picked through the switcher, if any
func (s *Server) preference(ctx *fiber.Ctx) string {
	return ctx.Cookies(s.Config.LocaleCookie)
}

func (s *Server) render(ctx context.Context, rc *models.RenderContext, preference string) ([]byte, error) {
	if rc == nil {
		return nil, errors.ErrMissingContext
	}
	start := time.Now()
	var buf bytes.Buffer
	err := s.Manager.Render(ctx, &buf, rc, preference)
	s.metrics.observe(rc.PageID, err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) html(ctx *fiber.Ctx, body []byte) error {
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	ctx.Set(fiber.HeaderCacheControl, "no-store")
	return ctx.Send(body)
}

// HandleRenderRequest render the page of the posted context
func (s *Server) HandleRenderRequest(ctx *fiber.Ctx) error {
	rc, err := ParseRequest[models.RenderContext](ctx)
	if err != nil {
		return err
	}
	body, err := s.render(ctx.UserContext(), &rc, s.preference(ctx))
	if err != nil {
		return err
	}
	return s.html(ctx, body)
}

// HandlePreviewRequest render a stored fixture of the page; the fixture query defaults to "default"
func (s *Server) HandlePreviewRequest(ctx *fiber.Ctx) error {
	pageID := logintheme.PageID(ctx.Params("pageId"))
	fixture := ctx.Query("fixture", store.DefaultFixture)
	preference := s.preference(ctx)

	key := strings.Join([]string{pageID.String(), fixture, preference}, "|")
	if s.previews != nil {
		if body, ok := s.previews.Get(key); ok {
			s.metrics.previewHits.Inc()
			return s.html(ctx, body.([]byte))
		}
	}

	rc, err := s.Store.Get(ctx.UserContext(), pageID, fixture)
	if err != nil {
		return err
	}
	body, err := s.render(ctx.UserContext(), rc, preference)
	if err != nil {
		return err
	}
	if s.previews != nil {
		s.previews.SetDefault(key, body)
	}
	return s.html(ctx, body)
}

// HandleFixturesRequest list the fixture names stored for the page
func (s *Server) HandleFixturesRequest(ctx *fiber.Ctx) error {
	names, err := s.Store.List(ctx.UserContext(), logintheme.PageID(ctx.Params("pageId")))
	if err != nil {
		return err
	}
	if names == nil {
		names = []string{}
	}
	return ctx.JSON(fiber.Map{"fixtures": names})
}

// HandleLocaleRequest remember the picked locale and send the visitor back to the page they came from
func (s *Server) HandleLocaleRequest(ctx *fiber.Ctx) error {
	tag := s.Manager.Catalog().Match(ctx.Params("tag"))
	ctx.Cookie(&fiber.Cookie{
		Name:     s.Config.LocaleCookie,
		Value:    tag,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	if referer := ctx.Get(fiber.HeaderReferer); referer != "" {
		if u, err := url.Parse(referer); err == nil && u.Path != "" {
			return ctx.Redirect(u.RequestURI(), fiber.StatusSeeOther)
		}
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
