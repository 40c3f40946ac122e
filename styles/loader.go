package styles

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed resources
var resourcesFS embed.FS

// versionNamespace namespace of the stylesheet version tokens
var versionNamespace = uuid.MustParse("6f1d3c1e-9a5b-4c43-8a8e-2f0b7d4f6c11")

// Resources the theme's static files, rooted at the resources directory
func Resources() fs.FS {
	sub, err := fs.Sub(resourcesFS, "resources")
	if err != nil {
		panic(err)
	}
	return sub
}

// Stylesheet one stylesheet of the theme
type Stylesheet struct {
	Path    string
	Version string
}

// Href the stylesheet link below base, with a cache busting version
func (s Stylesheet) Href(base string) string {
	return path.Join("/", base, s.Path) + "?v=" + s.Version
}

// Loader loads the theme stylesheets in the background; pages render once it is ready
type Loader struct {
	fsys   fs.FS
	log    *zap.Logger
	once   sync.Once
	ready  chan struct{}
	sheets []Stylesheet
	err    error
}

// NewLoader create a loader over fsys, usually Resources()
func NewLoader(fsys fs.FS, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		fsys:  fsys,
		log:   log,
		ready: make(chan struct{}),
	}
}

// Start begins loading; later calls are no-ops
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go l.load(ctx)
	})
}

func (l *Loader) load(ctx context.Context) {
	defer close(l.ready)

	paths, err := fs.Glob(l.fsys, "css/*.css")
	if err != nil {
		l.err = fmt.Errorf("styles: glob stylesheets: %w", err)
		return
	}
	sort.Strings(paths)

	sheets := make([]Stylesheet, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			l.err = err
			return
		}
		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			l.err = fmt.Errorf("styles: read %s: %w", p, err)
			return
		}
		version := uuid.NewSHA1(versionNamespace, data).String()[:8]
		sheets = append(sheets, Stylesheet{Path: p, Version: version})
	}
	l.sheets = sheets
	l.log.Debug("styles loaded", zap.Int("stylesheets", len(sheets)))
}

// Ready reports whether loading finished, without blocking
func (l *Loader) Ready() bool {
	select {
	case <-l.ready:
		return true
	default:
		return false
	}
}

// Wait blocks until loading finished or ctx is done
func (l *Loader) Wait(ctx context.Context) error {
	select {
	case <-l.ready:
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stylesheets the loaded stylesheets, nil before the loader is ready
func (l *Loader) Stylesheets() []Stylesheet {
	if !l.Ready() {
		return nil
	}
	return l.sheets
}
