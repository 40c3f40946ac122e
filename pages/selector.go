package pages

import (
	"sync"
	"sync/atomic"

	"github.com/oarkflow/logintheme"
)

// Loader yields a renderer, parsing its views on the first call
type Loader func() (logintheme.Renderer, error)

type lazy[T any] struct {
	get    func() (T, error)
	loaded atomic.Bool
}

func newLazy[T any](load func() (T, error)) *lazy[T] {
	l := &lazy[T]{}
	l.get = sync.OnceValues(func() (T, error) {
		defer l.loaded.Store(true)
		return load()
	})
	return l
}

func (l *lazy[T]) Get() (T, error) {
	return l.get()
}

func (l *lazy[T]) Loaded() bool {
	return l.loaded.Load()
}

// Selector maps page ids to renderers; ids without one get the default renderer
type Selector struct {
	pages    map[logintheme.PageID]*lazy[logintheme.Renderer]
	fallback *lazy[logintheme.Renderer]
	fields   *lazy[*FieldSet]
}

// NewSelector create a selector; nothing is parsed until a page is selected
func NewSelector(callbacks *Callbacks) *Selector {
	fields := newLazy(NewFieldSet)
	return &Selector{
		pages: map[logintheme.PageID]*lazy[logintheme.Renderer]{
			logintheme.PageLogin: newLazy(func() (logintheme.Renderer, error) {
				return NewLogin()
			}),
			logintheme.PageRegister: newLazy(func() (logintheme.Renderer, error) {
				return NewRegister(fields.Get, callbacks)
			}),
		},
		fallback: newLazy(func() (logintheme.Renderer, error) {
			return NewDefault(fields.Get)
		}),
		fields: fields,
	}
}

func (s *Selector) page(id logintheme.PageID) *lazy[logintheme.Renderer] {
	if l, ok := s.pages[id]; ok {
		return l
	}
	return s.fallback
}

// Select the loader of the renderer for id
func (s *Selector) Select(id logintheme.PageID) Loader {
	return s.page(id).Get
}

// Loaded reports whether the renderer for id has been loaded
func (s *Selector) Loaded(id logintheme.PageID) bool {
	return s.page(id).Loaded()
}

// FieldsLoaded reports whether the user profile field set has been loaded
func (s *Selector) FieldsLoaded() bool {
	return s.fields.Loaded()
}

// Pages the ids with a dedicated renderer
func (s *Selector) Pages() []logintheme.PageID {
	return []logintheme.PageID{logintheme.PageLogin, logintheme.PageRegister}
}
