package pages

import (
	"sort"
	"sync"
)

// RecaptchaCallback name of the window function the invisible challenge calls on success
const RecaptchaCallback = "onSubmitRecaptcha"

// Callbacks process wide registry of named browser callbacks bound by pages being rendered
type Callbacks struct {
	mu    sync.Mutex
	names map[string]int
}

// DefaultCallbacks registry shared by renderers that are not given their own
var DefaultCallbacks = NewCallbacks()

// NewCallbacks create an empty registry
func NewCallbacks() *Callbacks {
	return &Callbacks{names: make(map[string]int)}
}

// Register binds name until the returned release func is called; release is safe to call twice
func (c *Callbacks) Register(name string) (release func()) {
	c.mu.Lock()
	c.names[name]++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.names[name] <= 1 {
				delete(c.names, name)
				return
			}
			c.names[name]--
		})
	}
}

// Active reports whether name is bound by any render in flight
func (c *Callbacks) Active(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.names[name] > 0
}

// Names the bound callback names, sorted
func (c *Callbacks) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.names))
	for name := range c.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
