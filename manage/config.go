package manage

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config manager configuration
type Config struct {
	DoUseDefaultCss   bool
	HonorServerLocale bool
	// Classes style role overrides, see styles.NewClasses
	Classes map[string]string
	// ResourcesBase path the theme stylesheets are served under
	ResourcesBase string
	// LocalePath prefix of the language switcher links
	LocalePath string
	// ReadyTimeout bounds how long a render waits for the stylesheets
	ReadyTimeout time.Duration
}

// DefaultConfig the default manager configuration
var DefaultConfig = &Config{
	DoUseDefaultCss: true,
	ResourcesBase:   "/resources",
	LocalePath:      "/locale/",
	ReadyTimeout:    5 * time.Second,
}

// LoadClasses reads style role overrides from a TOML file of role = "class names" pairs
func LoadClasses(file string) (map[string]string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	classes := make(map[string]string)
	if err := toml.Unmarshal(data, &classes); err != nil {
		return nil, fmt.Errorf("manage: parse classes %s: %w", file, err)
	}
	return classes, nil
}
