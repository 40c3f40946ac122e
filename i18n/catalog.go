package i18n

import (
	"embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// DefaultLanguage used when no locale is requested or the requested one is unknown
const DefaultLanguage = "en"

// Language a locale the catalog carries messages for
type Language struct {
	Tag   string
	Label string
}

var languages = []Language{
	{Tag: "en", Label: "English"},
	{Tag: "sr", Label: "Srpski"},
}

// Catalog immutable set of messages per locale
type Catalog struct {
	bundle  *i18n.Bundle
	matcher language.Matcher
	tags    []string
	log     *zap.Logger
}

// NewCatalog loads the embedded message files
func NewCatalog(log *zap.Logger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	supported := make([]language.Tag, 0, len(languages))
	tags := make([]string, 0, len(languages))
	for _, lang := range languages {
		file := "active." + lang.Tag + ".toml"
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", file, err)
		}
		supported = append(supported, language.MustParse(lang.Tag))
		tags = append(tags, lang.Tag)
	}

	return &Catalog{
		bundle:  bundle,
		matcher: language.NewMatcher(supported),
		tags:    tags,
		log:     log,
	}, nil
}

// MustCatalog is like NewCatalog but panics if the embedded files are broken
func MustCatalog(log *zap.Logger) *Catalog {
	c, err := NewCatalog(log)
	if err != nil {
		panic(err)
	}
	return c
}

// Match resolves a requested tag to one the catalog carries, "en" when unset or unknown
func (c *Catalog) Match(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return DefaultLanguage
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return DefaultLanguage
	}
	_, idx, confidence := c.matcher.Match(parsed)
	if confidence == language.No {
		return DefaultLanguage
	}
	return c.tags[idx]
}

// Languages the locales offered in the language switcher
func (c *Catalog) Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Localizer returns the message accessor for tag
func (c *Catalog) Localizer(tag string) *Localizer {
	matched := c.Match(tag)
	return &Localizer{
		catalog:   c,
		tag:       matched,
		localizer: i18n.NewLocalizer(c.bundle, matched, DefaultLanguage),
	}
}

func (c *Catalog) lookup(l *i18n.Localizer, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		c.log.Debug("i18n: message not found", zap.String("key", key), zap.Error(err))
		return key, false
	}
	return msg, true
}

// format substitutes the positional {0}, {1} placeholders the identity server bundles use
func format(msg string, args []string) string {
	if len(args) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", arg)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
