package manage

import (
	"github.com/oarkflow/logintheme/i18n"
	"github.com/oarkflow/logintheme/models"
)

// View a render context with the locale the page will be rendered in
type View struct {
	// Original the context as the identity server sent it, never modified
	Original *models.RenderContext
	// Context copy of Original whose locale.currentLanguageTag is Locale
	Context *models.RenderContext

	ServerLocale string
	Preference   string
	Locale       string
}

// Adapt resolves the locale in two stages: the server locale, then the stored preference.
// An absent preference means the default language, or the server locale when honorServerLocale is set.
// Nothing else in the context is looked at.
func Adapt(raw *models.RenderContext, preference string, honorServerLocale bool) *View {
	view := &View{
		Original:     raw,
		ServerLocale: raw.LanguageTag(),
		Preference:   preference,
		Locale:       preference,
	}
	if view.Locale == "" {
		view.Locale = i18n.DefaultLanguage
		if honorServerLocale && view.ServerLocale != "" {
			view.Locale = view.ServerLocale
		}
	}

	view.Context = raw.Clone()
	if view.Context.Locale == nil {
		view.Context.Locale = &models.Locale{}
	}
	view.Context.Locale.CurrentLanguageTag = view.Locale
	return view
}

// Overridden reports whether the preference replaced the server locale
func (v *View) Overridden() bool {
	return v.Locale != v.ServerLocale
}
