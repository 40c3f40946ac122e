package i18n

import (
	"html/template"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/oarkflow/logintheme/utils"
)

// Localizer resolves messages for one locale
type Localizer struct {
	catalog   *Catalog
	tag       string
	localizer *i18n.Localizer
}

// LanguageTag the locale the localizer resolved to
func (l *Localizer) LanguageTag() string {
	return l.tag
}

// Languages the locales offered in the language switcher
func (l *Localizer) Languages() []Language {
	return l.catalog.Languages()
}

// MsgStr the plain text message for key, the key itself when unknown
func (l *Localizer) MsgStr(key string, args ...string) string {
	msg, _ := l.catalog.lookup(l.localizer, key)
	return format(msg, args)
}

// Msg the message for key as sanitized markup
func (l *Localizer) Msg(key string, args ...string) template.HTML {
	return utils.Sanitize(l.MsgStr(key, args...))
}

// AdvancedMsgStr resolves "${key}" references, any other text is returned as is
func (l *Localizer) AdvancedMsgStr(s string, args ...string) string {
	if key, ok := messageReference(s); ok {
		if msg, found := l.catalog.lookup(l.localizer, key); found {
			return format(msg, args)
		}
		return key
	}
	return format(s, args)
}

// AdvancedMsg is AdvancedMsgStr as sanitized markup
func (l *Localizer) AdvancedMsg(s string, args ...string) template.HTML {
	return utils.Sanitize(l.AdvancedMsgStr(s, args...))
}

// TranslateError applies the literal error override table of scope
func (l *Localizer) TranslateError(scope Scope, text string) string {
	return Translate(scope, l.tag, text)
}

func messageReference(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") && len(s) > 3 {
		return s[2 : len(s)-1], true
	}
	return "", false
}
