package utils

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = newSanitizer()

// messages from the identity server may carry simple markup such as links or <br>
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("target").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a")
	p.AllowAttrs("class").Globally()
	p.RequireNoFollowOnLinks(false)
	return p
}

// Sanitize strips everything but a safe subset of HTML and marks the result safe for templates
func Sanitize(s string) template.HTML {
	return template.HTML(sanitizer.Sanitize(s))
}
