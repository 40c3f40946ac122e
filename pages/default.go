package pages

import (
	"html/template"
	"io"

	"github.com/gofiber/template/html/v2"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/styles"
)

// page titles of the generic pages the identity server is known to send
var defaultTitles = map[logintheme.PageID]string{
	"error.ftl":              "errorTitle",
	"login-page-expired.ftl": "pageExpiredTitle",
	"terms.ftl":              "termsTitle",
}

type (
	defaultView struct {
		C      *styles.Classes
		Form   *defaultFormView
		Action *linkView
		Back   *linkView
	}

	defaultFormView struct {
		Action      string
		Fields      template.HTML
		SubmitClass string
		SubmitLabel string
	}

	linkView struct {
		URL   string
		Label template.HTML
	}
)

// Default renders every page without a dedicated renderer; any optional part of the context may be missing
type Default struct {
	engine *html.Engine
	fields func() (*FieldSet, error)
}

// NewDefault parse the default views; fields is called only for pages carrying a profile
func NewDefault(fields func() (*FieldSet, error)) (*Default, error) {
	engine, err := loadEngine("default")
	if err != nil {
		return nil, err
	}
	return &Default{engine: engine, fields: fields}, nil
}

func (d *Default) Render(w io.Writer, p *logintheme.PageProps) error {
	rc := p.Context
	msg := p.I18n
	view := defaultView{C: p.Classes}

	if rc.Profile != nil && rc.URL != nil && rc.URL.LoginAction != "" {
		fieldSet, err := d.fields()
		if err != nil {
			return err
		}
		fields, _, err := fieldSet.Render(FieldSetProps{
			Context:         rc,
			I18n:            msg,
			Classes:         p.Classes,
			WithoutPassword: true,
		})
		if err != nil {
			return err
		}
		view.Form = &defaultFormView{
			Action: rc.URL.LoginAction,
			Fields: fields,
			SubmitClass: p.Classes.Clsx("kcButtonClass", "kcButtonPrimaryClass",
				"kcButtonBlockClass", "kcButtonLargeClass"),
			SubmitLabel: msg.MsgStr("doSubmit"),
		}
	}

	switch {
	case rc.SkipLink:
	case rc.PageRedirectURI != "":
		view.Back = &linkView{URL: rc.PageRedirectURI, Label: msg.Msg("backToApplication")}
	case rc.ActionURI != "":
		view.Action = &linkView{URL: rc.ActionURI, Label: msg.Msg("proceedWithAction")}
	case rc.Client != nil && rc.Client.BaseURL != "":
		view.Back = &linkView{URL: rc.Client.BaseURL, Label: msg.Msg("backToApplication")}
	case rc.URL != nil && rc.URL.LoginURL != "" && view.Form == nil:
		view.Back = &linkView{URL: rc.URL.LoginURL, Label: msg.Msg("backToLogin")}
	}

	content, err := fragment(d.engine, "default", view)
	if err != nil {
		return err
	}

	shell := logintheme.NewShellProps(p)
	switch key, ok := defaultTitles[logintheme.PageID(rc.PageID)]; {
	case rc.MessageHeader != nil:
		shell.HeaderNode = msg.AdvancedMsg(*rc.MessageHeader)
		shell.HeaderExplicit = true
	case ok:
		shell.HeaderNode = msg.Msg(key)
	}
	shell.DisplayRequiredFields = view.Form != nil
	shell.Content = content
	return p.Template.Render(w, shell)
}
