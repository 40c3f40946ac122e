package pages

import (
	"html/template"
	"io"

	"github.com/gofiber/template/html/v2"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/errors"
	"github.com/oarkflow/logintheme/i18n"
	"github.com/oarkflow/logintheme/models"
	"github.com/oarkflow/logintheme/styles"
	"github.com/oarkflow/logintheme/utils"
)

type (
	registerView struct {
		C                    *styles.Classes
		Action               string
		Fields               template.HTML
		TermsRequired        bool
		Terms                *termsView
		RecaptchaWidget      *recaptchaView
		RecaptchaButton      *recaptchaView
		RecaptchaButtonClass string
		RecaptchaScript      bool
		CallbackName         string
		LoginURL             string
		BackToLogin          template.HTML
		SubmitClass          string
		SubmitLabel          string
		SubmitDisabled       bool
	}

	termsView struct {
		Accepted  bool
		Error     bool
		Label     template.HTML
		ErrorText template.HTML
	}

	recaptchaView struct {
		SiteKey string
		Action  string
	}
)

// Register renders the registration form around the user profile field set
type Register struct {
	engine    *html.Engine
	fields    func() (*FieldSet, error)
	callbacks *Callbacks

	// DoMakeUserConfirmPassword asks for the password twice
	DoMakeUserConfirmPassword bool
}

// NewRegister parse the register views; fields is called on the first render
func NewRegister(fields func() (*FieldSet, error), callbacks *Callbacks) (*Register, error) {
	engine, err := loadEngine("register")
	if err != nil {
		return nil, err
	}
	if callbacks == nil {
		callbacks = DefaultCallbacks
	}
	return &Register{
		engine:                    engine,
		fields:                    fields,
		callbacks:                 callbacks,
		DoMakeUserConfirmPassword: true,
	}, nil
}

// SubmitDisabled the submit rule shared with the inline script
func SubmitDisabled(submittable, termsRequired, termsAccepted bool) bool {
	return !submittable || (termsRequired && !termsAccepted)
}

func (r *Register) Render(w io.Writer, p *logintheme.PageProps) error {
	rc := p.Context
	if rc.URL == nil {
		return errors.MissingField("url")
	}
	release := r.callbacks.Register(RecaptchaCallback)
	defer release()

	fieldSet, err := r.fields()
	if err != nil {
		return err
	}
	fields, submittable, err := fieldSet.Render(FieldSetProps{
		Context:                   rc,
		I18n:                      p.I18n,
		Classes:                   p.Classes,
		DoMakeUserConfirmPassword: r.DoMakeUserConfirmPassword,
	})
	if err != nil {
		return err
	}

	msg := p.I18n
	view := registerView{
		C:             p.Classes,
		Action:        rc.URL.RegistrationAction,
		Fields:        fields,
		TermsRequired: rc.TermsAcceptanceRequired,
		CallbackName:  RecaptchaCallback,
		LoginURL:      rc.URL.LoginURL,
		BackToLogin:   msg.Msg("backToLogin"),
		SubmitClass: p.Classes.Clsx("kcButtonClass", "kcButtonPrimaryClass",
			"kcButtonBlockClass", "kcButtonLargeClass"),
		SubmitLabel: msg.MsgStr("doRegister"),
	}
	// terms start unchecked on every render
	view.SubmitDisabled = SubmitDisabled(submittable, rc.TermsAcceptanceRequired, false)

	if rc.TermsAcceptanceRequired {
		view.Terms = &termsView{Label: msg.Msg("acceptTerms")}
		if rc.MessagesPerField.ExistsError("termsAccepted") {
			view.Terms.Error = true
			view.Terms.ErrorText = utils.Sanitize(
				msg.TranslateError(i18n.ScopeRegister, rc.MessagesPerField.Get("termsAccepted")))
		}
	}

	if rc.RecaptchaRequired {
		captcha := &recaptchaView{SiteKey: rc.RecaptchaSiteKey}
		if rc.RecaptchaAction != nil {
			captcha.Action = *rc.RecaptchaAction
		}
		if rc.RecaptchaVisible || rc.RecaptchaAction == nil {
			view.RecaptchaWidget = captcha
		} else {
			view.RecaptchaButton = captcha
			view.RecaptchaButtonClass = styles.Join(view.SubmitClass, "g-recaptcha")
		}
		view.RecaptchaScript = true
	}

	content, err := fragment(r.engine, "register", view)
	if err != nil {
		return err
	}

	shell := logintheme.NewShellProps(p)
	if rc.MessageHeader != nil {
		shell.HeaderNode = msg.AdvancedMsg(*rc.MessageHeader)
		shell.HeaderExplicit = true
	} else {
		shell.HeaderNode = msg.Msg("registerTitle")
	}
	shell.DisplayMessage = rc.MessagesPerField.Exists(models.GlobalField)
	shell.DisplayRequiredFields = true
	shell.Content = content
	return p.Template.Render(w, shell)
}
