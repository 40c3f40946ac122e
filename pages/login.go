package pages

import (
	"html/template"
	"io"

	"github.com/gofiber/template/html/v2"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/errors"
	"github.com/oarkflow/logintheme/i18n"
	"github.com/oarkflow/logintheme/styles"
	"github.com/oarkflow/logintheme/utils"
)

// socialGridThreshold providers beyond this count are laid out as a grid
const socialGridThreshold = 3

type (
	loginView struct {
		C                   *styles.Classes
		ShowForm            bool
		Action              string
		UsernameHidden      bool
		Username            string
		UsernamePlaceholder string
		PasswordPlaceholder string
		FieldError          bool
		FieldErrorText      template.HTML
		Toggle              toggleView
		ShowRememberMe      bool
		RememberMeChecked   bool
		RememberMeLabel     template.HTML
		ShowForgotPassword  bool
		ResetCredentialsURL string
		ForgotPasswordLabel template.HTML
		SelectedCredential  string
		SubmitClass         string
		SubmitLabel         string
		WebAuthn            *webAuthnView
	}

	toggleView struct {
		ShowLabel string
		HideLabel string
		ShowIcon  string
		HideIcon  string
	}

	webAuthnView struct {
		Action        string
		CredentialIDs []string
		FormClass     string
		ButtonID      string
		ButtonClass   string
		ButtonLabel   string
	}

	infoView struct {
		DontHaveAccount template.HTML
		RegistrationURL string
		SignUp          template.HTML
	}

	socialView struct {
		SectionClass string
		OrDivider    template.HTML
		ListClass    string
		Providers    []providerView
	}

	providerView struct {
		Alias       string
		LoginURL    string
		IconClass   string
		DisplayName template.HTML
	}
)

// Login renders the username and password form
type Login struct {
	engine *html.Engine
}

// NewLogin parse the login views
func NewLogin() (*Login, error) {
	engine, err := loadEngine("login")
	if err != nil {
		return nil, err
	}
	return &Login{engine: engine}, nil
}

func (l *Login) Render(w io.Writer, p *logintheme.PageProps) error {
	rc := p.Context
	if rc.Realm == nil {
		return errors.MissingField("realm")
	}
	if rc.URL == nil {
		return errors.MissingField("url")
	}
	realm, url, msg := rc.Realm, rc.URL, p.I18n

	view := loginView{
		C:              p.Classes,
		ShowForm:       realm.Password,
		Action:         url.LoginAction,
		UsernameHidden: rc.UsernameHidden,
		Username:       rc.Login.Username,
		Toggle:         passwordToggle(msg, p.Classes),
		SubmitClass: p.Classes.Clsx("kcButtonClass", "kcButtonPrimaryClass",
			"kcButtonBlockClass", "kcButtonLargeClass"),
		SubmitLabel: msg.MsgStr("continueButton"),
	}
	if realm.Password {
		if rc.Auth == nil {
			return errors.MissingField("auth")
		}
		view.SelectedCredential = rc.Auth.SelectedCredential
		view.UsernamePlaceholder = msg.MsgStr("usernamePlaceholder")
		view.PasswordPlaceholder = msg.MsgStr("passwordPlaceholder")
		if rc.MessagesPerField.ExistsError("username", "password") {
			view.FieldError = true
			text := rc.MessagesPerField.GetFirstError("username", "password")
			view.FieldErrorText = utils.Sanitize(msg.TranslateError(i18n.ScopeLogin, text))
		}
		if realm.RememberMe && !rc.UsernameHidden {
			view.ShowRememberMe = true
			view.RememberMeChecked = rc.Login.RememberMe == "on"
			view.RememberMeLabel = msg.Msg("rememberMe")
		}
		if realm.ResetPasswordAllowed {
			view.ShowForgotPassword = true
			view.ResetCredentialsURL = url.LoginResetCredentialsURL
			view.ForgotPasswordLabel = msg.Msg("forgotPassword")
		}
	}
	if rc.EnableWebAuthnConditionalUI {
		view.WebAuthn = &webAuthnView{
			Action:      url.LoginAction,
			FormClass:   p.Classes.Clsx("kcFormClass"),
			ButtonID:    "authenticateWebAuthnButton",
			ButtonClass: p.Classes.Clsx("kcButtonClass", "kcButtonDefaultClass", "kcButtonBlockClass", "kcButtonLargeClass"),
			ButtonLabel: msg.MsgStr("passkey-doAuthenticate"),
		}
		if rc.Authenticators != nil {
			for _, a := range rc.Authenticators.Authenticators {
				view.WebAuthn.CredentialIDs = append(view.WebAuthn.CredentialIDs, a.CredentialID)
			}
		}
	}

	content, err := fragment(l.engine, "login", view)
	if err != nil {
		return err
	}

	shell := logintheme.NewShellProps(p)
	shell.DisplayMessage = !rc.MessagesPerField.ExistsError("username", "password")
	shell.HeaderNode = msg.Msg("loginAccountTitle")
	shell.Content = content
	shell.DisplayInfo = realm.Password && realm.RegistrationAllowed && !rc.RegistrationDisabled
	if shell.DisplayInfo {
		shell.InfoNode, err = fragment(l.engine, "info", infoView{
			DontHaveAccount: msg.Msg("dontHaveAccount"),
			RegistrationURL: url.RegistrationURL,
			SignUp:          msg.Msg("signUp"),
		})
		if err != nil {
			return err
		}
	}
	if realm.Password && rc.Social != nil && len(rc.Social.Providers) > 0 {
		shell.SocialProvidersNode, err = fragment(l.engine, "social", l.social(p))
		if err != nil {
			return err
		}
	}
	return p.Template.Render(w, shell)
}

func (l *Login) social(p *logintheme.PageProps) socialView {
	providers := p.Context.Social.Providers
	grid := ""
	if len(providers) > socialGridThreshold {
		grid = "kcFormSocialAccountListGridClass"
	}
	view := socialView{
		SectionClass: p.Classes.Clsx("kcFormSocialAccountSectionClass"),
		OrDivider:    p.I18n.Msg("orDivider"),
		ListClass:    p.Classes.Clsx("kcFormSocialAccountListClass", grid),
		Providers:    make([]providerView, 0, len(providers)),
	}
	for _, provider := range providers {
		pv := providerView{
			Alias:       provider.Alias,
			LoginURL:    provider.LoginURL,
			DisplayName: utils.Sanitize(provider.DisplayName),
		}
		if provider.IconClasses != "" {
			pv.IconClass = styles.Join(p.Classes.Clsx("kcCommonLogoIdP"), provider.IconClasses)
		}
		view.Providers = append(view.Providers, pv)
	}
	return view
}

func passwordToggle(msg *i18n.Localizer, c *styles.Classes) toggleView {
	return toggleView{
		ShowLabel: msg.MsgStr("showPassword"),
		HideLabel: msg.MsgStr("hidePassword"),
		ShowIcon:  c.Clsx("kcFormPasswordVisibilityIconShow"),
		HideIcon:  c.Clsx("kcFormPasswordVisibilityIconHide"),
	}
}
