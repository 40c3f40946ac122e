package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/bitbucket"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/gitlab"
	"golang.org/x/oauth2/microsoft"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/models"
)

// DefaultFixture name of the fixture a preview falls back to
const DefaultFixture = "default"

type socialProvider struct {
	alias       string
	displayName string
	iconClasses string
	endpoint    oauth2.Endpoint
}

var socialProviders = []socialProvider{
	{"github", "GitHub", "fa fa-github", github.Endpoint},
	{"gitlab", "GitLab", "fa fa-gitlab", gitlab.Endpoint},
	{"facebook", "Facebook", "fa fa-facebook", facebook.Endpoint},
	{"microsoft", "Microsoft", "fa fa-windows", microsoft.LiveConnectEndpoint},
	{"bitbucket", "Bitbucket", "fa fa-bitbucket", bitbucket.Endpoint},
}

// Fixtures sample contexts for previewing pages without an identity server
type Fixtures struct {
	// BaseURL realm URL the form actions and links point below
	BaseURL string
	// ClientID client the sample flows log in to
	ClientID string
}

// NewFixtures create fixtures for the realm at baseURL
func NewFixtures(baseURL string) *Fixtures {
	return &Fixtures{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		ClientID: "account-console",
	}
}

// Seed put every fixture into s
func (f *Fixtures) Seed(ctx context.Context, s logintheme.ContextStore) error {
	for key, rc := range f.All() {
		if err := s.Put(ctx, key.Name, rc); err != nil {
			return fmt.Errorf("store: seed %s/%s: %w", key.Page, key.Name, err)
		}
	}
	return nil
}

// Key identifies a fixture
type Key struct {
	Page logintheme.PageID
	Name string
}

// All the fixtures keyed by page and name
func (f *Fixtures) All() map[Key]*models.RenderContext {
	login := func(mutate func(rc *models.RenderContext)) *models.RenderContext {
		rc := f.base(logintheme.PageLogin)
		if mutate != nil {
			mutate(rc)
		}
		return rc
	}
	register := func(mutate func(rc *models.RenderContext)) *models.RenderContext {
		rc := f.base(logintheme.PageRegister)
		rc.TermsAcceptanceRequired = true
		if mutate != nil {
			mutate(rc)
		}
		return rc
	}

	return map[Key]*models.RenderContext{
		{logintheme.PageLogin, DefaultFixture}: login(nil),
		{logintheme.PageLogin, "error-sr"}: login(func(rc *models.RenderContext) {
			rc.Locale.CurrentLanguageTag = "sr"
			rc.Login.Username = "jdoe"
			rc.Message = &models.Message{Type: models.MessageError, Summary: "Invalid username or password."}
			rc.MessagesPerField = models.MessagesPerField{
				"username": {{Type: models.MessageError, Summary: "Invalid username or password."}},
				"password": {{Type: models.MessageError, Summary: "Invalid username or password."}},
			}
		}),
		{logintheme.PageLogin, "username-hidden"}: login(func(rc *models.RenderContext) {
			rc.UsernameHidden = true
			rc.Auth.AttemptedUsername = "jdoe"
			rc.Auth.ShowUsername = true
			rc.Auth.ShowTryAnotherWayLink = true
		}),
		{logintheme.PageLogin, "webauthn"}: login(func(rc *models.RenderContext) {
			rc.EnableWebAuthnConditionalUI = true
			rc.Authenticators = &models.Authenticators{Authenticators: []models.Authenticator{
				{CredentialID: "Y3JlZGVudGlhbC0x", Label: "Security key", Transports: []string{"usb"}},
				{CredentialID: "Y3JlZGVudGlhbC0y", Label: "Laptop", Transports: []string{"internal"}},
			}}
		}),
		{logintheme.PageLogin, "social"}: login(func(rc *models.RenderContext) {
			rc.Social = &models.Social{Providers: f.providers()}
		}),
		{logintheme.PageRegister, DefaultFixture}: register(func(rc *models.RenderContext) {
			action := "register"
			rc.RecaptchaRequired = true
			rc.RecaptchaSiteKey = "6LeIxAcTAAAAAJcZVRqyHh71UMIEGNQ_MXjiZKhI"
			rc.RecaptchaAction = &action
		}),
		{logintheme.PageRegister, "recaptcha-visible"}: register(func(rc *models.RenderContext) {
			rc.RecaptchaRequired = true
			rc.RecaptchaVisible = true
			rc.RecaptchaSiteKey = "6LeIxAcTAAAAAJcZVRqyHh71UMIEGNQ_MXjiZKhI"
		}),
		{logintheme.PageRegister, "errors-sr"}: register(func(rc *models.RenderContext) {
			rc.Locale.CurrentLanguageTag = "sr"
			rc.MessagesPerField = models.MessagesPerField{
				"email":         {{Type: models.MessageError, Summary: "Invalid email address."}},
				"firstName":     {{Type: models.MessageError, Summary: "Please specify first name."}},
				"termsAccepted": {{Type: models.MessageError, Summary: "Please specify this field."}},
			}
		}),
		{"info.ftl", DefaultFixture}: func() *models.RenderContext {
			rc := f.base("info.ftl")
			rc.Message = &models.Message{Type: models.MessageInfo, Summary: "Your account has been updated."}
			rc.Client.BaseURL = "http://localhost:3000"
			return rc
		}(),
	}
}

func (f *Fixtures) base(pageID logintheme.PageID) *models.RenderContext {
	return &models.RenderContext{
		PageID: pageID.String(),
		Realm: &models.Realm{
			Name:                        "demo",
			DisplayName:                 "Demo",
			Password:                    true,
			RegistrationAllowed:         true,
			ResetPasswordAllowed:        true,
			RememberMe:                  true,
			LoginWithEmailAllowed:       true,
			InternationalizationEnabled: true,
		},
		URL: &models.URL{
			LoginAction:              f.BaseURL + "/login-actions/authenticate",
			RegistrationAction:       f.BaseURL + "/login-actions/registration",
			RegistrationURL:          f.BaseURL + "/protocol/openid-connect/registrations",
			LoginURL:                 f.BaseURL + "/protocol/openid-connect/auth",
			LoginRestartFlowURL:      f.BaseURL + "/login-actions/restart",
			LoginResetCredentialsURL: f.BaseURL + "/login-actions/reset-credentials",
			ResourcesPath:            "/resources/login/demo",
			ResourcesCommonPath:      "/resources/common",
		},
		Auth:   &models.Auth{},
		Locale: &models.Locale{CurrentLanguageTag: "en"},
		Client: &models.Client{ClientID: f.ClientID},
	}
}

// providers login URLs are real authorization URLs of each provider, with a stable state
func (f *Fixtures) providers() []models.Provider {
	out := make([]models.Provider, 0, len(socialProviders))
	for _, p := range socialProviders {
		cfg := &oauth2.Config{
			ClientID:    f.ClientID,
			Endpoint:    p.endpoint,
			RedirectURL: f.BaseURL + "/broker/" + p.alias + "/endpoint",
			Scopes:      []string{"openid", "email"},
		}
		state := uuid.NewSHA1(uuid.NameSpaceURL, []byte(cfg.RedirectURL)).String()
		out = append(out, models.Provider{
			Alias:       p.alias,
			ProviderID:  p.alias,
			DisplayName: p.displayName,
			LoginURL:    cfg.AuthCodeURL(state),
			IconClasses: p.iconClasses,
		})
	}
	return out
}
