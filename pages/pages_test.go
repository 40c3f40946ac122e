package pages

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/errors"
	"github.com/oarkflow/logintheme/i18n"
	"github.com/oarkflow/logintheme/models"
	"github.com/oarkflow/logintheme/styles"
)

var catalog = i18n.MustCatalog(nil)

func readyLoader(t *testing.T) *styles.Loader {
	t.Helper()
	l := styles.NewLoader(styles.Resources(), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	l.Start(ctx)
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("styles: %v", err)
	}
	return l
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func loginContext() *models.RenderContext {
	return &models.RenderContext{
		PageID: "login.ftl",
		Realm: &models.Realm{
			Name:                 "demo",
			DisplayName:          "Demo",
			Password:             true,
			RegistrationAllowed:  true,
			RememberMe:           true,
			ResetPasswordAllowed: true,
		},
		URL: &models.URL{
			LoginAction:              "/realms/demo/login-actions/authenticate",
			RegistrationURL:          "/realms/demo/registrations",
			RegistrationAction:       "/realms/demo/login-actions/registration",
			LoginURL:                 "/realms/demo/login",
			LoginRestartFlowURL:      "/realms/demo/login-actions/restart",
			LoginResetCredentialsURL: "/realms/demo/login-actions/reset-credentials",
			ResourcesPath:            "/resources/login/demo",
			ResourcesCommonPath:      "/resources/common",
		},
		Auth:   &models.Auth{},
		Locale: &models.Locale{CurrentLanguageTag: "en"},
		Login:  models.Login{Username: "jdoe"},
	}
}

func registerContext() *models.RenderContext {
	rc := loginContext()
	rc.PageID = "register.ftl"
	return rc
}

// filledProfile a profile whose required attributes all carry values
func filledProfile() *models.Profile {
	return &models.Profile{Attributes: []models.Attribute{
		{Name: "username", Value: "jdoe", Required: true},
		{Name: "email", Value: "jdoe@example.com", Required: true},
	}}
}

type harness struct {
	selector *Selector
	shell    *Template
}

func newHarness(t *testing.T) *harness {
	return &harness{
		selector: NewSelector(NewCallbacks()),
		shell:    NewTemplate(readyLoader(t), nil),
	}
}

func (h *harness) render(t *testing.T, rc *models.RenderContext) (string, error) {
	t.Helper()
	r, err := h.selector.Select(logintheme.PageID(rc.PageID))()
	if err != nil {
		t.Fatalf("load %q: %v", rc.PageID, err)
	}
	var buf bytes.Buffer
	err = r.Render(&buf, &logintheme.PageProps{
		Context:         rc,
		I18n:            catalog.Localizer(rc.LanguageTag()),
		Template:        h.shell,
		Classes:         styles.NewClasses(true, nil),
		DoUseDefaultCss: true,
	})
	return buf.String(), err
}

func (h *harness) mustRender(t *testing.T, rc *models.RenderContext) string {
	t.Helper()
	out, err := h.render(t, rc)
	if err != nil {
		t.Fatalf("render %q: %v", rc.PageID, err)
	}
	return out
}

func TestEverySupportedPageRenders(t *testing.T) {
	h := newHarness(t)
	for _, id := range h.selector.Pages() {
		rc := loginContext()
		rc.PageID = id.String()
		out := h.mustRender(t, rc)
		if !strings.Contains(out, "<!DOCTYPE html>") {
			t.Errorf("%s: no document in output", id)
		}
	}
}

func TestUnknownPagesUseDefaultRenderer(t *testing.T) {
	h := newHarness(t)
	for _, id := range []string{"info.ftl", "error.ftl", "no-such-page.ftl", ""} {
		out := h.mustRender(t, &models.RenderContext{PageID: id})
		if !strings.Contains(out, `id="kc-info-message"`) {
			t.Errorf("%q: default page not rendered", id)
		}
	}
}

func TestDefaultRendererLinks(t *testing.T) {
	h := newHarness(t)

	rc := &models.RenderContext{PageID: "info.ftl", PageRedirectURI: "https://app.example.com"}
	if out := h.mustRender(t, rc); !strings.Contains(out, `id="kc-back-link" href="https://app.example.com"`) {
		t.Error("missing back to application link")
	}

	rc = &models.RenderContext{PageID: "info.ftl", ActionURI: "/realms/demo/action", SkipLink: true}
	if out := h.mustRender(t, rc); strings.Contains(out, "kc-action-link") {
		t.Error("skipLink must hide the action link")
	}

	rc = &models.RenderContext{PageID: "info.ftl", ActionURI: "/realms/demo/action"}
	if out := h.mustRender(t, rc); !strings.Contains(out, `id="kc-action-link" href="/realms/demo/action"`) {
		t.Error("missing action link")
	}
}

func TestPagesLoadLazily(t *testing.T) {
	h := newHarness(t)
	s := h.selector
	for _, id := range []logintheme.PageID{logintheme.PageLogin, logintheme.PageRegister, "info.ftl"} {
		if s.Loaded(id) {
			t.Fatalf("%s loaded before selection", id)
		}
	}

	load := s.Select(logintheme.PageLogin)
	if s.Loaded(logintheme.PageLogin) {
		t.Fatal("selecting must not load the page")
	}
	if _, err := load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s.Loaded(logintheme.PageLogin) {
		t.Fatal("login not loaded after first use")
	}
	if s.Loaded(logintheme.PageRegister) || s.FieldsLoaded() {
		t.Fatal("login must not load the register page or the field set")
	}

	h.mustRender(t, registerContext())
	if !s.Loaded(logintheme.PageRegister) || !s.FieldsLoaded() {
		t.Fatal("register render must load the page and its field set")
	}
}

func TestWarningSuppressedForAppInitiatedAction(t *testing.T) {
	h := newHarness(t)
	for _, appInitiated := range []bool{true, false} {
		rc := loginContext()
		rc.Message = &models.Message{Type: models.MessageWarning, Summary: "Your password expires soon."}
		rc.IsAppInitiatedAction = appInitiated

		out := h.mustRender(t, rc)
		shown := strings.Contains(out, "alert-warning")
		if shown == appInitiated {
			t.Errorf("isAppInitiatedAction=%v: alert shown=%v", appInitiated, shown)
		}
	}
}

func TestErrorAlertUsesDangerModifier(t *testing.T) {
	h := newHarness(t)
	rc := loginContext()
	rc.Message = &models.Message{Type: models.MessageError, Summary: "Something went wrong."}
	out := h.mustRender(t, rc)
	if !strings.Contains(out, "alert-error") || !strings.Contains(out, "pf-m-danger") {
		t.Fatal("error alert missing its classes")
	}
}

func TestAlertTranslatedForOverrideLocale(t *testing.T) {
	h := newHarness(t)
	tests := []struct {
		locale  string
		summary string
		want    string
	}{
		{"sr", "Invalid username or password.", "Neispravno korisničko ime ili lozinka."},
		{"sr", "Account temporarily disabled.", "Nalog je privremeno onemogućen."},
		{"sr", "Unknown failure.", "Unknown failure."},
		{"en", "Invalid username or password.", "Invalid username or password."},
	}
	for _, tt := range tests {
		rc := &models.RenderContext{
			PageID:  "info.ftl",
			Locale:  &models.Locale{CurrentLanguageTag: tt.locale},
			Message: &models.Message{Type: models.MessageError, Summary: tt.summary},
		}
		if out := h.mustRender(t, rc); !strings.Contains(out, tt.want) {
			t.Errorf("%s %q: want %q in output", tt.locale, tt.summary, tt.want)
		}
	}
}

func TestAlertIsSanitized(t *testing.T) {
	h := newHarness(t)
	rc := &models.RenderContext{
		PageID:  "info.ftl",
		Message: &models.Message{Type: models.MessageInfo, Summary: `Done<script>alert(1)</script>`},
	}
	out := h.mustRender(t, rc)
	if strings.Contains(out, "alert(1)") {
		t.Fatal("script survived sanitization")
	}
}

func TestShellRendersNothingUntilStylesReady(t *testing.T) {
	shell := NewTemplate(styles.NewLoader(styles.Resources(), nil), nil)
	rc := loginContext()
	var buf bytes.Buffer
	err := shell.Render(&buf, &logintheme.ShellProps{
		Context: rc,
		I18n:    catalog.Localizer("en"),
		Classes: styles.NewClasses(true, nil),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("wrote %d bytes before styles were ready", buf.Len())
	}
}

func TestShellStylesheets(t *testing.T) {
	h := newHarness(t)
	out := h.mustRender(t, loginContext())
	for _, want := range []string{
		`href="/resources/common/lib/pficon/pficon.css"`,
		`href="/resources/login/demo/css/login.css"`,
		`href="/resources/css/main.css?v=`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestShellConfirmIdentityHeader(t *testing.T) {
	h := newHarness(t)
	rc := loginContext()
	rc.Auth = &models.Auth{ShowUsername: true, AttemptedUsername: "jdoe"}
	out := h.mustRender(t, rc)
	if !strings.Contains(out, `<label id="kc-attempted-username">jdoe</label>`) {
		t.Fatal("missing attempted username")
	}
	if strings.Contains(out, "headerTitle") {
		t.Fatal("page header rendered alongside confirm identity block")
	}

	rc.Auth.ShowResetCredentials = true
	out = h.mustRender(t, rc)
	if strings.Contains(out, "kc-attempted-username") || !strings.Contains(out, "Good to see you") {
		t.Fatal("reset credentials must show the page header")
	}
}

func TestShellTitleAndLanguages(t *testing.T) {
	h := newHarness(t)
	rc := loginContext()
	rc.Realm.InternationalizationEnabled = true
	rc.Locale.CurrentLanguageTag = "sr"
	out := h.mustRender(t, rc)
	if !strings.Contains(out, "<title>") || !strings.Contains(out, "Demo</title>") {
		t.Fatal("title not parameterized by realm display name")
	}
	if !strings.Contains(out, `<a href="/locale/sr" aria-current="true">`) {
		t.Fatal("current language not marked in switcher")
	}
}

func TestTryAnotherWay(t *testing.T) {
	h := newHarness(t)
	rc := loginContext()
	rc.Auth.ShowTryAnotherWayLink = true
	out := h.mustRender(t, rc)
	if !strings.Contains(out, `<input type="hidden" name="tryAnotherWay" value="on">`) {
		t.Fatal("missing try another way form")
	}
}

func TestLoginUsernameHidden(t *testing.T) {
	h := newHarness(t)

	rc := loginContext()
	out := h.mustRender(t, rc)
	if !strings.Contains(out, `name="username" value="jdoe"`) {
		t.Fatal("username input missing its server value")
	}
	if !strings.Contains(out, `name="rememberMe"`) {
		t.Fatal("remember me missing")
	}

	rc.UsernameHidden = true
	out = h.mustRender(t, rc)
	if strings.Contains(out, `name="username"`) {
		t.Fatal("username input rendered while hidden")
	}
	if strings.Contains(out, `name="rememberMe"`) {
		t.Fatal("remember me rendered while username hidden")
	}
	if !strings.Contains(out, `name="password"`) {
		t.Fatal("password input missing")
	}
}

func TestLoginFieldErrorReplacesAlert(t *testing.T) {
	h := newHarness(t)
	rc := loginContext()
	rc.Locale.CurrentLanguageTag = "sr"
	rc.Message = &models.Message{Type: models.MessageError, Summary: "Invalid username or password."}
	rc.MessagesPerField = models.MessagesPerField{
		"username": {{Type: models.MessageError, Summary: "Invalid username or password."}},
	}
	out := h.mustRender(t, rc)
	if strings.Contains(out, "alert-error") {
		t.Fatal("alert rendered while a field error is shown")
	}
	if !strings.Contains(out, `id="input-error"`) || !strings.Contains(out, "Neispravno korisničko ime ili lozinka.") {
		t.Fatal("translated field error missing")
	}
}

func TestLoginFlagsAndCredential(t *testing.T) {
	h := newHarness(t)
	rc := loginContext()
	rc.Realm.RememberMe = false
	rc.Realm.ResetPasswordAllowed = false
	rc.RegistrationDisabled = true
	rc.Auth.SelectedCredential = "cred-1"
	out := h.mustRender(t, rc)
	for _, absent := range []string{`name="rememberMe"`, "forgot-password-link", "kc-registration"} {
		if strings.Contains(out, absent) {
			t.Errorf("%s rendered although disabled", absent)
		}
	}
	if !strings.Contains(out, `name="credentialId" value="cred-1"`) {
		t.Error("selected credential not carried")
	}
}

func TestLoginRequiresAuth(t *testing.T) {
	h := newHarness(t)
	rc := loginContext()
	rc.Auth = nil
	if _, err := h.render(t, rc); !errors.Is(err, errors.ErrMalformedContext) {
		t.Fatalf("err = %v, want malformed context", err)
	}
}

func TestLoginWebAuthnForms(t *testing.T) {
	h := newHarness(t)
	rc := loginContext()
	rc.EnableWebAuthnConditionalUI = true
	rc.Authenticators = &models.Authenticators{Authenticators: []models.Authenticator{
		{CredentialID: "abc"}, {CredentialID: "def"},
	}}
	out := h.mustRender(t, rc)
	for _, name := range []string{"clientDataJSON", "authenticatorData", "signature", "credentialId", "userHandle", "error"} {
		if !strings.Contains(out, `name="`+name+`"`) {
			t.Errorf("missing assertion field %s", name)
		}
	}
	if strings.Count(out, `name="authn_use_chk"`) != 2 {
		t.Error("expected one selector input per authenticator")
	}
	if !strings.Contains(out, `id="authenticateWebAuthnButton"`) {
		t.Error("missing passkey button")
	}
}

func TestSocialProvidersGrid(t *testing.T) {
	h := newHarness(t)
	for count := 0; count <= 5; count++ {
		rc := loginContext()
		rc.Social = &models.Social{}
		for i := 0; i < count; i++ {
			rc.Social.Providers = append(rc.Social.Providers, models.Provider{
				Alias:       "idp" + string(rune('a'+i)),
				DisplayName: "IdP",
				LoginURL:    "/broker/idp/login",
			})
		}
		out := h.mustRender(t, rc)
		if got := strings.Contains(out, `id="kc-social-providers"`); got != (count > 0) {
			t.Errorf("count=%d: section rendered=%v", count, got)
		}
		if got := strings.Contains(out, "kc-social-grid"); got != (count > 3) {
			t.Errorf("count=%d: grid=%v", count, got)
		}
	}
}

func TestSocialProvidersNeedPasswordRealm(t *testing.T) {
	h := newHarness(t)
	rc := loginContext()
	rc.Realm.Password = false
	rc.Social = &models.Social{Providers: []models.Provider{{Alias: "github", DisplayName: "GitHub"}}}
	if out := h.mustRender(t, rc); strings.Contains(out, "kc-social-providers") {
		t.Fatal("social providers rendered without password login")
	}
}

var disabledSubmit = regexp.MustCompile(`<input id="kc-register-submit"[^>]* disabled>`)

func TestSubmitDisabled(t *testing.T) {
	tests := []struct {
		submittable, termsRequired, accepted bool
		want                                 bool
	}{
		{true, false, false, false},
		{true, true, false, true},
		{true, true, true, false},
		{false, false, false, true},
		{false, true, true, true},
	}
	for _, tt := range tests {
		if got := SubmitDisabled(tt.submittable, tt.termsRequired, tt.accepted); got != tt.want {
			t.Errorf("SubmitDisabled(%v, %v, %v) = %v", tt.submittable, tt.termsRequired, tt.accepted, got)
		}
	}
}

func TestRegisterTermsGateSubmit(t *testing.T) {
	h := newHarness(t)

	rc := registerContext()
	rc.Profile = filledProfile()
	rc.PasswordRequired = boolPtr(false)
	if out := h.mustRender(t, rc); disabledSubmit.MatchString(out) {
		t.Fatal("submittable form without terms must be enabled")
	}

	rc.TermsAcceptanceRequired = true
	out := h.mustRender(t, rc)
	if !disabledSubmit.MatchString(out) {
		t.Fatal("submit enabled while terms are not accepted")
	}
	if !strings.Contains(out, `name="termsAccepted"`) {
		t.Fatal("terms checkbox missing")
	}
}

func TestRegisterTermsError(t *testing.T) {
	h := newHarness(t)
	rc := registerContext()
	rc.Locale.CurrentLanguageTag = "sr"
	rc.TermsAcceptanceRequired = true
	rc.MessagesPerField = models.MessagesPerField{
		"termsAccepted": {{Type: models.MessageError, Summary: "Please specify this field."}},
	}
	out := h.mustRender(t, rc)
	if !strings.Contains(out, `id="input-error-terms-accepted"`) || !strings.Contains(out, "Molimo unesite ovo polje.") {
		t.Fatal("translated terms error missing")
	}
}

func TestRegisterFieldSet(t *testing.T) {
	h := newHarness(t)
	rc := registerContext()
	rc.MessagesPerField = models.MessagesPerField{
		"email": {{Type: models.MessageError, Summary: "Invalid email address."}},
	}
	out := h.mustRender(t, rc)
	for _, name := range []string{"username", "email", "firstName", "lastName", "password", "password-confirm"} {
		if !strings.Contains(out, `name="`+name+`"`) {
			t.Errorf("missing input %s", name)
		}
	}
	if !strings.Contains(out, `id="input-error-email"`) {
		t.Error("missing email error")
	}
	if !disabledSubmit.MatchString(out) {
		t.Error("empty password must keep submit disabled")
	}
}

func TestRegisterHeaderAndGlobalMessage(t *testing.T) {
	h := newHarness(t)
	rc := registerContext()
	rc.MessageHeader = strPtr("${termsTitle}")
	rc.Message = &models.Message{Type: models.MessageError, Summary: "Username already exists."}
	out := h.mustRender(t, rc)
	if !strings.Contains(out, "Terms and Conditions") || strings.Contains(out, "headerTitle") {
		t.Fatal("explicit message header not used")
	}
	if strings.Contains(out, "alert-error") {
		t.Fatal("alert shown without a global field message")
	}

	rc.MessagesPerField = models.MessagesPerField{
		models.GlobalField: {{Type: models.MessageError, Summary: "Username already exists."}},
	}
	if out := h.mustRender(t, rc); !strings.Contains(out, "alert-error") {
		t.Fatal("global field message must show the alert")
	}
}

func TestRegisterRecaptcha(t *testing.T) {
	h := newHarness(t)

	rc := registerContext()
	rc.RecaptchaRequired = true
	rc.RecaptchaSiteKey = "site-key"
	rc.RecaptchaAction = strPtr("register")
	out := h.mustRender(t, rc)
	if !strings.Contains(out, `data-callback="onSubmitRecaptcha"`) || strings.Contains(out, `data-size="compact"`) {
		t.Fatal("invisible challenge must drive the submit button")
	}

	rc.RecaptchaVisible = true
	out = h.mustRender(t, rc)
	if !strings.Contains(out, `data-size="compact" data-sitekey="site-key"`) || strings.Contains(out, "data-callback") {
		t.Fatal("visible challenge must render the widget")
	}
}

func TestRecaptchaCallbackReleased(t *testing.T) {
	callbacks := NewCallbacks()
	shell := NewTemplate(readyLoader(t), nil)
	fields := newLazy(NewFieldSet)

	var activeDuringRender bool
	r, err := NewRegister(func() (*FieldSet, error) {
		activeDuringRender = callbacks.Active(RecaptchaCallback)
		return fields.Get()
	}, callbacks)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	rc := registerContext()
	var buf bytes.Buffer
	err = r.Render(&buf, &logintheme.PageProps{
		Context:  rc,
		I18n:     catalog.Localizer("en"),
		Template: shell,
		Classes:  styles.NewClasses(true, nil),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !activeDuringRender {
		t.Fatal("callback not registered during render")
	}
	if callbacks.Active(RecaptchaCallback) {
		t.Fatal("callback still registered after render")
	}
}

func TestRecaptchaCallbackReleasedOnError(t *testing.T) {
	callbacks := NewCallbacks()
	r, err := NewRegister(func() (*FieldSet, error) {
		return nil, errors.New("broken field set")
	}, callbacks)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	err = r.Render(&bytes.Buffer{}, &logintheme.PageProps{
		Context: registerContext(),
		I18n:    catalog.Localizer("en"),
		Classes: styles.NewClasses(true, nil),
	})
	if err == nil {
		t.Fatal("expected field set error")
	}
	if names := callbacks.Names(); len(names) != 0 {
		t.Fatalf("callbacks left registered: %v", names)
	}
}

func TestCallbacksCountConcurrentRenders(t *testing.T) {
	c := NewCallbacks()
	first := c.Register(RecaptchaCallback)
	second := c.Register(RecaptchaCallback)
	first()
	first()
	if !c.Active(RecaptchaCallback) {
		t.Fatal("released too early")
	}
	second()
	if c.Active(RecaptchaCallback) {
		t.Fatal("still active after every release")
	}
}
