package i18n

import (
	"strings"
	"testing"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(nil)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func TestMatchFallsBackToEnglish(t *testing.T) {
	c := newTestCatalog(t)
	cases := map[string]string{
		"":        "en",
		"en":      "en",
		"en-US":   "en",
		"sr":      "sr",
		"sr-RS":   "sr",
		"de":      "en",
		"!!":      "en",
	}
	for in, want := range cases {
		if got := c.Match(in); got != want {
			t.Errorf("Match(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMsgStrPerLocale(t *testing.T) {
	c := newTestCatalog(t)
	if got := c.Localizer("en").MsgStr("rememberMe"); got != "Remember me" {
		t.Fatalf("en rememberMe = %q", got)
	}
	if got := c.Localizer("sr").MsgStr("rememberMe"); got != "Zapamti me" {
		t.Fatalf("sr rememberMe = %q", got)
	}
	if got := c.Localizer("en").MsgStr("loginTitle", "Acme"); got != "Sign in to Acme" {
		t.Fatalf("loginTitle = %q", got)
	}
	if got := c.Localizer("en").MsgStr("noSuchKey"); got != "noSuchKey" {
		t.Fatalf("unknown key = %q", got)
	}
}

func TestMsgSanitizesArguments(t *testing.T) {
	c := newTestCatalog(t)
	got := string(c.Localizer("en").Msg("loginTitle", `<script>x()</script>Acme`))
	if strings.Contains(got, "<script>") {
		t.Fatalf("unsanitized output %q", got)
	}
}

func TestAdvancedMsg(t *testing.T) {
	l := newTestCatalog(t).Localizer("sr")
	if got := l.AdvancedMsgStr("${registerTitle}"); got != "Registracija" {
		t.Fatalf("reference = %q", got)
	}
	if got := l.AdvancedMsgStr("Create your profile"); got != "Create your profile" {
		t.Fatalf("literal = %q", got)
	}
}

func TestTranslateOnlyForSerbian(t *testing.T) {
	const literal = "Invalid username or password."
	if got := Translate(ScopeTemplate, "sr", literal); got != "Neispravno korisničko ime ili lozinka." {
		t.Fatalf("sr = %q", got)
	}
	if got := Translate(ScopeTemplate, "sr", "Something else."); got != "Something else." {
		t.Fatalf("passthrough = %q", got)
	}
	for _, locale := range []string{"en", "", "de", "sr-Latn"} {
		for _, scope := range []Scope{ScopeTemplate, ScopeLogin, ScopeRegister} {
			if got := Translate(scope, locale, literal); got != literal {
				t.Fatalf("locale %q scope %v translated to %q", locale, scope, got)
			}
		}
	}
}

func TestScopesKeepTheirOwnTables(t *testing.T) {
	const specify = "Please specify password."
	if got := Translate(ScopeRegister, "sr", specify); got != "Molimo unesite lozinku." {
		t.Fatalf("register = %q", got)
	}
	if got := Translate(ScopeLogin, "sr", specify); got != specify {
		t.Fatalf("login must not know register literals, got %q", got)
	}
	const disabled = "Account temporarily disabled."
	if got := Translate(ScopeTemplate, "sr", disabled); got == disabled {
		t.Fatal("template scope must translate account literals")
	}
	if got := Translate(ScopeLogin, "sr", disabled); got != disabled {
		t.Fatalf("login scope translated %q", got)
	}
}

func TestLocalizerTranslateErrorUsesResolvedTag(t *testing.T) {
	l := newTestCatalog(t).Localizer("sr-RS")
	if got := l.TranslateError(ScopeLogin, "Invalid email address"); got != "Neispravna email adresa." {
		t.Fatalf("got %q", got)
	}
}
