package i18n

// OverrideLanguage the only locale the literal error overrides apply to
const OverrideLanguage = "sr"

// Scope selects which override table applies
type Scope int

// override scopes; each page keeps its own table
const (
	ScopeTemplate Scope = iota
	ScopeLogin
	ScopeRegister
)

func (s Scope) String() string {
	switch s {
	case ScopeTemplate:
		return "template"
	case ScopeLogin:
		return "login"
	case ScopeRegister:
		return "register"
	}
	return "unknown"
}

const (
	srInvalidCredentials = "Neispravno korisničko ime ili lozinka."
	srInvalidEmail       = "Neispravna email adresa."
)

// The identity server sends these English literals without a message key,
// so they cannot go through the catalog.
var overrides = map[Scope]map[string]string{
	ScopeTemplate: {
		"Invalid username or password.":                    srInvalidCredentials,
		"Invalid username or password":                     srInvalidCredentials,
		"Invalid email address.":                           srInvalidEmail,
		"Invalid email address":                            srInvalidEmail,
		"Account is disabled, contact your administrator.": "Nalog je onemogućen, kontaktirajte administratora.",
		"Account is disabled, contact your administrator":  "Nalog je onemogućen, kontaktirajte administratora.",
		"Account temporarily disabled.":                    "Nalog je privremeno onemogućen.",
		"Account temporarily disabled":                     "Nalog je privremeno onemogućen.",
	},
	ScopeLogin: {
		"Invalid username or password.": srInvalidCredentials,
		"Invalid username or password":  srInvalidCredentials,
		"Invalid email address.":        srInvalidEmail,
		"Invalid email address":         srInvalidEmail,
	},
	ScopeRegister: {
		"Invalid username or password.":     srInvalidCredentials,
		"Invalid username or password":      srInvalidCredentials,
		"Invalid email address.":            srInvalidEmail,
		"Invalid email address":             srInvalidEmail,
		"Please specify this field.":        "Molimo unesite ovo polje.",
		"Please specify username or email.": "Molimo unesite korisničko ime ili email.",
		"Please specify password.":          "Molimo unesite lozinku.",
		"Please specify first name.":        "Molimo unesite ime.",
		"Please specify last name.":         "Molimo unesite prezime.",
	},
}

// Translate maps a known English literal to its Serbian text when locale is "sr".
// For every other locale, and for unknown literals, text is returned unchanged.
func Translate(scope Scope, locale, text string) string {
	if locale != OverrideLanguage || text == "" {
		return text
	}
	if translated, ok := overrides[scope][text]; ok {
		return translated
	}
	return text
}
