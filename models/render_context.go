package models

// MessageType severity of a message shown to the user
type MessageType string

// message types
const (
	MessageSuccess MessageType = "success"
	MessageWarning MessageType = "warning"
	MessageError   MessageType = "error"
	MessageInfo    MessageType = "info"
)

func (mt MessageType) String() string {
	return string(mt)
}

// RenderContext the context the identity server supplies for one page render
type RenderContext struct {
	PageID                      string           `json:"pageId"`
	Realm                       *Realm           `json:"realm,omitempty"`
	URL                         *URL             `json:"url,omitempty"`
	Message                     *Message         `json:"message,omitempty"`
	MessagesPerField            MessagesPerField `json:"messagesPerField,omitempty"`
	Auth                        *Auth            `json:"auth,omitempty"`
	Social                      *Social          `json:"social,omitempty"`
	Authenticators              *Authenticators  `json:"authenticators,omitempty"`
	Locale                      *Locale          `json:"locale,omitempty"`
	Client                      *Client          `json:"client,omitempty"`
	Login                       Login            `json:"login"`
	Profile                     *Profile         `json:"profile,omitempty"`
	IsAppInitiatedAction        bool             `json:"isAppInitiatedAction,omitempty"`
	UsernameHidden              bool             `json:"usernameHidden,omitempty"`
	RegistrationDisabled        bool             `json:"registrationDisabled,omitempty"`
	EnableWebAuthnConditionalUI bool             `json:"enableWebAuthnConditionalUI,omitempty"`
	MessageHeader               *string          `json:"messageHeader,omitempty"`
	RecaptchaRequired           bool             `json:"recaptchaRequired,omitempty"`
	RecaptchaVisible            bool             `json:"recaptchaVisible,omitempty"`
	RecaptchaSiteKey            string           `json:"recaptchaSiteKey,omitempty"`
	RecaptchaAction             *string          `json:"recaptchaAction,omitempty"`
	TermsAcceptanceRequired     bool             `json:"termsAcceptanceRequired,omitempty"`
	PasswordRequired            *bool            `json:"passwordRequired,omitempty"`
	PageRedirectURI             string           `json:"pageRedirectUri,omitempty"`
	ActionURI                   string           `json:"actionUri,omitempty"`
	SkipLink                    bool             `json:"skipLink,omitempty"`
}

// Realm display name and feature flags of the tenant
type Realm struct {
	Name                        string `json:"name"`
	DisplayName                 string `json:"displayName"`
	Password                    bool   `json:"password"`
	RegistrationAllowed         bool   `json:"registrationAllowed"`
	ResetPasswordAllowed        bool   `json:"resetPasswordAllowed"`
	RememberMe                  bool   `json:"rememberMe"`
	LoginWithEmailAllowed       bool   `json:"loginWithEmailAllowed"`
	RegistrationEmailAsUsername bool   `json:"registrationEmailAsUsername"`
	InternationalizationEnabled bool   `json:"internationalizationEnabled"`
}

// URL action and link targets controlled by the identity server
type URL struct {
	LoginAction              string `json:"loginAction"`
	RegistrationAction       string `json:"registrationAction"`
	RegistrationURL          string `json:"registrationUrl"`
	LoginURL                 string `json:"loginUrl"`
	LoginRestartFlowURL      string `json:"loginRestartFlowUrl"`
	LoginResetCredentialsURL string `json:"loginResetCredentialsUrl"`
	ResourcesPath            string `json:"resourcesPath"`
	ResourcesCommonPath      string `json:"resourcesCommonPath"`
}

// Message the page level message
type Message struct {
	Type    MessageType `json:"type"`
	Summary string      `json:"summary"`
}

// Auth state of the running authentication flow
type Auth struct {
	AttemptedUsername     string `json:"attemptedUsername"`
	SelectedCredential    string `json:"selectedCredential"`
	ShowUsername          bool   `json:"showUsername"`
	ShowResetCredentials  bool   `json:"showResetCredentials"`
	ShowTryAnotherWayLink bool   `json:"showTryAnotherWayLink"`
}

// Social identity providers offered for brokered login
type Social struct {
	Providers []Provider `json:"providers"`
}

// Provider one brokered identity provider
type Provider struct {
	Alias       string `json:"alias"`
	ProviderID  string `json:"providerId,omitempty"`
	DisplayName string `json:"displayName"`
	LoginURL    string `json:"loginUrl"`
	IconClasses string `json:"iconClasses,omitempty"`
}

// Authenticators known WebAuthn credentials of the user
type Authenticators struct {
	Authenticators []Authenticator `json:"authenticators"`
}

// Authenticator descriptor of one WebAuthn credential
type Authenticator struct {
	CredentialID string   `json:"credentialId"`
	Label        string   `json:"label,omitempty"`
	Transports   []string `json:"transports,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
}

// Locale locale declared by the identity server
type Locale struct {
	CurrentLanguageTag string     `json:"currentLanguageTag"`
	Supported          []Language `json:"supported,omitempty"`
}

// Language an entry of the locale switcher
type Language struct {
	LanguageTag string `json:"languageTag"`
	Label       string `json:"label"`
	URL         string `json:"url,omitempty"`
}

// Client the relying party the flow was started for
type Client struct {
	ClientID string `json:"clientId"`
	Name     string `json:"name,omitempty"`
	BaseURL  string `json:"baseUrl,omitempty"`
}

// Login values submitted with the previous login attempt
type Login struct {
	Username   string `json:"username,omitempty"`
	RememberMe string `json:"rememberMe,omitempty"`
}

// Profile user profile attributes rendered by the registration field set
type Profile struct {
	Attributes []Attribute `json:"attributes"`
}

// Attribute one user profile attribute
type Attribute struct {
	Name         string            `json:"name"`
	DisplayName  string            `json:"displayName,omitempty"`
	Value        string            `json:"value,omitempty"`
	Required     bool              `json:"required,omitempty"`
	ReadOnly     bool              `json:"readOnly,omitempty"`
	AutoComplete string            `json:"autocomplete,omitempty"`
	Annotations  map[string]string `json:"annotations,omitempty"`
}

// InputType the html input type requested by the attribute annotations
func (a Attribute) InputType() string {
	if t := a.Annotations["inputType"]; t != "" {
		return t
	}
	if a.Name == "email" {
		return "email"
	}
	return "text"
}

// IsPasswordRequired reports whether the registration form asks for a password
func (rc *RenderContext) IsPasswordRequired() bool {
	if rc.PasswordRequired == nil {
		return true
	}
	return *rc.PasswordRequired
}

// LanguageTag current language tag, empty when the server declared none
func (rc *RenderContext) LanguageTag() string {
	if rc.Locale == nil {
		return ""
	}
	return rc.Locale.CurrentLanguageTag
}

// Clone returns a shallow copy whose Locale can be replaced without touching rc
func (rc *RenderContext) Clone() *RenderContext {
	cp := *rc
	if rc.Locale != nil {
		locale := *rc.Locale
		cp.Locale = &locale
	}
	return &cp
}
