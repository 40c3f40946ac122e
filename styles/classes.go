package styles

import "strings"

// defaultClasses the stock identity server login theme classes per style role
var defaultClasses = map[string]string{
	"kcHtmlClass":                         "login-pf",
	"kcBodyClass":                         "",
	"kcLoginClass":                        "login-pf-page",
	"kcFormCardClass":                     "card-pf",
	"kcFormHeaderClass":                   "login-pf-header",
	"kcFormGroupClass":                    "form-group",
	"kcFormClass":                         "form-horizontal",
	"kcInputClass":                        "pf-c-form-control",
	"kcInputGroup":                        "pf-c-input-group",
	"kcInputWrapperClass":                 "col-xs-12 col-sm-12 col-md-12 col-lg-12",
	"kcInputErrorMessageClass":            "pf-c-form__helper-text pf-m-error required kc-feedback-text",
	"kcLabelClass":                        "pf-c-form__label pf-c-form__label-text",
	"kcLabelWrapperClass":                 "col-xs-12 col-sm-12 col-md-12 col-lg-12",
	"kcCheckboxInputClass":                "pf-c-check__input",
	"kcAlertClass":                        "pf-c-alert pf-m-inline",
	"kcAlertTitleClass":                   "pf-c-alert__title kc-feedback-text",
	"kcFeedbackSuccessIcon":               "fa fa-fw fa-check-circle",
	"kcFeedbackWarningIcon":               "fa fa-fw fa-exclamation-triangle",
	"kcFeedbackErrorIcon":                 "fa fa-fw fa-exclamation-circle",
	"kcFeedbackInfoIcon":                  "fa fa-fw fa-info-circle",
	"kcResetFlowIcon":                     "pficon pficon-arrow fa",
	"kcSignUpClass":                       "login-pf-signup",
	"kcInfoAreaWrapperClass":              "",
	"kcFormSocialAccountSectionClass":     "",
	"kcFormSocialAccountListClass":        "pf-c-login__main-footer-links kc-social-links",
	"kcFormSocialAccountListGridClass":    "pf-l-grid kc-social-grid",
	"kcCommonLogoIdP":                     "kc-social-provider-logo kc-social-gray",
	"kcButtonClass":                       "pf-c-button",
	"kcButtonPrimaryClass":                "pf-m-primary",
	"kcButtonDefaultClass":                "btn-default",
	"kcButtonBlockClass":                  "pf-m-block",
	"kcButtonLargeClass":                  "btn-lg",
	"kcFormPasswordVisibilityButtonClass": "pf-c-button pf-m-control",
	"kcFormPasswordVisibilityIconShow":    "fa fa-eye",
	"kcFormPasswordVisibilityIconHide":    "fa fa-eye-slash",
	"kcFormOptionsClass":                  "col-xs-12 col-sm-12 col-md-12 col-lg-12",
	"kcFormOptionsWrapperClass":           "",
	"kcFormButtonsClass":                  "col-xs-12 col-sm-12 col-md-12 col-lg-12",
	"kcContentWrapperClass":               "row",
}

// Classes maps logical style roles to class names
type Classes struct {
	useDefault bool
	overrides  map[string]string
}

// NewClasses overrides are appended to the defaults, or used alone when useDefault is false
func NewClasses(useDefault bool, overrides map[string]string) *Classes {
	cp := make(map[string]string, len(overrides))
	for k, v := range overrides {
		cp[k] = v
	}
	return &Classes{useDefault: useDefault, overrides: cp}
}

// UseDefault reports whether the stock classes are applied
func (c *Classes) UseDefault() bool {
	return c.useDefault
}

// Clsx joins the classes of every role, skipping empty keys and roles without classes
func (c *Classes) Clsx(keys ...string) string {
	parts := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		if key == "" {
			continue
		}
		if c.useDefault {
			if v := defaultClasses[key]; v != "" {
				parts = append(parts, v)
			}
		}
		if v := c.overrides[key]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// Join concatenates class names, dropping empty ones
func Join(names ...string) string {
	parts := names[:0:0]
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, " ")
}
