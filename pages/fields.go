package pages

import (
	"html/template"

	"github.com/gofiber/template/html/v2"

	"github.com/oarkflow/logintheme/i18n"
	"github.com/oarkflow/logintheme/models"
	"github.com/oarkflow/logintheme/styles"
	"github.com/oarkflow/logintheme/utils"
)

type (
	fieldSetView struct {
		C      *styles.Classes
		Toggle toggleView
		Fields []fieldView
	}

	fieldView struct {
		Name         string
		Label        template.HTML
		Type         string
		Value        string
		AutoComplete string
		Placeholder  string
		Required     bool
		ReadOnly     bool
		Password     bool
		Error        bool
		ErrorText    template.HTML
	}
)

// FieldSetProps input of the user profile field set
type FieldSetProps struct {
	Context *models.RenderContext
	I18n    *i18n.Localizer
	Classes *styles.Classes

	// DoMakeUserConfirmPassword adds a password confirmation input after the password
	DoMakeUserConfirmPassword bool
	// WithoutPassword leaves the password inputs out, for forms that only edit the profile
	WithoutPassword bool
}

// FieldSet renders the user profile attributes as form inputs
type FieldSet struct {
	engine *html.Engine
}

// NewFieldSet parse the field set views
func NewFieldSet() (*FieldSet, error) {
	engine, err := loadEngine("fields")
	if err != nil {
		return nil, err
	}
	return &FieldSet{engine: engine}, nil
}

// Render the inputs, and whether the form could be submitted as rendered
func (f *FieldSet) Render(p FieldSetProps) (template.HTML, bool, error) {
	rc := p.Context
	attributes := profileAttributes(rc)

	view := fieldSetView{
		C:      p.Classes,
		Toggle: passwordToggle(p.I18n, p.Classes),
		Fields: make([]fieldView, 0, len(attributes)+2),
	}
	submittable := true
	passwords := !p.WithoutPassword && rc.IsPasswordRequired()
	for _, attr := range attributes {
		field := f.field(p, attr.Name, attr.DisplayName)
		field.Type = attr.InputType()
		field.Value = attr.Value
		field.AutoComplete = attr.AutoComplete
		field.Placeholder = p.I18n.AdvancedMsgStr(attr.Annotations["inputTypePlaceholder"])
		field.Required = attr.Required
		field.ReadOnly = attr.ReadOnly
		if field.Required && field.Value == "" {
			submittable = false
		}
		view.Fields = append(view.Fields, field)

		if passwords && attr.Name == passwordAnchor(rc) {
			view.Fields = f.appendPasswords(p, view.Fields)
			passwords = false
		}
	}
	if passwords {
		view.Fields = f.appendPasswords(p, view.Fields)
	}
	for _, field := range view.Fields {
		// password inputs always start empty
		if field.Error || field.Password {
			submittable = false
		}
	}

	out, err := fragment(f.engine, "fields", view)
	if err != nil {
		return "", false, err
	}
	return out, submittable, nil
}

func (f *FieldSet) field(p FieldSetProps, name, label string) fieldView {
	if label == "" {
		label = "${" + name + "}"
	}
	field := fieldView{
		Name:  name,
		Label: p.I18n.AdvancedMsg(label),
	}
	if mpf := p.Context.MessagesPerField; mpf.ExistsError(name) {
		field.Error = true
		field.ErrorText = utils.Sanitize(p.I18n.TranslateError(i18n.ScopeRegister, mpf.Get(name)))
	}
	return field
}

func (f *FieldSet) appendPasswords(p FieldSetProps, fields []fieldView) []fieldView {
	fields = append(fields, f.passwordField(p, "password", "${password}"))
	if p.DoMakeUserConfirmPassword {
		fields = append(fields, f.passwordField(p, "password-confirm", "${passwordConfirm}"))
	}
	return fields
}

func (f *FieldSet) passwordField(p FieldSetProps, name, label string) fieldView {
	field := f.field(p, name, label)
	field.Password = true
	field.Required = true
	return field
}

// passwordAnchor the attribute the password inputs follow
func passwordAnchor(rc *models.RenderContext) string {
	if rc.Realm != nil && rc.Realm.RegistrationEmailAsUsername {
		return "email"
	}
	return "username"
}

// profileAttributes the declared profile, or the stock registration attributes
func profileAttributes(rc *models.RenderContext) []models.Attribute {
	if rc.Profile != nil && len(rc.Profile.Attributes) > 0 {
		return rc.Profile.Attributes
	}
	attrs := make([]models.Attribute, 0, 4)
	if rc.Realm == nil || !rc.Realm.RegistrationEmailAsUsername {
		attrs = append(attrs, models.Attribute{
			Name:         "username",
			DisplayName:  "${username}",
			Value:        rc.Login.Username,
			Required:     true,
			AutoComplete: "username",
		})
	}
	return append(attrs,
		models.Attribute{Name: "email", DisplayName: "${email}", Required: true, AutoComplete: "email"},
		models.Attribute{Name: "firstName", DisplayName: "${firstName}", Required: true, AutoComplete: "given-name"},
		models.Attribute{Name: "lastName", DisplayName: "${lastName}", Required: true, AutoComplete: "family-name"},
	)
}
