package pages

import (
	"html/template"
	"io"
	"path"

	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/i18n"
	"github.com/oarkflow/logintheme/models"
	"github.com/oarkflow/logintheme/styles"
	"github.com/oarkflow/logintheme/utils"
)

// stock stylesheets the identity server serves below resourcesCommonPath and resourcesPath
var (
	defaultCommonStylesheets = []string{
		"node_modules/@patternfly/patternfly/patternfly.min.css",
		"node_modules/patternfly/dist/css/patternfly.min.css",
		"node_modules/patternfly/dist/css/patternfly-additions.min.css",
		"lib/pficon/pficon.css",
	}
	defaultThemeStylesheets = []string{
		"css/login.css",
	}
)

type headerPair struct {
	title       string
	description string
}

var headerPairs = map[logintheme.PageID]headerPair{
	logintheme.PageLogin:    {title: "loginHeaderTitle", description: "loginHeaderDescription"},
	logintheme.PageRegister: {title: "registerHeaderTitle", description: "registerHeaderDescription"},
}

var alertIcons = map[models.MessageType]string{
	models.MessageSuccess: "kcFeedbackSuccessIcon",
	models.MessageWarning: "kcFeedbackWarningIcon",
	models.MessageError:   "kcFeedbackErrorIcon",
	models.MessageInfo:    "kcFeedbackInfoIcon",
}

type (
	shellView struct {
		C                  *styles.Classes
		Lang               string
		Title              string
		HTMLClass          string
		BodyClass          string
		Stylesheets        []string
		Languages          []languageView
		Header             headerView
		Alert              *alertView
		RequiredFields     bool
		RequiredFieldsText template.HTML
		Content            template.HTML
		DisplayInfo        bool
		Info               template.HTML
		TryAnotherWay      *tryAnotherWayView
		Social             template.HTML
	}

	languageView struct {
		URL     string
		Label   string
		Current bool
	}

	headerView struct {
		ConfirmIdentity   bool
		AttemptedUsername string
		RestartURL        string
		RestartTooltip    string
		Title             template.HTML
		Description       template.HTML
		Node              template.HTML
	}

	alertView struct {
		Class      string
		IconClass  string
		TitleClass string
		Summary    template.HTML
	}

	tryAnotherWayView struct {
		Action string
		Label  template.HTML
	}
)

// Template the shared shell around every page
type Template struct {
	engine *html.Engine
	styles *styles.Loader
	log    *zap.Logger

	// ResourcesBase path the theme's own stylesheets are served under
	ResourcesBase string
	// LocalePath prefix of the language switcher links; empty disables the switcher
	LocalePath string
}

// NewTemplate create the shell; it renders nothing until loader is ready
func NewTemplate(loader *styles.Loader, log *zap.Logger) *Template {
	if log == nil {
		log = zap.NewNop()
	}
	return &Template{
		engine:        newEngine("shell"),
		styles:        loader,
		log:           log,
		ResourcesBase: "/resources",
		LocalePath:    "/locale/",
	}
}

// Render writes the document around p.Content, or nothing while the stylesheets load
func (t *Template) Render(w io.Writer, p *logintheme.ShellProps) error {
	if !t.styles.Ready() {
		return nil
	}

	rc := p.Context
	url := rc.URL
	if url == nil {
		url = &models.URL{}
	}

	view := shellView{
		C:              p.Classes,
		Lang:           p.I18n.LanguageTag(),
		Title:          p.DocumentTitle,
		HTMLClass:      p.Classes.Clsx("kcHtmlClass"),
		BodyClass:      p.BodyClassName,
		Stylesheets:    t.stylesheets(p.Classes.UseDefault(), url),
		Languages:      t.languages(rc, p.I18n),
		Header:         t.header(p, url),
		Alert:          t.alert(p),
		RequiredFields: p.DisplayRequiredFields,
		Content:        p.Content,
		DisplayInfo:    p.DisplayInfo,
		Info:           p.InfoNode,
		Social:         p.SocialProvidersNode,
	}
	if view.Title == "" {
		view.Title = p.I18n.MsgStr("loginTitle", realmDisplayName(rc))
	}
	if view.BodyClass == "" {
		view.BodyClass = p.Classes.Clsx("kcBodyClass")
	}
	if p.DisplayRequiredFields {
		view.RequiredFieldsText = p.I18n.Msg("requiredFields")
	}
	if rc.Auth != nil && rc.Auth.ShowTryAnotherWayLink {
		view.TryAnotherWay = &tryAnotherWayView{
			Action: url.LoginAction,
			Label:  p.I18n.Msg("doTryAnotherWay"),
		}
	}

	return t.engine.Render(w, "template", view)
}

func (t *Template) header(p *logintheme.ShellProps, url *models.URL) headerView {
	auth := p.Context.Auth
	if auth != nil && auth.ShowUsername && !auth.ShowResetCredentials {
		return headerView{
			ConfirmIdentity:   true,
			AttemptedUsername: auth.AttemptedUsername,
			RestartURL:        url.LoginRestartFlowURL,
			RestartTooltip:    p.I18n.MsgStr("restartLoginTooltip"),
		}
	}
	if p.HeaderExplicit {
		return headerView{Node: p.HeaderNode}
	}
	if pair, ok := headerPairs[logintheme.PageID(p.Context.PageID)]; ok {
		return headerView{
			Title:       p.I18n.Msg(pair.title),
			Description: p.I18n.Msg(pair.description),
		}
	}
	return headerView{Node: p.HeaderNode}
}

// alert warnings are never shown to app initiated actions
func (t *Template) alert(p *logintheme.ShellProps) *alertView {
	rc := p.Context
	msg := rc.Message
	if !p.DisplayMessage || msg == nil {
		return nil
	}
	if msg.Type == models.MessageWarning && rc.IsAppInitiatedAction {
		return nil
	}

	summary := p.I18n.TranslateError(i18n.ScopeTemplate, msg.Summary)
	t.log.Debug("alert message",
		zap.String("type", msg.Type.String()),
		zap.String("summary", msg.Summary),
		zap.String("translated", summary),
		zap.String("locale", p.I18n.LanguageTag()),
	)

	pf := msg.Type.String()
	if msg.Type == models.MessageError {
		pf = "danger"
	}
	return &alertView{
		Class:      styles.Join("alert-"+msg.Type.String(), p.Classes.Clsx("kcAlertClass"), "pf-m-"+pf),
		IconClass:  p.Classes.Clsx(alertIcons[msg.Type]),
		TitleClass: p.Classes.Clsx("kcAlertTitleClass"),
		Summary:    utils.Sanitize(summary),
	}
}

func (t *Template) stylesheets(useDefault bool, url *models.URL) []string {
	var hrefs []string
	if useDefault {
		for _, sheet := range defaultCommonStylesheets {
			hrefs = append(hrefs, utils.AppendURL(url.ResourcesCommonPath, sheet))
		}
		for _, sheet := range defaultThemeStylesheets {
			hrefs = append(hrefs, utils.AppendURL(url.ResourcesPath, sheet))
		}
	}
	for _, sheet := range t.styles.Stylesheets() {
		hrefs = append(hrefs, sheet.Href(t.ResourcesBase))
	}
	return hrefs
}

func (t *Template) languages(rc *models.RenderContext, loc *i18n.Localizer) []languageView {
	if t.LocalePath == "" || rc.Realm == nil || !rc.Realm.InternationalizationEnabled {
		return nil
	}
	langs := loc.Languages()
	out := make([]languageView, 0, len(langs))
	for _, lang := range langs {
		out = append(out, languageView{
			URL:     path.Join(t.LocalePath, lang.Tag),
			Label:   lang.Label,
			Current: lang.Tag == loc.LanguageTag(),
		})
	}
	return out
}

func realmDisplayName(rc *models.RenderContext) string {
	if rc.Realm == nil {
		return ""
	}
	if rc.Realm.DisplayName != "" {
		return rc.Realm.DisplayName
	}
	return rc.Realm.Name
}
