package mail

import (
	"fmt"
	"strings"
	"text/template"
)

// Template renders the subject and body of one kind of email.
type Template struct {
	subject *template.Template
	body    *template.Template
}

// MustTemplate parses subject and body templates, panicking on syntax errors.
func MustTemplate(name, subject, body string) *Template {
	return &Template{
		subject: template.Must(template.New(name + "_subject").Parse(subject)),
		body:    template.Must(template.New(name + "_body").Parse(body)),
	}
}

// Render executes both templates with data. Newlines in the subject are collapsed.
func (t *Template) Render(data any) (subject, body string, err error) {
	var sb, bb strings.Builder
	if err := t.subject.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("render subject: %w", err)
	}
	if err := t.body.Execute(&bb, data); err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}
	return strings.Join(strings.Fields(sb.String()), " "), bb.String(), nil
}

// ActivationTemplate is sent after sign-up.
var ActivationTemplate = MustTemplate("activation",
	`[{{.SiteName}}] Confirm your registration`,
	`Hello {{.Username}},

Thank you for signing up to {{.SiteName}}.
Open the link below within {{.ValidFor}} to activate your account:

{{.URL}}

If you did not sign up, you can ignore this message.
`)

// PasswordResetTemplate is sent when a reset is requested.
var PasswordResetTemplate = MustTemplate("password_reset",
	`[{{.SiteName}}] Password reset`,
	`Hello {{.Username}},

Someone asked to reset the password for your {{.SiteName}} account.
Open the link below within {{.ValidFor}} to choose a new password:

{{.URL}}

If this wasn't you, you can ignore this message.
`)

// LinkData is the data both templates expect.
type LinkData struct {
	SiteName string
	Username string
	URL      string
	ValidFor string
}
