package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names carried in EmailJob.Template.
const (
	VerifyEmail   = "verify_email"
	ResetPassword = "reset_password"
)

var subjects = map[string]string{
	VerifyEmail:   "Verify your email address",
	ResetPassword: "Reset your password",
}

var bodies = map[string]*template.Template{
	VerifyEmail: template.Must(template.New(VerifyEmail).Parse(`
<p>Hi,</p>
<p>Please confirm your email address by opening the link below. The link expires at {{.ExpiresAt}}.</p>
<p><a href="{{.Link}}">Verify email</a></p>
<p>If you did not create an account, you can ignore this message.</p>`)),
	ResetPassword: template.Must(template.New(ResetPassword).Parse(`
<p>Hi,</p>
<p>A password reset was requested for your account. The link below expires at {{.ExpiresAt}}.</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>If you did not request this, you can ignore this message.</p>`)),
}

// Render resolves a templated job into subject, text, and HTML bodies.
// Jobs without a template pass through unchanged.
func Render(job *EmailJob) (subject, text, html string, err error) {
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	tpl, ok := bodies[job.Template]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, job.Data); err != nil {
		return "", "", "", err
	}
	subject = job.Subject
	if subject == "" {
		subject = subjects[job.Template]
	}
	link, _ := job.Data["Link"].(string)
	return subject, "Open this link: " + link, buf.String(), nil
}
