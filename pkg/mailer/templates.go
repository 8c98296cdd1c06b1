package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names accepted in EmailJob.Template.
const (
	Welcome = "welcome"
)

var welcomeHTML = template.Must(template.New("welcome").Parse(`
<html><body>
<p>Hi {{.Name}},</p>
<p>Welcome to DevLink. Set up your developer profile and start connecting.</p>
<p>— The DevLink team</p>
</body></html>`))

// Render resolves a template job into subject, text, and html bodies.
// Jobs without a template pass through their raw subject/text/html.
func Render(job *EmailJob) (subject, text, html string, err error) {
	switch job.Template {
	case "":
		return job.Subject, job.Text, job.HTML, nil
	case Welcome:
		name, _ := job.Data["Name"].(string)
		if name == "" {
			name = "there"
		}
		var buf bytes.Buffer
		if err := welcomeHTML.Execute(&buf, map[string]any{"Name": name}); err != nil {
			return "", "", "", err
		}
		text = fmt.Sprintf("Hi %s, welcome to DevLink. Set up your developer profile and start connecting.", name)
		return "Welcome to DevLink", text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
}
