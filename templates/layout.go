package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Message is a rendered notification ready to hand to the mail relay
type Message struct {
	Subject string
	HTML    string
	Text    string
}

const (
	gamesTitle     = "LASUMBA Games 2026"
	teamSignoff    = "The LASUMBA Games Team"
	commitSignoff  = "LASUMBA Games Committee"
	automatedNote  = "This is an automated email. Please do not reply to this message."
	copyrightNote  = "© LASUMBA Games. All rights reserved."
	colorInfo      = "#2196F3"
	colorVolunteer = "#1e3a8a"
)

type detail struct {
	Label string
	Value string
}

// page is the single shape every notification renders through
type page struct {
	HeaderColor string
	Title       string
	Subtitle    string
	Greeting    string
	Intro       []string
	Badge       string
	BadgeColor  string
	Details     []detail
	Quote       string
	QuoteLabel  string
	Outro       []string
	Signoff     string
	Footer      string
}

var layout = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
.header { color: white; padding: 20px; border-radius: 5px 5px 0 0; text-align: center; }
.content { padding: 20px; }
.detail { margin: 6px 0; }
.label { font-weight: bold; }
.badge { display: inline-block; color: white; padding: 8px 15px; border-radius: 20px; font-weight: bold; }
.quote { background-color: #f0f0f0; padding: 15px; border-radius: 5px; margin: 15px 0; white-space: pre-wrap; }
.footer { background-color: #f0f0f0; padding: 10px; text-align: center; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
<div class="header" style="background-color: {{.HeaderColor}};">
<h1>{{.Title}}</h1>
{{- if .Subtitle}}
<p>{{.Subtitle}}</p>
{{- end}}
</div>
<div class="content">
{{- if .Greeting}}
<p>{{.Greeting}}</p>
{{- end}}
{{- range .Intro}}
<p>{{.}}</p>
{{- end}}
{{- if .Badge}}
<p><span class="badge" style="background-color: {{.BadgeColor}};">{{.Badge}}</span></p>
{{- end}}
{{- range .Details}}
<div class="detail"><span class="label">{{.Label}}:</span> {{.Value}}</div>
{{- end}}
{{- if .Quote}}
{{- if .QuoteLabel}}
<p><strong>{{.QuoteLabel}}</strong></p>
{{- end}}
<div class="quote">{{.Quote}}</div>
{{- end}}
{{- range .Outro}}
<p>{{.}}</p>
{{- end}}
<p>Best regards,<br>{{.Signoff}}</p>
</div>
<div class="footer">
<p>{{.Footer}}</p>
</div>
</div>
</body>
</html>
`))

func render(subject string, p page) (Message, error) {
	if p.Signoff == "" {
		p.Signoff = teamSignoff
	}
	if p.Footer == "" {
		p.Footer = automatedNote
	}
	if p.BadgeColor == "" {
		p.BadgeColor = p.HeaderColor
	}

	var buf bytes.Buffer
	if err := layout.Execute(&buf, p); err != nil {
		return Message{}, fmt.Errorf("rendering %q: %w", subject, err)
	}
	return Message{Subject: subject, HTML: buf.String(), Text: plainText(p)}, nil
}

func plainText(p page) string {
	var b strings.Builder
	b.WriteString(p.Title)
	if p.Subtitle != "" {
		b.WriteString(" - " + p.Subtitle)
	}
	b.WriteString("\n\n")
	if p.Greeting != "" {
		b.WriteString(p.Greeting + "\n\n")
	}
	for _, line := range p.Intro {
		b.WriteString(line + "\n\n")
	}
	if p.Badge != "" {
		b.WriteString("Status: " + p.Badge + "\n\n")
	}
	for _, d := range p.Details {
		fmt.Fprintf(&b, "%s: %s\n", d.Label, d.Value)
	}
	if len(p.Details) > 0 {
		b.WriteString("\n")
	}
	if p.Quote != "" {
		if p.QuoteLabel != "" {
			b.WriteString(p.QuoteLabel + "\n")
		}
		b.WriteString(p.Quote + "\n\n")
	}
	for _, line := range p.Outro {
		b.WriteString(line + "\n\n")
	}
	b.WriteString("Best regards,\n" + p.Signoff + "\n\n" + p.Footer + "\n")
	return b.String()
}

func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return "N/A"
	}
	return v
}
