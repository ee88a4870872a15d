// Package dashboard renders a snapshot as the single-page HTML view.
package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"hostdash/internal/domain"
)

//go:embed templates/dashboard.html
var templates embed.FS

var page = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"inc":   func(i int) int { return i + 1 },
	"pct":   formatPercent,
	"load":  func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	"yesno": yesNo,
}).ParseFS(templates, "templates/dashboard.html"))

// Render writes the page for snap. Output is buffered, so nothing reaches w
// when the template fails.
func Render(w io.Writer, snap domain.Snapshot) error {
	var buf bytes.Buffer
	if err := page.Execute(&buf, snap); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}

	_, err := buf.WriteTo(w)
	return err
}

// Fallback is a bare page used when Render fails. The hostname is escaped.
func Fallback(hostname string) string {
	h := template.HTMLEscapeString(hostname)
	return "<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"UTF-8\"><title>System Information - " + h +
		"</title></head><body><h1>System Information</h1><h2>Hostname: " + h +
		"</h2><p>Metrics are temporarily unavailable.</p></body></html>"
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(domain.Round2(v), 'f', 2, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
