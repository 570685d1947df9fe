// Package web holds the embedded page templates and the data they render.
package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/yigit/studentportal/internal/pkg/helpers"
)

//go:embed templates/*.html
var templateFS embed.FS

// WizardSteps are the headings of the application form
var WizardSteps = []string{"Personal", "Address", "Academic", "Account"}

// FuncMap returns the helpers available to every template
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"money": helpers.FormatAmount,
		"percent": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v)
		},
		"width": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
		"days": func(n int) string {
			switch {
			case n == 1:
				return "1 day"
			case n == -1:
				return "1 day overdue"
			case n < 0:
				return fmt.Sprintf("%d days overdue", -n)
			default:
				return fmt.Sprintf("%d days", n)
			}
		},
		"add": func(a, b int) int { return a + b },
		"steps": func() []string { return WizardSteps },
		"deref": func(v *int) int {
			if v == nil {
				return 0
			}
			return *v
		},
	}
}

// Templates parses every embedded page template
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
