package email

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"newsletterplatform/internal/domain"
)

// templateRenderer loads <dir>/<name>.html and substitutes every literal
// {{key}} token with its replacement value.
type templateRenderer struct {
	dir string
}

// NewTemplateRenderer returns a TemplateRenderer reading template files
// from the given directory.
func NewTemplateRenderer(dir string) domain.TemplateRenderer {
	return &templateRenderer{dir: dir}
}

// Render reads the template file on every call and applies global
// substitution: replacement keys absent from the template are ignored, and
// template tokens with no matching key are left as-is. No HTML escaping is
// performed; callers supply already-safe values.
func (r *templateRenderer) Render(templateName string, replacements map[string]string) (string, error) {
	path := filepath.Join(r.dir, templateName+".html")
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, templateName)
		}
		return "", fmt.Errorf("failed to read template %s: %w", templateName, err)
	}

	rendered := string(raw)
	for key, value := range replacements {
		rendered = strings.ReplaceAll(rendered, "{{"+key+"}}", value)
	}
	return rendered, nil
}
