package email

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletterplatform/internal/domain"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".html"), []byte(content), 0o644))
}

func TestTemplateRenderer_Render(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "newsletter",
		`<h1>{{newsletterTitle}}</h1><p>Hello {{username}}</p><a href="{{newsletterLink}}">Read</a><a href="{{unsubscribeLink}}">Unsubscribe</a>`)
	r := NewTemplateRenderer(dir)

	out, err := r.Render("newsletter", map[string]string{
		"username":        "Valued User",
		"newsletterTitle": "Weekly Digest",
		"newsletterLink":  "https://example.com/newsletters/1",
		"unsubscribeLink": "https://example.com/user/9/unsubscribe",
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "{{")
	assert.Contains(t, out, "Hello Valued User")
	assert.Contains(t, out, "<h1>Weekly Digest</h1>")
	assert.Contains(t, out, `href="https://example.com/user/9/unsubscribe"`)
}

func TestTemplateRenderer_Render_globalSubstitution(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "repeat", `{{name}} and {{name}} and {{name}}`)
	r := NewTemplateRenderer(dir)

	out, err := r.Render("repeat", map[string]string{"name": "x"})
	require.NoError(t, err)
	assert.Equal(t, "x and x and x", out)
}

func TestTemplateRenderer_Render_unknownKeysIgnored(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "plain", `<p>static</p>`)
	r := NewTemplateRenderer(dir)

	out, err := r.Render("plain", map[string]string{"unused": "value"})
	require.NoError(t, err)
	assert.Equal(t, "<p>static</p>", out)
}

func TestTemplateRenderer_Render_unmatchedTokensLeft(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "partial", `{{known}} {{unknown}}`)
	r := NewTemplateRenderer(dir)

	out, err := r.Render("partial", map[string]string{"known": "v"})
	require.NoError(t, err)
	assert.Equal(t, "v {{unknown}}", out)
}

func TestTemplateRenderer_Render_missingTemplate(t *testing.T) {
	r := NewTemplateRenderer(t.TempDir())

	_, err := r.Render("nope", map[string]string{"a": "b"})
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestTemplateRenderer_Render_pure(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "welcome", `<p>Hi {{username}}</p>`)
	r := NewTemplateRenderer(dir)
	repl := map[string]string{"username": "Alice"}

	first, err := r.Render("welcome", repl)
	require.NoError(t, err)
	second, err := r.Render("welcome", repl)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
