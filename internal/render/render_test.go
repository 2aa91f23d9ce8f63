package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/melih-ucgun/decree/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, templates map[string]string) *Renderer {
	t.Helper()
	dir := t.TempDir()
	for name, content := range templates {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return New(&core.RealFS{}, dir)
}

func TestRender(t *testing.T) {
	r := newTestRenderer(t, map[string]string{
		"db.service.tmpl": "[Service]\nExecStart=/usr/bin/db --port {{ .port }}\n",
	})

	out, err := r.Render("db.service.tmpl", map[string]string{"port": "5432"})
	require.NoError(t, err)
	assert.Equal(t, "[Service]\nExecStart=/usr/bin/db --port 5432\n", out)
}

func TestRenderTemplateNotFound(t *testing.T) {
	// even with a broken template on disk, the wrong name must surface as
	// not-found rather than a parse failure
	r := newTestRenderer(t, map[string]string{
		"broken.tmpl": "{{ .port",
	})

	_, err := r.Render("missing.tmpl", nil)
	require.Error(t, err)

	var notFound *core.TemplateNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, filepath.Join(r.Dir, "missing.tmpl"), notFound.Path)
}

func TestRenderSyntaxError(t *testing.T) {
	r := newTestRenderer(t, map[string]string{
		"broken.tmpl": "{{ .port",
	})

	_, err := r.Render("broken.tmpl", map[string]string{"port": "1"})
	require.Error(t, err)

	var tmplErr *core.TemplateError
	require.True(t, errors.As(err, &tmplErr))
	assert.Equal(t, "broken.tmpl", tmplErr.Name)
}

func TestRenderUndefinedVariable(t *testing.T) {
	r := newTestRenderer(t, map[string]string{
		"db.service.tmpl": "port={{ .port }}\n",
	})

	_, err := r.Render("db.service.tmpl", map[string]string{"other": "x"})
	require.Error(t, err)

	var tmplErr *core.TemplateError
	assert.True(t, errors.As(err, &tmplErr))
}
