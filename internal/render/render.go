package render

import (
	"os"
	"path/filepath"

	"github.com/melih-ucgun/decree/internal/core"
)

// Renderer resolves template names against a template directory and renders
// them with a variable mapping. Templates are always read from the machine
// decree runs on, even when the target filesystem is remote.
type Renderer struct {
	FS  core.FileSystem
	Dir string
}

func New(fs core.FileSystem, dir string) *Renderer {
	return &Renderer{FS: fs, Dir: dir}
}

// Render produces the desired content for one unit. A missing template file
// is reported as TemplateNotFoundError before any parsing happens, so it is
// never mistaken for a syntax error; parse and render failures come back as
// TemplateError wrapping the engine diagnostic.
func (r *Renderer) Render(name string, vars map[string]string) (string, error) {
	path := filepath.Join(r.Dir, name)

	if _, err := r.FS.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", &core.TemplateNotFoundError{Path: path}
		}
		return "", err
	}

	content, err := r.FS.ReadFile(path)
	if err != nil {
		return "", err
	}

	out, err := core.ExecuteTemplate(string(content), vars)
	if err != nil {
		return "", &core.TemplateError{Name: name, Err: err}
	}
	return out, nil
}
