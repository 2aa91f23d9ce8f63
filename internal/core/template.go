package core

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ExecuteTemplate renders the given template content with the provided data.
// missingkey=error makes a reference to an undeclared variable a render
// error instead of silently producing an empty unit file.
func ExecuteTemplate(content string, data interface{}) (string, error) {
	tmpl, err := template.New("decree").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(content)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
