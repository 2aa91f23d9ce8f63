package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
vars:
  domain: example.com
services:
  - template: db.service.tmpl
    unit: db.service
    variables:
      port: "5432"
  - template: web.service.tmpl
    unit: web.service
    variables: {}
    when: 'vars.domain == "example.com"'
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Services, 2)
	assert.Equal(t, "db.service", cfg.Services[0].Unit)
	assert.Equal(t, "db.service.tmpl", cfg.Services[0].Template)
	assert.Equal(t, "5432", cfg.Services[0].Variables["port"])
	assert.Equal(t, `vars.domain == "example.com"`, cfg.Services[1].When)
	assert.Equal(t, "example.com", cfg.Vars["domain"])
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
services:
  - template: db.service.tmpl
    unit: db.service
    varibles:
      port: "5432"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse config file")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not read config file")
}

func TestValidate(t *testing.T) {
	cfg := &Config{Services: []Service{{Template: "a.tmpl", Unit: ""}}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Services: []Service{{Template: "", Unit: "a.service"}}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Services: []Service{{Template: "a.tmpl", Unit: "a.service"}}}
	assert.NoError(t, cfg.Validate())
}

func TestDuplicateUnits(t *testing.T) {
	cfg := &Config{Services: []Service{
		{Template: "a.tmpl", Unit: "a.service"},
		{Template: "b.tmpl", Unit: "b.service"},
		{Template: "c.tmpl", Unit: "a.service"},
		{Template: "d.tmpl", Unit: "a.service"},
	}}

	assert.Equal(t, []string{"a.service"}, cfg.DuplicateUnits())
	assert.Empty(t, (&Config{}).DuplicateUnits())
}

func TestFindHost(t *testing.T) {
	cfg := &Config{Hosts: []Host{{Name: "web1", Address: "10.0.0.5", User: "root"}}}

	h, err := cfg.FindHost("web1")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", h.Address)

	_, err = cfg.FindHost("web2")
	assert.Error(t, err)
}

func TestBaseVars(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("PORT=9000\nREGION=eu\n"), 0644))

	cfg := &Config{
		Vars:    map[string]string{"REGION": "us", "domain": "example.com"},
		EnvFile: envPath,
	}

	vars, err := cfg.BaseVars("")
	require.NoError(t, err)

	// config vars override env file entries
	assert.Equal(t, "us", vars["REGION"])
	assert.Equal(t, "9000", vars["PORT"])
	assert.Equal(t, "example.com", vars["domain"])
}

func TestBaseVarsMissingEnvFile(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.BaseVars(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestMergeVars(t *testing.T) {
	base := map[string]string{"a": "1", "b": "2"}
	merged := MergeVars(base, map[string]string{"b": "3", "c": "4"})

	assert.Equal(t, map[string]string{"a": "1", "b": "3", "c": "4"}, merged)
	assert.Equal(t, "2", base["b"])
}
