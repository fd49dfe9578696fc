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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "querydesk.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
whatsapp:
  accessToken: tok
  phoneNumberId: "555000"
  businessNumber: "4989000000"
  verifyToken: vt
gemini:
  apiKey: gk
  model: gemini-2.5-flash
email:
  fallbackTo: desk@example.com
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "tok", cfg.WhatsApp.AccessToken)
	assert.Equal(t, "4989000000", cfg.WhatsApp.BusinessNumber)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset sections keep their defaults.
	assert.Equal(t, "querydesk.db", cfg.Store.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUERYDESK_PORT", "7777")
	t.Setenv("QUERYDESK_LOG_LEVEL", "error")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoad_SecretExpansion(t *testing.T) {
	t.Setenv("WA_TOKEN", "real-token")

	path := writeConfig(t, `
whatsapp:
  accessToken: ${WA_TOKEN}
  verifyToken: ${UNSET_VAR_XYZ}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "real-token", cfg.WhatsApp.AccessToken)
	// Unset references stay literal.
	assert.Equal(t, "${UNSET_VAR_XYZ}", cfg.WhatsApp.VerifyToken)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "whatsapp: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	issues := Validate(&cfg)
	require.NotEmpty(t, issues)

	paths := make([]string, 0, len(issues))
	for _, issue := range issues {
		paths = append(paths, issue.Path)
	}
	assert.Contains(t, paths, "whatsapp.accessToken")
	assert.Contains(t, paths, "gemini.apiKey")
	assert.Contains(t, paths, "email.fallbackTo")

	cfg.WhatsApp = WhatsAppConfig{
		AccessToken:    "tok",
		PhoneNumberID:  "555000",
		BusinessNumber: "4989000000",
		VerifyToken:    "vt",
	}
	cfg.Gemini.APIKey = "gk"
	cfg.Email.FallbackTo = "desk@example.com"
	assert.Empty(t, Validate(&cfg))
}

func TestValidate_PortRange(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Port = 0

	issues := Validate(&cfg)
	found := false
	for _, issue := range issues {
		if issue.Path == "server.port" {
			found = true
		}
	}
	assert.True(t, found)
}
