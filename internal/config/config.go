// Package config loads the QueryDesk configuration from YAML with
// environment overrides.
package config

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server,omitempty"`
	WhatsApp  WhatsAppConfig  `yaml:"whatsapp,omitempty"`
	Gemini    GeminiConfig    `yaml:"gemini,omitempty"`
	Email     EmailConfig     `yaml:"email,omitempty"`
	Directory DirectoryConfig `yaml:"directory,omitempty"`
	Store     StoreConfig     `yaml:"store,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// ServerConfig controls the webhook HTTP server.
type ServerConfig struct {
	Port int `yaml:"port,omitempty"`
}

// WhatsAppConfig configures the Meta Graph API client and webhook
// handshake.
type WhatsAppConfig struct {
	AccessToken    string `yaml:"accessToken,omitempty"`
	PhoneNumberID  string `yaml:"phoneNumberId,omitempty"`
	BusinessNumber string `yaml:"businessNumber,omitempty"`
	VerifyToken    string `yaml:"verifyToken,omitempty"`
	BaseURL        string `yaml:"baseUrl,omitempty"`
}

// GeminiConfig configures the drafting model.
type GeminiConfig struct {
	APIKey   string `yaml:"apiKey,omitempty"`
	Model    string `yaml:"model,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

// EmailConfig configures escalation delivery.
type EmailConfig struct {
	FallbackTo      string `yaml:"fallbackTo,omitempty"`
	CredentialsPath string `yaml:"credentialsPath,omitempty"`
	TokenPath       string `yaml:"tokenPath,omitempty"`
}

// DirectoryConfig points at the client-directory spreadsheet.
type DirectoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// StoreConfig points at the conversation database.
type StoreConfig struct {
	Path string `yaml:"path,omitempty"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Server:    ServerConfig{Port: 8080},
		Directory: DirectoryConfig{Path: "client details.xlsx"},
		Store:     StoreConfig{Path: "querydesk.db"},
		Logging:   LoggingConfig{Level: "info"},
	}
}
