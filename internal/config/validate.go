package config

import "fmt"

// Issue is one validation problem, addressed by config path.
type Issue struct {
	Path    string
	Message string
}

// Validate checks the fields the serve command cannot run without.
func Validate(cfg *Config) []Issue {
	var issues []Issue

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		issues = append(issues, Issue{
			Path:    "server.port",
			Message: fmt.Sprintf("port %d out of range", cfg.Server.Port),
		})
	}
	if cfg.WhatsApp.AccessToken == "" {
		issues = append(issues, Issue{Path: "whatsapp.accessToken", Message: "access token is required"})
	}
	if cfg.WhatsApp.PhoneNumberID == "" {
		issues = append(issues, Issue{Path: "whatsapp.phoneNumberId", Message: "phone number id is required"})
	}
	if cfg.WhatsApp.BusinessNumber == "" {
		issues = append(issues, Issue{Path: "whatsapp.businessNumber", Message: "business number is required"})
	}
	if cfg.WhatsApp.VerifyToken == "" {
		issues = append(issues, Issue{Path: "whatsapp.verifyToken", Message: "webhook verify token is required"})
	}
	if cfg.Gemini.APIKey == "" {
		issues = append(issues, Issue{Path: "gemini.apiKey", Message: "api key is required"})
	}
	if cfg.Email.FallbackTo == "" {
		issues = append(issues, Issue{Path: "email.fallbackTo", Message: "fallback escalation address is required"})
	}

	return issues
}
