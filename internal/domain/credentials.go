package domain

import "strings"

// VersionPlaceholder is replaced in the user agent template with the build version.
const VersionPlaceholder = "{version}"

// Credentials authenticate the bot account against the platform.
// Loaded once at startup and never mutated.
type Credentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Username     string
	Password     string
}

// UserAgentFor renders the user agent template for the given build version.
func (c Credentials) UserAgentFor(version string) string {
	return strings.ReplaceAll(c.UserAgent, VersionPlaceholder, version)
}

// Validate checks that every field is present.
func (c Credentials) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"client_id", c.ClientID},
		{"client_secret", c.ClientSecret},
		{"user_agent", c.UserAgent},
		{"username", c.Username},
		{"password", c.Password},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return NewValidationError(f.name, "is required")
		}
	}

	return nil
}
