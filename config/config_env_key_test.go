package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"secretKey": map[string]any{
			"access": "",
			"reset":  "",
		},
		"passwordStrength": map[string]any{
			"minLength": 8,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "SECRETKEY_RESET", want: "secretKey.reset"},
		{envKey: "PASSWORDSTRENGTH_MINLENGTH", want: "passwordStrength.minLength"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		got := canonicalizeEnvKey(tt.envKey, existing)
		if got != tt.want {
			t.Errorf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
		}
	}
}

func TestNormalizeToken_StripsSeparators(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "sslMode", want: "sslmode"},
		{in: "SSL_MODE", want: "sslmode"},
		{in: "max-request-body-size", want: "maxrequestbodysize"},
	}

	for _, tt := range tests {
		if got := normalizeToken(tt.in); got != tt.want {
			t.Errorf("normalizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
