package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"primary": map[string]any{
				"sslMode":  "disable",
				"userName": "user",
			},
		},
		"jwt": map[string]any{
			"secret": "",
		},
		"reset": map[string]any{
			"ticketTTL": "1h",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_PRIMARY_SSLMODE", want: "postgres.primary.sslMode"},
		{envKey: "POSTGRES_PRIMARY_USERNAME", want: "postgres.primary.userName"},
		{envKey: "JWT_SECRET", want: "jwt.secret"},
		{envKey: "RESET_TICKETTTL", want: "reset.ticketTTL"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
