package config

import "os"

// Secrets come from the environment so they never land in source control.
var (
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	AuthToken     = os.Getenv("API_AUTH_TOKEN")
	NoAuthBypass  = os.Getenv("NO_AUTH_BYPASS") == "true"

	GeminiAPIKey    = os.Getenv("GEMINI_API_KEY")
	GoogleAPIKey    = os.Getenv("GOOGLE_API_KEY") //translation + content classifier
	TranslateAPIKey = firstNonEmpty(os.Getenv("TRANSLATE_API_KEY"), GoogleAPIKey)
)

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
