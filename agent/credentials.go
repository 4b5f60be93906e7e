package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var ErrMissingCredentials = errors.New("missing provider credentials")

// Credentials is what an LLM provider adapter needs to authenticate.
// The engine itself never reads these; only the adapter layer does.
type Credentials struct {
	APIKey  string
	Model   string
	BaseURL string
}

// envKeys maps provider names to the environment variable carrying
// their API key.
var envKeys = map[string]string{
	"anthropic": "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
}

// LoadCredentials reads a provider's credentials from the environment
// (and an optional conquest.yaml in the working directory). It returns
// ErrMissingCredentials when the API key is absent, so callers can
// refuse to start an LLM game before any state is created. The
// built-in bot provider needs no credentials.
func LoadCredentials(provider, model string) (Credentials, error) {
	if provider == BotProviderName {
		return Credentials{Model: model}, nil
	}

	v := viper.New()
	v.SetConfigName("conquest")
	v.AddConfigPath(".")
	// A config file is optional; the environment always wins.
	_ = v.ReadInConfig()
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	envKey, ok := envKeys[provider]
	if !ok {
		return Credentials{}, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	creds := Credentials{
		APIKey:  strings.TrimSpace(v.GetString(envKey)),
		Model:   model,
		BaseURL: v.GetString(strings.ToLower(provider) + ".base_url"),
	}
	if creds.Model == "" {
		creds.Model = v.GetString(strings.ToLower(provider) + ".model")
	}
	if creds.APIKey == "" {
		return Credentials{}, fmt.Errorf("%w: set %s", ErrMissingCredentials, envKey)
	}
	return creds, nil
}
