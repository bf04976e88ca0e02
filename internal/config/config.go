package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Environment variables honoured outside the PAGEGEN_ namespace. These are the
// names the site's build scripts have always used.
const (
	EnvBusinessName  = "BUSINESS_NAME"
	EnvGenerateCombo = "GENERATE_COMBO"
)

// Load reads configuration from the given YAML file, then overlays a .env file
// next to it, PAGEGEN_* environment variables and finally BUSINESS_NAME and
// GENERATE_COMBO.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	// PAGEGEN_OUTPUT_DIR -> output_dir, PAGEGEN_CLIENT__EMIT -> client.emit.
	if err := k.Load(env.Provider("PAGEGEN_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "PAGEGEN_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// ZeroFields makes a list in the file replace the default list instead of
	// overwriting it element by element.
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
			Result:           cfg,
			WeaklyTypedInput: true,
			ZeroFields:       true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyLegacyEnv(cfg)
	return cfg, nil
}

// loadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win over the file.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("accessing %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

func applyLegacyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvBusinessName)); v != "" {
		cfg.BusinessName = v
	}
	if v, ok := os.LookupEnv(EnvGenerateCombo); ok {
		cfg.GenerateCombo = !IsFalsy(v)
	}
}

// IsFalsy reports whether an environment toggle was explicitly switched off.
// Anything other than false/0/no/off (case-insensitive) leaves it on.
func IsFalsy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "0", "no", "off":
		return true
	default:
		return false
	}
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BusinessName) == "" {
		return fmt.Errorf("business_name is required")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.BaseURL != "" {
		if err := validateAbsoluteURL(c.BaseURL); err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
	}

	webhooks := map[string]string{
		"client.lead_webhook_url":     c.Client.LeadWebhookURL,
		"client.feedback_webhook_url": c.Client.FeedbackWebhookURL,
		"client.discount_webhook_url": c.Client.DiscountWebhookURL,
	}
	for key, v := range webhooks {
		if v == "" {
			continue
		}
		if err := validateAbsoluteURL(v); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return fmt.Errorf("preview.port must be between 0 and 65535")
	}

	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
