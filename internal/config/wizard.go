package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
)

// detectDataDir looks for the services/areas data files in the usual places.
func detectDataDir() string {
	for _, dir := range []string{"data", "site/data", "_data"} {
		if _, err := os.Stat(filepath.Join(dir, "services.json")); err == nil {
			return dir
		}
	}
	return "data"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .pagegen.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to pagegen! Let's configure your site.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Business name.
	namePrompt := promptui.Prompt{
		Label:   "Business name",
		Default: defaults.BusinessName,
	}
	businessName, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("business name: %w", err)
	}

	// 2. Region shown in the footer.
	regionPrompt := promptui.Prompt{
		Label:   "Region (shown in the footer)",
		Default: defaults.Region,
	}
	region, err := regionPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("region: %w", err)
	}

	// 3. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Directory containing services.json and areas.json",
		Default: detectDataDir(),
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 4. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for generated pages",
		Default: defaults.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 5. Combo pages.
	comboPrompt := promptui.Select{
		Label: "Generate service-in-area combo pages?",
		Items: []string{
			"yes — one page per service and area pair",
			"no  — service and area pages only",
		},
	}
	comboIdx, _, err := comboPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("combo selection: %w", err)
	}

	// 6. Base URL for sitemap and canonical links.
	basePrompt := promptui.Prompt{
		Label:   "Public site URL (blank to skip sitemap.xml)",
		Default: "",
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			return validateAbsoluteURL(s)
		},
	}
	baseURL, err := basePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}

	// 7. Lead webhook.
	webhookPrompt := promptui.Prompt{
		Label:   "Lead webhook URL (blank to leave config.js alone)",
		Default: "",
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			return validateAbsoluteURL(s)
		},
	}
	webhook, err := webhookPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("lead webhook: %w", err)
	}

	cfg := DefaultConfig()
	cfg.BusinessName = businessName
	cfg.Region = region
	cfg.DataDir = dataDir
	cfg.OutputDir = outputDir
	cfg.GenerateCombo = comboIdx == 0
	cfg.BaseURL = baseURL
	if webhook != "" {
		cfg.Client.Emit = true
		cfg.Client.LeadWebhookURL = webhook
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)
	return cfg, nil
}
