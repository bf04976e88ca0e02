package config

// DefaultBusinessName is used when neither the config file nor BUSINESS_NAME
// provide one.
const DefaultBusinessName = "KWebDevelopment"

// DefaultConfigFile is the config path used by the CLI and the init wizard.
const DefaultConfigFile = ".pagegen.yml"

// DefaultAssetIncludes are the hand-written site files copied next to the
// generated pages when building into a separate output directory.
var DefaultAssetIncludes = []string{
	"*.html",
	"style.css",
	"assets/**",
	"images/**",
	"favicon.ico",
	"robots.txt",
}

// DefaultAssetExcludes are never copied, even when an include matches.
var DefaultAssetExcludes = []string{
	"data/**",
	"scripts/**",
	"node_modules/**",
	".git/**",
	"*.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BusinessName:  DefaultBusinessName,
		Region:        "TX / DFW",
		DataDir:       "data",
		OutputDir:     ".",
		GenerateCombo: true,
		Assets: AssetsConfig{
			Root:    ".",
			Include: append([]string(nil), DefaultAssetIncludes...),
			Exclude: append([]string(nil), DefaultAssetExcludes...),
		},
		Client: ClientConfig{
			SuccessRedirect:            "thanks.html",
			ExpectedCallbackWindowText: "within 1 business day",
			EnableLeadModal:            true,
			EnableFloatingCallButton:   true,
			EnableUTMCapture:           true,
			EnableSMSConsent:           true,
		},
		Preview: PreviewConfig{
			Port: 8000,
		},
	}
}
