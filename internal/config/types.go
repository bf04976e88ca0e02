package config

// Config is the top-level pagegen configuration, corresponding to .pagegen.yml.
type Config struct {
	BusinessName  string        `yaml:"business_name" koanf:"business_name"`
	Region        string        `yaml:"region" koanf:"region"`
	DataDir       string        `yaml:"data_dir" koanf:"data_dir"`
	OutputDir     string        `yaml:"output_dir" koanf:"output_dir"`
	GenerateCombo bool          `yaml:"generate_combo" koanf:"generate_combo"`
	BaseURL       string        `yaml:"base_url" koanf:"base_url"`
	HistoryDB     string        `yaml:"history_db" koanf:"history_db"`
	Assets        AssetsConfig  `yaml:"assets" koanf:"assets"`
	Client        ClientConfig  `yaml:"client" koanf:"client"`
	Preview       PreviewConfig `yaml:"preview" koanf:"preview"`
}

// AssetsConfig controls copying of the hand-written site files (stylesheets,
// scripts, static pages) into the output directory. Copying only happens when
// the output directory differs from Root.
type AssetsConfig struct {
	Root    string   `yaml:"root" koanf:"root"`
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}

// ClientConfig holds the values exposed to the browser through the generated
// assets/js/config.js. Nothing is written unless Emit is set.
type ClientConfig struct {
	Emit                       bool   `yaml:"emit" koanf:"emit"`
	LeadWebhookURL             string `yaml:"lead_webhook_url" koanf:"lead_webhook_url"`
	FeedbackWebhookURL         string `yaml:"feedback_webhook_url" koanf:"feedback_webhook_url"`
	DiscountWebhookURL         string `yaml:"discount_webhook_url" koanf:"discount_webhook_url"`
	SuccessRedirect            string `yaml:"success_redirect" koanf:"success_redirect"`
	PrimaryPhone               string `yaml:"primary_phone" koanf:"primary_phone"`
	TrackingPhone              string `yaml:"tracking_phone" koanf:"tracking_phone"`
	CompanyEmail               string `yaml:"company_email" koanf:"company_email"`
	GoogleReviewURL            string `yaml:"google_review_url" koanf:"google_review_url"`
	CalendlyURL                string `yaml:"calendly_url" koanf:"calendly_url"`
	ExpectedCallbackWindowText string `yaml:"expected_callback_window_text" koanf:"expected_callback_window_text"`
	EnableLeadModal            bool   `yaml:"enable_lead_modal" koanf:"enable_lead_modal"`
	EnableFloatingCallButton   bool   `yaml:"enable_floating_call_button" koanf:"enable_floating_call_button"`
	EnableUTMCapture           bool   `yaml:"enable_utm_capture" koanf:"enable_utm_capture"`
	EnableSMSConsent           bool   `yaml:"enable_sms_consent" koanf:"enable_sms_consent"`
}

// PreviewConfig holds settings for the local preview server.
type PreviewConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}
