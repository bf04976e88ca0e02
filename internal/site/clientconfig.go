package site

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kwebdev/pagegen/internal/config"
)

// ClientConfigFile is the script every page loads before toolkit.js.
const ClientConfigFile = "assets/js/config.js"

// clientConfig is the object the browser toolkit reads from window.CONFIG.
// Field order is fixed so the emitted file is stable.
type clientConfig struct {
	BusinessName               string `json:"businessName"`
	LeadWebhookURL             string `json:"leadWebhookUrl"`
	FeedbackWebhookURL         string `json:"feedbackWebhookUrl"`
	DiscountWebhookURL         string `json:"discountWebhookUrl"`
	SuccessRedirect            string `json:"successRedirect"`
	PrimaryPhone               string `json:"primaryPhone"`
	PhoneE164                  string `json:"phoneE164"`
	TrackingPhoneOptional      string `json:"trackingPhoneOptional"`
	CompanyEmail               string `json:"companyEmail"`
	GoogleReviewURL            string `json:"googleReviewUrl"`
	CalendlyURL                string `json:"calendlyUrl"`
	ExpectedCallbackWindowText string `json:"expectedCallbackWindowText"`
	EnableLeadModal            bool   `json:"enableLeadModal"`
	EnableFloatingCallButton   bool   `json:"enableFloatingCallButton"`
	EnableUTMCapture           bool   `json:"enableUtmCapture"`
	EnableSMSConsent           bool   `json:"enableSmsConsent"`
}

// buildClientConfig renders config.js. The object is frozen so page scripts
// cannot change webhook targets at runtime; KWEB_CONFIG is kept as an alias
// for older scripts.
func buildClientConfig(businessName string, c config.ClientConfig) ([]byte, error) {
	cc := clientConfig{
		BusinessName:               businessName,
		LeadWebhookURL:             c.LeadWebhookURL,
		FeedbackWebhookURL:         c.FeedbackWebhookURL,
		DiscountWebhookURL:         c.DiscountWebhookURL,
		SuccessRedirect:            c.SuccessRedirect,
		PrimaryPhone:               c.PrimaryPhone,
		PhoneE164:                  c.PrimaryPhone,
		TrackingPhoneOptional:      c.TrackingPhone,
		CompanyEmail:               c.CompanyEmail,
		GoogleReviewURL:            c.GoogleReviewURL,
		CalendlyURL:                c.CalendlyURL,
		ExpectedCallbackWindowText: c.ExpectedCallbackWindowText,
		EnableLeadModal:            c.EnableLeadModal,
		EnableFloatingCallButton:   c.EnableFloatingCallButton,
		EnableUTMCapture:           c.EnableUTMCapture,
		EnableSMSConsent:           c.EnableSMSConsent,
	}
	data, err := json.MarshalIndent(cc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding client config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("/* Generated by pagegen from .pagegen.yml. Do not edit. */\n")
	fmt.Fprintf(&buf, "window.CONFIG = Object.freeze(%s);\n", data)
	buf.WriteString("window.KWEB_CONFIG = window.CONFIG;\n")
	return buf.Bytes(), nil
}
