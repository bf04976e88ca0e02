package render

import (
	"encoding/json"

	"github.com/kwebdev/pagegen/internal/catalog"
)

const schemaContext = "https://schema.org"

type faqPage struct {
	Context    string        `json:"@context"`
	Type       string        `json:"@type"`
	MainEntity []faqQuestion `json:"mainEntity"`
}

type faqQuestion struct {
	Type           string    `json:"@type"`
	Name           string    `json:"name"`
	AcceptedAnswer faqAnswer `json:"acceptedAnswer"`
}

type faqAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type localBusiness struct {
	Context    string `json:"@context"`
	Type       string `json:"@type"`
	Name       string `json:"name"`
	AreaServed *city  `json:"areaServed,omitempty"`
}

type city struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// FAQSchema returns a schema.org FAQPage document for the entries, in order,
// or "" when there are none. Callers must omit the script tag for "".
func FAQSchema(faq []catalog.FAQEntry) string {
	if len(faq) == 0 {
		return ""
	}
	doc := faqPage{
		Context:    schemaContext,
		Type:       "FAQPage",
		MainEntity: make([]faqQuestion, len(faq)),
	}
	for i, item := range faq {
		doc.MainEntity[i] = faqQuestion{
			Type:           "Question",
			Name:           item.Q,
			AcceptedAnswer: faqAnswer{Type: "Answer", Text: item.A},
		}
	}
	return mustJSON(doc)
}

// LocalBusinessSchema returns a schema.org LocalBusiness document. areaServed
// is only present when areaName is non-empty.
func LocalBusinessSchema(businessName, areaName string) string {
	doc := localBusiness{
		Context: schemaContext,
		Type:    "LocalBusiness",
		Name:    businessName,
	}
	if areaName != "" {
		doc.AreaServed = &city{Type: "City", Name: areaName}
	}
	return mustJSON(doc)
}

// mustJSON marshals types that cannot fail to encode. json.Marshal escapes
// <, > and & so the result is safe inside a script element.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic("render: encoding schema: " + err.Error())
	}
	return string(data)
}
