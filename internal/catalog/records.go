// Package catalog loads and validates the service and area records that drive
// page generation.
package catalog

// FAQEntry is a single question and answer shown on a service page.
type FAQEntry struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Service describes one service the business offers. Slug is its identity.
type Service struct {
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	ShortDescription string     `json:"shortDescription,omitempty"`
	FAQ              []FAQEntry `json:"faq,omitempty"`
	// Body is optional long-form Markdown rendered below the description.
	Body string `json:"body,omitempty"`
}

// Area is a place the business serves. Slug is its identity.
type Area struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Catalog is the validated input for one generator run.
type Catalog struct {
	Services []Service
	Areas    []Area
}

// Report describes how the catalog was assembled.
type Report struct {
	Services LoadResult[Service]
	Areas    LoadResult[Area]
	Issues   []Issue
}

// Read loads both data files from dataDir and validates them.
func Read(dataDir string) (*Catalog, Report) {
	rep := Report{
		Services: LoadServices(dataDir),
		Areas:    LoadAreas(dataDir),
	}

	services, svcIssues := ValidateServices(rep.Services.Records)
	areas, areaIssues := ValidateAreas(rep.Areas.Records)
	rep.Issues = append(svcIssues, areaIssues...)

	return &Catalog{Services: services, Areas: areas}, rep
}
