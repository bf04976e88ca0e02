// Package render composes the HTML documents for service, area, combo and
// hub pages. Composition is pure: the same inputs always produce the same
// bytes.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/kwebdev/pagegen/internal/catalog"
	"github.com/yuin/goldmark"
)

// Cross-link caps. They apply after the current record is excluded, and the
// candidates keep their data-file order.
const (
	ServicePageOtherServices = 4
	ServicePageAreas         = 5
	AreaPageServices         = 5
	AreaPageOtherAreas       = 4
	ComboPageOtherServices   = 3
	ComboPageOtherAreas      = 3
)

// Renderer turns catalog records into complete HTML documents.
type Renderer struct {
	site   Site
	layout *template.Template
	bodies *template.Template
	md     goldmark.Markdown
}

// New parses the page templates for the given site.
func New(site Site) (*Renderer, error) {
	layout, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout template: %w", err)
	}
	bodies, err := template.New("bodies").Parse(bodyTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing body templates: %w", err)
	}
	site.BaseURL = strings.TrimRight(site.BaseURL, "/")
	return &Renderer{site: site, layout: layout, bodies: bodies, md: newMarkdown()}, nil
}

// Site returns the business-wide values the renderer was built with.
func (r *Renderer) Site() Site { return r.site }

// Link is one cross-link in a page body.
type Link struct {
	Href string
	Text string
}

// pageData holds the data passed to the layout template.
type pageData struct {
	Title       string
	Description string
	Canonical   string
	Prefix      string
	Schemas     []template.JS
	Head        template.HTML
	Header      template.HTML
	Body        template.HTML
	Footer      template.HTML
}

type serviceBody struct {
	Prefix        string
	Service       catalog.Service
	BodyHTML      template.HTML
	OtherServices []Link
	Areas         []Link
}

type areaBody struct {
	Prefix     string
	Area       catalog.Area
	Services   []Link
	OtherAreas []Link
}

type comboBody struct {
	Prefix        string
	Service       catalog.Service
	Area          catalog.Area
	OtherServices []Link
	OtherAreas    []Link
}

type hubBody struct {
	Prefix  string
	Heading string
	Intro   string
	Links   []Link
}

// ServicePage renders services/<slug>/index.html.
func (r *Renderer) ServicePage(svc catalog.Service, services []catalog.Service, areas []catalog.Area, d Depth) (string, error) {
	bodyHTML, err := r.markdown(svc.Body)
	if err != nil {
		return "", fmt.Errorf("service %s: %w", svc.Slug, err)
	}

	desc := svc.ShortDescription
	if desc == "" {
		desc = fmt.Sprintf("Professional %s for local businesses.", svc.Title)
	}

	body := serviceBody{
		Prefix:        d.Prefix(),
		Service:       svc,
		BodyHTML:      bodyHTML,
		OtherServices: serviceLinks(d, otherServices(services, svc.Slug), ServicePageOtherServices),
		Areas:         areaLinks(d, areas, ServicePageAreas),
	}

	var schemas []template.JS
	if s := FAQSchema(svc.FAQ); s != "" {
		schemas = append(schemas, template.JS(s))
	}

	return r.page("service", body, pageData{
		Title:       fmt.Sprintf("%s | %s", svc.Title, r.site.BusinessName),
		Description: desc,
		Canonical:   r.canonical(ServiceDir(svc.Slug)),
		Schemas:     schemas,
	}, d)
}

// AreaPage renders areas/<slug>/index.html.
func (r *Renderer) AreaPage(area catalog.Area, services []catalog.Service, areas []catalog.Area, d Depth) (string, error) {
	body := areaBody{
		Prefix:     d.Prefix(),
		Area:       area,
		Services:   serviceLinks(d, services, AreaPageServices),
		OtherAreas: areaLinks(d, otherAreas(areas, area.Slug), AreaPageOtherAreas),
	}

	return r.page("area", body, pageData{
		Title:       fmt.Sprintf("%s | %s — Web Design & Local SEO", area.Name, r.site.BusinessName),
		Description: fmt.Sprintf("Professional web design and local SEO in %s. Get a quote today.", area.Name),
		Canonical:   r.canonical(AreaDir(area.Slug)),
		Schemas:     []template.JS{template.JS(LocalBusinessSchema(r.site.BusinessName, area.Name))},
	}, d)
}

// ComboPage renders <service>-in-<area>/index.html. Combo pages always sit one
// level below the root.
func (r *Renderer) ComboPage(svc catalog.Service, area catalog.Area, services []catalog.Service, areas []catalog.Area) (string, error) {
	d := DepthOf(ComboDir(svc.Slug, area.Slug))

	body := comboBody{
		Prefix:        d.Prefix(),
		Service:       svc,
		Area:          area,
		OtherServices: serviceLinks(d, otherServices(services, svc.Slug), ComboPageOtherServices),
		OtherAreas:    areaLinks(d, otherAreas(areas, area.Slug), ComboPageOtherAreas),
	}

	var schemas []template.JS
	if s := FAQSchema(svc.FAQ); s != "" {
		schemas = append(schemas, template.JS(s))
	}
	schemas = append(schemas, template.JS(LocalBusinessSchema(r.site.BusinessName, area.Name)))

	return r.page("combo", body, pageData{
		Title:       fmt.Sprintf("%s in %s | %s", svc.Title, area.Name, r.site.BusinessName),
		Description: strings.TrimSpace(fmt.Sprintf("%s in %s. %s", svc.Title, area.Name, svc.ShortDescription)),
		Canonical:   r.canonical(ComboDir(svc.Slug, area.Slug)),
		Schemas:     schemas,
	}, d)
}

// ServicesHubPage renders services/index.html, the list every header links to.
func (r *Renderer) ServicesHubPage(services []catalog.Service) (string, error) {
	d := DepthOf(ServicesHubDir)
	body := hubBody{
		Prefix:  d.Prefix(),
		Heading: "Our services",
		Intro:   fmt.Sprintf("Everything %s can build and grow for your business.", r.site.BusinessName),
		Links:   serviceLinks(d, services, len(services)),
	}
	return r.page("hub", body, pageData{
		Title:       fmt.Sprintf("Services | %s", r.site.BusinessName),
		Description: fmt.Sprintf("All services offered by %s.", r.site.BusinessName),
		Canonical:   r.canonical(ServicesHubDir),
	}, d)
}

// AreasHubPage renders areas/index.html.
func (r *Renderer) AreasHubPage(areas []catalog.Area) (string, error) {
	d := DepthOf(AreasHubDir)
	body := hubBody{
		Prefix:  d.Prefix(),
		Heading: "Areas we serve",
		Intro:   fmt.Sprintf("%s works with local businesses across these communities.", r.site.BusinessName),
		Links:   areaLinks(d, areas, len(areas)),
	}
	return r.page("hub", body, pageData{
		Title:       fmt.Sprintf("Areas | %s", r.site.BusinessName),
		Description: fmt.Sprintf("Cities and neighborhoods served by %s.", r.site.BusinessName),
		Canonical:   r.canonical(AreasHubDir),
	}, d)
}

// page renders the named body template and wraps it in the layout.
func (r *Renderer) page(kind string, body any, data pageData, d Depth) (string, error) {
	var bodyBuf bytes.Buffer
	if err := r.bodies.ExecuteTemplate(&bodyBuf, kind, body); err != nil {
		return "", fmt.Errorf("rendering %s body: %w", kind, err)
	}

	data.Prefix = d.Prefix()
	data.Head = template.HTML(headTags(data.Title, data.Description, data.Canonical))
	data.Header = template.HTML(Header(r.site, d))
	data.Body = template.HTML(bodyBuf.String())
	data.Footer = template.HTML(Footer(r.site, d))

	var out bytes.Buffer
	if err := r.layout.Execute(&out, data); err != nil {
		return "", fmt.Errorf("rendering %s layout: %w", kind, err)
	}
	return out.String(), nil
}

// headTags renders the title, description and canonical link with Escape so
// they match the header and footer text byte for byte.
func headTags(title, description, canonical string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  <title>%s</title>\n", Escape(title))
	fmt.Fprintf(&b, "  <meta name=\"description\" content=\"%s\" />", Escape(description))
	if canonical != "" {
		fmt.Fprintf(&b, "\n  <link rel=\"canonical\" href=\"%s\" />", Escape(canonical))
	}
	return b.String()
}

func (r *Renderer) canonical(dir string) string {
	if r.site.BaseURL == "" {
		return ""
	}
	return r.site.BaseURL + "/" + dir
}

func otherServices(services []catalog.Service, self string) []catalog.Service {
	out := make([]catalog.Service, 0, len(services))
	for _, s := range services {
		if s.Slug != self {
			out = append(out, s)
		}
	}
	return out
}

func otherAreas(areas []catalog.Area, self string) []catalog.Area {
	out := make([]catalog.Area, 0, len(areas))
	for _, a := range areas {
		if a.Slug != self {
			out = append(out, a)
		}
	}
	return out
}

func serviceLinks(d Depth, services []catalog.Service, limit int) []Link {
	services = capped(services, limit)
	links := make([]Link, len(services))
	for i, s := range services {
		links[i] = Link{Href: d.Href(ServiceDir(s.Slug)), Text: s.Title}
	}
	return links
}

func areaLinks(d Depth, areas []catalog.Area, limit int) []Link {
	areas = capped(areas, limit)
	links := make([]Link, len(areas))
	for i, a := range areas {
		links[i] = Link{Href: d.Href(AreaDir(a.Slug)), Text: a.Name}
	}
	return links
}

func capped[T any](items []T, limit int) []T {
	if limit < len(items) {
		return items[:limit]
	}
	return items
}
