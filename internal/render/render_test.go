package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/kwebdev/pagegen/internal/catalog"
)

var ldJSONRe = regexp.MustCompile(`(?s)<script type="application/ld\+json">(.*?)</script>`)

func testSite() Site {
	return Site{BusinessName: "KWebDevelopment", Region: "TX / DFW"}
}

func newTestRenderer(t *testing.T, site Site) *Renderer {
	t.Helper()
	r, err := New(site)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func sampleServices(n int) []catalog.Service {
	out := make([]catalog.Service, n)
	for i := range out {
		out[i] = catalog.Service{
			Slug:  fmt.Sprintf("service-%d", i),
			Title: fmt.Sprintf("Service %d", i),
		}
	}
	return out
}

func sampleAreas(n int) []catalog.Area {
	out := make([]catalog.Area, n)
	for i := range out {
		out[i] = catalog.Area{Slug: fmt.Sprintf("area-%d", i), Name: fmt.Sprintf("Area %d", i)}
	}
	return out
}

// schemas returns every JSON-LD document in the page, decoded.
func schemas(t *testing.T, html string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, m := range ldJSONRe.FindAllStringSubmatch(html, -1) {
		var doc map[string]any
		if err := json.Unmarshal([]byte(m[1]), &doc); err != nil {
			t.Fatalf("invalid JSON-LD %q: %v", m[1], err)
		}
		out = append(out, doc)
	}
	return out
}

func schemaOfType(t *testing.T, html, typ string) map[string]any {
	t.Helper()
	for _, doc := range schemas(t, html) {
		if doc["@type"] == typ {
			return doc
		}
	}
	return nil
}

// section returns the markup between an h2 heading and the end of its section.
func section(html, heading string) string {
	start := strings.Index(html, "<h2>"+heading+"</h2>")
	if start < 0 {
		return ""
	}
	rest := html[start:]
	if end := strings.Index(rest, "</section>"); end >= 0 {
		return rest[:end]
	}
	return rest
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{`<script>alert("x")</script>`, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;"},
		{"Tom & Jerry", "Tom &amp; Jerry"},
		{"it's", "it's"},
		{"&amp;", "&amp;amp;"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		dir    string
		depth  Depth
		prefix string
	}{
		{"", Root, ""},
		{".", Root, ""},
		{"/", Root, ""},
		{"web-design-in-plano/", OneLevel, "../"},
		{"services/", OneLevel, "../"},
		{"services/web-design/", TwoLevels, "../../"},
		{"areas/plano", TwoLevels, "../../"},
	}
	for _, tt := range tests {
		d := DepthOf(tt.dir)
		if d != tt.depth {
			t.Errorf("DepthOf(%q) = %d, want %d", tt.dir, d, tt.depth)
		}
		if got := d.Prefix(); got != tt.prefix {
			t.Errorf("DepthOf(%q).Prefix() = %q, want %q", tt.dir, got, tt.prefix)
		}
	}

	if got := TwoLevels.Href("/assets/js/config.js"); got != "../../assets/js/config.js" {
		t.Errorf("Href = %q", got)
	}
	if got := Root.Href("index.html"); got != "index.html" {
		t.Errorf("root Href = %q", got)
	}
}

func TestPageDirs(t *testing.T) {
	if got := ServiceDir("web-design"); got != "services/web-design/" {
		t.Errorf("ServiceDir = %q", got)
	}
	if got := AreaDir("plano"); got != "areas/plano/" {
		t.Errorf("AreaDir = %q", got)
	}
	if got := ComboDir("web-design", "plano"); got != "web-design-in-plano/" {
		t.Errorf("ComboDir = %q", got)
	}
}

func TestFAQSchema(t *testing.T) {
	if got := FAQSchema(nil); got != "" {
		t.Errorf("FAQSchema(nil) = %q, want empty", got)
	}

	faq := []catalog.FAQEntry{{Q: "First?", A: "One."}, {Q: "Second?", A: "Two <b>bold</b>."}}
	var doc struct {
		Context    string `json:"@context"`
		Type       string `json:"@type"`
		MainEntity []struct {
			Type           string `json:"@type"`
			Name           string `json:"name"`
			AcceptedAnswer struct {
				Type string `json:"@type"`
				Text string `json:"text"`
			} `json:"acceptedAnswer"`
		} `json:"mainEntity"`
	}
	raw := FAQSchema(faq)
	if strings.Contains(raw, "<b>") {
		t.Errorf("schema should escape angle brackets, got %s", raw)
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Context != "https://schema.org" || doc.Type != "FAQPage" {
		t.Errorf("unexpected header: %+v", doc)
	}
	if len(doc.MainEntity) != 2 {
		t.Fatalf("mainEntity = %d, want 2", len(doc.MainEntity))
	}
	if doc.MainEntity[1].Name != "Second?" || doc.MainEntity[1].AcceptedAnswer.Text != "Two <b>bold</b>." {
		t.Errorf("unexpected second entry: %+v", doc.MainEntity[1])
	}
	if doc.MainEntity[0].Type != "Question" || doc.MainEntity[0].AcceptedAnswer.Type != "Answer" {
		t.Errorf("unexpected types: %+v", doc.MainEntity[0])
	}
}

func TestLocalBusinessSchema(t *testing.T) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(LocalBusinessSchema("Acme", "")), &doc); err != nil {
		t.Fatal(err)
	}
	if doc["name"] != "Acme" || doc["@type"] != "LocalBusiness" {
		t.Errorf("unexpected doc: %v", doc)
	}
	if _, ok := doc["areaServed"]; ok {
		t.Error("areaServed should be omitted without an area")
	}

	doc = nil
	if err := json.Unmarshal([]byte(LocalBusinessSchema("Acme", "Plano")), &doc); err != nil {
		t.Fatal(err)
	}
	served, ok := doc["areaServed"].(map[string]any)
	if !ok {
		t.Fatalf("areaServed missing: %v", doc)
	}
	if served["@type"] != "City" || served["name"] != "Plano" {
		t.Errorf("unexpected areaServed: %v", served)
	}
}

func TestFooterScriptOrder(t *testing.T) {
	for _, d := range []Depth{Root, OneLevel, TwoLevels} {
		f := Footer(testSite(), d)
		cfg := strings.Index(f, `<script src="`+d.Prefix()+`assets/js/config.js"></script>`)
		kit := strings.Index(f, `<script src="`+d.Prefix()+`assets/js/toolkit.js"></script>`)
		if cfg < 0 || kit < 0 {
			t.Fatalf("depth %d: script includes missing:\n%s", d, f)
		}
		if cfg > kit {
			t.Errorf("depth %d: config.js must load before toolkit.js", d)
		}
		for _, marker := range []string{`id="tk-fab-wrap"`, `id="tk-lead-modal"`, `id="tk-lead-form"`, `data-tk-close-lead`} {
			if !strings.Contains(f, marker) {
				t.Errorf("depth %d: footer missing %s", d, marker)
			}
		}
	}
}

func TestHeaderLinksUsePrefix(t *testing.T) {
	h := Header(Site{BusinessName: "A & B"}, TwoLevels)
	for _, href := range []string{
		`href="../../index.html"`,
		`href="../../services/index.html"`,
		`href="../../areas/index.html"`,
		`href="../../index.html#contact"`,
	} {
		if !strings.Contains(h, href) {
			t.Errorf("header missing %s", href)
		}
	}
	if !strings.Contains(h, "A &amp; B") {
		t.Error("business name should be escaped")
	}
	if !strings.Contains(h, "data-tk-open-lead") {
		t.Error("header quote button should open the lead modal")
	}
}

func TestServicePageWithoutFAQ(t *testing.T) {
	r := newTestRenderer(t, testSite())
	services := sampleServices(2)
	html, err := r.ServicePage(services[0], services, sampleAreas(1), TwoLevels)
	if err != nil {
		t.Fatal(err)
	}
	if schemaOfType(t, html, "FAQPage") != nil {
		t.Error("service without FAQ must not emit FAQPage JSON-LD")
	}
	if strings.Contains(html, `<script type="application/ld+json"></script>`) {
		t.Error("empty JSON-LD script tag emitted")
	}
	if strings.Contains(html, "<h2>FAQ</h2>") {
		t.Error("FAQ section should be omitted")
	}
	if !strings.Contains(html, `<meta name="description" content="Professional Service 0 for local businesses." />`) {
		t.Error("default description missing")
	}
}

func TestServicePageFAQ(t *testing.T) {
	r := newTestRenderer(t, testSite())
	svc := catalog.Service{
		Slug:             "web-design",
		Title:            "Web Design",
		ShortDescription: "Fast, mobile-friendly sites.",
		FAQ: []catalog.FAQEntry{
			{Q: "How long does it take?", A: "About two weeks."},
			{Q: "Do you host?", A: "Yes."},
			{Q: "Can I edit it?", A: "Of course."},
		},
	}
	html, err := r.ServicePage(svc, []catalog.Service{svc}, nil, TwoLevels)
	if err != nil {
		t.Fatal(err)
	}

	doc := schemaOfType(t, html, "FAQPage")
	if doc == nil {
		t.Fatal("FAQPage JSON-LD missing")
	}
	entities, _ := doc["mainEntity"].([]any)
	if len(entities) != len(svc.FAQ) {
		t.Fatalf("mainEntity = %d, want %d", len(entities), len(svc.FAQ))
	}
	for i, e := range entities {
		q := e.(map[string]any)
		if q["name"] != svc.FAQ[i].Q {
			t.Errorf("mainEntity[%d].name = %v, want %q", i, q["name"], svc.FAQ[i].Q)
		}
	}
	if !strings.Contains(html, "<h2>FAQ</h2>") {
		t.Error("FAQ section missing")
	}
	if !strings.Contains(html, "<title>Web Design | KWebDevelopment</title>") {
		t.Error("title missing")
	}
}

func TestServicePageCrossLinks(t *testing.T) {
	r := newTestRenderer(t, testSite())
	services := sampleServices(7)
	areas := sampleAreas(8)

	html, err := r.ServicePage(services[2], services, areas, TwoLevels)
	if err != nil {
		t.Fatal(err)
	}

	others := section(html, "Other services")
	if n := strings.Count(others, `class="link"`); n != 4 {
		t.Errorf("other services = %d, want 4", n)
	}
	if strings.Contains(others, "services/service-2/") {
		t.Error("service page must not link to itself")
	}
	// Original order, self skipped: 0, 1, 3, 4.
	for _, want := range []string{"service-0", "service-1", "service-3", "service-4"} {
		if !strings.Contains(others, `href="../../services/`+want+`/"`) {
			t.Errorf("other services missing %s", want)
		}
	}
	if strings.Contains(others, "service-5") {
		t.Error("cap of 4 exceeded")
	}

	areaSec := section(html, "Areas we serve")
	if n := strings.Count(areaSec, `class="link"`); n != 5 {
		t.Errorf("areas = %d, want 5", n)
	}
	if !strings.Contains(areaSec, `href="../../areas/area-0/"`) {
		t.Error("area links should be prefixed from the page depth")
	}
}

func TestServicePageSmallCatalog(t *testing.T) {
	r := newTestRenderer(t, testSite())
	services := sampleServices(3)
	html, err := r.ServicePage(services[0], services, nil, TwoLevels)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(section(html, "Other services"), `class="link"`); n != 2 {
		t.Errorf("other services = %d, want min(N-1, 4) = 2", n)
	}
}

func TestServicePageEscapesTitle(t *testing.T) {
	r := newTestRenderer(t, testSite())
	svc := catalog.Service{Slug: "xss", Title: "<script>alert(1)</script>", ShortDescription: `Say "hi" & <b>bye</b>`}
	html, err := r.ServicePage(svc, []catalog.Service{svc}, nil, TwoLevels)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("title rendered as live markup")
	}
	if !strings.Contains(html, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Error("escaped title missing")
	}
	if strings.Contains(html, "<b>bye</b>") {
		t.Error("description rendered as live markup")
	}
}

func TestServicePageMarkdownBody(t *testing.T) {
	r := newTestRenderer(t, testSite())
	svc := catalog.Service{
		Slug:  "web-design",
		Title: "Web Design",
		Body:  "## What you get\n\n- A **fast** site\n\n<script>bad()</script>\n",
	}
	html, err := r.ServicePage(svc, []catalog.Service{svc}, nil, TwoLevels)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, `<div class="prose">`) {
		t.Fatal("markdown body missing")
	}
	if !strings.Contains(html, "<strong>fast</strong>") {
		t.Error("markdown not converted")
	}
	if strings.Contains(html, "<script>bad()</script>") {
		t.Error("raw HTML in markdown must be dropped")
	}
}

func TestServicePageBodyHeadingsDemoted(t *testing.T) {
	r := newTestRenderer(t, testSite())
	svc := catalog.Service{
		Slug:  "web-design",
		Title: "Web Design",
		Body:  "# Why choose us\n\nWe build fast sites.\n\n## Process\n\nPlan, build, launch.\n",
	}
	html, err := r.ServicePage(svc, []catalog.Service{svc}, nil, TwoLevels)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(html, "<h1"); n != 1 {
		t.Fatalf("got %d <h1> elements, want 1", n)
	}
	if !strings.Contains(html, `<h2 id="why-choose-us">Why choose us</h2>`) {
		t.Error("level-one body heading not rendered as <h2>")
	}
	if !strings.Contains(html, `<h2 id="process">Process</h2>`) {
		t.Error("level-two body heading changed")
	}
}

func TestServicePageBodyCodeHighlighted(t *testing.T) {
	r := newTestRenderer(t, testSite())
	svc := catalog.Service{
		Slug:  "web-design",
		Title: "Web Design",
		Body:  "```go\nfunc main() {}\n```\n",
	}
	html, err := r.ServicePage(svc, []catalog.Service{svc}, nil, TwoLevels)
	if err != nil {
		t.Fatal(err)
	}
	prose := html[strings.Index(html, `<div class="prose">`):]
	i := strings.Index(prose, "<pre")
	if i < 0 {
		t.Fatal("code block missing")
	}
	pre := prose[i:]
	if !strings.Contains(pre[:strings.Index(pre, ">")], `style="`) {
		t.Error("code block not highlighted with inline styles")
	}
	if !strings.Contains(prose, "<span style=") {
		t.Error("code tokens not styled")
	}
	if !strings.Contains(prose, "main") {
		t.Error("code text missing")
	}
}

func TestHeadTextMatchesEscape(t *testing.T) {
	r := newTestRenderer(t, testSite())
	svc := catalog.Service{
		Slug:             "cpp",
		Title:            "C++ & Go's",
		ShortDescription: "Tuning for C++ shops & O'Brien's crew.",
	}
	html, err := r.ServicePage(svc, []catalog.Service{svc}, nil, TwoLevels)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"<title>C++ &amp; Go's | KWebDevelopment</title>",
		`<meta name="description" content="Tuning for C++ shops &amp; O'Brien's crew." />`,
	}
	for _, w := range want {
		if !strings.Contains(html, w) {
			t.Errorf("missing %q", w)
		}
	}
	head := html[:strings.Index(html, "</head>")]
	for _, bad := range []string{"&#43;", "&#39;"} {
		if strings.Contains(head, bad) {
			t.Errorf("head contains %q", bad)
		}
	}
}

func TestAreaPage(t *testing.T) {
	r := newTestRenderer(t, testSite())
	services := sampleServices(7)
	areas := sampleAreas(6)
	areas[1].Name = "Addison & Carrollton"

	html, err := r.AreaPage(areas[1], services, areas, TwoLevels)
	if err != nil {
		t.Fatal(err)
	}

	doc := schemaOfType(t, html, "LocalBusiness")
	if doc == nil {
		t.Fatal("LocalBusiness JSON-LD missing")
	}
	served, _ := doc["areaServed"].(map[string]any)
	if served["name"] != areas[1].Name {
		t.Errorf("areaServed.name = %v, want %q", served["name"], areas[1].Name)
	}
	if doc["name"] != "KWebDevelopment" {
		t.Errorf("business name = %v", doc["name"])
	}

	if !strings.Contains(html, "<title>Addison &amp; Carrollton | KWebDevelopment — Web Design &amp; Local SEO</title>") {
		t.Error("area title missing or unescaped")
	}

	svcSec := section(html, "Our services in Addison &amp; Carrollton")
	if n := strings.Count(svcSec, `class="link"`); n != 5 {
		t.Errorf("service links = %d, want 5", n)
	}
	nearby := section(html, "Nearby areas")
	if n := strings.Count(nearby, `class="link"`); n != 4 {
		t.Errorf("nearby areas = %d, want 4", n)
	}
	if strings.Contains(nearby, "areas/area-1/") {
		t.Error("area page must not link to itself")
	}
}

func TestComboPage(t *testing.T) {
	r := newTestRenderer(t, testSite())
	services := sampleServices(5)
	services[0].FAQ = []catalog.FAQEntry{{Q: "Q?", A: "A."}}
	services[0].ShortDescription = "Sites that convert."
	areas := sampleAreas(5)

	html, err := r.ComboPage(services[0], areas[0], services, areas)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(html, "<title>Service 0 in Area 0 | KWebDevelopment</title>") {
		t.Error("combo title missing")
	}
	if !strings.Contains(html, `content="Service 0 in Area 0. Sites that convert."`) {
		t.Error("combo description missing")
	}
	if schemaOfType(t, html, "FAQPage") == nil {
		t.Error("combo FAQ JSON-LD missing")
	}
	if schemaOfType(t, html, "LocalBusiness") == nil {
		t.Error("combo LocalBusiness JSON-LD missing")
	}
	if !strings.Contains(html, `href="../style.css"`) {
		t.Error("combo pages sit one level deep")
	}

	compact := html[strings.Index(html, "Other services:"):]
	compact = compact[:strings.Index(compact, "</p>")]
	otherSvc := compact[:strings.Index(compact, "Other areas:")]
	otherArea := compact[strings.Index(compact, "Other areas:"):]
	if n := strings.Count(otherSvc, `class="link"`); n != 3 {
		t.Errorf("combo other services = %d, want 3", n)
	}
	if n := strings.Count(otherArea, `class="link"`); n != 3 {
		t.Errorf("combo other areas = %d, want 3", n)
	}
	if strings.Contains(otherSvc, "service-0/") || strings.Contains(otherArea, "area-0/") {
		t.Error("combo page must exclude its own service and area")
	}
}

func TestComboPageWithoutFAQ(t *testing.T) {
	r := newTestRenderer(t, testSite())
	services := sampleServices(1)
	areas := sampleAreas(1)
	html, err := r.ComboPage(services[0], areas[0], services, areas)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(schemas(t, html)); got != 1 {
		t.Errorf("schemas = %d, want only LocalBusiness", got)
	}
}

func TestSingleH1AndStructure(t *testing.T) {
	r := newTestRenderer(t, testSite())
	services := sampleServices(3)
	areas := sampleAreas(3)

	pages := map[string]func() (string, error){
		"service": func() (string, error) { return r.ServicePage(services[0], services, areas, TwoLevels) },
		"area":    func() (string, error) { return r.AreaPage(areas[0], services, areas, TwoLevels) },
		"combo":   func() (string, error) { return r.ComboPage(services[0], areas[0], services, areas) },
		"hub":     func() (string, error) { return r.ServicesHubPage(services) },
	}
	for name, render := range pages {
		html, err := render()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if n := strings.Count(html, "<h1"); n != 1 {
			t.Errorf("%s: <h1> count = %d, want 1", name, n)
		}
		if !strings.HasPrefix(html, "<!doctype html>") {
			t.Errorf("%s: missing doctype", name)
		}
		if !strings.Contains(html, "data-tk-open-lead") {
			t.Errorf("%s: CTA marker missing", name)
		}
		if !strings.Contains(html, `id="tk-lead-modal"`) {
			t.Errorf("%s: lead modal missing", name)
		}
	}
}

func TestHubPages(t *testing.T) {
	r := newTestRenderer(t, testSite())
	services := sampleServices(9)
	html, err := r.ServicesHubPage(services)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(html, `class="link"`); n != 9 {
		t.Errorf("hub links = %d, want all 9", n)
	}
	if !strings.Contains(html, `href="../services/service-8/"`) {
		t.Error("hub links should be relative to services/")
	}

	html, err = r.AreasHubPage(sampleAreas(2))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, `href="../areas/area-1/"`) {
		t.Error("areas hub link missing")
	}
}

func TestCanonical(t *testing.T) {
	site := testSite()
	site.BaseURL = "https://example.com/"
	r := newTestRenderer(t, site)
	services := sampleServices(1)
	html, err := r.ServicePage(services[0], services, nil, TwoLevels)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, `<link rel="canonical" href="https://example.com/services/service-0/" />`) {
		t.Error("canonical link missing")
	}

	r = newTestRenderer(t, testSite())
	html, _ = r.ServicePage(services[0], services, nil, TwoLevels)
	if strings.Contains(html, `rel="canonical"`) {
		t.Error("canonical link should be omitted without base_url")
	}
}

func TestDeterministic(t *testing.T) {
	r := newTestRenderer(t, testSite())
	services := sampleServices(4)
	services[1].FAQ = []catalog.FAQEntry{{Q: "a", A: "b"}}
	areas := sampleAreas(3)

	first, err := r.ComboPage(services[1], areas[2], services, areas)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := r.ComboPage(services[1], areas[2], services, areas)
	if first != second {
		t.Error("rendering is not deterministic")
	}
}
