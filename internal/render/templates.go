package render

// layoutTemplate wraps every generated page. Head, Header, Body and Footer
// arrive pre-rendered; Schemas are JSON-LD documents.
const layoutTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
{{.Head}}
  <link rel="stylesheet" href="{{.Prefix}}style.css" />
  <link rel="stylesheet" href="{{.Prefix}}assets/css/toolkit.css" />
{{- range .Schemas}}
  <script type="application/ld+json">{{.}}</script>
{{- end}}
</head>
<body>
{{.Header}}
<main>
  <div class="wrap" style="padding: 48px 20px;">
{{.Body}}
  </div>
</main>
{{.Footer}}
</body>
</html>
`

// Body templates, one per page kind. Shared pieces are defined once.
const bodyTemplates = `
{{define "cta"}}    <p class="top16"><a href="{{.}}index.html#contact" class="btn primary tk-btn-quote" data-tk-open-lead>Get a Free Quote</a></p>{{end}}

{{define "links"}}{{range $i, $l := .}}{{if $i}} · {{end}}<a href="{{$l.Href}}" class="link">{{$l.Text}}</a>{{end}}{{end}}

{{define "faq"}}{{if .}}
    <section class="scroll-margin" style="margin-top: 32px;"><h2>FAQ</h2><dl>{{range .}}<dt><strong>{{.Q}}</strong></dt><dd class="muted">{{.A}}</dd>{{end}}</dl></section>{{end}}{{end}}

{{define "service"}}    <h1 style="margin: 0 0 8px;">{{.Service.Title}}</h1>
    <p class="muted">{{.Service.ShortDescription}}</p>
{{- if .BodyHTML}}
    <div class="prose">{{.BodyHTML}}</div>
{{- end}}
{{template "cta" .Prefix}}
{{- template "faq" .Service.FAQ}}
    <section style="margin-top: 32px;">
      <h2>Other services</h2>
      <p class="muted">{{template "links" .OtherServices}}</p>
    </section>
    <section style="margin-top: 16px;">
      <h2>Areas we serve</h2>
      <p class="muted">{{template "links" .Areas}}</p>
    </section>{{end}}

{{define "area"}}    <h1 style="margin: 0 0 8px;">Web design &amp; local SEO in {{.Area.Name}}</h1>
    <p class="muted">We serve {{.Area.Name}} and the surrounding area. Get a fast, mobile-friendly website and local search visibility.</p>
{{template "cta" .Prefix}}
    <section style="margin-top: 32px;">
      <h2>Our services in {{.Area.Name}}</h2>
      <p class="muted">{{template "links" .Services}}</p>
    </section>
    <section style="margin-top: 16px;">
      <h2>Nearby areas</h2>
      <p class="muted">{{template "links" .OtherAreas}}</p>
    </section>{{end}}

{{define "combo"}}    <h1 style="margin: 0 0 8px;">{{.Service.Title}} in {{.Area.Name}}</h1>
    <p class="muted">{{.Service.ShortDescription}} Serving {{.Area.Name}} and the surrounding area.</p>
{{template "cta" .Prefix}}
{{- template "faq" .Service.FAQ}}
    <section style="margin-top: 32px;">
      <p class="muted">Other services: {{template "links" .OtherServices}}. Other areas: {{template "links" .OtherAreas}}.</p>
    </section>{{end}}

{{define "hub"}}    <h1 style="margin: 0 0 8px;">{{.Heading}}</h1>
    <p class="muted">{{.Intro}}</p>
{{template "cta" .Prefix}}
    <ul class="hub-list">
{{- range .Links}}
      <li><a href="{{.Href}}" class="link">{{.Text}}</a></li>
{{- end}}
    </ul>{{end}}
`
