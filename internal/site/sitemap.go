package site

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// SitemapFile is written at the output root when a base URL is configured.
const SitemapFile = "sitemap.xml"

// buildSitemap lists the site root followed by every page directory, in
// generation order. No lastmod is written so reruns stay byte-identical.
func buildSitemap(baseURL string, dirs []string) []byte {
	base := strings.TrimRight(baseURL, "/")

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	writeURL(&buf, base+"/")
	for _, dir := range dirs {
		writeURL(&buf, base+"/"+dir)
	}
	buf.WriteString("</urlset>\n")
	return buf.Bytes()
}

func writeURL(buf *bytes.Buffer, loc string) {
	buf.WriteString("  <url>\n    <loc>")
	_ = xml.EscapeText(buf, []byte(loc))
	buf.WriteString("</loc>\n    <changefreq>weekly</changefreq>\n  </url>\n")
}
