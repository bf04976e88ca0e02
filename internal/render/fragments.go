package render

import (
	"fmt"
	"strings"
)

// Site holds the business-wide values every page needs.
type Site struct {
	BusinessName string
	Region       string
	// BaseURL, when set, is used for canonical links. No trailing slash.
	BaseURL string
}

// Header returns the shared navigation. Every internal link is relative to
// the page's depth.
func Header(site Site, d Depth) string {
	name := Escape(site.BusinessName)
	var b strings.Builder
	b.WriteString("\n<header>\n  <div class=\"wrap\">\n    <nav>\n")
	fmt.Fprintf(&b, "      <div class=\"logo\"><a href=\"%s\">%s</a></div>\n", d.Href("index.html"), name)
	b.WriteString("      <div class=\"links\">\n")
	fmt.Fprintf(&b, "        <a href=\"%s\">Services</a>\n", d.Href("index.html#services"))
	fmt.Fprintf(&b, "        <a href=\"%s\">All Services</a>\n", d.Href("services/index.html"))
	fmt.Fprintf(&b, "        <a href=\"%s\">Areas</a>\n", d.Href("areas/index.html"))
	fmt.Fprintf(&b, "        <a href=\"%s\">Contact</a>\n", d.Href("index.html#contact"))
	b.WriteString("      </div>\n")
	b.WriteString("      <div class=\"nav-cta tk-nav-cta\">\n")
	b.WriteString("        <a class=\"btn tk-btn-call\" href=\"#\">Call</a>\n")
	fmt.Fprintf(&b, "        <a class=\"btn primary tk-btn-quote\" href=\"%s\" data-tk-open-lead>Get Free Quote</a>\n", d.Href("index.html#contact"))
	b.WriteString("      </div>\n    </nav>\n  </div>\n</header>")
	return b.String()
}

// Footer returns the footer links, the lead-capture modal, the floating call
// button and the client scripts. config.js must come before toolkit.js: the
// toolkit reads the globals config.js defines.
func Footer(site Site, d Depth) string {
	name := Escape(site.BusinessName)
	var b strings.Builder
	b.WriteString("\n<footer>\n  <div class=\"wrap small\">\n")
	fmt.Fprintf(&b, "    <a href=\"%s\">Privacy &amp; SMS</a> · <a href=\"%s\">Leave a review</a> · %s",
		d.Href("privacy.html"), d.Href("review.html"), name)
	if site.Region != "" {
		fmt.Fprintf(&b, " · %s", Escape(site.Region))
	}
	b.WriteString("\n  </div>\n</footer>\n")
	b.WriteString(leadModal(site))
	b.WriteString(`
<div id="tk-fab-wrap" class="tk-fab-wrap" aria-hidden="true">
  <a href="#" class="tk-fab" aria-label="Call us">&#x260E;</a>
</div>
`)
	fmt.Fprintf(&b, "\n<script src=\"%s\"></script>\n", d.Href("assets/js/config.js"))
	fmt.Fprintf(&b, "<script src=\"%s\"></script>", d.Href("assets/js/toolkit.js"))
	return b.String()
}

// leadModal is the overlay the toolkit opens for any [data-tk-open-lead]
// control. Field names are the ones the toolkit posts to the lead webhook.
func leadModal(site Site) string {
	return fmt.Sprintf(`
<div id="tk-lead-modal" class="tk-modal-overlay" role="dialog" aria-modal="true" aria-labelledby="tk-lead-title" aria-hidden="true">
  <div class="tk-modal">
    <button type="button" class="tk-modal-close" data-tk-close-lead aria-label="Close">&times;</button>
    <h2 id="tk-lead-title">Get a free quote from %s</h2>
    <form id="tk-lead-form" novalidate>
      <label>Name <input type="text" name="name" autocomplete="name" required /></label>
      <label>Phone <input type="tel" name="phone" autocomplete="tel" required /></label>
      <label>Service <select name="serviceNeeded" required></select></label>
      <label>City or ZIP <input type="text" name="zipOrCity" required /></label>
      <label>Preferred date <input type="date" name="preferredDate" /></label>
      <label>Preferred time <input type="time" name="preferredTime" /></label>
      <label>Notes <textarea name="notes" rows="3"></textarea></label>
      <label class="tk-consent"><input type="checkbox" name="smsConsent" /> I agree to receive text messages about my request.</label>
      <p class="tk-message success" role="status"></p>
      <p class="tk-message error" role="alert"></p>
      <p class="tk-message not-configured"></p>
      <button type="submit" class="btn primary tk-btn-submit">Get Free Quote</button>
    </form>
  </div>
</div>
`, Escape(site.BusinessName))
}
