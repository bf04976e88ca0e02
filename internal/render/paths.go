package render

import (
	"path"
	"strings"
)

// Depth is how many directories below the site root a page is written.
type Depth int

const (
	Root Depth = iota
	OneLevel
	TwoLevels
)

// Prefix returns the relative path from a page at this depth back to the
// site root: "", "../" or "../../".
func (d Depth) Prefix() string {
	if d <= Root {
		return ""
	}
	return strings.Repeat("../", int(d))
}

// Href joins the root prefix with a site-relative path.
func (d Depth) Href(sitePath string) string {
	return d.Prefix() + strings.TrimPrefix(sitePath, "/")
}

// DepthOf returns the depth of a page written inside dir, a slash-separated
// path relative to the site root ("" or "." is the root itself).
func DepthOf(dir string) Depth {
	dir = strings.Trim(path.Clean("/"+dir), "/")
	if dir == "" {
		return Root
	}
	return Depth(strings.Count(dir, "/") + 1)
}

// Site-relative directories for each page kind. All end in a slash so they
// can be used directly as link targets.

func ServiceDir(slug string) string { return "services/" + slug + "/" }

func AreaDir(slug string) string { return "areas/" + slug + "/" }

func ComboDir(serviceSlug, areaSlug string) string {
	return serviceSlug + "-in-" + areaSlug + "/"
}

const (
	ServicesHubDir = "services/"
	AreasHubDir    = "areas/"
)
