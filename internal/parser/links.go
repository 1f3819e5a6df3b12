// internal/parser/links.go
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"webrank/internal/urlutil"
)

// anything with an explicit non-http scheme (mailto, javascript, tel, data,
// ftp, ...) is refused before resolution turns it into a path segment
var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// ExtractLinks pulls every <a href> out of an HTML document and returns the
// absolute, normalised URLs in document order. Duplicates are kept: one page
// linking to the same destination ten times is ten edges, and PageRank
// counts them that way. Invalid, oversized, or non-http(s) hrefs are
// dropped. Malformed HTML parses on a best-effort basis.
func ExtractLinks(htmlBody []byte, baseURL string) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if u := resolveHref(baseURL, href); u != "" {
			links = append(links, u)
		}
	})
	return links
}

// resolveHref converts one raw href into an admissible absolute URL, or ""
// if the link should be ignored.
func resolveHref(base, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return ""
	}
	if len(raw) > urlutil.MaxURLLen {
		return ""
	}

	if m := schemeRe.FindString(raw); m != "" {
		scheme := strings.ToLower(m[:len(m)-1])
		if scheme != "http" && scheme != "https" {
			return ""
		}
	}

	abs := urlutil.ResolveRelative(base, raw)
	abs = urlutil.Normalize(abs)
	if !urlutil.IsValid(abs) {
		return ""
	}
	return abs
}
