package parser

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"webrank/internal/storage"
)

// ParseHTML walks the token stream once and builds the archive record for a
// crawled page: title plus a bounded slice of body text. Token and text caps
// keep pathological pages cheap.
func ParseHTML(currURL string, content []byte) storage.Webpage {
	z := html.NewTokenizer(bytes.NewReader(content))
	tokenCount := 0
	bodyStarted := false
	textLen := 0
	wp := storage.Webpage{URL: currURL}

	for {
		if z.Next() == html.ErrorToken || tokenCount > 500 {
			break
		}
		t := z.Token()

		if t.Type == html.StartTagToken {
			switch t.Data {
			case "title":
				if z.Next() == html.TextToken {
					wp.Title = strings.TrimSpace(z.Token().Data)
				}
			case "body":
				bodyStarted = true
			case "script", "style":
				z.Next() // skip contents
			}
		}

		if bodyStarted && t.Type == html.TextToken && textLen < 500 {
			txt := strings.TrimSpace(t.Data)
			if txt != "" {
				if wp.Content != "" {
					wp.Content += " "
				}
				wp.Content += txt
				textLen += len(txt)
			}
		}
		tokenCount++
	}

	wp.WordCount = len(strings.Fields(wp.Content))
	return wp
}
