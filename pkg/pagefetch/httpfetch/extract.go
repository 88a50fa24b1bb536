package httpfetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sitecheck/pkg/pagefetch"
)

const invisibleSelector = "script, style, noscript"

type extracted struct {
	title       *string
	description *string
	text        string
}

func extract(doc *goquery.Document) extracted {
	doc.Find(invisibleSelector).Remove()

	description := nonBlank(doc.Find(`meta[name="description"]`).First().AttrOr("content", ""))
	if description == nil {
		description = nonBlank(doc.Find(`meta[property="og:description"]`).First().AttrOr("content", ""))
	}

	return extracted{
		title:       nonBlank(doc.Find("title").First().Text()),
		description: description,
		text:        truncate(collapseSpace(doc.Find("body").Text()), pagefetch.MaxTextSample),
	}
}

func nonBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}

	return s
}
