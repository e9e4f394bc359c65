package domain

import (
	"regexp"
	"strings"
)

// titlePrefixRe strips wire-style prefixes such as "[속보]" or "(종합)" so
// near-identical syndicated articles dedupe to one entry.
var titlePrefixRe = regexp.MustCompile(`^\[.*?\]|\(.*?\)`)

// htmlReplacer undoes the markup Naver injects into search results: <b> hit
// highlighting plus the handful of entities it emits.
var htmlReplacer = strings.NewReplacer(
	"<b>", "",
	"</b>", "",
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&apos;", "'",
)

// CleanNewsText removes Naver search markup from a title or description.
func CleanNewsText(s string) string {
	return strings.TrimSpace(htmlReplacer.Replace(s))
}

// normalizeTitle produces the dedupe key for an article title.
func normalizeTitle(title string) string {
	title = CleanNewsText(title)
	title = titlePrefixRe.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

// DedupeArticles cleans article text, drops articles whose normalized title
// was already seen, and caps the result at max (unlimited when max <= 0).
// Order is preserved; the first occurrence of a title wins.
func DedupeArticles(articles []Article, max int) []Article {
	seen := make(map[string]bool, len(articles))
	out := make([]Article, 0, len(articles))

	for _, a := range articles {
		key := normalizeTitle(a.Title)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		a.Title = CleanNewsText(a.Title)
		a.Description = CleanNewsText(a.Description)
		out = append(out, a)

		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}
