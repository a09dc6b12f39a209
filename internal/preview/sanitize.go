package preview

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	breakTags  = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</li>|</div>`)
	bulletTags = regexp.MustCompile(`(?i)<li[^>]*>`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
)

// PlainText flattens description markup into terminal text. Line breaks,
// paragraph and list boundaries survive as newlines; every tag is removed.
func PlainText(markup string) string {
	trimmed := strings.TrimSpace(markup)
	if trimmed == "" {
		return ""
	}
	withBreaks := breakTags.ReplaceAllString(trimmed, "\n")
	withBreaks = bulletTags.ReplaceAllString(withBreaks, "• ")
	stripped := html.UnescapeString(sanitizer().Sanitize(withBreaks))

	lines := strings.Split(stripped, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	out := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(out)
}

func sanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
