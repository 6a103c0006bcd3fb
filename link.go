package dropwatch

import (
	"regexp"
	"slices"
	"strings"
)

// LinkHost is the host that serves the shared content we look for.
const LinkHost = "gofile.io"

// LinkPrefix is the canonical prefix of every candidate link.
const LinkPrefix = "https://" + LinkHost + "/d/"

// linkRe matches gofile share links with or without a scheme. Protocol-relative
// ("//gofile.io/d/x") and bare ("gofile.io/d/x") forms are accepted.
var linkRe = regexp.MustCompile(`(?i:https?:)?(?://)?(?i:www\.)?(?i:gofile\.io)/d/([0-9A-Za-z]+)`)

// escapedSlashes lists serialized forms of "/" found in JSON and JS payloads.
var escapedSlashes = strings.NewReplacer(
	`\/`, "/",
	`\u002f`, "/",
	`\u002F`, "/",
)

// ExtractLinks returns the unique candidate links contained in text.
// The text may be HTML, XML or JSON; JSON-escaped slashes are unescaped
// before scanning. Every link is normalized to the canonical https form.
// The result is in order of first occurrence; callers that need a stable
// iteration order independent of the input should use SortLinks.
func ExtractLinks(text string) []string {
	ids := findLinkIDs(escapedSlashes.Replace(text), -1)
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(ids))
	links := make([]string, 0, len(ids))
	for _, id := range ids {
		link := LinkPrefix + id
		if seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
	}
	return links
}

// NormalizeLink returns the canonical form of a single candidate link.
// The bool result is false if s does not contain a candidate link.
func NormalizeLink(s string) (string, bool) {
	ids := findLinkIDs(escapedSlashes.Replace(s), 1)
	if len(ids) == 0 {
		return "", false
	}
	return LinkPrefix + ids[0], true
}

// findLinkIDs returns up to n link identifiers found in text, or all of them
// if n is negative. A match only counts when the link starts at a boundary,
// so the host cannot be the tail of another host name ("notgofile.io") or a
// path segment of another URL ("evil.example/gofile.io").
func findLinkIDs(text string, n int) []string {
	var ids []string
	for pos := 0; pos < len(text) && n != 0; {
		loc := linkRe.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		if start > 0 && !isLinkBoundary(text[start-1]) {
			pos = start + 1
			continue
		}
		ids = append(ids, text[pos+loc[2]:pos+loc[3]])
		pos += loc[1]
		n--
	}
	return ids
}

// isLinkBoundary reports whether c may precede a link.
func isLinkBoundary(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return false
	}
	return !strings.ContainsRune("._-/@%", rune(c))
}

// SortLinks returns a sorted, de-duplicated copy of links.
func SortLinks(links []string) []string {
	out := slices.Clone(links)
	slices.Sort(out)
	return slices.Compact(out)
}
