// Package textutil holds the whitespace canonicalization shared by every
// stage of the extraction pipeline.
package textutil

import (
	"regexp"
	"strings"
)

// Exotic spaces that show up in the verification page family: non-breaking
// space, narrow no-break space, figure space.
var spaceReplacer = strings.NewReplacer(
	"\u00a0", " ",
	"\u202f", " ",
	"\u2007", " ",
)

var spaceRun = regexp.MustCompile(`[ \t]+`)

// NormalizeSpace canonicalizes whitespace: carriage returns are stripped,
// unicode space variants become plain spaces, runs of spaces and tabs
// collapse to one space, and the ends are trimmed. Newlines are preserved;
// later stages split on them. Idempotent.
func NormalizeSpace(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r", "")
	s = spaceReplacer.Replace(s)
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
