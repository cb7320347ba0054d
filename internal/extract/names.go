package extract

import (
	"regexp"
	"strings"

	"github.com/drawproof/drawproof/internal/textutil"
)

var (
	// doubleIndexed matches "12. 3. Some Name": a spot number followed by a
	// draw position. Specific enough to be trusted without further checks.
	doubleIndexed = regexp.MustCompile(`^\s*\d+\.\s*\d+\.\s*(.+?)\s*$`)

	// singleIndexed matches "3. Some Name".
	singleIndexed = regexp.MustCompile(`^\s*\d+\.\s*(.+?)\s*$`)

	digitsOnly   = regexp.MustCompile(`^\d+$`)
	leadingIndex = regexp.MustCompile(`^\d+ (\S.*)$`)
)

// headingFragments are substrings that mark a line as stray heading text
// rather than a participant name.
var headingFragments = []string{"result of round", "round #", "verification"}

// Names converts one normalized chunk into its ordered list of participant
// names. Lines that match neither numbered pattern are prose and are skipped
// silently.
func Names(chunk string) []string {
	var names []string
	for _, line := range strings.Split(chunk, "\n") {
		line = textutil.NormalizeSpace(line)
		if line == "" {
			continue
		}
		if m := doubleIndexed.FindStringSubmatch(line); m != nil {
			names = append(names, CleanName(m[1]))
			continue
		}
		if m := singleIndexed.FindStringSubmatch(line); m != nil {
			name := CleanName(m[1])
			if name == "" || looksLikeHeading(name) {
				continue
			}
			names = append(names, name)
		}
	}
	return names
}

// CleanName normalizes a captured name. Purely numeric names are display
// identifiers and stay verbatim ("56" stays "56"). A leading digit run is
// stripped only when a space and further text follow it ("5 Joe" becomes
// "Joe"); a bare trailing digit run is never stripped.
func CleanName(s string) string {
	s = textutil.NormalizeSpace(s)
	if digitsOnly.MatchString(s) {
		return s
	}
	if m := leadingIndex.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

func looksLikeHeading(s string) bool {
	lower := strings.ToLower(s)
	for _, frag := range headingFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
