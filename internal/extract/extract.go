// Package extract locates round boundaries in a verification results page
// and recovers the ordered name list of each round. It works on markup when
// the page family's heading structure is present and falls back to a plain
// text scan when it is not.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/drawproof/drawproof/internal/textutil"
	"github.com/drawproof/drawproof/internal/types"
)

// headingSelector is the set of elements examined for round headings, in
// document order. The page family renders headings inconsistently across
// tag kinds.
const headingSelector = "h1, h2, h3, h4, h5, b, strong, em, i, p, div, span, li, td"

var (
	// headingExact matches a whole element text that is a round heading,
	// with or without the trailing FINAL marker.
	headingExact = regexp.MustCompile(`(?i)^result of round #(\d+)(?:\s*-\s*final)?$`)

	// headingScan finds round headings anywhere in flattened document text.
	headingScan = regexp.MustCompile(`(?i)result of round #(\d+)(?:\s*-\s*final)?`)
)

// Rounds extracts the ordered round collection from raw HTML or plain text.
// Markup boundary location is attempted first; if no element qualifies as a
// round heading the whole document text is scanned instead. Returns
// types.ErrNoRoundsFound when neither strategy finds a heading, and
// types.ErrNoNamesParsed when headings exist but every chunk is empty of
// names.
func Rounds(input string) (types.RoundCollection, error) {
	chunks := markupChunks(input)
	if chunks == nil {
		chunks = textChunks(input)
	}
	if len(chunks) == 0 {
		return nil, types.ErrNoRoundsFound
	}

	var rounds types.RoundCollection
	for i, c := range chunks {
		names := Names(textutil.NormalizeSpace(c.text))
		if len(names) == 0 {
			continue
		}
		rounds = append(rounds, types.Round{Round: c.round, Names: names, Seq: i})
	}
	if len(rounds) == 0 {
		return nil, types.ErrNoNamesParsed
	}

	rounds.Sort()
	return rounds, nil
}

// chunk is the raw text belonging to one detected round, before name
// extraction.
type chunk struct {
	round int
	text  string
}

// markupChunks locates heading elements in the parsed document and collects
// the text between each heading and the next. Returns nil (not an empty
// slice) when the document has no qualifying heading elements, so the caller
// can tell "no markup structure" apart from "structure but nothing between
// headings".
func markupChunks(input string) []chunk {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil
	}

	var chunks []chunk
	doc.Find(headingSelector).Each(func(i int, sel *goquery.Selection) {
		text := textutil.NormalizeSpace(sel.Text())
		m := headingExact.FindStringSubmatch(text)
		if m == nil || len(sel.Nodes) == 0 {
			return
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// Cannot happen with the pattern above; keep the round usable.
			n = len(chunks) + 1
		}
		chunks = append(chunks, chunk{round: n, text: siblingText(sel.Nodes[0])})
	})
	return chunks
}

// siblingText walks the heading's next siblings and joins their normalized
// text with newlines. The walk stops before a sibling that is itself a round
// heading: that sibling opens the next round. Empty siblings contribute
// nothing but do not stop the walk.
func siblingText(anchor *html.Node) string {
	var parts []string
	for n := anchor.NextSibling; n != nil; n = n.NextSibling {
		text := textutil.NormalizeSpace(htmlquery.InnerText(n))
		if headingExact.MatchString(text) {
			break
		}
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n")
}

// textChunks is the fallback strategy: scan the normalized whole-document
// text for heading matches and slice the text between consecutive matches.
func textChunks(input string) []chunk {
	text := textutil.NormalizeSpace(flatten(input))

	matches := headingScan.FindAllStringSubmatchIndex(text, -1)
	chunks := make([]chunk, 0, len(matches))
	for i, m := range matches {
		n, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			n = i + 1
		}
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		chunks = append(chunks, chunk{round: n, text: text[m[1]:end]})
	}
	return chunks
}

// flatten reduces markup to its text content. Plain text input survives the
// HTML parse as a single text node, so both page shapes go through the same
// path.
func flatten(input string) string {
	doc, err := htmlquery.Parse(strings.NewReader(input))
	if err != nil {
		return input
	}
	return htmlquery.InnerText(doc)
}
