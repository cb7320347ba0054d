package fetcher

import "strings"

// challengeMarkers are substrings that identify an automated-access
// challenge page instead of real results. All lowercase; matching is
// case-insensitive.
var challengeMarkers = []string{
	"checking your browser",
	"just a moment",
	"attention required",
	"challenge-platform",
	"cf-challenge",
	"verify you are human",
	"are you a robot",
	"g-recaptcha",
	"h-captcha",
	"cf-turnstile",
	"data-sitekey",
}

// LooksLikeBotCheck reports whether fetched page text looks like a bot
// challenge rather than the verification results page.
func LooksLikeBotCheck(pageText string) bool {
	lower := strings.ToLower(pageText)
	for _, marker := range challengeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
