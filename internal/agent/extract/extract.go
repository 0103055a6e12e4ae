// Package extract pulls structured applicant fields out of free text.
// Extraction is first-write-wins per field and never destructive: text
// with nothing recognizable returns the input info unchanged.
package extract

import (
	"regexp"
	"strings"

	"github.com/tdh-assistant/server/internal/agent/model"
)

var (
	// Two capitalized tokens are required. Single-token names are not
	// recognized; that is a documented limitation of the intake flow.
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:(?:my|full)\s+)?name\s*(?:is|:)?\s*([A-Z][a-z]+\s+[A-Z][a-z]+)`),
		regexp.MustCompile(`I(?:'m| am)\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`),
	}

	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// A labeled phone wins over a bare digit run.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:phone|number|contact)(?:\s*(?:is|:))?\s*(\+?\d[\d\s-]{8,})`),
		regexp.MustCompile(`(\+?\d[\d\s-]{8,})`),
	}

	// Spotlight links need a "spotlight" or "profile" cue before the URL.
	spotlightPattern = regexp.MustCompile(`(?:spotlight|profile)(?:\s*(?:is|:))?\s*(https?://(?:www\.)?spotlight\.com\S+)`)
)

// Info updates current with any fields found in text. Fields already set
// are left untouched; callers that support explicit corrections clear the
// field first.
func Info(text string, current model.ApplicantInfo) model.ApplicantInfo {
	updated := current

	if updated.Name == "" {
		for _, p := range namePatterns {
			if m := p.FindStringSubmatch(text); m != nil {
				updated.Name = m[1]
				break
			}
		}
	}

	if updated.Email == "" {
		if m := emailPattern.FindString(text); m != "" {
			updated.Email = m
		}
	}

	if updated.Phone == "" {
		for _, p := range phonePatterns {
			if m := p.FindStringSubmatch(text); m != nil {
				// The digit run matches whitespace greedily and can end
				// on a space or newline.
				updated.Phone = strings.TrimSpace(m[1])
				break
			}
		}
	}

	if updated.Spotlight == "" {
		if m := spotlightPattern.FindStringSubmatch(text); m != nil {
			updated.Spotlight = m[1]
		}
	}

	return updated
}
