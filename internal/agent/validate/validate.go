// Package validate holds the per-requirement acceptance rules for
// submitted materials and the user-facing feedback for each outcome.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tdh-assistant/server/internal/agent/model"
)

var (
	cvFormatTokens = []string{"pdf", "doc", "docx", "word"}

	// Attachment cues must appear as whole words: "my_cv.txt" is not a
	// cue, "here is my cv" is.
	cvAttachmentPattern = regexp.MustCompile(`\b(?:attachment|attached|file|document|resume|cv)\b`)

	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)`),
		regexp.MustCompile(`youtube\.com`),
		regexp.MustCompile(`youtu\.be`),
	}
	vimeoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`vimeo\.com/\d+`),
		regexp.MustCompile(`vimeo\.com`),
	}
	spotlightPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:www\.|portal\.)?spotlight\.com`),
	}

	// Phrases that skip the optional movement reel.
	skipPhrases = []string{"don't have", "dont have", "do not have", "skip", "not yet", "no movement"}
)

// Material checks text against the acceptance rule for key and returns
// whether it was accepted plus feedback to surface to the user verbatim.
func Material(key, text string) (bool, string) {
	switch {
	case key == model.ReqCV:
		return cv(text)
	case strings.HasSuffix(key, "_reel"):
		return reel(key, text)
	case key == "spotlight":
		return spotlight(text)
	}
	return false, "I couldn't validate this material. Please ensure it meets the requirements."
}

// Skippable reports whether text is an explicit skip of an optional
// requirement. Only the movement reel may be skipped.
func Skippable(key, text string) bool {
	if key != model.ReqMovementReel {
		return false
	}
	lower := strings.ToLower(text)
	for _, p := range skipPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func cv(text string) (bool, string) {
	lower := strings.ToLower(text)
	for _, tok := range cvFormatTokens {
		if strings.Contains(lower, tok) {
			return true, "Great! Your CV in PDF/Word format is noted."
		}
	}
	if cvAttachmentPattern.MatchString(lower) {
		return true, "CV submission noted."
	}
	return false, "Please note that your CV must be in PDF or Word format only. Do you have your CV in one of these formats?"
}

func reel(key, text string) (bool, string) {
	lower := strings.ToLower(text)
	name := DisplayName(key)

	for _, p := range youtubePatterns {
		if p.MatchString(lower) {
			return true, fmt.Sprintf("Perfect! I've noted your %s (YouTube).", name)
		}
	}
	for _, p := range vimeoPatterns {
		if p.MatchString(lower) {
			return true, fmt.Sprintf("Perfect! I've noted your %s (Vimeo).", name)
		}
	}
	return false, fmt.Sprintf("Please provide a direct YouTube or Vimeo link for your %s. Other platforms or downloadable files are not accepted.", name)
}

func spotlight(text string) (bool, string) {
	lower := strings.ToLower(text)
	for _, p := range spotlightPatterns {
		if p.MatchString(lower) {
			return true, "Spotlight link accepted."
		}
	}
	return false, "Please provide a valid Spotlight profile URL."
}

// DisplayName renders a requirement key for user-facing text,
// e.g. "dance_reel" -> "Dance Reel".
func DisplayName(key string) string {
	if key == model.ReqCV {
		return "CV"
	}
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
