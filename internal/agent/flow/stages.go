package flow

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tdh-assistant/server/internal/agent/extract"
	"github.com/tdh-assistant/server/internal/agent/flow/prompts"
	"github.com/tdh-assistant/server/internal/agent/generate"
	"github.com/tdh-assistant/server/internal/agent/model"
	"github.com/tdh-assistant/server/internal/agent/validate"
	logx "github.com/tdh-assistant/server/pkg/logger"
)

// turn tracks the inbound user text across the stage cascade of one
// physical turn. A stage consumes it at most once; stages invoked after
// that see no new input and must be no-ops or pure emitters.
type turn struct {
	text     string
	consumed bool
}

func (t *turn) take() (string, bool) {
	if t.consumed || strings.TrimSpace(t.text) == "" {
		return "", false
	}
	t.consumed = true
	return t.text, true
}

// generateOr runs one generation attempt and falls back to the
// stage-supplied text on failure. This is the single fallback level.
func (e *Engine) generateOr(ctx context.Context, req generate.Request, fallback string) string {
	out, err := e.gen.Generate(ctx, req)
	if err != nil {
		logx.Warn().Err(err).Msg("Generation failed; using stage fallback reply")
		return fallback
	}
	return out
}

// renderOr renders a system prompt, falling back to empty on error so
// the caller's generation attempt fails fast into its fallback text.
func renderOr(system string, err error) (string, bool) {
	if err != nil {
		logx.Warn().Err(err).Msg("Prompt render failed")
		return "", false
	}
	return system, true
}

// ---- welcome ----

func (e *Engine) stageWelcome(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	if s.HasGreeted() {
		// Re-entry (including unknown-stage recovery): move on silently.
		s.Stage = Next(s)
		return s, ""
	}

	fallback := fmt.Sprintf(
		"Hello! I'm %s, the %s Application Assistant. I'll help you put together a complete application: "+
			"first some basic details, then the materials for your role type (Dancer, Dancer Who Sings, or Singer/Actor). "+
			"Let's start — what's your full name?",
		e.persona.AssistantName, e.persona.AgencyName)

	reply := fallback
	if system, ok := renderOr(prompts.RenderWelcomeSystem(ctx, e.persona)); ok {
		reply = e.generateOr(ctx, generate.Request{System: system}, fallback)
	}

	s.Stage = Next(s)
	return s, reply
}

// ---- collect_basic_info ----

func (e *Engine) stageCollectBasicInfo(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	text, ok := t.take()
	if !ok {
		return s, ""
	}

	s.ApplicantInfo = extract.Info(text, s.ApplicantInfo)

	var fallback string
	if s.ApplicantInfo.HasBasics() {
		fallback = "Great, that's all the basics. What type of performer are you: Dancer, Dancer Who Sings, or Singer/Actor?"
	} else {
		fallback = fmt.Sprintf("Thanks! Could you share your %s?", firstMissingBasic(s.ApplicantInfo))
	}

	reply := fallback
	if system, rok := renderOr(prompts.RenderBasicInfoSystem(ctx, e.persona, s.ApplicantInfo)); rok {
		reply = e.generateOr(ctx, generate.Request{
			System:   system,
			History:  priorHistory(s),
			UserText: text,
		}, fallback)
	}

	s.Stage = Next(s)
	return s, reply
}

func firstMissingBasic(info model.ApplicantInfo) string {
	switch {
	case info.Name == "":
		return "full name"
	case info.Email == "":
		return "email address"
	default:
		return "phone number"
	}
}

// priorHistory is everything before the utterance appended this turn.
func priorHistory(s *model.Session) []model.Utterance {
	if len(s.History) == 0 {
		return nil
	}
	return s.History[:len(s.History)-1]
}

// ---- classify_role ----

// Classification keyword priority: "dancer who sings" before "dancer"
// before the singer/actor/mover terms. First match wins.
func classifyRole(text string) model.RoleType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "dancer who sings"):
		return model.RoleDancerWhoSings
	case strings.Contains(lower, "dancer"):
		return model.RoleDancer
	case strings.Contains(lower, "singer"),
		strings.Contains(lower, "actor"),
		strings.Contains(lower, "mover"):
		return model.RoleSingerActor
	}
	return model.RoleUnset
}

func (e *Engine) stageClassifyRole(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	text, ok := t.take()
	if !ok {
		return s, ""
	}

	if role := classifyRole(text); role != model.RoleUnset && s.RoleType == model.RoleUnset {
		s.RoleType = role
		s.Requirements = model.RequirementsForRole(role)
	}

	// No reply here: the explanation or clarification stage speaks next
	// within the same cascade.
	s.Stage = Next(s)
	return s, ""
}

// ---- request_role_clarification ----

func (e *Engine) stageRequestRoleClarification(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	fallback := "I want to make sure I have this right — are you a Dancer, a Dancer Who Sings, or a Singer/Actor?"

	reply := fallback
	if system, ok := renderOr(prompts.RenderClarifySystem(ctx, e.persona)); ok {
		reply = e.generateOr(ctx, generate.Request{System: system, History: s.History}, fallback)
	}

	s.Stage = Next(s)
	return s, reply
}

// ---- explain_role_requirements ----

const linkPolicyText = "Only direct unlisted YouTube or Vimeo links are accepted. Applications with downloadable files (Dropbox, WeTransfer, etc.) will be deleted."

func (e *Engine) stageExplainRoleRequirements(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	var reply string
	switch s.RoleType {
	case model.RoleSingerActor:
		reply = "For your application as a Singer/Actor, you'll need to provide:\n\n" +
			"1. CV (PDF or Word format only)\n" +
			"2. Vocal reel/self tape (YouTube/Vimeo link only) - 16 Bar minimum of any song choice that highlights your vocal tone and range. Multiple songs are advised.\n" +
			"3. Acting reel/self tape (YouTube/Vimeo link only) - Short monologue or scene that shows your acting ability.\n" +
			"4. Movement reel/footage (Optional) (YouTube/Vimeo link only)\n\n" +
			linkPolicyText +
			"\n\nBefore the materials, a couple of quick questions. Do you have a Spotlight profile?"
	default:
		reply = fmt.Sprintf("For your application as a %s, you'll need to provide:\n\n", s.RoleType) +
			"1. CV (PDF or Word format only)\n" +
			"2. Dance reel/self tape (YouTube/Vimeo link only) - Footage must show technique and varying styles. Solo studio footage is preferred.\n" +
			"3. Vocal reel/self tape (YouTube/Vimeo link only) - 16 Bar minimum of any song choice that highlights your vocal tone and range.\n" +
			"4. Acting reel/self tape (YouTube/Vimeo link only) - Short monologue or scene that shows your acting ability.\n\n" +
			linkPolicyText +
			"\n\nBefore the materials, a couple of quick questions. Do you have a Spotlight profile?"
	}

	s.Stage = Next(s)
	return s, reply
}

// ---- yes/no parsing for the check stages ----

var (
	yesPattern = regexp.MustCompile(`\b(?:yes|yeah|yep|sure|i do|i have)\b`)
	noPattern  = regexp.MustCompile(`\b(?:no|nope|not|don't|dont|haven't|havent)\b`)
)

func parseYesNo(text string) model.TriState {
	lower := strings.ToLower(text)
	yes := yesPattern.MatchString(lower)
	no := noPattern.MatchString(lower)
	switch {
	case no && !yes:
		return model.TriNo
	case yes && !no:
		return model.TriYes
	}
	return model.TriUnknown
}

// ---- spotlight_check ----

const representationQuestion = "Do you currently have representation — an agent or agency?"

func (e *Engine) stageSpotlightCheck(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	if s.HasSpotlight == model.TriUnknown && s.ApplicantInfo.Spotlight != "" {
		// Already captured by the extractor earlier in the interview.
		s.HasSpotlight = model.TriYes
		s.Stage = Next(s)
		return s, "I already have your Spotlight link on file. " + representationQuestion
	}

	text, ok := t.take()
	if !ok {
		return s, ""
	}

	switch parseYesNo(text) {
	case model.TriYes:
		s.HasSpotlight = model.TriYes
		s.Stage = Next(s)
		return s, "Great — please share your Spotlight profile link."
	case model.TriNo:
		s.HasSpotlight = model.TriNo
		s.Stage = Next(s)
		return s, "No problem. " + representationQuestion
	}

	return s, "Just to check — do you have a Spotlight profile? A quick yes or no works."
}

// ---- collect_spotlight_link ----

func (e *Engine) stageCollectSpotlightLink(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	text, ok := t.take()
	if !ok {
		return s, ""
	}

	var note string
	info := extract.Info(text, s.ApplicantInfo)
	if info.Spotlight != "" {
		s.ApplicantInfo = info
		note = "Spotlight link noted."
	} else if accepted, _ := validate.Material("spotlight", text); accepted {
		s.ApplicantInfo.Spotlight = strings.TrimSpace(text)
		note = "Spotlight link noted."
	} else {
		note = "That doesn't look like a Spotlight URL, so I haven't recorded one — you can include it in your submission email."
	}

	s.Stage = Next(s)
	return s, note + " " + representationQuestion
}

// ---- representation_check ----

const workPreferencesQuestion = "Which kinds of work are you open to? Please answer YES/NO for: Musical Theatre, Work Abroad, Cruises, TV/Film, and Commercial Dance Work."

func (e *Engine) stageRepresentationCheck(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	text, ok := t.take()
	if !ok {
		return s, ""
	}

	switch parseYesNo(text) {
	case model.TriYes:
		s.HasRepresentation = model.TriYes
		s.Stage = Next(s)
		return s, "Got it. Which agency currently represents you?"
	case model.TriNo:
		s.HasRepresentation = model.TriNo
		s.Stage = Next(s)
		return s, "Understood. " + workPreferencesQuestion
	}

	return s, "Sorry, I didn't catch that — do you currently have representation? A quick yes or no works."
}

// ---- collect_representation_details ----

func (e *Engine) stageCollectRepresentationDetails(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	text, ok := t.take()
	if !ok {
		return s, ""
	}

	s.ApplicantInfo.CurrentAgency = strings.TrimSpace(text)
	s.Stage = Next(s)
	return s, "Thanks, noted. " + workPreferencesQuestion
}

// ---- collect_work_preferences ----

func parseWorkPreferences(text string) map[string]bool {
	lower := strings.ToLower(text)
	all := strings.Contains(lower, "all") || strings.Contains(lower, "everything")
	return map[string]bool{
		"theatre":    all || strings.Contains(lower, "theatre") || strings.Contains(lower, "theater"),
		"abroad":     all || strings.Contains(lower, "abroad"),
		"cruises":    all || strings.Contains(lower, "cruise"),
		"tv_film":    all || strings.Contains(lower, "tv") || strings.Contains(lower, "film"),
		"commercial": all || strings.Contains(lower, "commercial"),
	}
}

func (e *Engine) stageCollectWorkPreferences(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	text, ok := t.take()
	if !ok {
		return s, ""
	}

	s.WorkPreferences = parseWorkPreferences(text)
	s.Stage = Next(s)
	return s, "Perfect, that's everything I need before the materials. Let's collect them one by one. " +
		"First, please send your CV — PDF or Word format only."
}

// ---- collect_requirements ----

func requirementPrompt(key string) string {
	name := validate.DisplayName(key)
	switch {
	case key == model.ReqCV:
		return "Now, please provide your CV. Remember, it must be in PDF or Word format only."
	case strings.HasSuffix(key, "_reel"):
		return fmt.Sprintf("Next, I need your %s. Please provide a direct YouTube or Vimeo link.", name)
	}
	return fmt.Sprintf("Next, please provide your %s.", name)
}

func (e *Engine) stageCollectRequirements(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	text, ok := t.take()
	if !ok {
		return s, ""
	}

	key, open := s.Requirements.NextOpen()
	if !open {
		s.ReadyForSubmission = true
		s.Stage = Next(s)
		return s, "You've already provided all the required materials. Let me prepare your submission."
	}

	accepted, feedback := validate.Material(key, text)
	skipped := false
	if !accepted && validate.Skippable(key, text) {
		accepted = true
		skipped = true
		feedback = fmt.Sprintf("No problem — the %s is optional, so we'll skip it.", validate.DisplayName(key))
	}

	if !accepted {
		// Checklist unchanged; the validator feedback goes back verbatim
		// and the user retries the same item next turn.
		return s, feedback
	}

	s.Requirements.MarkCollected(key)
	if !skipped {
		if s.Materials == nil {
			s.Materials = make(map[string]string)
		}
		s.Materials[key] = text
	}

	var reply string
	if nextKey, more := s.Requirements.NextOpen(); more {
		reply = feedback + "\n\n" + requirementPrompt(nextKey)
	} else {
		s.ReadyForSubmission = true
		reply = feedback + "\n\nGreat! You've provided all the required materials for your application. Let me prepare your submission."
	}

	s.Stage = Next(s)
	return s, reply
}

// ---- research_questions ----

// localSummary is the deterministic fallback for the generated summary.
func (e *Engine) localSummary(s *model.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I've collected all the required materials for your application to %s as a %s.\n\nHere's a summary of your application:\n\n", e.persona.AgencyName, s.RoleType)

	info := s.ApplicantInfo
	fmt.Fprintf(&b, "Name: %s\n", orNotProvided(info.Name))
	fmt.Fprintf(&b, "Email: %s\n", orNotProvided(info.Email))
	fmt.Fprintf(&b, "Phone: %s\n", orNotProvided(info.Phone))
	fmt.Fprintf(&b, "Spotlight Link: %s\n\nYour application will include:\n", orNotProvided(info.Spotlight))

	for _, r := range s.Requirements {
		if r.Collected {
			fmt.Fprintf(&b, "- %s\n", validate.DisplayName(r.Key))
		}
	}

	fmt.Fprintf(&b, "\nYour application is ready to be submitted to %s.\n", e.persona.SubmissionEmail)
	fmt.Fprintf(&b, "\nBefore you go — how did you hear about %s?", e.persona.AgencyName)
	return b.String()
}

func orNotProvided(v string) string {
	if v == "" {
		return "Not provided"
	}
	return v
}

func (e *Engine) stageResearchQuestions(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	fallback := e.localSummary(s)

	reply := fallback
	if system, ok := renderOr(prompts.RenderSummarySystem(ctx, e.persona, s)); ok {
		reply = e.generateOr(ctx, generate.Request{System: system}, fallback)
	}

	s.Stage = Next(s)
	return s, reply
}

// ---- final_questions ----

func (e *Engine) stageFinalQuestions(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	text, ok := t.take()
	if !ok {
		return s, ""
	}

	s.ClosingNote = strings.TrimSpace(text)

	fallback := fmt.Sprintf(
		"Thank you for applying to %s! Send your materials to %s using the format we covered, and good luck with your application.",
		e.persona.AgencyName, e.persona.SubmissionEmail)

	reply := fallback
	if system, rok := renderOr(prompts.RenderFinalSystem(ctx, e.persona)); rok {
		reply = e.generateOr(ctx, generate.Request{
			System:   system,
			History:  priorHistory(s),
			UserText: text,
		}, fallback)
	}

	s.Stage = Next(s)
	return s, reply
}
