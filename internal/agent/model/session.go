package model

// Stage is a node id in the intake workflow graph. The set is closed;
// anything outside it is rewritten to StageWelcome before dispatch.
type Stage string

const (
	StageWelcome                      Stage = "welcome"
	StageCollectBasicInfo             Stage = "collect_basic_info"
	StageClassifyRole                 Stage = "classify_role"
	StageRequestRoleClarification     Stage = "request_role_clarification"
	StageExplainRoleRequirements      Stage = "explain_role_requirements"
	StageSpotlightCheck               Stage = "spotlight_check"
	StageCollectSpotlightLink         Stage = "collect_spotlight_link"
	StageRepresentationCheck          Stage = "representation_check"
	StageCollectRepresentationDetails Stage = "collect_representation_details"
	StageCollectWorkPreferences       Stage = "collect_work_preferences"
	StageCollectRequirements          Stage = "collect_requirements"
	StageResearchQuestions            Stage = "research_questions"
	StageFinalQuestions               Stage = "final_questions"
	StageTerminal                     Stage = "terminal"
)

// Valid reports whether s is a member of the closed stage set.
func (s Stage) Valid() bool {
	switch s {
	case StageWelcome, StageCollectBasicInfo, StageClassifyRole,
		StageRequestRoleClarification, StageExplainRoleRequirements,
		StageSpotlightCheck, StageCollectSpotlightLink,
		StageRepresentationCheck, StageCollectRepresentationDetails,
		StageCollectWorkPreferences, StageCollectRequirements,
		StageResearchQuestions, StageFinalQuestions, StageTerminal:
		return true
	}
	return false
}

// RoleType is the performer classification. Set exactly once; the
// requirement checklist is derived from it at classification time.
type RoleType string

const (
	RoleUnset          RoleType = ""
	RoleDancer         RoleType = "Dancer"
	RoleDancerWhoSings RoleType = "Dancer Who Sings"
	RoleSingerActor    RoleType = "Singer/Actor"
)

// TriState represents a yes/no question that may not have been asked yet.
type TriState string

const (
	TriUnknown TriState = "unknown"
	TriYes     TriState = "yes"
	TriNo      TriState = "no"
)

// Utterance roles. Anything else is dropped on deserialization.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Utterance is one message in the conversation.
type Utterance struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ApplicantInfo holds the structured fields pulled out of free text.
// Empty string means not yet provided.
type ApplicantInfo struct {
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Spotlight     string `json:"spotlight,omitempty"`
	CurrentAgency string `json:"current_agency,omitempty"`
	WorkAuth      string `json:"work_auth,omitempty"`
}

// HasBasics reports whether name, email and phone have all been collected.
func (a ApplicantInfo) HasBasics() bool {
	return a.Name != "" && a.Email != "" && a.Phone != ""
}

// Session is the full state of one application conversation. It is owned
// by the turn driver for the duration of a turn and persisted between
// turns via a SessionStore.
type Session struct {
	ThreadID           string          `json:"thread_id"`
	History            []Utterance     `json:"history"`
	ApplicantInfo      ApplicantInfo   `json:"applicant_info"`
	RoleType           RoleType        `json:"role_type"`
	Stage              Stage           `json:"stage"`
	Requirements       Checklist       `json:"requirements"`
	Materials          map[string]string `json:"materials,omitempty"`
	HasSpotlight       TriState        `json:"has_spotlight"`
	HasRepresentation  TriState        `json:"has_representation"`
	WorkPreferences    map[string]bool `json:"work_preferences,omitempty"`
	ClosingNote        string          `json:"closing_note,omitempty"`
	ReadyForSubmission bool            `json:"ready_for_submission"`
}

// NewSession creates the initial session for a thread.
func NewSession(threadID string) *Session {
	return &Session{
		ThreadID:          threadID,
		History:           []Utterance{},
		Stage:             StageWelcome,
		HasSpotlight:      TriUnknown,
		HasRepresentation: TriUnknown,
	}
}

// Clone returns a deep copy. Stage handlers operate on a clone so a turn
// can be abandoned without corrupting the loaded state.
func (s *Session) Clone() *Session {
	out := *s
	out.History = append([]Utterance(nil), s.History...)
	out.Requirements = append(Checklist(nil), s.Requirements...)
	if s.Materials != nil {
		out.Materials = make(map[string]string, len(s.Materials))
		for k, v := range s.Materials {
			out.Materials[k] = v
		}
	}
	if s.WorkPreferences != nil {
		out.WorkPreferences = make(map[string]bool, len(s.WorkPreferences))
		for k, v := range s.WorkPreferences {
			out.WorkPreferences[k] = v
		}
	}
	return &out
}

// AppendUser appends a user utterance to the history.
func (s *Session) AppendUser(text string) {
	s.History = append(s.History, Utterance{Role: RoleUser, Text: text})
}

// AppendAssistant appends an assistant utterance to the history.
func (s *Session) AppendAssistant(text string) {
	s.History = append(s.History, Utterance{Role: RoleAssistant, Text: text})
}

// LastAssistant returns the most recent assistant utterance, if any.
func (s *Session) LastAssistant() (Utterance, bool) {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleAssistant {
			return s.History[i], true
		}
	}
	return Utterance{}, false
}

// HasGreeted reports whether the assistant has spoken at all. The welcome
// stage fires only while this is false.
func (s *Session) HasGreeted() bool {
	_, ok := s.LastAssistant()
	return ok
}
