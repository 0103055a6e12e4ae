package flow

import (
	"github.com/tdh-assistant/server/internal/agent/model"
)

// Next resolves the outgoing edge for the session's current stage. It is
// a pure function over the session: conditional edges read only fields
// the stage handlers have already written. Returning the current stage
// means "stay and wait for more input".
func Next(s *model.Session) model.Stage {
	switch s.Stage {
	case model.StageWelcome:
		return model.StageCollectBasicInfo

	case model.StageCollectBasicInfo:
		if s.ApplicantInfo.HasBasics() {
			return model.StageClassifyRole
		}
		return model.StageCollectBasicInfo

	case model.StageClassifyRole:
		if s.RoleType != model.RoleUnset {
			return model.StageExplainRoleRequirements
		}
		return model.StageRequestRoleClarification

	case model.StageRequestRoleClarification:
		return model.StageClassifyRole

	case model.StageExplainRoleRequirements:
		return model.StageSpotlightCheck

	case model.StageSpotlightCheck:
		switch s.HasSpotlight {
		case model.TriYes:
			if s.ApplicantInfo.Spotlight == "" {
				return model.StageCollectSpotlightLink
			}
			// Link already captured during basic info.
			return model.StageRepresentationCheck
		case model.TriNo:
			return model.StageRepresentationCheck
		}
		return model.StageSpotlightCheck

	case model.StageCollectSpotlightLink:
		// Static edge: advances whether or not a link was extracted.
		return model.StageRepresentationCheck

	case model.StageRepresentationCheck:
		switch s.HasRepresentation {
		case model.TriYes:
			return model.StageCollectRepresentationDetails
		case model.TriNo:
			return model.StageCollectWorkPreferences
		}
		return model.StageRepresentationCheck

	case model.StageCollectRepresentationDetails:
		return model.StageCollectWorkPreferences

	case model.StageCollectWorkPreferences:
		if s.WorkPreferences != nil {
			return model.StageCollectRequirements
		}
		return model.StageCollectWorkPreferences

	case model.StageCollectRequirements:
		if s.Requirements.Complete() {
			return model.StageResearchQuestions
		}
		return model.StageCollectRequirements

	case model.StageResearchQuestions:
		return model.StageFinalQuestions

	case model.StageFinalQuestions:
		if s.ClosingNote != "" {
			return model.StageTerminal
		}
		return model.StageFinalQuestions

	case model.StageTerminal:
		return model.StageTerminal
	}

	// The single default transition for an id outside the closed set.
	return model.StageWelcome
}
