package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tdh-assistant/server/internal/agent/model"
)

func sessionAt(stage model.Stage, mutate func(*model.Session)) *model.Session {
	s := model.NewSession("t")
	s.Stage = stage
	if mutate != nil {
		mutate(s)
	}
	return s
}

func TestNext(t *testing.T) {
	withBasics := func(s *model.Session) {
		s.ApplicantInfo = model.ApplicantInfo{Name: "Jane Smith", Email: "j@e.com", Phone: "+44 7700 900123"}
	}

	tests := []struct {
		name string
		s    *model.Session
		want model.Stage
	}{
		{"welcome always advances", sessionAt(model.StageWelcome, nil), model.StageCollectBasicInfo},

		{"basic info waits while incomplete", sessionAt(model.StageCollectBasicInfo, nil), model.StageCollectBasicInfo},
		{"basic info advances when complete", sessionAt(model.StageCollectBasicInfo, withBasics), model.StageClassifyRole},

		{"classified role explains", sessionAt(model.StageClassifyRole, func(s *model.Session) {
			s.RoleType = model.RoleDancer
		}), model.StageExplainRoleRequirements},
		{"unclassified role clarifies", sessionAt(model.StageClassifyRole, nil), model.StageRequestRoleClarification},
		{"clarification loops back", sessionAt(model.StageRequestRoleClarification, nil), model.StageClassifyRole},

		{"explanation leads to spotlight check", sessionAt(model.StageExplainRoleRequirements, nil), model.StageSpotlightCheck},

		{"spotlight unanswered waits", sessionAt(model.StageSpotlightCheck, nil), model.StageSpotlightCheck},
		{"spotlight yes without link collects it", sessionAt(model.StageSpotlightCheck, func(s *model.Session) {
			s.HasSpotlight = model.TriYes
		}), model.StageCollectSpotlightLink},
		{"spotlight yes with captured link skips collection", sessionAt(model.StageSpotlightCheck, func(s *model.Session) {
			s.HasSpotlight = model.TriYes
			s.ApplicantInfo.Spotlight = "https://www.spotlight.com/1"
		}), model.StageRepresentationCheck},
		{"spotlight no skips collection", sessionAt(model.StageSpotlightCheck, func(s *model.Session) {
			s.HasSpotlight = model.TriNo
		}), model.StageRepresentationCheck},
		{"link collection always advances", sessionAt(model.StageCollectSpotlightLink, nil), model.StageRepresentationCheck},

		{"representation unanswered waits", sessionAt(model.StageRepresentationCheck, nil), model.StageRepresentationCheck},
		{"representation yes collects details", sessionAt(model.StageRepresentationCheck, func(s *model.Session) {
			s.HasRepresentation = model.TriYes
		}), model.StageCollectRepresentationDetails},
		{"representation no goes to preferences", sessionAt(model.StageRepresentationCheck, func(s *model.Session) {
			s.HasRepresentation = model.TriNo
		}), model.StageCollectWorkPreferences},
		{"details lead to preferences", sessionAt(model.StageCollectRepresentationDetails, nil), model.StageCollectWorkPreferences},

		{"preferences wait until answered", sessionAt(model.StageCollectWorkPreferences, nil), model.StageCollectWorkPreferences},
		{"preferences answered start requirements", sessionAt(model.StageCollectWorkPreferences, func(s *model.Session) {
			s.WorkPreferences = map[string]bool{"cruises": true}
		}), model.StageCollectRequirements},

		{"requirements wait until complete", sessionAt(model.StageCollectRequirements, func(s *model.Session) {
			s.Requirements = model.RequirementsForRole(model.RoleDancer)
		}), model.StageCollectRequirements},
		{"requirements complete reach summary", sessionAt(model.StageCollectRequirements, func(s *model.Session) {
			s.Requirements = model.RequirementsForRole(model.RoleDancer)
			for _, k := range s.Requirements.Keys() {
				s.Requirements.MarkCollected(k)
			}
		}), model.StageResearchQuestions},

		{"summary leads to final questions", sessionAt(model.StageResearchQuestions, nil), model.StageFinalQuestions},
		{"final waits for closing note", sessionAt(model.StageFinalQuestions, nil), model.StageFinalQuestions},
		{"final with closing note terminates", sessionAt(model.StageFinalQuestions, func(s *model.Session) {
			s.ClosingNote = "found you on Instagram"
		}), model.StageTerminal},

		{"terminal is absorbing", sessionAt(model.StageTerminal, nil), model.StageTerminal},
		{"unknown stage falls back to welcome", sessionAt(model.Stage("limbo"), nil), model.StageWelcome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.s))
		})
	}
}
