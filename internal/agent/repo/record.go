// Package repo provides the SessionStore implementations: Redis for
// deployments, a one-file-per-thread JSON store matching the original
// cache layout, and an in-memory store for tests and local runs.
package repo

import (
	"encoding/json"
	"fmt"

	"github.com/tdh-assistant/server/internal/agent/model"
	logx "github.com/tdh-assistant/server/pkg/logger"
)

func encodeSession(s *model.Session) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return b, nil
}

// decodeSession unmarshals a stored record. Utterances with a role
// outside {user, assistant} are dropped silently: accepted data-loss
// policy for forward compatibility, not an error.
func decodeSession(b []byte) (*model.Session, error) {
	var s model.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	kept := make([]model.Utterance, 0, len(s.History))
	for _, u := range s.History {
		switch u.Role {
		case model.RoleUser, model.RoleAssistant:
			kept = append(kept, u)
		default:
			logx.Debug().Str("thread_id", s.ThreadID).Str("role", u.Role).Msg("Dropping utterance with unknown role")
		}
	}
	s.History = kept

	// Tolerate records written before the tri-state flags existed.
	if s.HasSpotlight == "" {
		s.HasSpotlight = model.TriUnknown
	}
	if s.HasRepresentation == "" {
		s.HasRepresentation = model.TriUnknown
	}

	return &s, nil
}
