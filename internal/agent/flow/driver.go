// Package flow is the turn-based workflow engine for the intake
// interview: a closed stage graph, a pure router over session state,
// and a driver that advances a bounded number of stages per inbound
// message before yielding back to the user.
package flow

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tdh-assistant/server/internal/agent/generate"
	"github.com/tdh-assistant/server/internal/agent/model"
	logx "github.com/tdh-assistant/server/pkg/logger"
)

// maxStageHops caps how many stage transitions one inbound message may
// trigger. Enough for cascades like classify -> explain -> check, small
// enough to stop runaway loops from a buggy conditional edge.
const maxStageHops = 3

// Engine executes turns against a session store and a text generator.
type Engine struct {
	gen     generate.Generator
	store   model.SessionStore
	persona model.PersonaConfig

	locks keyedMutex
}

// NewEngine wires the turn driver.
func NewEngine(gen generate.Generator, store model.SessionStore, persona model.PersonaConfig) (*Engine, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is nil")
	}
	if store == nil {
		return nil, fmt.Errorf("session store is nil")
	}
	return &Engine{gen: gen, store: store, persona: persona}, nil
}

// ProcessTurn loads or creates the session for threadID, applies the
// inbound user text through the stage cascade and persists the result.
// It always returns a usable session: generation and persistence
// failures are logged and recovered, never fatal.
func (e *Engine) ProcessTurn(ctx context.Context, threadID, userText string) (*model.Session, error) {
	if threadID == "" {
		return nil, fmt.Errorf("thread id is empty")
	}

	unlock := e.locks.lock(threadID)
	defer unlock()

	s, err := e.store.Load(ctx, threadID)
	if err != nil {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("Failed to load session; starting fresh in memory")
		s = nil
	}
	if s == nil {
		s = model.NewSession(threadID)
	}
	s = s.Clone()

	if !s.Stage.Valid() {
		logx.Warn().Str("thread_id", threadID).Str("stage", string(s.Stage)).Msg("Unknown stage id; falling back to welcome")
		s.Stage = model.StageWelcome
	}

	if strings.TrimSpace(userText) != "" {
		s.AppendUser(userText)
	}

	t := &turn{text: userText}
	for i := 0; i < maxStageHops; i++ {
		before := s.Stage

		next, reply := e.runStage(ctx, s, t)
		if reply != "" {
			next.AppendAssistant(reply)
		}
		s = next

		logx.Debug().
			Str("thread_id", threadID).
			Str("from", string(before)).
			Str("to", string(s.Stage)).
			Bool("replied", reply != "").
			Msg("Stage executed")

		if s.Stage == before || s.Stage == model.StageTerminal {
			break
		}
	}

	if err := e.store.Save(ctx, s); err != nil {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("Failed to save session; in-memory state remains authoritative")
	}

	return s, nil
}

// runStage dispatches to the handler for the current stage. Handlers
// receive a clone, so each execution is a pure transition from the
// incoming session to a new one plus zero-or-one emitted utterance.
func (e *Engine) runStage(ctx context.Context, s *model.Session, t *turn) (*model.Session, string) {
	next := s.Clone()

	switch s.Stage {
	case model.StageWelcome:
		return e.stageWelcome(ctx, next, t)
	case model.StageCollectBasicInfo:
		return e.stageCollectBasicInfo(ctx, next, t)
	case model.StageClassifyRole:
		return e.stageClassifyRole(ctx, next, t)
	case model.StageRequestRoleClarification:
		return e.stageRequestRoleClarification(ctx, next, t)
	case model.StageExplainRoleRequirements:
		return e.stageExplainRoleRequirements(ctx, next, t)
	case model.StageSpotlightCheck:
		return e.stageSpotlightCheck(ctx, next, t)
	case model.StageCollectSpotlightLink:
		return e.stageCollectSpotlightLink(ctx, next, t)
	case model.StageRepresentationCheck:
		return e.stageRepresentationCheck(ctx, next, t)
	case model.StageCollectRepresentationDetails:
		return e.stageCollectRepresentationDetails(ctx, next, t)
	case model.StageCollectWorkPreferences:
		return e.stageCollectWorkPreferences(ctx, next, t)
	case model.StageCollectRequirements:
		return e.stageCollectRequirements(ctx, next, t)
	case model.StageResearchQuestions:
		return e.stageResearchQuestions(ctx, next, t)
	case model.StageFinalQuestions:
		return e.stageFinalQuestions(ctx, next, t)
	case model.StageTerminal:
		return next, ""
	}

	// Unreachable after the Valid() rewrite in ProcessTurn, but the
	// default transition stays explicit and tested.
	logx.Warn().Str("stage", string(s.Stage)).Msg("Dispatch hit unknown stage; rewriting to welcome")
	next.Stage = model.StageWelcome
	return next, ""
}

// keyedMutex serializes load-mutate-save per thread id while letting
// distinct threads proceed concurrently. Entries are reference counted
// and evicted once the last holder unlocks, so the map stays bounded by
// the number of in-flight turns rather than thread ids ever seen.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(id string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*lockEntry)
	}
	e, ok := k.locks[id]
	if !ok {
		e = &lockEntry{}
		k.locks[id] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
