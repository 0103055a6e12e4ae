package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tdh-assistant/server/internal/agent/model"
	logx "github.com/tdh-assistant/server/pkg/logger"
)

// FileSessionStore keeps one <thread_id>.json file per session under a
// cache directory. Cleanup removes files by modification time.
type FileSessionStore struct {
	dir string
}

func NewFileSessionStore(dir string) (*FileSessionStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileSessionStore{dir: dir}, nil
}

func (f *FileSessionStore) path(threadID string) string {
	return filepath.Join(f.dir, threadID+".json")
}

func (f *FileSessionStore) Save(ctx context.Context, session *model.Session) error {
	b, err := encodeSession(session)
	if err != nil {
		logx.Error().Err(err).Str("thread_id", session.ThreadID).Msg("failed to marshal session")
		return err
	}
	if err := os.WriteFile(f.path(session.ThreadID), b, 0o644); err != nil {
		logx.Error().Err(err).Str("thread_id", session.ThreadID).Msg("failed to write session file")
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (f *FileSessionStore) Load(ctx context.Context, threadID string) (*model.Session, error) {
	b, err := os.ReadFile(f.path(threadID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to read session file")
		return nil, fmt.Errorf("read session: %w", err)
	}
	s, err := decodeSession(b)
	if err != nil {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to unmarshal session")
		return nil, err
	}
	return s, nil
}

func (f *FileSessionStore) Delete(ctx context.Context, threadID string) error {
	if err := os.Remove(f.path(threadID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to delete session file")
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (f *FileSessionStore) ListThreads(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		logx.Error().Err(err).Str("dir", f.dir).Msg("failed to list session dir")
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	threads := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		threads = append(threads, strings.TrimSuffix(e.Name(), ".json"))
	}
	return threads, nil
}

// Cleanup removes session files whose last modification is older than
// maxAge. Individual failures are logged and skipped.
func (f *FileSessionStore) Cleanup(ctx context.Context, maxAge time.Duration) error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}
	cutoff := time.Now().Add(-maxAge)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			logx.Warn().Err(err).Str("file", e.Name()).Msg("cleanup: cannot stat session file")
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(f.dir, e.Name())); err != nil {
				logx.Warn().Err(err).Str("file", e.Name()).Msg("cleanup: cannot remove session file")
				continue
			}
			logx.Info().Str("file", e.Name()).Msg("removed expired session file")
		}
	}
	return nil
}

var _ model.SessionStore = (*FileSessionStore)(nil)
