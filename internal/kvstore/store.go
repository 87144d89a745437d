package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Store is a best-effort facade over a Backend. Storage failures are logged
// and absorbed: reads fall back, writes report that they were ignored.
type Store struct {
	backend Backend
	logger  *zap.SugaredLogger
}

// NewStore wraps backend. A nil backend stores nothing; a nil logger is silent.
func NewStore(backend Backend, logger *zap.SugaredLogger) *Store {
	if backend == nil {
		backend = NopBackend{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{backend: backend, logger: logger}
}

// GetString returns the raw value and whether it was present.
func (s *Store) GetString(ctx context.Context, key string) (string, bool) {
	val, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Debugw("storage read failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

// SetString writes value under key and reports whether the write happened.
func (s *Store) SetString(ctx context.Context, key, value string) bool {
	if err := s.backend.Set(ctx, key, value); err != nil {
		s.logger.Debugw("storage write ignored", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON serializes value and writes it under key.
func (s *Store) SetJSON(ctx context.Context, key string, value any) bool {
	b, err := json.Marshal(value)
	if err != nil {
		s.logger.Debugw("storage write ignored", "key", key, "error", err)
		return false
	}
	return s.SetString(ctx, key, string(b))
}

// GetJSON decodes the value stored under key. Missing keys, empty or null
// values, malformed JSON and storage failures all yield fallback.
func GetJSON[T any](ctx context.Context, s *Store, key string, fallback T) T {
	raw, ok := s.GetString(ctx, key)
	if !ok {
		return fallback
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return fallback
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Debugw("storage value malformed", "key", key, "error", err)
		return fallback
	}
	return v
}
