package session

import (
	"sync"

	"aira-server/models"
)

// Store keeps each session's current exam instance in memory. One slot per
// key: a new draw overwrites the previous instance (last write wins, two
// tabs racing on the same account is accepted), grading clears it. The
// slot must survive the draw-to-submit round trip but nothing longer, so
// no durable backing is needed.
type Store struct {
	mu    sync.RWMutex
	exams map[string]models.ExamInstance
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{exams: make(map[string]models.ExamInstance)}
}

// Get returns the bound exam instance for the key, if any.
func (s *Store) Get(key string) (models.ExamInstance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.exams[key]
	return inst, ok
}

// Set binds an exam instance to the key, replacing any prior instance.
func (s *Store) Set(key string, inst models.ExamInstance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exams[key] = inst
}

// Clear removes the key's bound instance. Clearing an empty slot is a
// no-op.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.exams, key)
}
