package explorer

import "sync"

// TokenStore maps endpoint ids to user bearer tokens. Tokens live in memory
// only and survive endpoint switches for the lifetime of the store.
// It is safe for concurrent use.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewTokenStore creates an empty TokenStore.
func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]string)}
}

// Get returns the token stored for endpointID, or "" when none is.
func (s *TokenStore) Get(endpointID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[endpointID]
}

// Set stores token for endpointID. An empty token removes the entry.
func (s *TokenStore) Set(endpointID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		delete(s.tokens, endpointID)
		return
	}
	s.tokens[endpointID] = token
}

// Delete removes the token stored for endpointID.
func (s *TokenStore) Delete(endpointID string) {
	s.Set(endpointID, "")
}

// Len returns the number of stored tokens.
func (s *TokenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
