package playvault

import (
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// VaultSession holds one account's live record together with the two locks
// that keep it consistent: mu serializes engine mutations (and snapshot
// reads), saveMu serializes durable write sequences so a session-end save and
// an autosave sweep never interleave their retries for the same account.
type VaultSession struct {
	mu     sync.Mutex
	saveMu sync.Mutex
	vault  *Vault
}

// snapshot returns a deep copy consistent with the last completed mutation.
func (s *VaultSession) snapshot() *Vault {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vault.clone()
}

// SessionRegistry is the keyed store of active accounts: the authoritative
// in-memory source of truth between durable flushes. Entries never expire on
// their own; they are installed on session start and removed on session end.
type SessionRegistry struct {
	entries *gocache.Cache
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		entries: gocache.New(gocache.NoExpiration, 0),
	}
}

// Install puts a freshly loaded vault into the registry, replacing any stale
// entry for the same actor, and returns its session.
func (r *SessionRegistry) Install(actorID string, vault *Vault) *VaultSession {
	session := &VaultSession{vault: vault}
	r.entries.Set(actorID, session, gocache.NoExpiration)
	return session
}

// Lookup returns the live session for an actor. A miss means the account has
// no active session and every engine operation must reject.
func (r *SessionRegistry) Lookup(actorID string) (*VaultSession, bool) {
	entry, ok := r.entries.Get(actorID)
	if !ok {
		return nil, false
	}
	return entry.(*VaultSession), true
}

func (r *SessionRegistry) Remove(actorID string) {
	r.entries.Delete(actorID)
}

// Active snapshots the current membership for the autosave sweep. The
// returned map is a copy; sessions may still end concurrently, and the
// per-account save lock orders those flushes so a sweep save running after
// an eviction rewrites the record with a snapshot at least as new as the
// session-end flush.
func (r *SessionRegistry) Active() map[string]*VaultSession {
	items := r.entries.Items()
	out := make(map[string]*VaultSession, len(items))
	for actorID, item := range items {
		out[actorID] = item.Object.(*VaultSession)
	}
	return out
}

func (r *SessionRegistry) Len() int {
	return r.entries.ItemCount()
}
