package shell

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store keeps sessions in memory and forgets them after ttl without use.
type Store struct {
	mu         sync.Mutex
	sessions   *cache.Cache
	newSession func() *Session
}

func NewStore(ttl time.Duration, newSession func() *Session) *Store {
	return &Store{
		sessions:   cache.New(ttl, ttl/2),
		newSession: newSession,
	}
}

// Get returns the session for id, creating it on first use, and refreshes its ttl.
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, found := st.sessions.Get(id)
	if !found {
		sess = st.newSession()
	}
	st.sessions.Set(id, sess, cache.DefaultExpiration)
	return sess.(*Session)
}

func (st *Store) Count() int {
	return st.sessions.ItemCount()
}
