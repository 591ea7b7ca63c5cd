package services

import "sync"

// ActivityCache holds the last activity status each user picked, so the
// dashboard can echo it back before the backend write lands.
type ActivityCache struct {
	mu     sync.RWMutex
	byUser map[string]string
}

func NewActivityCache() *ActivityCache {
	return &ActivityCache{byUser: make(map[string]string)}
}

func (a *ActivityCache) Set(uid, activity string) {
	a.mu.Lock()
	a.byUser[uid] = activity
	a.mu.Unlock()
}

func (a *ActivityCache) Get(uid string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.byUser[uid]
	return v, ok
}
