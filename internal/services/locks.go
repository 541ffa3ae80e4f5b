package services

import "sync"

// accountLocks hands out one exclusion handle per account id. Entries are
// created lazily on first use and reclaimed by reference count: an entry is
// removed only once no holder or waiter remains, so a lock can never be
// destroyed while a concurrent operation still depends on it, and a
// long-lived process does not accumulate one entry per account forever.
type accountLocks struct {
	mu    sync.Mutex
	locks map[int64]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[int64]*accountLock)}
}

// acquire blocks until the account's lock is held and returns the release
// function. Release is unconditional: callers defer it regardless of how
// the guarded operation ends.
func (al *accountLocks) acquire(userID int64) func() {
	al.mu.Lock()
	lock, ok := al.locks[userID]
	if !ok {
		lock = &accountLock{}
		al.locks[userID] = lock
	}
	lock.refs++
	al.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		al.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(al.locks, userID)
		}
		al.mu.Unlock()
	}
}

// size reports the number of live entries. Tests use it to verify
// reclamation.
func (al *accountLocks) size() int {
	al.mu.Lock()
	defer al.mu.Unlock()
	return len(al.locks)
}
