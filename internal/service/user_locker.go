package service

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserLocker serializes operations per user. Locks are dropped once unused.
type UserLocker struct {
	mu    sync.Mutex
	locks map[primitive.ObjectID]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewUserLocker() *UserLocker {
	return &UserLocker{locks: make(map[primitive.ObjectID]*userLock)}
}

// Lock blocks until the user's lock is held and returns its release function.
func (l *UserLocker) Lock(userID primitive.ObjectID) (unlock func()) {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			ul.mu.Unlock()

			l.mu.Lock()
			ul.refs--
			if ul.refs == 0 {
				delete(l.locks, userID)
			}
			l.mu.Unlock()
		})
	}
}

func (l *UserLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
