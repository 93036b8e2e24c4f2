// Package lock provides per-player locking so that balance and
// reputation updates read, compute and write as one atomic step.
package lock

import (
	"context"
	"sync"
	"time"
)

// playerMutex wraps a mutex with reference counting for cleanup.
type playerMutex struct {
	mu       sync.Mutex
	refCount int
}

// PlayerLock serializes state-modifying operations per player. Two
// commands for the same player never interleave their load-compute-
// store cycles; commands for different players run in parallel.
type PlayerLock struct {
	locks sync.Map // map[int64]*playerMutex
	pool  sync.Pool
}

// NewPlayerLock creates a new PlayerLock instance.
func NewPlayerLock() *PlayerLock {
	return &PlayerLock{
		pool: sync.Pool{
			New: func() any {
				return &playerMutex{}
			},
		},
	}
}

// getLock retrieves or creates a mutex for the given player ID.
func (pl *PlayerLock) getLock(playerID int64) *playerMutex {
	if v, ok := pl.locks.Load(playerID); ok {
		return v.(*playerMutex)
	}

	newLock := pl.pool.Get().(*playerMutex)
	newLock.refCount = 0

	actual, loaded := pl.locks.LoadOrStore(playerID, newLock)
	if loaded {
		// Another goroutine created the lock first, return ours to pool
		pl.pool.Put(newLock)
	}
	return actual.(*playerMutex)
}

// Lock acquires the lock for a player. Call before any operation that
// modifies the player's record.
func (pl *PlayerLock) Lock(playerID int64) {
	lock := pl.getLock(playerID)
	lock.mu.Lock()
	lock.refCount++
}

// Unlock releases the lock for a player.
func (pl *PlayerLock) Unlock(playerID int64) {
	if v, ok := pl.locks.Load(playerID); ok {
		lock := v.(*playerMutex)
		lock.refCount--
		lock.mu.Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false otherwise.
func (pl *PlayerLock) TryLock(playerID int64) bool {
	lock := pl.getLock(playerID)
	if lock.mu.TryLock() {
		lock.refCount++
		return true
	}
	return false
}

// LockWithTimeout attempts to acquire the lock with a timeout.
// Returns true if the lock was acquired, false if timeout occurred.
func (pl *PlayerLock) LockWithTimeout(ctx context.Context, playerID int64, timeout time.Duration) bool {
	lock := pl.getLock(playerID)

	done := make(chan struct{})
	go func() {
		lock.mu.Lock()
		close(done)
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case <-done:
		lock.refCount++
		return true
	case <-timeoutCtx.Done():
		// The waiting goroutine will eventually acquire the mutex;
		// release it once it does so the lock is not leaked.
		go func() {
			<-done
			lock.mu.Unlock()
		}()
		return false
	}
}

// WithLock executes a function while holding the player's lock.
func (pl *PlayerLock) WithLock(playerID int64, fn func() error) error {
	pl.Lock(playerID)
	defer pl.Unlock(playerID)
	return fn()
}

// WithLockContext executes a function while holding the player's lock,
// with context support for cancellation.
func (pl *PlayerLock) WithLockContext(ctx context.Context, playerID int64, timeout time.Duration, fn func() error) error {
	if !pl.LockWithTimeout(ctx, playerID, timeout) {
		return ErrLockTimeout
	}
	defer pl.Unlock(playerID)

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fn()
	}
}

// WithPairLock executes a function while holding the locks of two
// players, acquiring them in ascending ID order so that concurrent
// two-player operations cannot deadlock against each other.
func (pl *PlayerLock) WithPairLock(firstID, secondID int64, fn func() error) error {
	if firstID == secondID {
		return pl.WithLock(firstID, fn)
	}
	lo, hi := firstID, secondID
	if lo > hi {
		lo, hi = hi, lo
	}
	pl.Lock(lo)
	defer pl.Unlock(lo)
	pl.Lock(hi)
	defer pl.Unlock(hi)
	return fn()
}

// IsLocked checks if a player currently has an active lock.
// Note: This is a point-in-time check and may change immediately after.
func (pl *PlayerLock) IsLocked(playerID int64) bool {
	if v, ok := pl.locks.Load(playerID); ok {
		lock := v.(*playerMutex)
		if lock.mu.TryLock() {
			lock.mu.Unlock()
			return false
		}
		return true
	}
	return false
}
