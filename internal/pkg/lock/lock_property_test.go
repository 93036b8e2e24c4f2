package lock

import (
	"sync"
	"sync/atomic"
	"testing"

	"pgregory.net/rapid"
)

// TestConcurrentBalanceSafetyProperty checks that concurrent balance
// mutations under the player lock end at the same value as sequential
// execution of the same operations.
func TestConcurrentBalanceSafetyProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initialBalance := rapid.Int64Range(1000, 100000).Draw(t, "initialBalance")
		numOps := rapid.IntRange(2, 20).Draw(t, "numOps")

		amounts := make([]int64, numOps)
		expectedFinalBalance := initialBalance
		for i := 0; i < numOps; i++ {
			amounts[i] = rapid.Int64Range(-500, 500).Draw(t, "amount")
			expectedFinalBalance += amounts[i]
		}

		playerID := rapid.Int64Range(1, 1000000).Draw(t, "playerID")

		pl := NewPlayerLock()
		balance := initialBalance

		var wg sync.WaitGroup
		wg.Add(numOps)
		for _, amount := range amounts {
			go func(amount int64) {
				defer wg.Done()
				pl.Lock(playerID)
				defer pl.Unlock(playerID)
				balance += amount
			}(amount)
		}
		wg.Wait()

		if balance != expectedFinalBalance {
			t.Fatalf("balance mismatch with locking: expected %d, got %d (initial=%d, numOps=%d)",
				expectedFinalBalance, balance, initialBalance, numOps)
		}
	})
}

// TestWithLockFunctionProperty tests that WithLock correctly serializes operations.
func TestWithLockFunctionProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initialBalance := rapid.Int64Range(1000, 100000).Draw(t, "initialBalance")
		numOps := rapid.IntRange(5, 30).Draw(t, "numOps")
		amountPerOp := rapid.Int64Range(1, 100).Draw(t, "amountPerOp")

		expectedFinalBalance := initialBalance + int64(numOps)*amountPerOp
		playerID := rapid.Int64Range(1, 1000000).Draw(t, "playerID")

		pl := NewPlayerLock()
		balance := initialBalance

		var wg sync.WaitGroup
		wg.Add(numOps)
		for i := 0; i < numOps; i++ {
			go func() {
				defer wg.Done()
				_ = pl.WithLock(playerID, func() error {
					balance += amountPerOp
					return nil
				})
			}()
		}
		wg.Wait()

		if balance != expectedFinalBalance {
			t.Fatalf("balance mismatch with WithLock: expected %d, got %d",
				expectedFinalBalance, balance)
		}
	})
}

// TestMultiplePlayersIndependentLocksProperty tests that locks for
// different players are independent.
func TestMultiplePlayersIndependentLocksProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numPlayers := rapid.IntRange(2, 10).Draw(t, "numPlayers")
		opsPerPlayer := rapid.IntRange(5, 20).Draw(t, "opsPerPlayer")

		expectedBalances := make(map[int64]int64)
		balances := make(map[int64]*int64)
		for i := 0; i < numPlayers; i++ {
			playerID := int64(i + 1)
			balance := rapid.Int64Range(1000, 10000).Draw(t, "initialBalance")
			expectedBalances[playerID] = balance + int64(opsPerPlayer)*10
			b := balance
			balances[playerID] = &b
		}

		pl := NewPlayerLock()

		var wg sync.WaitGroup
		wg.Add(numPlayers * opsPerPlayer)
		for playerID := int64(1); playerID <= int64(numPlayers); playerID++ {
			for j := 0; j < opsPerPlayer; j++ {
				go func(id int64) {
					defer wg.Done()
					pl.Lock(id)
					defer pl.Unlock(id)
					*balances[id] += 10
				}(playerID)
			}
		}
		wg.Wait()

		for playerID := int64(1); playerID <= int64(numPlayers); playerID++ {
			if *balances[playerID] != expectedBalances[playerID] {
				t.Fatalf("player %d balance mismatch: expected %d, got %d",
					playerID, expectedBalances[playerID], *balances[playerID])
			}
		}
	})
}

// TestTryLockPreventsConcurrentSessionsProperty tests that TryLock
// rejects overlapping sessions for the same player without deadlocking.
func TestTryLockPreventsConcurrentSessionsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		playerID := rapid.Int64Range(1, 1000000).Draw(t, "playerID")
		numAttempts := rapid.IntRange(5, 20).Draw(t, "numAttempts")

		pl := NewPlayerLock()

		var successCount atomic.Int32
		var wg sync.WaitGroup
		wg.Add(numAttempts)
		startCh := make(chan struct{})

		for i := 0; i < numAttempts; i++ {
			go func() {
				defer wg.Done()
				<-startCh
				if pl.TryLock(playerID) {
					successCount.Add(1)
					pl.Unlock(playerID)
				}
			}()
		}

		close(startCh)
		wg.Wait()

		if successCount.Load() < 1 {
			t.Fatalf("at least one TryLock should succeed, got %d successes", successCount.Load())
		}

		if !pl.TryLock(playerID) {
			t.Fatal("lock should be available after all operations complete")
		}
		pl.Unlock(playerID)
	})
}

// TestPairLockNoDeadlockProperty exercises WithPairLock with both
// orderings of the same player pair concurrently; ascending acquisition
// order must prevent deadlock and keep both counters consistent.
func TestPairLockNoDeadlockProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int64Range(1, 500000).Draw(t, "a")
		b := rapid.Int64Range(500001, 1000000).Draw(t, "b")
		numOps := rapid.IntRange(4, 30).Draw(t, "numOps")

		pl := NewPlayerLock()
		var first, second int64

		var wg sync.WaitGroup
		wg.Add(numOps)
		for i := 0; i < numOps; i++ {
			forward := i%2 == 0
			go func(forward bool) {
				defer wg.Done()
				x, y := a, b
				if !forward {
					x, y = b, a
				}
				_ = pl.WithPairLock(x, y, func() error {
					first++
					second++
					return nil
				})
			}(forward)
		}
		wg.Wait()

		if first != int64(numOps) || second != int64(numOps) {
			t.Fatalf("pair lock lost updates: first=%d second=%d want %d", first, second, numOps)
		}
	})
}

// TestLockUnlockSymmetryProperty tests that every Lock has a corresponding Unlock.
func TestLockUnlockSymmetryProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		playerID := rapid.Int64Range(1, 1000000).Draw(t, "playerID")
		numCycles := rapid.IntRange(1, 50).Draw(t, "numCycles")

		pl := NewPlayerLock()
		for i := 0; i < numCycles; i++ {
			pl.Lock(playerID)
			pl.Unlock(playerID)
		}

		if !pl.TryLock(playerID) {
			t.Fatal("lock should be available after symmetric lock/unlock cycles")
		}
		pl.Unlock(playerID)
	})
}
