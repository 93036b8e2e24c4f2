// Package economy implements the money/reputation/status rules shared
// by all resolvers: rank derivation, cooldown gating and jail checks.
package economy

import (
	"time"

	"mafia-casino-bot/internal/catalog"
)

// RankFor returns the highest rank tier whose money and reputation
// floors are both met. The table is ordered lowest tier first; the
// lowest tier has zero floors, so every player matches at least one.
func RankFor(ranks []catalog.RankTier, money int64, reputationTotal int) string {
	name := ""
	for _, tier := range ranks {
		if money >= tier.MinMoney && reputationTotal >= tier.MinReputation {
			name = tier.Name
		}
	}
	return name
}

// CooldownRemaining returns how much of the interval is left since the
// last occurrence. A nil last timestamp means the action never happened
// and the cooldown is not active.
func CooldownRemaining(last *time.Time, interval time.Duration, now time.Time) time.Duration {
	if last == nil {
		return 0
	}
	elapsed := now.Sub(*last)
	if elapsed >= interval {
		return 0
	}
	return interval - elapsed
}

// CooldownActive reports whether the gating interval has not yet elapsed.
func CooldownActive(last *time.Time, interval time.Duration, now time.Time) bool {
	return CooldownRemaining(last, interval, now) > 0
}
