package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/model"
)

func TestDefaultLookups(t *testing.T) {
	c := Default()

	crime, err := c.Crime(CrimePickpocket)
	require.NoError(t, err)
	assert.Equal(t, "Pickpocketing", crime.Name)
	assert.Equal(t, 0.8, crime.SuccessRate)

	territory, err := c.Territory(TerritoryDowntown)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), territory.Cost)

	item, err := c.Item(ItemPistol)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), item.Cost)

	m, err := c.SymbolMultiplier(SymbolDiamond)
	require.NoError(t, err)
	assert.Equal(t, int64(25), m)

	assert.Equal(t, int64(100), c.DailyBonus())
	assert.Equal(t, int64(1000), c.StartingMoney())
	assert.Len(t, c.Symbols(), 5)
	assert.Len(t, c.Crimes(), 4)
	assert.Len(t, c.Territories(), 4)
	assert.Len(t, c.Items(), 5)
}

func TestUnknownLookupsFail(t *testing.T) {
	c := Default()

	_, err := c.Crime("arson")
	assert.ErrorIs(t, err, game.ErrUnknownEntity)

	_, err = c.Territory("atlantis")
	assert.ErrorIs(t, err, game.ErrUnknownEntity)

	_, err = c.Item("bazooka")
	assert.ErrorIs(t, err, game.ErrUnknownEntity)

	_, err = c.SymbolMultiplier("🍀")
	assert.ErrorIs(t, err, game.ErrUnknownEntity)
}

func TestDefaultRanksAreMonotonic(t *testing.T) {
	ranks := Default().Ranks()
	require.NotEmpty(t, ranks)

	assert.Zero(t, ranks[0].MinMoney)
	assert.Zero(t, ranks[0].MinReputation)
	for i := 1; i < len(ranks); i++ {
		assert.GreaterOrEqual(t, ranks[i].MinMoney, ranks[i-1].MinMoney, "tier %s", ranks[i].Name)
		assert.GreaterOrEqual(t, ranks[i].MinReputation, ranks[i-1].MinReputation, "tier %s", ranks[i].Name)
	}
}

func TestFailureReputationTruncatesTowardZero(t *testing.T) {
	crime := Crime{Reputation: map[model.Faction]int{
		model.FactionPolice:   -5,
		model.FactionMafia:    3,
		model.FactionCitizens: -1,
	}}

	half := crime.FailureReputation()
	assert.Equal(t, -2, half[model.FactionPolice])
	assert.Equal(t, 1, half[model.FactionMafia])
	assert.Equal(t, 0, half[model.FactionCitizens])
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), c.StartingMoney())

	c, err = Load("")
	require.NoError(t, err)
	assert.Len(t, c.Crimes(), 4)
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesOverrides(t *testing.T) {
	path := writeCatalog(t, `
starting_money: 5000
daily_bonus: 250
crimes:
  - id: jaywalking
    name: Jaywalking
    min_money: 0
    success_rate: 0.95
    reward_min: 1
    reward_max: 10
    jail_seconds: 60
    reputation:
      police: -1
territories:
  - id: docks
    name: The Docks
    cost: 7500
    income: 75
    risk: 0.2
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), c.StartingMoney())
	assert.Equal(t, int64(250), c.DailyBonus())

	// Overridden sections replace the defaults entirely.
	require.Len(t, c.Crimes(), 1)
	crime, err := c.Crime("jaywalking")
	require.NoError(t, err)
	assert.Equal(t, -1, crime.Reputation[model.FactionPolice])
	_, err = c.Crime(CrimePickpocket)
	assert.ErrorIs(t, err, game.ErrUnknownEntity)

	territory, err := c.Territory("docks")
	require.NoError(t, err)
	assert.Equal(t, int64(75), territory.Income)

	// Untouched sections keep the defaults.
	assert.Len(t, c.Items(), 5)
	assert.Len(t, c.Symbols(), 5)
}

func TestLoadRejectsBadOverrides(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"success rate over one",
			"crimes:\n  - id: x\n    success_rate: 1.5\n    reward_min: 1\n    reward_max: 2\n",
		},
		{
			"reward range inverted",
			"crimes:\n  - id: x\n    success_rate: 0.5\n    reward_min: 10\n    reward_max: 5\n",
		},
		{
			"risk out of range",
			"territories:\n  - id: x\n    risk: 2.0\n",
		},
		{
			"rank thresholds decrease",
			"ranks:\n  - name: low\n    min_money: 1000\n    min_reputation: 10\n  - name: high\n    min_money: 500\n    min_reputation: 20\n",
		},
		{
			"not yaml",
			"{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCatalog(t, tt.content))
			assert.Error(t, err)
		})
	}
}
