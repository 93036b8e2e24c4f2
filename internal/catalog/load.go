package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"mafia-casino-bot/internal/model"
)

// catalogFile mirrors the optional YAML override file. Sections left
// out of the file keep the compiled-in defaults.
type catalogFile struct {
	Crimes []struct {
		ID          string         `yaml:"id"`
		Name        string         `yaml:"name"`
		MinMoney    int64          `yaml:"min_money"`
		SuccessRate float64        `yaml:"success_rate"`
		RewardMin   int64          `yaml:"reward_min"`
		RewardMax   int64          `yaml:"reward_max"`
		JailSeconds int64          `yaml:"jail_seconds"`
		Reputation  map[string]int `yaml:"reputation"`
	} `yaml:"crimes"`
	Territories []struct {
		ID     string  `yaml:"id"`
		Name   string  `yaml:"name"`
		Cost   int64   `yaml:"cost"`
		Income int64   `yaml:"income"`
		Risk   float64 `yaml:"risk"`
	} `yaml:"territories"`
	Items []struct {
		ID       string  `yaml:"id"`
		Name     string  `yaml:"name"`
		Cost     int64   `yaml:"cost"`
		Category string  `yaml:"category"`
		Bonus    float64 `yaml:"bonus"`
	} `yaml:"items"`
	Symbols []struct {
		Symbol     string `yaml:"symbol"`
		Multiplier int64  `yaml:"multiplier"`
	} `yaml:"symbols"`
	Ranks []struct {
		Name          string `yaml:"name"`
		MinMoney      int64  `yaml:"min_money"`
		MinReputation int    `yaml:"min_reputation"`
	} `yaml:"ranks"`
	DailyBonus    *int64 `yaml:"daily_bonus"`
	StartingMoney *int64 `yaml:"starting_money"`
}

// Load builds the catalog from defaults, then applies overrides from
// the YAML file at path if it exists. A missing file is not an error.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if err := c.applyOverrides(&file); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) applyOverrides(file *catalogFile) error {
	if len(file.Crimes) > 0 {
		c.crimes = make(map[CrimeID]Crime, len(file.Crimes))
		c.crimeOrder = nil
		for _, fc := range file.Crimes {
			if fc.SuccessRate < 0 || fc.SuccessRate > 1 {
				return fmt.Errorf("crime %q: success_rate %v out of [0,1]", fc.ID, fc.SuccessRate)
			}
			if fc.RewardMax < fc.RewardMin {
				return fmt.Errorf("crime %q: reward_max below reward_min", fc.ID)
			}
			rep := make(map[model.Faction]int, len(fc.Reputation))
			for f, v := range fc.Reputation {
				rep[model.Faction(f)] = v
			}
			id := CrimeID(fc.ID)
			c.crimes[id] = Crime{
				ID: id, Name: fc.Name,
				MinMoney: fc.MinMoney, SuccessRate: fc.SuccessRate,
				RewardMin: fc.RewardMin, RewardMax: fc.RewardMax,
				JailTime:   time.Duration(fc.JailSeconds) * time.Second,
				Reputation: rep,
			}
			c.crimeOrder = append(c.crimeOrder, id)
		}
	}

	if len(file.Territories) > 0 {
		c.territories = make(map[TerritoryID]Territory, len(file.Territories))
		c.territoryOrder = nil
		for _, ft := range file.Territories {
			if ft.Risk < 0 || ft.Risk > 1 {
				return fmt.Errorf("territory %q: risk %v out of [0,1]", ft.ID, ft.Risk)
			}
			id := TerritoryID(ft.ID)
			c.territories[id] = Territory{ID: id, Name: ft.Name, Cost: ft.Cost, Income: ft.Income, Risk: ft.Risk}
			c.territoryOrder = append(c.territoryOrder, id)
		}
	}

	if len(file.Items) > 0 {
		c.items = make(map[ItemID]Item, len(file.Items))
		c.itemOrder = nil
		for _, fi := range file.Items {
			id := ItemID(fi.ID)
			c.items[id] = Item{ID: id, Name: fi.Name, Cost: fi.Cost, Category: fi.Category, Bonus: fi.Bonus}
			c.itemOrder = append(c.itemOrder, id)
		}
	}

	if len(file.Symbols) > 0 {
		c.symbols = nil
		c.multipliers = make(map[Symbol]int64, len(file.Symbols))
		for _, sym := range file.Symbols {
			s := Symbol(sym.Symbol)
			c.symbols = append(c.symbols, s)
			c.multipliers[s] = sym.Multiplier
		}
	}

	if len(file.Ranks) > 0 {
		c.ranks = nil
		for _, fr := range file.Ranks {
			c.ranks = append(c.ranks, RankTier{Name: fr.Name, MinMoney: fr.MinMoney, MinReputation: fr.MinReputation})
		}
		for i := 1; i < len(c.ranks); i++ {
			prev, cur := c.ranks[i-1], c.ranks[i]
			if cur.MinMoney < prev.MinMoney || cur.MinReputation < prev.MinReputation {
				return fmt.Errorf("rank %q: thresholds must not decrease", cur.Name)
			}
		}
	}

	if file.DailyBonus != nil {
		c.dailyBonus = *file.DailyBonus
	}
	if file.StartingMoney != nil {
		c.startingMoney = *file.StartingMoney
	}

	return nil
}
