package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// Reward is a gold/xp payout looked up by a dotted key such as
// "COMBAT.PIRATE_SUNK".
type Reward struct {
	Gold int `json:"gold"`
	XP   int `json:"xp"`
}

//go:embed data/rewards.json
var defaultRewardsJSON []byte

// RewardTable is the immutable, load-once registry of reward keys.
type RewardTable struct {
	byKey map[string]Reward
}

func loadRewards(data []byte) (*RewardTable, error) {
	var m map[string]Reward
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: decode rewards: %w", err)
	}
	return &RewardTable{byKey: m}, nil
}

// DefaultRewards loads the embedded reward table.
func DefaultRewards() (*RewardTable, error) {
	return loadRewards(defaultRewardsJSON)
}

// Get returns the reward for key and whether it was found.
func (t *RewardTable) Get(key string) (Reward, bool) {
	r, ok := t.byKey[key]
	return r, ok
}
