package server

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

type Config struct {
	Addr            string `json:"addr"`
	GrowBudget      int    `json:"grow_budget"`
	ExploreBudgetMs int    `json:"explore_budget_ms"`
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		GrowBudget:      200000,
		ExploreBudgetMs: 500,
	}
}

// LoadConfig reads a JSON config file over the defaults, so partial files
// only override the keys they mention.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrap(err, "failed to read config file")
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrap(err, "failed to parse config file")
	}
	return config, nil
}
