package analytics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Settings holds the heuristic thresholds and request defaults. Zero values
// are replaced by the defaults below.
type Settings struct {
	DefaultPeriodCount  int      `yaml:"default_period_count"`
	MaxPeriodCount      int      `yaml:"max_period_count"`
	DefaultRecentLimit  int      `yaml:"default_recent_limit"`
	RevenueKeywords     []string `yaml:"revenue_keywords"`
	TrendThreshold      float64  `yaml:"trend_threshold"`
	VolatilityThreshold float64  `yaml:"volatility_threshold"`
}

func DefaultSettings() Settings {
	return Settings{
		DefaultPeriodCount:  6,
		MaxPeriodCount:      60,
		DefaultRecentLimit:  10,
		RevenueKeywords:     []string{"tithe", "offering", "donation", "contribution", "income", "revenue"},
		TrendThreshold:      5,
		VolatilityThreshold: 20,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.DefaultPeriodCount <= 0 {
		s.DefaultPeriodCount = d.DefaultPeriodCount
	}
	if s.MaxPeriodCount <= 0 {
		s.MaxPeriodCount = d.MaxPeriodCount
	}
	if s.DefaultRecentLimit <= 0 {
		s.DefaultRecentLimit = d.DefaultRecentLimit
	}
	if len(s.RevenueKeywords) == 0 {
		s.RevenueKeywords = d.RevenueKeywords
	}
	if s.TrendThreshold <= 0 {
		s.TrendThreshold = d.TrendThreshold
	}
	if s.VolatilityThreshold <= 0 {
		s.VolatilityThreshold = d.VolatilityThreshold
	}
	return s
}

// LoadSettings reads a YAML settings file. An empty path yields the defaults.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return s.withDefaults(), nil
}
