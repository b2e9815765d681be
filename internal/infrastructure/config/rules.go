package config

import (
	"log"

	"github.com/spf13/viper"
)

// ThresholdRule holds the warning and critical bands for one sensor type.
// A value outside [WarnMin, WarnMax] raises a warning; outside
// [CritMin, CritMax] it raises a critical alert.
type ThresholdRule struct {
	WarnMin float64 `mapstructure:"warn_min"`
	WarnMax float64 `mapstructure:"warn_max"`
	CritMin float64 `mapstructure:"crit_min"`
	CritMax float64 `mapstructure:"crit_max"`
	Unit    string  `mapstructure:"unit"`
}

// ThresholdRules maps sensor type name to its rule.
type ThresholdRules map[string]ThresholdRule

// DefaultThresholdRules are the built-in bands used when no thresholds.yaml
// overrides them. Values follow common drinking-water guidelines.
func DefaultThresholdRules() ThresholdRules {
	return ThresholdRules{
		"flow":        {WarnMin: 10, WarnMax: 80, CritMin: 5, CritMax: 95, Unit: "L/min"},
		"pressure":    {WarnMin: 2.0, WarnMax: 6.0, CritMin: 1.0, CritMax: 7.5, Unit: "bar"},
		"temperature": {WarnMin: 10, WarnMax: 30, CritMin: 5, CritMax: 40, Unit: "°C"},
		"ph":          {WarnMin: 6.5, WarnMax: 8.5, CritMin: 6.0, CritMax: 9.0, Unit: "pH"},
		"turbidity":   {WarnMin: 0, WarnMax: 1.0, CritMin: 0, CritMax: 5.0, Unit: "NTU"},
		"quality":     {WarnMin: 70, WarnMax: 100, CritMin: 50, CritMax: 100, Unit: "index"},
	}
}

// LoadThresholdRules reads thresholds.yaml from the given directory and merges
// it over the defaults. A missing file is not an error.
func LoadThresholdRules(path string) ThresholdRules {
	rules := DefaultThresholdRules()

	v := viper.New()
	v.SetConfigName("thresholds")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("No threshold rules file found (%v), using built-in defaults", err)
		return rules
	}

	var loaded struct {
		Rules ThresholdRules `mapstructure:"rules"`
	}
	if err := v.Unmarshal(&loaded); err != nil {
		log.Printf("Failed to parse threshold rules file: %v, using built-in defaults", err)
		return rules
	}

	for sensorType, rule := range loaded.Rules {
		rules[sensorType] = rule
	}

	log.Printf("Loaded threshold rules for %d sensor types", len(rules))
	return rules
}
