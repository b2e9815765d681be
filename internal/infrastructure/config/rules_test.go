package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultThresholdRules(t *testing.T) {
	rules := DefaultThresholdRules()

	assert.Len(t, rules, 6)

	ph := rules["ph"]
	assert.Equal(t, 6.5, ph.WarnMin)
	assert.Equal(t, 8.5, ph.WarnMax)
	assert.Equal(t, 6.0, ph.CritMin)
	assert.Equal(t, 9.0, ph.CritMax)

	// Critical bands must contain the warning bands.
	for name, rule := range rules {
		assert.LessOrEqual(t, rule.CritMin, rule.WarnMin, name)
		assert.GreaterOrEqual(t, rule.CritMax, rule.WarnMax, name)
	}
}

func TestLoadThresholdRulesMissingFile(t *testing.T) {
	rules := LoadThresholdRules(t.TempDir())
	assert.Equal(t, DefaultThresholdRules(), rules)
}

func TestLoadThresholdRulesOverride(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`rules:
  ph:
    warn_min: 6.0
    warn_max: 9.0
    crit_min: 5.5
    crit_max: 9.5
    unit: pH
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "thresholds.yaml"), content, 0644))

	rules := LoadThresholdRules(dir)

	ph := rules["ph"]
	assert.Equal(t, 6.0, ph.WarnMin)
	assert.Equal(t, 9.0, ph.WarnMax)
	assert.Equal(t, 5.5, ph.CritMin)
	assert.Equal(t, 9.5, ph.CritMax)

	// Untouched types keep their defaults.
	assert.Equal(t, DefaultThresholdRules()["flow"], rules["flow"])
}
