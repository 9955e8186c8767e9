package trust_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/server/internal/trust"
)

func writeRuleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRules_Valid(t *testing.T) {
	path := writeRuleFile(t, `
rules:
  - name: recon_commands
    meta:
      severity: low
    patterns:
      - '\bwhoami\b'
      - '\bsysteminfo\b'
  - name: credential_dumping
    meta:
      severity: critical
    patterns:
      - '\bmimikatz\b'
`)

	rs := trust.LoadRules(path, zap.NewNop())
	require.True(t, rs.Enabled())

	hits := rs.Match("cmd.exe /c whoami && mimikatz")
	require.Len(t, hits, 2)
	assert.Equal(t, "recon_commands", hits[0].Rule)
	assert.Equal(t, trust.SeverityLow, hits[0].Severity)
	assert.Equal(t, "credential_dumping", hits[1].Rule)
	assert.Equal(t, trust.SeverityCritical, hits[1].Severity)
}

func TestLoadRules_CaseInsensitive(t *testing.T) {
	path := writeRuleFile(t, `
rules:
  - name: recon_commands
    meta:
      severity: low
    patterns:
      - '\bwhoami\b'
`)

	rs := trust.LoadRules(path, zap.NewNop())
	assert.Len(t, rs.Match("WHOAMI /priv"), 1)
}

func TestLoadRules_OneHitPerRule(t *testing.T) {
	path := writeRuleFile(t, `
rules:
  - name: recon_commands
    meta:
      severity: low
    patterns:
      - '\bwhoami\b'
      - '\bnet user\b'
`)

	rs := trust.LoadRules(path, zap.NewNop())
	assert.Len(t, rs.Match("whoami; net user admin"), 1, "multiple pattern matches collapse to one hit")
}

func TestLoadRules_DisabledOnFailure(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yml")},
		{"malformed yaml", writeRuleFile(t, "rules: [::")},
		{"unknown severity", writeRuleFile(t, "rules:\n  - name: x\n    meta:\n      severity: extreme\n    patterns: ['a']\n")},
		{"bad pattern", writeRuleFile(t, "rules:\n  - name: x\n    meta:\n      severity: low\n    patterns: ['[']\n")},
		{"empty rule name", writeRuleFile(t, "rules:\n  - name: \"\"\n    meta:\n      severity: low\n    patterns: ['a']\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := trust.LoadRules(tt.path, zap.NewNop())
			assert.False(t, rs.Enabled())
			assert.Empty(t, rs.Match("whoami"))
		})
	}
}

func TestParseSeverity(t *testing.T) {
	for label, want := range map[string]trust.Severity{
		"low":      trust.SeverityLow,
		"medium":   trust.SeverityMedium,
		"high":     trust.SeverityHigh,
		"critical": trust.SeverityCritical,
	} {
		got, err := trust.ParseSeverity(label)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, label, got.String())
	}

	_, err := trust.ParseSeverity("extreme")
	assert.Error(t, err)
}

func TestSeverityPenalties(t *testing.T) {
	assert.Equal(t, 0.0, trust.SeverityNone.Penalty())
	assert.Equal(t, 5.0, trust.SeverityLow.Penalty())
	assert.Equal(t, 10.0, trust.SeverityMedium.Penalty())
	assert.Equal(t, 15.0, trust.SeverityHigh.Penalty())
	assert.Equal(t, 20.0, trust.SeverityCritical.Penalty())
}
