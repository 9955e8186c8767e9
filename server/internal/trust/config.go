package trust

import (
	"os"
	"strconv"
	"time"
)

// Config holds the trust-engine tunables. Every field is overridable via
// the environment variable of the same (upper snake) name.
type Config struct {
	AlertCooldown        time.Duration
	RecoveryPerCycle     float64
	SlowRecoveryPerCycle float64
	FastRecoveryPerCycle float64
	ReconContext         time.Duration
	CompromisedRecovery  time.Duration
	ChainEscalationBonus float64
}

// DefaultConfig returns the built-in tuning.
func DefaultConfig() Config {
	return Config{
		AlertCooldown:        45 * time.Second,
		RecoveryPerCycle:     1.2,
		SlowRecoveryPerCycle: 0.2,
		FastRecoveryPerCycle: 3.0,
		ReconContext:         30 * time.Second,
		CompromisedRecovery:  120 * time.Second,
		ChainEscalationBonus: 5.0,
	}
}

// ConfigFromEnv layers environment overrides over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.AlertCooldown = envSeconds("ALERT_COOLDOWN_SECONDS", cfg.AlertCooldown)
	cfg.RecoveryPerCycle = envFloat("RECOVERY_PER_CYCLE", cfg.RecoveryPerCycle)
	cfg.SlowRecoveryPerCycle = envFloat("SLOW_RECOVERY_PER_CYCLE", cfg.SlowRecoveryPerCycle)
	cfg.FastRecoveryPerCycle = envFloat("FAST_RECOVERY_PER_CYCLE", cfg.FastRecoveryPerCycle)
	cfg.ReconContext = envSeconds("RECON_CONTEXT_SECONDS", cfg.ReconContext)
	cfg.CompromisedRecovery = envSeconds("COMPROMISED_RECOVERY_SECONDS", cfg.CompromisedRecovery)
	cfg.ChainEscalationBonus = envFloat("CHAIN_ESCALATION_BONUS", cfg.ChainEscalationBonus)
	return cfg
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
			return time.Duration(secs * float64(time.Second))
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return fallback
}
