// Package trust implements the server-side trust engine: rule-based
// severity detection over ingested events, per-signature cooldown,
// per-device recon/attack-chain correlation, and the trust-score update
// law (penalty, slow/fast recovery, chain escalation).
package trust

import (
	"math"
	"strings"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// reconRuleName is the rule whose match always counts as reconnaissance,
// regardless of severity.
const reconRuleName = "recon_commands"

// synProbeSignature gates the half-open-scan penalty through its own
// cooldown signature.
const synProbeSignature = "syn_probe"

// benignProcesses are skipped before rule evaluation, case-insensitive
// exact match.
var benignProcesses = map[string]struct{}{
	"systemd":             {},
	"init":                {},
	"kthreadd":            {},
	"dbus-daemon":         {},
	"networkmanager":      {},
	"explorer.exe":        {},
	"svchost.exe":         {},
	"searchindexer.exe":   {},
	"runtimebroker.exe":   {},
	"taskhostw.exe":       {},
	"chrome":              {},
	"chrome.exe":          {},
	"firefox":             {},
	"firefox.exe":         {},
	"code":                {},
	"gnome-shell":         {},
	"pulseaudio":          {},
	"wireplumber":         {},
}

// Event is the trust engine's view of one ingested event.
type Event struct {
	Type        string
	ProcessName string
	Cmdline     string
	Flags       string
}

// Assessment is the outcome of evaluating one payload for one device.
type Assessment struct {
	Severity       Severity
	ScoreImpact    float64
	SawRecon       bool
	SawAttack      bool
	ChainEscalated bool
	Recovery       RecoveryMode
	Rules          []string
}

// Engine evaluates payloads against the rule corpus and maintains the
// cooldown and correlation state.
type Engine struct {
	rules    *Ruleset
	cooldown *SignatureCache
	risk     *RiskTracker
	cfg      Config
	log      *zap.Logger
}

// NewEngine wires a trust engine with fresh cooldown and risk state.
func NewEngine(rules *Ruleset, cfg Config, clock clockwork.Clock, log *zap.Logger) *Engine {
	return &Engine{
		rules:    rules,
		cooldown: NewSignatureCache(cfg.AlertCooldown, clock),
		risk:     NewRiskTracker(cfg, clock),
		cfg:      cfg,
		log:      log,
	}
}

// Evaluate runs the rule engine over one payload's events, applies the
// cooldown and the correlation transitions, and returns the assessment.
func (e *Engine) Evaluate(deviceID string, events []Event) Assessment {
	var a Assessment

	for _, ev := range events {
		e.evaluateNetwork(deviceID, ev, &a)

		if isBenign(ev.ProcessName) {
			continue
		}

		text := ev.Cmdline
		if text == "" {
			text = ev.ProcessName
		}

		for _, hit := range e.rules.Match(text) {
			if hit.Severity > a.Severity {
				a.Severity = hit.Severity
			}
			if hit.Rule == reconRuleName || hit.Severity == SeverityLow {
				a.SawRecon = true
			}
			if hit.Severity >= SeverityMedium {
				a.SawAttack = true
			}
			a.Rules = append(a.Rules, hit.Rule)

			if e.cooldown.Allow(deviceID, hit.Rule) {
				a.ScoreImpact = math.Max(a.ScoreImpact, hit.Severity.Penalty())
			}
		}
	}

	chain, mode := e.risk.Observe(deviceID, a.SawRecon, a.SawAttack, a.Severity)
	if chain {
		a.ChainEscalated = true
		a.ScoreImpact += e.cfg.ChainEscalationBonus
	}
	a.Recovery = mode

	if a.Severity > SeverityNone || a.ChainEscalated {
		e.log.Info("detection",
			zap.String("device_id", deviceID),
			zap.String("severity", a.Severity.String()),
			zap.Float64("score_impact", a.ScoreImpact),
			zap.Strings("rules", a.Rules),
			zap.Bool("chain_escalated", a.ChainEscalated),
		)
	}
	return a
}

// evaluateNetwork flags half-open scans: SYN without ACK counts as recon at
// low severity, gated by the syn_probe signature cooldown.
func (e *Engine) evaluateNetwork(deviceID string, ev Event, a *Assessment) {
	if !strings.HasPrefix(ev.Type, "network") {
		return
	}
	flags := strings.ToUpper(ev.Flags)
	if !strings.Contains(flags, "SYN") || strings.Contains(flags, "ACK") {
		return
	}

	a.SawRecon = true
	if a.Severity < SeverityLow {
		a.Severity = SeverityLow
	}
	if e.cooldown.Allow(deviceID, synProbeSignature) {
		a.ScoreImpact = math.Max(a.ScoreImpact, SeverityLow.Penalty())
	}
}

// NextScore applies the score update law. Penalties decay the score;
// payloads with no observed detection regenerate it at the rate selected by
// the correlation state. A detection fully absorbed by cooldown leaves the
// score untouched.
func (e *Engine) NextScore(current float64, a Assessment) float64 {
	if a.ScoreImpact > 0 {
		return math.Max(0.0, current-a.ScoreImpact)
	}
	if a.Severity > SeverityNone {
		return current
	}

	rate := e.cfg.RecoveryPerCycle
	switch a.Recovery {
	case RecoverySlow:
		rate = e.cfg.SlowRecoveryPerCycle
	case RecoveryFast:
		rate = e.cfg.FastRecoveryPerCycle
	}
	return math.Min(100.0, current+rate)
}

// Feedback renders the operator-facing summary line for the HTTP reply.
func Feedback(a Assessment, score float64) string {
	switch {
	case a.ChainEscalated:
		return "CRITICAL: Correlated attack pattern"
	case a.Severity == SeverityCritical:
		return "CRITICAL: Threat detected"
	case a.Severity == SeverityHigh:
		return "WARNING: Suspicious activity"
	case a.Severity == SeverityMedium || a.Severity == SeverityLow:
		return "WARNING: Monitor activity"
	case score > 75:
		return "Secure"
	default:
		return "WARNING: Low trust score"
	}
}

func isBenign(processName string) bool {
	if processName == "" {
		return false
	}
	_, ok := benignProcesses[strings.ToLower(processName)]
	return ok
}
