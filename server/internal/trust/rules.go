package trust

import (
	"fmt"
	"os"
	"regexp"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk YAML shape of the detection rule corpus.
type ruleFile struct {
	Rules []struct {
		Name string `yaml:"name"`
		Meta struct {
			Severity string `yaml:"severity"`
		} `yaml:"meta"`
		Patterns []string `yaml:"patterns"`
	} `yaml:"rules"`
}

// Rule is one compiled detection signature.
type Rule struct {
	Name     string
	Severity Severity
	patterns []*regexp.Regexp
}

// Hit records one rule matching one event.
type Hit struct {
	Rule     string
	Severity Severity
}

// Ruleset holds the compiled detection rules. A Ruleset that failed to load
// is disabled: it matches nothing, and the trust engine observes severity
// none for every event.
type Ruleset struct {
	rules   []Rule
	enabled bool
}

// LoadRules reads and compiles the rule file. Any failure - missing file,
// bad YAML, unknown severity, invalid pattern - disables the engine rather
// than rejecting events.
func LoadRules(path string, log *zap.Logger) *Ruleset {
	rs, err := loadRules(path)
	if err != nil {
		log.Warn("rule engine disabled", zap.String("path", path), zap.Error(err))
		return &Ruleset{}
	}
	log.Info("detection rules loaded", zap.String("path", path), zap.Int("rules", len(rs.rules)))
	return rs
}

func loadRules(path string) (*Ruleset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f ruleFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse rule file: %w", err)
	}

	rs := &Ruleset{enabled: true}
	for _, r := range f.Rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rule with empty name")
		}
		sev, err := ParseSeverity(r.Meta.Severity)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Name, err)
		}

		rule := Rule{Name: r.Name, Severity: sev}
		for _, p := range r.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("rule %s: pattern %q: %w", r.Name, p, err)
			}
			rule.patterns = append(rule.patterns, re)
		}
		rs.rules = append(rs.rules, rule)
	}
	return rs, nil
}

// NewRuleset builds an enabled in-memory ruleset. Test constructor.
func NewRuleset(rules []Rule) *Ruleset {
	return &Ruleset{rules: rules, enabled: true}
}

// MustRule compiles a rule or panics. Test helper for literal rule tables.
func MustRule(name string, severity Severity, patterns ...string) Rule {
	r := Rule{Name: name, Severity: severity}
	for _, p := range patterns {
		r.patterns = append(r.patterns, regexp.MustCompile("(?i)"+p))
	}
	return r
}

// Enabled reports whether rules were loaded successfully.
func (rs *Ruleset) Enabled() bool { return rs.enabled }

// Match returns every rule with at least one pattern matching text.
func (rs *Ruleset) Match(text string) []Hit {
	if !rs.enabled || text == "" {
		return nil
	}

	var hits []Hit
	for _, rule := range rs.rules {
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				hits = append(hits, Hit{Rule: rule.Name, Severity: rule.Severity})
				break
			}
		}
	}
	return hits
}
