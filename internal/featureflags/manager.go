// Package featureflags evaluates the FEATURE_FLAGS setting.
package featureflags

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Known flags.
const (
	// Registration gates POST /auth/register. It defaults to enabled.
	Registration = "registration"
)

// Manager evaluates feature flags defined in a simple key=value list.
// Example: "registration=off,drafts_preview=25%"
type Manager struct {
	flags map[string]string
}

// NewManager creates a feature-flag manager from a comma-separated config string.
func NewManager(raw string) *Manager {
	out := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = normalize(key)
		value = normalize(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}

	return &Manager{flags: out}
}

// Enabled returns whether a flag is enabled for a subject (usually a user id).
// Unset flags are disabled. Supported values:
// - on/true/1
// - off/false/0
// - N% (deterministic rollout by subject, e.g. 25%)
func (m *Manager) Enabled(name, subject string) bool {
	return m.EnabledOr(name, subject, false)
}

// EnabledOr is Enabled with an explicit result for unset or unparseable flags.
func (m *Manager) EnabledOr(name, subject string, def bool) bool {
	if m == nil {
		return def
	}

	value, ok := m.flags[normalize(name)]
	if !ok {
		return def
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	pctRaw, isPct := strings.CutSuffix(value, "%")
	if !isPct {
		return def
	}
	pct, err := strconv.Atoi(pctRaw)
	if err != nil {
		return def
	}
	switch {
	case pct <= 0:
		return false
	case pct >= 100:
		return true
	case subject == "":
		return false
	}
	return rolloutBucket(name, subject) < pct
}

// Raw returns a copy of configured flags.
func (m *Manager) Raw() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m.flags))
	for k, v := range m.flags {
		out[k] = v
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name, subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(name) + ":" + subject))
	return int(h.Sum32() % 100)
}
