package season

import (
	"strings"

	"golang.org/x/text/cases"
)

// Default team identities used whenever a name is blank.
const (
	DefaultHomeName = "Asnières"
	DefaultAwayName = "Adversaire"
)

// DefaultUnknownPlayerNames are the placeholder names operators type when
// they do not know who scored. They never appear on the player boards.
var DefaultUnknownPlayerNames = []string{"inconnu", "joueur inconnu"}

// teamName trims name and falls back when nothing is left.
func teamName(name, fallback string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return fallback
}

// defaultTeamName returns the placeholder identity for a side.
func defaultTeamName(side Side) string {
	if side == SideAway {
		return DefaultAwayName
	}
	return DefaultHomeName
}

// =============================================================================
// NAME POLICY
// =============================================================================

// NamePolicy decides which player names may be credited and displayed.
// A name is valid when it is non-empty after trimming and does not match,
// case-insensitively, one of the reserved placeholder names.
type NamePolicy struct {
	sentinels map[string]struct{}
}

// NewNamePolicy builds a policy with the given placeholder names.
func NewNamePolicy(unknown ...string) NamePolicy {
	p := NamePolicy{sentinels: make(map[string]struct{}, len(unknown))}
	for _, name := range unknown {
		if key := fold(name); key != "" {
			p.sentinels[key] = struct{}{}
		}
	}
	return p
}

// DefaultNamePolicy rejects blank names and DefaultUnknownPlayerNames.
func DefaultNamePolicy() NamePolicy {
	return NewNamePolicy(DefaultUnknownPlayerNames...)
}

// Valid reports whether name may be credited.
func (p NamePolicy) Valid(name string) bool {
	key := fold(name)
	if key == "" {
		return false
	}
	_, reserved := p.sentinels[key]
	return !reserved
}

// Clean trims name, returning "" when the name is not valid.
func (p NamePolicy) Clean(name string) string {
	if !p.Valid(name) {
		return ""
	}
	return strings.TrimSpace(name)
}

// fold trims and case-folds a name. A Caser is stateful, so each call gets its own.
func fold(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
