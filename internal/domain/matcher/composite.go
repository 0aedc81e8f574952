package matcher

import (
	"regexp"
	"strings"

	"github.com/okian/venuematch/internal/domain/model"
)

// Pattern is one naming convention inside a building: a venue expression
// and the room name it expands to, e.g. SDE-SR2 -> "SEMINAR ROOM 2".
type Pattern struct {
	Name     string
	Expr     *regexp.Regexp
	Template string // regexp.Expand template, e.g. "SEMINAR ROOM $1"
}

// RoomName expands the canonical room name for venue. ok is false when the
// venue does not follow this convention.
func (p Pattern) RoomName(venue string) (string, bool) {
	idx := p.Expr.FindStringSubmatchIndex(venue)
	if idx == nil {
		return "", false
	}
	return string(p.Expr.ExpandString(nil, p.Template, venue, idx)), true
}

// Building groups the naming conventions of one building behind a single
// rule. Patterns are mutually exclusive by construction; the first one whose
// expression matches the venue is the only one consulted.
type Building struct {
	name     string
	prefix   string
	patterns []Pattern
}

// NewBuilding creates a composite rule for rooms and venues sharing prefix.
func NewBuilding(name, prefix string, patterns ...Pattern) *Building {
	return &Building{name: name, prefix: prefix, patterns: patterns}
}

// Name implements Rule.
func (b *Building) Name() string { return b.name }

// Patterns returns the sub-patterns in evaluation order.
func (b *Building) Patterns() []Pattern {
	out := make([]Pattern, len(b.patterns))
	copy(out, b.patterns)
	return out
}

// Match implements Rule.
func (b *Building) Match(venue string, room model.Room) bool {
	if !strings.HasPrefix(venue, b.prefix) || !strings.HasPrefix(room.RoomCode, b.prefix) {
		return false
	}
	for _, p := range b.patterns {
		name, ok := p.RoomName(venue)
		if !ok {
			continue
		}
		return room.RoomName == name
	}
	return false
}

// SDE is the School of Design and Environment composite: learning rooms,
// seminar rooms and e-studios each follow their own convention.
func SDE() *Building {
	return NewBuilding(NameSDE, "SDE",
		Pattern{
			Name:     "learning-room",
			Expr:     regexp.MustCompile(`^SDE-LR(\d+)$`),
			Template: "LEARNING ROOM $1",
		},
		Pattern{
			Name:     "seminar-room",
			Expr:     regexp.MustCompile(`^SDE-SR(\d+)$`),
			Template: "SEMINAR ROOM $1",
		},
		Pattern{
			Name:     "e-studio",
			Expr:     regexp.MustCompile(`^SDE-ES(\d+)$`),
			Template: "E-STUDIO $1",
		},
	)
}
