package resolve

import (
	"strconv"
	"strings"
)

// Ref is a loosely-specified identifier as it arrives from the calling
// model: absent, a numeric literal ("86"), or a human name ("Rubick").
// Which case applies is decided once at parse time rather than re-checked
// at every use.
type Ref struct {
	kind refKind
	id   int
	name string
}

type refKind int

const (
	refNil refKind = iota
	refID
	refName
)

// ParseRef classifies a raw argument string. Empty input is the absent
// filter; an integer literal is treated as an already-canonical ID.
func ParseRef(raw string) Ref {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Ref{}
	}
	if id, err := strconv.Atoi(raw); err == nil {
		return Ref{kind: refID, id: id}
	}
	return Ref{kind: refName, name: raw}
}

// ParseRefs classifies each entry of a multi-valued argument.
func ParseRefs(raw []string) []Ref {
	refs := make([]Ref, 0, len(raw))
	for _, r := range raw {
		if ref := ParseRef(r); !ref.IsZero() {
			refs = append(refs, ref)
		}
	}
	return refs
}

func (r Ref) IsZero() bool { return r.kind == refNil }
func (r Ref) IsID() bool   { return r.kind == refID }

// ID returns the numeric literal. Valid only when IsID.
func (r Ref) ID() int { return r.id }

// Name returns the raw name. Valid only for named refs.
func (r Ref) Name() string { return r.name }
