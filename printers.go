package mcl

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// debug utilities

func proofStepStringer(s ProofStep, sep string) string {
	var sibs []string

	for i, c := range s.Siblings {
		h := hex.EncodeToString(c)
		if i == s.Index {
			h = "*" + h
		}
		sibs = append(sibs, h)
	}
	return strings.Join(sibs, sep)
}

func proofStringer(p InclusionProof, sep string) string {
	steps := make([]string, 0, len(p.Steps))

	for _, s := range p.Steps {
		steps = append(steps, fmt.Sprintf("[%s]", proofStepStringer(s, sep)))
	}
	return strings.Join(steps, sep)
}

// layerStringer renders one layer left to right, grouping unit members in
// braces, keys truncated to their first abbrev bytes.
func (l *List) layerStringer(head Ref, abbrev int) string {
	var b strings.Builder

	prev := NoRef
	for cur := head; cur != NoRef; cur = l.arena[cur].right {
		up := l.arena[cur].up
		switch {
		case cur == head:
			b.WriteString("{")
		case up != prev:
			b.WriteString("} {")
		default:
			b.WriteString(" ")
		}
		k := l.arena[cur].key
		if abbrev > 0 && len(k) > abbrev {
			k = k[:abbrev]
		}
		b.WriteString(hex.EncodeToString(k))
		prev = up
	}
	b.WriteString("}")
	return b.String()
}

// String renders every layer top to bottom. Intended for tests and debugging
// only; output is O(n) in the stored items.
func (l *List) String() string {
	if l.root == NoRef {
		return "(empty)"
	}

	var layers []string
	for head := l.root; head != NoRef; head = l.arena[head].down {
		layers = append(layers, l.layerStringer(head, 4))
	}
	return strings.Join(layers, "\n")
}
