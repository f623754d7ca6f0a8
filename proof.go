package mcl

import (
	"bytes"
	"errors"
	"fmt"
	"hash"
)

// ProofStep records one layer of an inclusion proof: the commitments of
// every member of the path node's unit, left to right, and the path node's
// index within them.
type ProofStep struct {
	Index    int
	Siblings [][]byte
}

// InclusionProof proves that Key is present and bound to Value. Steps are
// ordered bottom layer first; the final step covers the whole top layer.
type InclusionProof struct {
	Key   []byte
	Value []byte
	Steps []ProofStep
}

// Prove extracts the inclusion proof for key.
//
// An absent key yields a KeyNotFoundError; a key of the wrong width yields
// ErrDigestLen.
func (l *List) Prove(key []byte) (InclusionProof, error) {
	if len(key) != l.digestLen {
		return InclusionProof{}, fmt.Errorf(
			"%w: got %d, want %d", ErrDigestLen, len(key), l.digestLen)
	}

	found, left := l.locate(key)
	if found == NoRef {
		e := &KeyNotFoundError{Key: append([]byte(nil), key...)}
		if left != NoRef {
			e.Nearest = append([]byte(nil), l.arena[left].key...)
		}
		return InclusionProof{}, e
	}

	p := InclusionProof{
		Key:   append([]byte(nil), key...),
		Value: append([]byte(nil), l.arena[found].value...),
	}

	for cur := found; cur != NoRef; cur = l.arena[cur].up {
		u := l.unit(cur)
		step := ProofStep{Index: -1, Siblings: make([][]byte, 0, len(u))}
		for i, m := range u {
			if m == cur {
				step.Index = i
			}
			c := l.arena[m].commit
			if c == nil {
				return InclusionProof{}, fmt.Errorf(
					"%w: node missing its commitment", ErrUnknown)
			}
			step.Siblings = append(step.Siblings, append([]byte(nil), c...))
		}
		if step.Index < 0 {
			return InclusionProof{}, fmt.Errorf(
				"%w: node not a member of its own unit", ErrUnknown)
		}
		p.Steps = append(p.Steps, step)
	}

	return p, nil
}

// VerifyInclusion replays an inclusion proof against a root commitment.
//
// Every step's unit hash must reappear as the committed sibling at the next
// step's index, the first step must commit H(p.Value) at its index, and the
// final step's unit hash must equal root.
func VerifyInclusion(hasher hash.Hash, root []byte, p InclusionProof) (bool, error) {
	if len(p.Steps) == 0 {
		return false, fmt.Errorf("%w: empty proof", ErrVerifyInclusionFailed)
	}
	for i, s := range p.Steps {
		if s.Index < 0 || s.Index >= len(s.Siblings) {
			return false, fmt.Errorf(
				"%w: step %d index out of range", ErrVerifyInclusionFailed, i)
		}
	}

	// the leaf layer must commit the claimed value
	hasher.Reset()
	_, _ = hasher.Write(p.Value)
	leaf := hasher.Sum(nil)
	if !bytes.Equal(leaf, p.Steps[0].Siblings[p.Steps[0].Index]) {
		return false, fmt.Errorf(
			"%w: leaf commitment does not bind the value", ErrVerifyInclusionFailed)
	}

	hashStep := func(s ProofStep) []byte {
		hasher.Reset()
		for _, c := range s.Siblings {
			_, _ = hasher.Write(c)
		}
		return hasher.Sum(nil)
	}

	for i := 0; i+1 < len(p.Steps); i++ {
		next := p.Steps[i+1]
		if !bytes.Equal(hashStep(p.Steps[i]), next.Siblings[next.Index]) {
			return false, fmt.Errorf(
				"%w: layer %d does not chain to its parent", ErrVerifyInclusionFailed, i)
		}
	}

	if !bytes.Equal(hashStep(p.Steps[len(p.Steps)-1]), root) {
		return false, fmt.Errorf(
			"%w: top layer does not reproduce the root", ErrVerifyInclusionFailed)
	}
	return true, nil
}

// Proof reports whether key is present with a proof chain that reproduces the
// current root commitment. An absent key is a legitimate negative result, not
// an error.
func (l *List) Proof(key []byte) (bool, error) {
	if len(key) != l.digestLen {
		return false, fmt.Errorf(
			"%w: got %d, want %d", ErrDigestLen, len(key), l.digestLen)
	}
	if l.rootCommit == nil {
		return false, nil
	}

	p, err := l.Prove(key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}

	ok, _ := VerifyInclusion(l.hasher, l.rootCommit, p)
	return ok, nil
}
