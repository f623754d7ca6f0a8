package mcl

import (
	"crypto/sha256"
	"hash"
)

// DefaultUnitMax is the unit capacity used by NewDefault.
const DefaultUnitMax = 8

// List is a Merkle Cross List: a sorted, hash-keyed index committing its
// contents to a single root hash. See the package documentation for the
// structural and commitment invariants.
//
// A List is not safe for concurrent use. The injected hasher is owned by the
// List and reset before every use.
type List struct {
	unitMax   int
	unitMin   int
	digestLen int
	hasher    hash.Hash

	arena []node
	freed []Ref

	// root is the leftmost node of the top layer; NoRef when empty.
	root       Ref
	rootCommit []byte
	itemCount  int
}

// New returns an empty List whose units split when they reach unitMax
// members. unitMax must be at least 2; even values are recommended, as odd
// values split into uneven halves. The hasher fixes the digest width for the
// life of the List.
func New(unitMax int, hasher hash.Hash) (*List, error) {
	if unitMax < 2 {
		return nil, ErrBadUnitMax
	}
	if hasher == nil {
		return nil, ErrNilHasher
	}
	hasher.Reset()
	digestLen := len(hasher.Sum(nil))

	// the merge trigger: a non-top unit below this occupancy is absorbed
	// into a neighbor. Splits at mid = unitMax/2 produce halves no smaller
	// than this, so a merged-then-resplit unit never re-underflows. At
	// capacities 2 and 3 the floor is 1: splits there necessarily produce
	// singleton units, and merging a shape that splitting recreates would
	// never settle.
	unitMin := unitMax / 2
	if unitMin < 1 {
		unitMin = 1
	}

	return &List{
		unitMax:   unitMax,
		unitMin:   unitMin,
		digestLen: digestLen,
		hasher:    hasher,
		root:      NoRef,
	}, nil
}

// NewDefault returns a List with DefaultUnitMax and SHA-256.
func NewDefault() *List {
	l, err := New(DefaultUnitMax, sha256.New())
	if err != nil {
		panic(err)
	}
	return l
}

// UnitMax returns the configured unit capacity.
func (l *List) UnitMax() int { return l.unitMax }

// ItemCount returns the number of stored values (the bottom layer size),
// maintained incrementally.
func (l *List) ItemCount() int { return l.itemCount }

// WalkCount recounts the stored values by walking the bottom layer. It always
// equals ItemCount and exists to cross-check the maintained counter.
func (l *List) WalkCount() int {
	cur := l.lowestHead()
	n := 0
	for cur != NoRef {
		n++
		cur = l.arena[cur].right
	}
	return n
}

// Height returns the number of layers; 0 when empty.
func (l *List) Height() int {
	h := 0
	for cur := l.root; cur != NoRef; cur = l.arena[cur].down {
		h++
	}
	return h
}

// Root returns a copy of the root commitment, or nil when the List is empty.
func (l *List) Root() []byte {
	if l.rootCommit == nil {
		return nil
	}
	return append([]byte(nil), l.rootCommit...)
}

// Get returns a copy of the value stored under key, if present.
func (l *List) Get(key []byte) ([]byte, bool) {
	if len(key) != l.digestLen {
		return nil, false
	}
	found, _ := l.locate(key)
	if found == NoRef {
		return nil, false
	}
	return append([]byte(nil), l.arena[found].value...), true
}
