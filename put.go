package mcl

import "bytes"

// Put stores value under H(value) and returns the key.
//
// Storing a value that is already present is an idempotent success. Two
// distinct values hashing to the same key surface a HashCollisionError; the
// existing mapping is never overwritten.
func (l *List) Put(value []byte) ([]byte, error) {
	key := l.keyFor(value)

	found, left := l.locate(key)
	if found != NoRef {
		if bytes.Equal(l.arena[found].value, value) {
			return key, nil
		}
		return nil, &HashCollisionError{
			Key:      key,
			Existing: append([]byte(nil), l.arena[found].value...),
		}
	}

	leaf := node{
		key:    key,
		value:  append([]byte(nil), value...),
		commit: key, // leaf commitment is H(value), which is the key
		up:     NoRef,
		down:   NoRef,
		left:   NoRef,
		right:  NoRef,
	}

	var n Ref
	switch {
	case left != NoRef:
		n = l.spliceAfter(left, leaf)
	case l.root != NoRef:
		n = l.spliceMin(leaf)
	default:
		// first ever node: it is the whole top layer
		n = l.alloc(leaf)
		l.root = n
	}

	l.splitUp(n)
	l.itemCount++
	return key, nil
}

// spliceAfter inserts leaf immediately right of left, joining left's unit.
func (l *List) spliceAfter(left Ref, leaf node) Ref {
	leaf.up = l.arena[left].up
	leaf.left = left
	leaf.right = l.arena[left].right

	n := l.alloc(leaf)
	if next := l.arena[n].right; next != NoRef {
		l.arena[next].left = n
	}
	l.arena[left].right = n
	return n
}

// spliceMin inserts leaf as the new global minimum: leftmost of the bottom
// layer, joining the old head's unit. Every ancestor on the leftmost spine
// keeps its node but takes the new leaf as representative.
func (l *List) spliceMin(leaf node) Ref {
	old := l.lowestHead()
	leaf.up = l.arena[old].up
	leaf.right = old

	n := l.alloc(leaf)
	l.arena[old].left = n

	if p := l.arena[n].up; p != NoRef {
		l.arena[p].down = n
		l.setRepresentative(p, n)
	} else {
		// height is 1: the bottom layer is the top layer
		l.root = n
	}
	return n
}

// splitUp enforces the unit-size ceiling from r's unit upward: a unit that
// has reached unitMax is partitioned at mid = unitMax/2, the right half
// moving under a new parent spliced immediately right of the existing one.
// Splitting the top layer instead creates a fresh two-node top layer,
// growing the height by one.
//
// Commitments of both halves' parents are assigned during each split; once
// no further split is needed the remaining path to the root is resealed.
func (l *List) splitUp(r Ref) {
	for {
		u := l.unit(r)
		if len(u) < l.unitMax {
			l.refreshFrom(r)
			return
		}

		mid := l.unitMax / 2
		b := u[mid]
		up := l.arena[u[0]].up

		if up != NoRef {
			np := l.alloc(node{
				key:    l.arena[b].key,
				value:  l.arena[b].value,
				commit: l.unitCommit(u[mid:]),
				up:     l.arena[up].up,
				down:   b,
				left:   up,
				right:  l.arena[up].right,
			})
			if next := l.arena[np].right; next != NoRef {
				l.arena[next].left = np
			}
			l.arena[up].right = np
			for _, m := range u[mid:] {
				l.arena[m].up = np
			}
			l.arena[up].commit = l.unitCommit(u[:mid])

			// the parent layer gained a node and may itself be full now
			r = np
			continue
		}

		// top-layer split
		a := u[0]
		pa := l.alloc(node{
			key:    l.arena[a].key,
			value:  l.arena[a].value,
			commit: l.unitCommit(u[:mid]),
			up:     NoRef,
			down:   a,
			left:   NoRef,
			right:  NoRef,
		})
		pb := l.alloc(node{
			key:    l.arena[b].key,
			value:  l.arena[b].value,
			commit: l.unitCommit(u[mid:]),
			up:     NoRef,
			down:   b,
			left:   pa,
			right:  NoRef,
		})
		l.arena[pa].right = pb
		for _, m := range u[:mid] {
			l.arena[m].up = pa
		}
		for _, m := range u[mid:] {
			l.arena[m].up = pb
		}
		l.root = pa
		l.rootCommit = l.unitCommit([]Ref{pa, pb})
		return
	}
}
