package mcl

// Ref is an arena index addressing one node. Refs are stable for the life of
// the node; a freed Ref may be reissued by a later allocation.
type Ref uint32

const NoRef = ^Ref(0)

// node is the uniform record for every layer. Leaves have down == NoRef; the
// single top-layer entry node (and its top-layer siblings) have up == NoRef.
//
// key and value of an internal node alias the slices of the leftmost leaf
// descended from it (representative semantics); they are never mutated in
// place, only reassigned.
type node struct {
	key    []byte
	value  []byte
	commit []byte

	up    Ref
	down  Ref
	left  Ref
	right Ref
}

func (l *List) alloc(n node) Ref {
	if k := len(l.freed); k > 0 {
		r := l.freed[k-1]
		l.freed = l.freed[:k-1]
		l.arena[r] = n
		return r
	}
	l.arena = append(l.arena, n)
	return Ref(len(l.arena) - 1)
}

// release returns r to the free list. Links are cleared so a stale Ref held
// across a release is detected by the invariant checks rather than silently
// resolving to the old neighbors.
func (l *List) release(r Ref) {
	l.arena[r] = node{up: NoRef, down: NoRef, left: NoRef, right: NoRef}
	l.freed = append(l.freed, r)
}

// unitHead returns the leftmost member of r's unit.
func (l *List) unitHead(r Ref) Ref {
	if up := l.arena[r].up; up != NoRef {
		return l.arena[up].down
	}
	// top layer: the whole layer is one unit and root is its head
	return l.root
}

// unit returns the members of r's unit in left-to-right order.
func (l *List) unit(r Ref) []Ref {
	head := l.unitHead(r)
	up := l.arena[head].up
	u := []Ref{head}
	for cur := head; ; {
		next := l.arena[cur].right
		if next == NoRef || l.arena[next].up != up {
			break
		}
		u = append(u, next)
		cur = next
	}
	return u
}

// leftUnit returns the members of the unit left-adjacent to r's unit, or nil.
// The top layer has no adjacent units.
func (l *List) leftUnit(r Ref) []Ref {
	up := l.arena[r].up
	if up == NoRef {
		return nil
	}
	lp := l.arena[up].left
	if lp == NoRef {
		return nil
	}
	return l.unit(l.arena[lp].down)
}

// rightUnit returns the members of the unit right-adjacent to r's unit, or nil.
func (l *List) rightUnit(r Ref) []Ref {
	up := l.arena[r].up
	if up == NoRef {
		return nil
	}
	rp := l.arena[up].right
	if rp == NoRef {
		return nil
	}
	return l.unit(l.arena[rp].down)
}

// unitSibling returns a member of r's unit other than r, preferring the left
// neighbor, or NoRef when r is its unit's only member.
func (l *List) unitSibling(r Ref) Ref {
	up := l.arena[r].up
	if lft := l.arena[r].left; lft != NoRef && l.arena[lft].up == up {
		return lft
	}
	if rgt := l.arena[r].right; rgt != NoRef && l.arena[rgt].up == up {
		return rgt
	}
	return NoRef
}

// lowestHead returns the leftmost node of the bottom layer, or NoRef.
func (l *List) lowestHead() Ref {
	cur := l.root
	if cur == NoRef {
		return NoRef
	}
	for l.arena[cur].down != NoRef {
		cur = l.arena[cur].down
	}
	return cur
}

// setRepresentative rewrites p's key/value to those of its new unit head n,
// propagating upward for as long as the rewritten node is itself the head of
// its own unit.
func (l *List) setRepresentative(p, n Ref) {
	key, value := l.arena[n].key, l.arena[n].value
	for p != NoRef {
		l.arena[p].key = key
		l.arena[p].value = value
		up := l.arena[p].up
		if up == NoRef || l.arena[up].down != p {
			break
		}
		p = up
	}
}

// spliceOut removes r from its horizontal chain, repairing its unit's parent
// linkage and representative keys, and releases r. When the splice empties
// r's unit, the now childless parent is returned so the caller can remove it
// from the layer above; otherwise NoRef.
func (l *List) spliceOut(r Ref) Ref {
	n := l.arena[r]

	if n.left != NoRef {
		l.arena[n.left].right = n.right
	}
	if n.right != NoRef {
		l.arena[n.right].left = n.left
	}

	emptied := NoRef
	if n.up != NoRef {
		if l.arena[n.up].down == r {
			if n.right != NoRef && l.arena[n.right].up == n.up {
				l.arena[n.up].down = n.right
				l.setRepresentative(n.up, n.right)
			} else {
				l.arena[n.up].down = NoRef
				emptied = n.up
			}
		}
	} else if l.root == r {
		// top-layer head: the right sibling (or nothing) becomes the entry
		l.root = n.right
	}

	l.release(r)
	return emptied
}
