package mcl

import "fmt"

// Remove deletes the value stored under key and returns it.
//
// An absent key yields a KeyNotFoundError carrying the nearest left neighbor
// when one exists. A key of the wrong width yields ErrDigestLen.
func (l *List) Remove(key []byte) ([]byte, error) {
	if len(key) != l.digestLen {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDigestLen, len(key), l.digestLen)
	}

	found, left := l.locate(key)
	if found == NoRef {
		e := &KeyNotFoundError{Key: append([]byte(nil), key...)}
		if left != NoRef {
			e.Nearest = append([]byte(nil), l.arena[left].key...)
		}
		return nil, e
	}

	value := l.arena[found].value
	l.removeAt(found)
	l.itemCount--
	return value, nil
}

// removeAt splices the leaf r out and restores every invariant: vanished
// units take their parents with them, underflowed units merge into a
// neighbor (splitting again if the merge overfills), and the top layer
// collapses redundant single-node levels. Commitments are resealed along
// every touched path.
func (l *List) removeAt(r Ref) {
	for {
		// capture a same-unit survivor before unlinking
		surv := l.unitSibling(r)
		if p := l.spliceOut(r); p != NoRef {
			// the unit is gone; its parent leaves the layer above
			r = p
			continue
		}
		if surv == NoRef {
			// r was the last node of the top layer: the list is empty
			l.rootCommit = nil
			return
		}

		// underflow handling at the survivor's layer; merges hand back the
		// absorbed unit's childless parent for removal one layer up
		old, again := l.rebalance(surv)
		if !again {
			return
		}
		r = old
	}
}

// rebalance restores the unit-size floor at r's layer, climbing while layers
// degenerate to a single unit. When a merge leaves the absorbed unit's former
// parent childless, that parent is returned with again=true so the caller can
// splice it out of the layer above and repeat there.
func (l *List) rebalance(r Ref) (old Ref, again bool) {
	for {
		if l.arena[r].up == NoRef {
			l.collapseTop()
			return NoRef, false
		}
		if len(l.unit(r)) >= l.unitMin {
			l.refreshFrom(r)
			return NoRef, false
		}

		old, merged := l.mergeUnit(r)
		if !merged {
			// no adjacent unit at this layer: a degenerate single-unit
			// chain, left for the top-layer collapse to absorb
			l.refreshFrom(r)
			r = l.arena[r].up
			continue
		}

		if len(l.unit(r)) >= l.unitMax {
			// the merge overfilled the enlarged unit
			l.splitUp(r)
		} else {
			l.refreshFrom(r)
		}
		return old, true
	}
}

// mergeUnit absorbs r's whole unit into the smaller of the two adjacent
// units, merging rightward on a size tie. The absorbed unit's former parent
// is returned childless for the caller to remove; merged is false when both
// adjacent units are empty (only possible at the horizontal extremes).
func (l *List) mergeUnit(r Ref) (old Ref, merged bool) {
	lu := l.leftUnit(r)
	ru := l.rightUnit(r)
	if len(lu) == 0 && len(ru) == 0 {
		return NoRef, false
	}

	u := l.unit(r)
	old = l.arena[u[0]].up

	if len(ru) != 0 && (len(lu) == 0 || len(ru) <= len(lu)) {
		// absorb rightward: our head becomes the right unit's new head
		np := l.arena[ru[0]].up
		for _, m := range u {
			l.arena[m].up = np
		}
		l.arena[np].down = u[0]
		l.setRepresentative(np, u[0])
	} else {
		// absorb leftward: our members append to the left unit
		np := l.arena[lu[0]].up
		for _, m := range u {
			l.arena[m].up = np
		}
	}

	l.arena[old].down = NoRef
	return old, true
}

// collapseTop reduces the height while the top layer is a single node whose
// child layer is also a single node, then reseals the root commitment.
func (l *List) collapseTop() {
	for {
		top := l.root
		if l.arena[top].right != NoRef {
			break
		}
		child := l.arena[top].down
		if child == NoRef {
			break
		}
		if l.arena[child].left != NoRef || l.arena[child].right != NoRef {
			break
		}
		l.arena[child].up = NoRef
		l.root = child
		l.release(top)
	}
	l.rootCommit = l.unitCommit(l.unit(l.root))
}
