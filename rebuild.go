package mcl

// Rebuild discards every layer above the bottom and reconstitutes them
// bottom-up at the floor occupancy, yielding the most compact layout the
// current contents admit. Mutations drift toward taller, sparser shapes over
// time; a rebuild after a burst of churn restores locality without touching
// any stored value.
//
// Units are cut at max(unitMax/2, 2) members (never 1, or layers would stop
// shrinking); a short tail is folded into the final unit when the fold stays
// within the capacity, and otherwise kept as its own undersized unit. The
// root commitment is recomputed, and is unchanged only when the layout
// already was in rebuilt form.
func (l *List) Rebuild() {
	if l.root == NoRef {
		return
	}

	bottom := l.lowestHead()
	for layer := l.root; layer != bottom; {
		next := l.arena[layer].down
		for cur := layer; cur != NoRef; {
			right := l.arena[cur].right
			l.release(cur)
			cur = right
		}
		layer = next
	}

	cur := make([]Ref, 0, l.itemCount)
	for r := bottom; r != NoRef; r = l.arena[r].right {
		l.arena[r].up = NoRef
		cur = append(cur, r)
	}
	l.root = bottom

	cut := l.unitMax / 2
	if cut < 2 {
		cut = 2
	}

	for len(cur) >= l.unitMax {
		parents := make([]Ref, 0, len(cur)/cut+1)
		for i := 0; i < len(cur); {
			end := i + cut
			if end > len(cur) {
				end = len(cur)
			}
			// fold a short tail into this unit when capacity allows
			if rem := len(cur) - end; rem > 0 && rem < cut &&
				end-i+rem <= l.unitMax {
				end = len(cur)
			}
			u := cur[i:end]

			head := u[0]
			np := l.alloc(node{
				key:    l.arena[head].key,
				value:  l.arena[head].value,
				commit: l.unitCommit(u),
				up:     NoRef,
				down:   head,
				left:   NoRef,
				right:  NoRef,
			})
			for _, m := range u {
				l.arena[m].up = np
			}
			if len(parents) > 0 {
				prev := parents[len(parents)-1]
				l.arena[prev].right = np
				l.arena[np].left = prev
			}
			parents = append(parents, np)
			i = end
		}
		cur = parents
		l.root = cur[0]
	}

	l.rootCommit = l.unitCommit(cur)
}
