package mcl

import "bytes"

// locate walks the layers top-to-bottom looking for key in the bottom layer.
//
// At each layer it moves right while the right sibling's key is still <= key,
// then descends. Representative keys guarantee every node visited after the
// first satisfies node.key <= key, so the walk at each layer stays within one
// unit and the whole search is O(height * unitMax).
//
// Returns (found, NoRef) on a match; (NoRef, left) with the bottom-layer left
// insertion point otherwise. left is NoRef when the list is empty or key
// orders before every stored key (a new global minimum).
func (l *List) locate(key []byte) (found, left Ref) {
	cur := l.root
	if cur == NoRef {
		return NoRef, NoRef
	}
	if bytes.Compare(key, l.arena[cur].key) < 0 {
		return NoRef, NoRef
	}

	for {
		for {
			next := l.arena[cur].right
			if next == NoRef || bytes.Compare(l.arena[next].key, key) > 0 {
				break
			}
			cur = next
		}
		down := l.arena[cur].down
		if down == NoRef {
			break
		}
		cur = down
	}

	if bytes.Equal(l.arena[cur].key, key) {
		return cur, NoRef
	}
	return NoRef, cur
}
