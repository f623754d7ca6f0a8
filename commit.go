package mcl

// digest hashes the ordered byte slices with the configured hasher.
func (l *List) digest(parts ...[]byte) []byte {
	l.hasher.Reset()
	for _, p := range parts {
		_, _ = l.hasher.Write(p)
	}
	return l.hasher.Sum(nil)
}

// keyFor computes the key (and leaf commitment) for a value.
func (l *List) keyFor(value []byte) []byte {
	return l.digest(value)
}

// unitCommit hashes the commitments of a unit's members, left to right.
func (l *List) unitCommit(u []Ref) []byte {
	l.hasher.Reset()
	for _, m := range u {
		_, _ = l.hasher.Write(l.arena[m].commit)
	}
	return l.hasher.Sum(nil)
}

// refreshFrom recomputes the commitment of r's unit and assigns it to the
// unit's parent, repeating one layer up until the top layer's commitment has
// been folded into the root.
//
// Structural operations (split, merge) set the commitments of any off-path
// units they create or resize as they go; refreshFrom repairs the single
// remaining path from a touched node to the root.
func (l *List) refreshFrom(r Ref) {
	for {
		c := l.unitCommit(l.unit(r))
		up := l.arena[r].up
		if up == NoRef {
			l.rootCommit = c
			return
		}
		l.arena[up].commit = c
		r = up
	}
}
