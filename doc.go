package mcl

/*

# Merkle Cross List (MCL) primitives for Forestrie

This package provides a sorted, hash-keyed, tamper-evident in-memory index: a
multiway skip structure whose every internal layer is committed by a hash over
its children, so that point lookups come with verifiable inclusion proofs
against a single root commitment.

It complements `go-merklelog/mmr` and `go-merklelog/urkle`:

- the MMR commits an append-only sequence (nothing is ever inserted or removed)
- the urkle trie commits a batch of strictly-increasing keys, built append-only
- the MCL commits a fully mutable sorted set: point insertion and deletion in
  arbitrary order, with the commitment maintained incrementally

## Structure

Every stored value occupies one node in the bottom layer, sorted by key, where
`key = H(value)` for the hasher injected at construction. Each layer above is
a sparser copy: one node per "unit" of the layer below, keyed by the unit's
leftmost descendant (representative semantics). The top layer is always a
single unit.

A *unit* is a maximal run of horizontally-linked siblings that share a parent.
After every completed mutation, every non-top unit satisfies

	max(unitMax/2, 1) <= len(unit) <= unitMax

(integer division: a split at mid = unitMax/2 hands the smaller half to the
left for odd capacities, so the rounded-up bound is unachievable there),
maintained by midpoint splits on overflow and neighbor merges on underflow,
both propagating upward. For unitMax >= 4 each layer is at least half as
sparse as the one below, so height stays O(log_unitMax(n)).

## Commitments

- a leaf's commitment is H(value) (which is also its key)
- an internal node's commitment is H over its child unit's commitments, in
  left-to-right order
- the root commitment is H over the top layer's commitments

`Prove` extracts the per-layer sibling commitment sets for a key, and
`VerifyInclusion` replays them against a root commitment. A missing key is a
legitimate negative result, not an error, for the `Proof` convenience.

## Node storage

Nodes live in a growable arena addressed by stable `Ref` indices, with `NoRef`
as the absent edge (the same convention as the urkle node store). The four
relations are `up`, `down`, `left`, `right`; `down` addresses the leftmost
child of the node's unit. Conceptually `down`/`right` own and `up`/`left` are
back-references, which is realized here as an explicit release discipline:
nodes are returned to the arena free list exactly once, when spliced out.

## Concurrency

None. All operations are synchronous, single-writer, and run to completion;
partial mutation is never observable because no operation yields. Callers
embedding a List in a concurrent environment must serialize all access to it,
readers included. Representative copies of a key alias the leaf's byte slice;
this is a copy-avoidance detail and never a synchronization channel.

## Sizing and degenerate configurations

`unitMax` must be >= 2 (even values recommended). At `unitMax = 2` the
occupancy bound degenerates to [1, 2]: splits produce singleton units,
singletons are legal and never merged, and so layers above the bottom do not
thin out. Height then grows with the item count rather than its logarithm;
the structure stays correct but is only suited to tiny populations, and
`Rebuild` is the way back to a compact layout. `NewDefault` uses
`unitMax = 8` with SHA-256.

*/
