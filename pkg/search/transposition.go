package search

import (
	"math/bits"

	"github.com/ravenfell/caissa/pkg/board"
	"github.com/ravenfell/caissa/pkg/score"
)

// Bound classifies a stored score: the search either pinned it down exactly
// (Exact), proved it is at least this good and cut off before pinning it
// down further (LowerBound), or proved it is no better than this and never
// raised alpha (UpperBound).
type Bound uint8

const (
	Exact Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	default:
		return "?"
	}
}

// entriesPerBucket is fixed: the table never resizes a bucket, only the
// bucket count, which is chosen at construction from the byte budget.
const entriesPerBucket = 4

// Entry is one transposition table record. BestMove is the move that
// produced the stored bound; it is board.NullMove when the node had none
// (terminal) or the stored bound came from a fail-low with no move beating
// the window.
type Entry struct {
	Hash     board.Zobrist
	Bound    Bound
	Depth    int
	Score    score.Score
	BestMove board.Move
	Age      uint8

	valid bool
}

// priority orders entries for the insert replacement scheme: lower is more
// valuable to keep. Age is compared relative to currentAge (the age of the
// entry being inserted), since age is a wrapping 7-bit counter and only
// recency relative to "now" is meaningful.
func (e Entry) priority(currentAge uint8) int {
	ageDelta := int((currentAge - e.Age) & 0x7f)
	return ageDelta<<16 - e.Depth
}

// Table is a fixed-size, open-addressed transposition table: an array of
// buckets, each holding four (key, entry) slots. A key's bucket is chosen
// by its top index-bits, so neighboring hashes rarely collide in the same
// bucket. The table never reallocates after New.
type Table struct {
	buckets  [][entriesPerBucket]Entry
	indexBits uint
	len      int
	age      uint8
}

// New allocates a table sized to fit within sizeBytes, rounded down to the
// largest power-of-two bucket count (minimum two buckets) that fits.
func New(sizeBytes uint64) *Table {
	bucketSize := uint64(entriesPerBucket) * entrySize
	maxBuckets := sizeBytes / bucketSize
	if maxBuckets < 2 {
		maxBuckets = 2
	}
	indexBits := uint(63 - bits.LeadingZeros64(maxBuckets))

	return &Table{
		buckets:   make([][entriesPerBucket]Entry, uint64(1)<<indexBits),
		indexBits: indexBits,
	}
}

// entrySize is the nominal per-entry byte cost used for sizing the table;
// it does not have to match unsafe.Sizeof(Entry) exactly; it exists so a
// byte budget translates to a bucket count at all.
const entrySize = 32

func (t *Table) index(hash board.Zobrist) uint64 {
	return uint64(hash) >> (64 - t.indexBits)
}

// Len returns the number of valid entries currently stored.
func (t *Table) Len() int {
	return t.len
}

// Capacity returns the maximum number of entries the table can hold.
func (t *Table) Capacity() int {
	return len(t.buckets) * entriesPerBucket
}

// Clear empties the table without releasing its backing storage.
func (t *Table) Clear() {
	for i := range t.buckets {
		t.buckets[i] = [entriesPerBucket]Entry{}
	}
	t.len = 0
}

// LoadFactorPermille returns 1000*Len()/Capacity().
func (t *Table) LoadFactorPermille() int {
	return 1000 * t.Len() / t.Capacity()
}

// NextAge advances the table's age counter, called once per search so
// entries written during this search outrank those from earlier ones.
func (t *Table) NextAge() {
	t.age = (t.age + 1) & 0x7f
}

// Get returns the entry stored for hash, if any.
func (t *Table) Get(hash board.Zobrist) (Entry, bool) {
	bucket := &t.buckets[t.index(hash)]
	for _, e := range bucket {
		if e.valid && e.Hash == hash {
			return e, true
		}
	}
	return Entry{}, false
}

// Insert stores e (with e.Hash already set) into the table, following the
// replacement scheme: an existing entry for the same hash is kept unless e
// has equal-or-better priority; otherwise the first invalid slot is used,
// or failing that the slot with the worst priority relative to e's age.
func (t *Table) Insert(e Entry) {
	e.valid = true
	e.Age = t.age

	bucket := &t.buckets[t.index(e.Hash)]

	worstIdx, worstPrio := -1, 0
	for i := range bucket {
		slot := &bucket[i]
		if !slot.valid {
			bucket[i] = e
			t.len++
			return
		}
		if slot.Hash == e.Hash {
			if e.priority(e.Age) > slot.priority(e.Age) {
				return // existing entry is more valuable; keep it
			}
			bucket[i] = e
			return
		}
		if p := slot.priority(e.Age); worstIdx < 0 || p > worstPrio {
			worstPrio = p
			worstIdx = i
		}
	}
	bucket[worstIdx] = e
}
