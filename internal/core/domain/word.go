package domain

import (
	"cmp"
	"slices"
)

// Word is a single entry in the store. The text is its own primary key:
// there is no surrogate identifier and no constraint beyond uniqueness,
// so the empty string is a legal word.
type Word struct {
	Text string `json:"word"`
}

// NewWord creates a word from its text.
func NewWord(text string) Word {
	return Word{Text: text}
}

// String returns the word text.
func (w Word) String() string {
	return w.Text
}

// Snapshot is the full, point-in-time contents of the store, sorted
// ascending by code-point order with no duplicates.
type Snapshot struct {
	// Version is the commit sequence number this snapshot reflects.
	// It increases every time a snapshot is published; subscribers may
	// use it to drop snapshots they have already rendered.
	Version uint64 `json:"version"`

	// Words holds the entries in ascending order.
	Words []Word `json:"words"`
}

// Strings returns the word texts in snapshot order.
func (s Snapshot) Strings() []string {
	out := make([]string, len(s.Words))
	for i, w := range s.Words {
		out[i] = w.Text
	}
	return out
}

// Len returns the number of words in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Words)
}

// Contains reports whether text is present in the snapshot.
func (s Snapshot) Contains(text string) bool {
	_, found := slices.BinarySearchFunc(s.Words, text, func(w Word, t string) int {
		return cmp.Compare(w.Text, t)
	})
	return found
}

// SameWords reports whether both snapshots hold the same words, ignoring Version.
func (s Snapshot) SameWords(other Snapshot) bool {
	return slices.Equal(s.Words, other.Words)
}

// Clone returns a deep copy so that subscribers cannot alias each other's slices.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{Version: s.Version, Words: slices.Clone(s.Words)}
}

// SortWords sorts words ascending by code-point order and removes duplicates.
// Go string comparison is byte-wise, which for UTF-8 is code-point order.
func SortWords(words []Word) []Word {
	slices.SortFunc(words, func(a, b Word) int {
		return cmp.Compare(a.Text, b.Text)
	})
	return slices.Compact(words)
}
