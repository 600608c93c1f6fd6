package rooms

import (
	"slices"
	"strconv"
	"strings"
)

// Normalize trims, lowercases and collapses runs of whitespace to one space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeLoose normalizes and then drops everything except a-z, 0-9 and spaces,
// so apostrophes and other punctuation never decide an answer.
func NormalizeLoose(s string) string {
	n := Normalize(s)
	var b strings.Builder
	b.Grow(len(n))
	for _, r := range n {
		if r == ' ' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (r *Room) prepare(s string) string {
	n := Normalize(s)
	if r.IgnoreSpaces {
		n = strings.ReplaceAll(n, " ", "")
	}
	if r.Punctuation == PunctuationLoose {
		n = NormalizeLoose(n)
	}
	return n
}

// CheckText reports whether input matches any accepted answer.
func (r *Room) CheckText(input string) bool {
	if r.Kind != KindText {
		return false
	}
	got := r.prepare(input)
	for _, a := range r.Answers {
		if got == r.prepare(a) {
			return true
		}
	}
	return false
}

// CheckChoice reports whether the picked option index is the correct one.
func (r *Room) CheckChoice(index int) bool {
	return r.Kind == KindChoice && index >= 0 && index < len(r.Options) && index == r.Answer
}

// ParseChoice turns a 1-based option number or an option label into an index.
// Unparseable input yields -1, which never checks as correct.
func (r *Room) ParseChoice(input string) int {
	s := strings.TrimSpace(input)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(r.Options) {
			return n - 1
		}
		return -1
	}
	want := Normalize(s)
	for i, opt := range r.Options {
		if Normalize(opt) == want {
			return i
		}
	}
	return -1
}

// ValidPrefix reports whether progress is a prefix of the canonical sequence.
func (r *Room) ValidPrefix(progress []string) bool {
	if len(progress) > len(r.Sequence) {
		return false
	}
	return slices.Equal(progress, r.Sequence[:len(progress)])
}

// StepSequence appends item to progress if it is the expected next element.
// Any mismatch returns an empty sequence: the player starts over.
func (r *Room) StepSequence(progress []string, item string) (next []string, complete bool) {
	if r.Kind != KindSequence || !r.ValidPrefix(progress) || len(progress) >= len(r.Sequence) {
		return []string{}, false
	}
	if r.Sequence[len(progress)] != item {
		return []string{}, false
	}
	next = append(slices.Clone(progress), item)
	return next, len(next) == len(r.Sequence)
}
