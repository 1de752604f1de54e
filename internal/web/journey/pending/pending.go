// Package pending edits the ordered draft collections held inside a journey.
//
// Drafts are addressed by their current position only; indices are not stable
// identities, so every removal re-indexes the remainder. Two removal variants
// exist because their staleness semantics differ: a same-page Remove control
// may race a duplicate submission and must degrade to a no-op, while a
// confirmation page reached by link must surface a stale index as not found.
package pending

import "errors"

// ErrIndexOutOfRange reports a positional index that no longer resolves to a
// draft in the collection.
var ErrIndexOutOfRange = errors.New("pending index out of range")

// ReplaceAll returns the new authoritative sequence from a full-form
// submission. Fully blank trailing drafts are discarded: a blank trailing
// entry means the user declined to add the optional extra item.
func ReplaceAll[T any](submitted []T, isBlank func(T) bool) []T {
	if isBlank == nil {
		return submitted
	}
	end := len(submitted)
	for end > 0 && isBlank(submitted[end-1]) {
		end--
	}
	return submitted[:end]
}

// RemoveAt deletes the draft at index and shifts later drafts down one
// position. An out-of-range index is a stale or duplicate submission and
// leaves the collection unchanged.
func RemoveAt[T any](items []T, index int) []T {
	if index < 0 || index >= len(items) {
		return items
	}
	removed := make([]T, 0, len(items)-1)
	removed = append(removed, items[:index]...)
	removed = append(removed, items[index+1:]...)
	return removed
}

// DeleteAt deletes the draft at index for a confirmation-gated flow. The
// index was carried in a link that may be stale, so an out-of-range index is
// ErrIndexOutOfRange rather than a silent no-op.
func DeleteAt[T any](items []T, index int) ([]T, error) {
	if index < 0 || index >= len(items) {
		return items, ErrIndexOutOfRange
	}
	return RemoveAt(items, index), nil
}

// At returns the draft at index with the same staleness semantics as
// DeleteAt.
func At[T any](items []T, index int) (T, error) {
	var zero T
	if index < 0 || index >= len(items) {
		return zero, ErrIndexOutOfRange
	}
	return items[index], nil
}

// Append adds one draft to the end of the collection.
func Append[T any](items []T, draft T) []T {
	return append(items, draft)
}
