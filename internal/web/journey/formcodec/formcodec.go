// Package formcodec converts between flat form fields and positional drafts.
//
// Collection screens submit their whole ordered sequence in one flat form,
// one field per draft attribute: items[0].street, items[1].street, and for
// nested collections items[0].phones[1].number. This package owns that
// encoding as an explicit parser/serialiser pair so no step handler parses
// the bracket syntax by hand.
package formcodec

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// maxIndex bounds accepted positional indices. Forms are user-controlled
// input and a huge sparse index must not allocate a huge slice.
const maxIndex = 1000

// Decode extracts the positional items submitted under prefix, ordered by
// index with gaps compacted. Each item is returned as its own value set, with
// nested collection fields (phones[0].number) left intact for a further
// Decode pass.
func Decode(form url.Values, prefix string) []url.Values {
	if len(form) == 0 || strings.TrimSpace(prefix) == "" {
		return nil
	}
	byIndex := make(map[int]url.Values)
	for key, values := range form {
		index, field, ok := splitKey(key, prefix)
		if !ok {
			continue
		}
		item := byIndex[index]
		if item == nil {
			item = url.Values{}
			byIndex[index] = item
		}
		item[field] = append(item[field], values...)
	}
	if len(byIndex) == 0 {
		return nil
	}

	indices := make([]int, 0, len(byIndex))
	for index := range byIndex {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	items := make([]url.Values, 0, len(indices))
	for _, index := range indices {
		items = append(items, byIndex[index])
	}
	return items
}

// Encode serialises positional items back into flat form fields under prefix.
func Encode(prefix string, items []url.Values) url.Values {
	form := url.Values{}
	for index, item := range items {
		for field, values := range item {
			key := fmt.Sprintf("%s[%d].%s", prefix, index, field)
			form[key] = append(form[key], values...)
		}
	}
	return form
}

// IsBlank reports whether every submitted value of an item is empty after
// trimming.
func IsBlank(item url.Values) bool {
	for _, values := range item {
		for _, value := range values {
			if strings.TrimSpace(value) != "" {
				return false
			}
		}
	}
	return true
}

// Value returns the first trimmed value of an item field.
func Value(item url.Values, field string) string {
	if item == nil {
		return ""
	}
	return strings.TrimSpace(item.Get(field))
}

// splitKey parses "prefix[7].rest" into (7, "rest", true).
func splitKey(key string, prefix string) (int, string, bool) {
	if !strings.HasPrefix(key, prefix+"[") {
		return 0, "", false
	}
	remainder := key[len(prefix)+1:]
	closing := strings.Index(remainder, "]")
	if closing <= 0 {
		return 0, "", false
	}
	index, err := strconv.Atoi(remainder[:closing])
	if err != nil || index < 0 || index > maxIndex {
		return 0, "", false
	}
	field := remainder[closing+1:]
	if !strings.HasPrefix(field, ".") {
		return 0, "", false
	}
	field = field[1:]
	if field == "" {
		return 0, "", false
	}
	return index, field, true
}
