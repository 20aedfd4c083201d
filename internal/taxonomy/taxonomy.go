// Package taxonomy orders benchmarks and model annotations by the fixed
// brain-region / behavior hierarchy used across the leaderboard.
package taxonomy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownCategory is returned when a parent or meta key does not belong to
// any known category.
var ErrUnknownCategory = errors.New("unknown benchmark category")

// Category is one slot of the benchmark hierarchy.
type Category string

// CategoryNone is the slot for benchmarks without a parent. It is never
// matched as a meta key prefix.
const CategoryNone Category = ""

const (
	CategoryV1         Category = "V1"
	CategoryV2         Category = "V2"
	CategoryV4         Category = "V4"
	CategoryIT         Category = "IT"
	CategoryITTemporal Category = "IT-temporal"
	CategoryBehavior   Category = "behavior"
	CategoryImageNet   Category = "ImageNet"
)

// Categories lists every category in display priority.
var Categories = []Category{
	CategoryNone,
	CategoryV1,
	CategoryV2,
	CategoryV4,
	CategoryIT,
	CategoryITTemporal,
	CategoryBehavior,
	CategoryImageNet,
}

// CategoryIndex returns the priority of a benchmark parent. A nil parent is
// the top-level slot.
func CategoryIndex(parent *string) (int, error) {
	if parent == nil {
		return 0, nil
	}
	for i, c := range Categories {
		if c != CategoryNone && string(c) == *parent {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, *parent)
}

// MetaPrefixIndex returns the priority of the first category that key starts
// with. Categories are tried in priority order, so "IT-temporal-..." keys land
// under IT.
func MetaPrefixIndex(key string) (int, error) {
	for i, c := range Categories {
		if c == CategoryNone {
			continue
		}
		if strings.HasPrefix(key, string(c)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no category prefix for meta key %q", ErrUnknownCategory, key)
}

// Order sorts values by the priority returned from key. Values with equal
// priority keep their relative input order. The first key error aborts the
// sort.
func Order[T any](values []T, key func(T) (int, error)) ([]T, error) {
	type decorated struct {
		index int
		value T
	}

	items := make([]decorated, 0, len(values))
	for _, v := range values {
		idx, err := key(v)
		if err != nil {
			return nil, err
		}
		items = append(items, decorated{index: idx, value: v})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].index < items[j].index
	})

	ordered := make([]T, len(items))
	for i, item := range items {
		ordered[i] = item.value
	}
	return ordered, nil
}
