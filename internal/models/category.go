package models

import (
	"slices"
	"strings"
)

// DefaultCategories are always available and cannot be removed.
var DefaultCategories = []string{"Routine", "Exercise", "Study", "Sleep", "Other"}

// CategoryRegistry owns the set of known category labels. Tasks and habits
// store the label itself, so removing a label here leaves existing items
// untouched.
type CategoryRegistry struct {
	custom []string
}

func NewCategoryRegistry(custom []string) *CategoryRegistry {
	r := &CategoryRegistry{}
	for _, c := range custom {
		_ = r.Add(c)
	}
	return r
}

// All returns defaults followed by custom labels.
func (r *CategoryRegistry) All() []string {
	out := make([]string, 0, len(DefaultCategories)+len(r.custom))
	out = append(out, DefaultCategories...)
	return append(out, r.custom...)
}

// Custom returns the user-added labels in insertion order.
func (r *CategoryRegistry) Custom() []string {
	return slices.Clone(r.custom)
}

func (r *CategoryRegistry) Contains(name string) bool {
	return slices.Contains(DefaultCategories, name) || slices.Contains(r.custom, name)
}

func (r *CategoryRegistry) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCategory
	}
	if r.Contains(name) {
		return ErrDuplicateCategory
	}
	r.custom = append(r.custom, name)
	return nil
}

func (r *CategoryRegistry) Remove(name string) error {
	i := slices.Index(r.custom, name)
	if i < 0 {
		return ErrUnknownCategory
	}
	r.custom = slices.Delete(r.custom, i, i+1)
	return nil
}
