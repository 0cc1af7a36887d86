package domain

import (
	"encoding/json"
	"sort"
)

// ItemSet is an unordered set of item IDs.
// The zero value is not usable; create one with NewItemSet.
type ItemSet map[string]struct{}

// NewItemSet builds a set from the given IDs, collapsing duplicates.
func NewItemSet(ids ...string) ItemSet {
	s := make(ItemSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id and reports whether it was absent.
func (s ItemSet) Add(id string) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Contains reports whether id is in the set.
func (s ItemSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of items.
func (s ItemSet) Len() int {
	return len(s)
}

// Slice returns the IDs in ascending order.
func (s ItemSet) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the set.
func (s ItemSet) Clone() ItemSet {
	c := make(ItemSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// MarshalJSON encodes the set as a sorted array.
func (s ItemSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// Collection is the set of items a user has redeemed.
type Collection struct {
	UserID string  `json:"user_id"`
	Items  ItemSet `json:"items"`
}

// InventoryItem is a collected item joined with its catalog metadata.
type InventoryItem struct {
	ItemID      string `json:"item_id"`
	DisplayName string `json:"display_name"`
	Image       string `json:"image,omitempty"`
}
