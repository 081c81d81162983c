package normalize

// OrderedSet is an insertion-order-preserving string set with uniqueness by
// normalized key. Ranking and rotation both depend on stable iteration order,
// so dedup never goes through an unordered map alone.
type OrderedSet struct {
	keys  map[string]int
	items []string
}

// NewOrderedSet returns an empty ordered set.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{keys: make(map[string]int)}
}

// Add inserts item unless its normalized key is empty or already present.
// Returns true if the item was inserted.
func (s *OrderedSet) Add(item string) bool {
	key := Key(item)
	if key == "" {
		return false
	}
	if _, exists := s.keys[key]; exists {
		return false
	}
	s.keys[key] = len(s.items)
	s.items = append(s.items, item)
	return true
}

// Contains reports whether an item with the same normalized key is present.
func (s *OrderedSet) Contains(item string) bool {
	_, exists := s.keys[Key(item)]
	return exists
}

// Items returns the members in insertion order. Callers must not mutate the
// returned slice.
func (s *OrderedSet) Items() []string {
	return s.items
}

// Len returns the number of members.
func (s *OrderedSet) Len() int {
	return len(s.items)
}
