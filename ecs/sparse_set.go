package ecs

// SparseSet stores one component kind keyed by entity slot. Values are kept
// as `any` so a single world can hold stores of every kind.
type SparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

func newSparseSet() *SparseSet {
	return &SparseSet{}
}

// Has reports whether e, at its current generation, has a value in the set.
func (s *SparseSet) Has(e Entity) bool {
	idx, ok := s.index(e)
	return ok && s.dense[idx] == e
}

func (s *SparseSet) index(e Entity) (int, bool) {
	if s == nil {
		return 0, false
	}
	id := int(e.id())
	if id <= 0 || id > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) {
		return 0, false
	}
	return idx, true
}

// Get returns the value stored for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	if !s.Has(e) {
		return nil
	}
	idx, _ := s.index(e)
	return s.values[idx]
}

// Set inserts or replaces the value for e. A value left behind by an older
// generation of the same slot is overwritten.
func (s *SparseSet) Set(e Entity, v any) {
	id := int(e.id())
	if s == nil || id <= 0 {
		return
	}
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.index(e); ok {
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

// Remove deletes the value for e if present.
func (s *SparseSet) Remove(e Entity) bool {
	if !s.Has(e) {
		return false
	}
	s.removeSlot(e.id())
	return true
}

// removeSlot drops whatever value sits in slot id regardless of generation.
func (s *SparseSet) removeSlot(id entityID) {
	if s == nil || id == 0 || int(id) > len(s.sparse) {
		return
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) {
		return
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id-1] = -1
}

// Len returns the number of stored values.
func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Entities returns the dense entity list. Callers must not modify it.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.dense
}
