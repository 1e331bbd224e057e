package ecs

// Store is a container for a specific component type T.
// Iteration order is insertion order with swap-remove on deletion.
type Store[T any] struct {
	index    map[Entity]int
	entities []Entity
	values   []T
}

// NewStore creates a component store and registers it with the world so
// despawning an entity removes its component.
func NewStore[T any](w *World) *Store[T] {
	s := &Store[T]{index: make(map[Entity]int)}
	w.stores = append(w.stores, s)
	return s
}

// Set inserts or replaces the component for e.
func (s *Store[T]) Set(e Entity, v T) {
	if i, ok := s.index[e]; ok {
		s.values[i] = v
		return
	}
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	s.values = append(s.values, v)
}

// Get returns the component for e.
func (s *Store[T]) Get(e Entity) (T, bool) {
	if i, ok := s.index[e]; ok {
		return s.values[i], true
	}
	var zero T
	return zero, false
}

// Ptr returns a pointer to the stored component, valid until the next Set or remove.
func (s *Store[T]) Ptr(e Entity) *T {
	if i, ok := s.index[e]; ok {
		return &s.values[i]
	}
	return nil
}

// Has reports whether e has this component.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Len returns the number of entities with this component.
func (s *Store[T]) Len() int {
	return len(s.entities)
}

// Each calls fn for every component. fn must not add or remove components.
func (s *Store[T]) Each(fn func(e Entity, v *T)) {
	for i := range s.entities {
		fn(s.entities[i], &s.values[i])
	}
}

// Single returns the only entity holding this component.
// ok is false when there are zero or several.
func (s *Store[T]) Single() (Entity, *T, bool) {
	if len(s.entities) != 1 {
		return None, nil, false
	}
	return s.entities[0], &s.values[0], true
}

func (s *Store[T]) remove(e Entity) {
	i, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.entities) - 1
	if i != last {
		s.entities[i] = s.entities[last]
		s.values[i] = s.values[last]
		s.index[s.entities[i]] = i
	}
	s.entities = s.entities[:last]
	var zero T
	s.values[last] = zero
	s.values = s.values[:last]
	delete(s.index, e)
}
