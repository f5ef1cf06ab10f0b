package registry

// ID identifies one signal entry for the lifetime of a Store. IDs come from
// a monotonic counter and are never reused, so a removed id can not be
// mistaken for a later signal.
type ID uint64

type entry struct {
	value any
	equal EqualsFunc
	onSet []setHandle
}

// Subscriber registrations carry a tag so removal works by stable handle
// identity. The same callback may be registered any number of times and
// each registration is removed on its own.
type setHandle struct {
	tag uint64
	fn  func()
}

type getHandle struct {
	tag uint64
	fn  func(ID)
}

// Store is the single table behind a family of signals: id to current
// value, equality predicate and write-subscribers, plus one global ordered
// list of read-subscribers used during dependency discovery.
//
// A Store is not safe for concurrent use. Every operation is synchronous
// and runs to completion before returning: a write that changes a value
// invokes every dependent re-run before SetValue returns. Re-entrant writes
// from inside a write-subscriber recurse synchronously and there is no
// cycle detection.
type Store struct {
	entries  map[ID]*entry
	onGet    []getHandle
	suppress int
	nextID   uint64
	nextTag  uint64
}

func NewStore() *Store {
	return &Store{entries: map[ID]*entry{}}
}

// NextID mints a fresh identifier.
func (s *Store) NextID() ID {
	s.nextID++
	return ID(s.nextID)
}

// GetValue returns the stored value for id. A read of a live entry is
// announced to every read-subscriber unless suppression is active; a read
// of a missing entry returns (nil, false) with no event.
func (s *Store) GetValue(id ID) (any, bool) {
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	if s.suppress == 0 && len(s.onGet) > 0 {
		subs := make([]getHandle, len(s.onGet))
		copy(subs, s.onGet)
		for _, h := range subs {
			h.fn(id)
		}
	}
	return e.value, true
}

// SetValue writes value under id. The first write for an id creates the
// entry and notifies nobody. A later write replaces the value and invokes
// the entry's write-subscribers in registration order, but only when equal
// judges the new value different from the old one. A nil equal falls back
// to the predicate the entry was created with, or SameValue.
//
// Writing to a removed id resurrects it as a fresh entry with no
// subscribers.
func (s *Store) SetValue(id ID, equal EqualsFunc, value any) {
	e, ok := s.entries[id]
	if !ok {
		if equal == nil {
			equal = SameValue
		}
		s.entries[id] = &entry{value: value, equal: equal}
		return
	}
	if equal == nil {
		equal = e.equal
	}
	if equal(e.value, value) {
		return
	}
	e.value = value
	// Snapshot so subscribers registered mid-dispatch wait for the next
	// write.
	subs := make([]setHandle, len(e.onSet))
	copy(subs, e.onSet)
	for _, h := range subs {
		h.fn()
	}
}

// Remove deletes the entry for id. Removing twice is a no-op.
func (s *Store) Remove(id ID) {
	delete(s.entries, id)
}

// OnGet appends fn to the global read-subscriber list. fn receives the id
// of every signal read while it stays registered. The returned func removes
// exactly this registration; calling it again does nothing.
func (s *Store) OnGet(fn func(ID)) (unsubscribe func()) {
	s.nextTag++
	tag := s.nextTag
	s.onGet = append(s.onGet, getHandle{tag: tag, fn: fn})
	return func() {
		for i, h := range s.onGet {
			if h.tag == tag {
				s.onGet = append(s.onGet[:i], s.onGet[i+1:]...)
				return
			}
		}
	}
}

// OnSet appends fn to id's write-subscriber list. If the entry does not
// exist nothing is registered and the returned func is a no-op. The
// unsubscribe never touches a resurrected entry: tags are store-unique.
func (s *Store) OnSet(id ID, fn func()) (unsubscribe func()) {
	e, ok := s.entries[id]
	if !ok {
		return func() {}
	}
	s.nextTag++
	tag := s.nextTag
	e.onSet = append(e.onSet, setHandle{tag: tag, fn: fn})
	return func() {
		e, ok := s.entries[id]
		if !ok {
			return
		}
		for i, h := range e.onSet {
			if h.tag == tag {
				e.onSet = append(e.onSet[:i], e.onSet[i+1:]...)
				return
			}
		}
	}
}

// Untracked runs fn with read announcements suppressed. Values still come
// back normally. Suppression is a counter, so untracked scopes nest.
func (s *Store) Untracked(fn func()) {
	s.suppress++
	defer func() { s.suppress-- }()
	fn()
}
