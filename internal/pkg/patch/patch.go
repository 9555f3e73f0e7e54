package patch

// Set collects optional PATCH fields and remembers whether any of them
// differs from the stored value.
type Set struct {
	changed bool
}

// Field returns *ptr when it is given and differs from current, otherwise current.
func Field[T comparable](s *Set, ptr *T, current T) T {
	if ptr == nil || *ptr == current {
		return current
	}
	s.changed = true
	return *ptr
}

func (s *Set) Changed() bool {
	return s.changed
}
