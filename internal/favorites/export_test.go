package favorites

// LockCount exposes the number of live pair locks.
func LockCount(s *Set) int {
	return s.locks.size()
}
