package dice

// Scripted is a Roller that replays queued results in order. Tests use it
// to force hits, misses, criticals, and exact damage variance.
//
// Each method consumes from its own queue. When a queue is exhausted the
// zero-risk default is returned: Roll yields 1, Range yields min, and
// Chance yields false.
type Scripted struct {
	Rolls   []int
	Ranges  []int
	Chances []bool
}

var _ Roller = (*Scripted)(nil)

func (s *Scripted) Roll(sides int) int {
	if len(s.Rolls) == 0 {
		return 1
	}
	v := s.Rolls[0]
	s.Rolls = s.Rolls[1:]
	return v
}

func (s *Scripted) Range(min, max int) int {
	if len(s.Ranges) == 0 {
		return min
	}
	v := s.Ranges[0]
	s.Ranges = s.Ranges[1:]
	return v
}

func (s *Scripted) Chance(p float64) bool {
	if len(s.Chances) == 0 {
		return false
	}
	v := s.Chances[0]
	s.Chances = s.Chances[1:]
	return v
}
