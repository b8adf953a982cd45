package market

// SequenceSource replays fixed values, cycling when exhausted.
// Float64 values should be in [0, 1); Intn values are reduced modulo n.
type SequenceSource struct {
	Floats []float64
	Ints   []int

	fi int
	ii int
}

func (s *SequenceSource) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0.5
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

func (s *SequenceSource) Intn(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	if v < 0 {
		v = -v
	}
	return v % n
}

// ConstantSource always returns the same float, which makes every Step equal.
type ConstantSource float64

func (c ConstantSource) Float64() float64 { return float64(c) }

func (c ConstantSource) Intn(n int) int { return 0 }
