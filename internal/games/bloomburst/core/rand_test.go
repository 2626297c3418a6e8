package core

// sequenceRand replays fixed values. Each sequence cycles when exhausted;
// an empty sequence yields 0.
type sequenceRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *sequenceRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *sequenceRand) Intn(n int) int {
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	return v % n
}

// always returns a source that succeeds every trial and picks the first option.
func always() *sequenceRand {
	return &sequenceRand{floats: []float64{0}, ints: []int{0}}
}

// never returns a source that fails every trial.
func never() *sequenceRand {
	return &sequenceRand{floats: []float64{0.999}}
}

func mustPiece(t interface{ Fatalf(string, ...any) }, id string) PieceType {
	p, err := DefaultCatalog().Lookup(id)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", id, err)
	}
	return p
}
