package signal

// Ring is a fixed-capacity ring buffer of float64 samples. Pushing beyond
// capacity drops the oldest sample; per-push cost stays O(1).
type Ring struct {
	buf   []float64
	start int
	n     int
}

// NewRing returns a ring buffer holding at most capacity samples.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]float64, capacity)}
}

// Push appends a sample, evicting the oldest when full.
func (r *Ring) Push(v float64) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = v
		r.n++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

// Len returns the number of samples currently held.
func (r *Ring) Len() int { return r.n }

// Cap returns the buffer capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Snapshot copies the samples in push order into dst, growing it as needed,
// and returns the result.
func (r *Ring) Snapshot(dst []float64) []float64 {
	if cap(dst) < r.n {
		dst = make([]float64, r.n)
	}
	dst = dst[:r.n]
	for i := 0; i < r.n; i++ {
		dst[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return dst
}

// Clear discards all samples.
func (r *Ring) Clear() {
	r.start = 0
	r.n = 0
}
