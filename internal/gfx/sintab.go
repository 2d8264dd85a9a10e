package gfx

import "math"

// SinTable is an integer sine lookup over one period of Len() steps, scaled to
// +/-amp. Len is a power of two so lookups wrap with a mask.
type SinTable struct {
	tab  []int
	mask int
}

// NewSinTable builds a table of size entries (rounded up to a power of two).
func NewSinTable(size, amp int) *SinTable {
	n := 1
	for n < size {
		n <<= 1
	}
	t := &SinTable{tab: make([]int, n), mask: n - 1}
	for i := range t.tab {
		t.tab[i] = int(math.Round(float64(amp) * math.Sin(2*math.Pi*float64(i)/float64(n))))
	}
	return t
}

// Sin returns the entry at i, wrapping for any i including negatives.
func (t *SinTable) Sin(i int) int { return t.tab[i&t.mask] }

// Cos is Sin shifted by a quarter period.
func (t *SinTable) Cos(i int) int { return t.tab[(i+len(t.tab)/4)&t.mask] }

// Len is the number of steps in one period.
func (t *SinTable) Len() int { return len(t.tab) }

// WaveTable accumulates a sequence of per-step deltas into absolute offsets,
// like the wave curves of Atari ST scrollers. Sum wraps past the end by
// carrying the final offset forward.
type WaveTable []int

// BuildWave samples f over [0, span) degrees every step degrees and stores the
// integer deltas between consecutive samples, drifting by progress over the
// whole period.
func BuildWave(step, span, progress float64, f func(rad float64) float64) WaveTable {
	var local []float64
	for a := 0.0; a < span-step; a += step {
		local = append(local, f(a*math.Pi/180))
	}
	deltas := make([]int, len(local))
	decal, previous := 0.0, 0
	for i, v := range local {
		item := -int(math.Floor(v - decal))
		deltas[i] = item - previous
		previous = item
		decal += progress / float64(len(local))
	}
	return deltas
}

// Concat chains tables and turns the deltas into running offsets.
func Concat(tables ...WaveTable) WaveTable {
	var out WaveTable
	count := 0
	for _, t := range tables {
		for _, d := range t {
			count += d
			out = append(out, count)
		}
	}
	return out
}

// Sum returns the offset at index, adding the table's final value once per
// completed lap.
func (w WaveTable) Sum(index int) int {
	n := len(w)
	if n == 0 {
		return 0
	}
	if index < 0 {
		index = 0
	}
	return (index/n)*w[n-1] + w[index%n]
}
