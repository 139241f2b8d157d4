package collections

import "math"

// Progress counts completed entries.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Percent returns the completion percentage, 0 for an empty set.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total) * 100
}

// Rounded returns Percent rounded to the nearest integer.
func (p Progress) Rounded() int {
	return int(math.Round(p.Percent()))
}

func progressOf[E any](items []E, done func(E) bool) Progress {
	p := Progress{Total: len(items)}
	for _, it := range items {
		if done(it) {
			p.Completed++
		}
	}
	return p
}
