package amortera

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// History stores a chronological series of float64 values, each associated
// with a specific date. It ensures that dates are unique and the series is
// always sorted.
type History struct {
	days   []Date
	values []float64
}

// NewHistory builds a history from parallel date/value slices.
// It fails on empty input or duplicated dates.
func NewHistory(days []Date, values []float64) (*History, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("empty series")
	}
	if len(days) != len(values) {
		return nil, fmt.Errorf("series has %d dates but %d values", len(days), len(values))
	}
	h := &History{}
	for i, on := range days {
		if _, ok := h.Get(on); ok {
			return nil, fmt.Errorf("duplicate date %s in series", on)
		}
		h.Append(on, values[i])
	}
	return h, nil
}

// Len returns the number of items in the history.
func (h *History) Len() int { return len(h.days) }

// First returns the earliest date and value in the history.
func (h *History) First() (day Date, value float64) {
	if len(h.days) == 0 {
		return Date{}, 0
	}
	return h.days[0], h.values[0]
}

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero values.
func (h *History) Latest() (day Date, value float64) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, 0
	}
	return h.days[last], h.values[last]
}

// chronological is a private implementation to make this history chronologically sorted.
type chronological struct{ *History }

func (s chronological) Len() int           { return len(s.days) }
func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// sort sorts the history in chronological order.
func (h *History) sort() { sort.Sort(chronological{h}) }

// Append adds a point to the history.
//
// Existing value at that date is overwritten.
func (h *History) Append(on Date, q float64) *History {
	if i := slices.Index(h.days, on); i >= 0 {
		// Found a point at that exact same day.
		// We choose to replace, because it will give higher priority to the last data.
		h.values[i] = q
		return h
	}
	h.days, h.values = append(h.days, on), append(h.values, q)
	h.sort()
	return h
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History) Values() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value at 'day' and true, or zero value and false.
func (h *History) Get(day Date) (float64, bool) {
	if i := slices.Index(h.days, day); i >= 0 {
		return h.values[i], true
	}
	return 0, false
}

// ValueAsOf returns the value on a given day, or the most recent value before it.
// It returns the value and true if found, otherwise it returns zero and false.
func (h *History) ValueAsOf(day Date) (float64, bool) {
	// The days slice is sorted, so we can use binary search.
	i, found := slices.BinarySearchFunc(h.days, day, Date.Compare)
	if found {
		return h.values[i], true
	}
	// Not found. `i` is the index where `day` would be inserted.
	// The value we want is at `i-1`, the last entry before the target date.
	if i == 0 {
		return 0, false // No date on or before the given day.
	}
	return h.values[i-1], true
}

// Expand returns a calendar-day-complete copy of the history: every day
// between its first and last date is present, gaps are forward-filled with
// the most recent known value. It fails on an empty history.
func (h *History) Expand() (*History, error) {
	if h.Len() == 0 {
		return nil, fmt.Errorf("cannot expand an empty series")
	}
	first, value := h.First()
	last, _ := h.Latest()
	out := &History{
		days:   make([]Date, 0, last.Sub(first)+1),
		values: make([]float64, 0, last.Sub(first)+1),
	}
	for on := first; !on.After(last); on = on.Add(1) {
		if v, ok := h.Get(on); ok {
			value = v
		}
		out.days = append(out.days, on)
		out.values = append(out.values, value)
	}
	return out, nil
}
