package pwp

import "math"

// WindowObserver receives the add/move events a WindowInterval emits as it
// fills and then slides. WindowNode is the production observer: it forwards
// these events to its WindowOperator's Add/Move.
type WindowObserver interface {
	OnAdd(interval Interval) error
	OnMove(removed, added Interval) error
}

// WindowInterval is a sliding window of fixed temporal length L. It opens on
// the first interval it receives and persists for the owning node's
// lifetime, maintaining wl <= wr <= wl+L.
type WindowInterval struct {
	length    float64
	wl, wr    float64
	opened    bool
	buffer    []Interval
	observers []WindowObserver
}

// NewWindowInterval creates a window of the given temporal length.
func NewWindowInterval(length float64) *WindowInterval {
	return &WindowInterval{length: length}
}

// Subscribe registers an observer for this window's add/move events.
func (w *WindowInterval) Subscribe(o WindowObserver) {
	w.observers = append(w.observers, o)
}

func (w *WindowInterval) notifyAdd(i Interval) error {
	for _, o := range w.observers {
		if err := o.OnAdd(i); err != nil {
			return err
		}
	}
	return nil
}

func (w *WindowInterval) notifyMove(removed, added Interval) error {
	for _, o := range w.observers {
		if err := o.OnMove(removed, added); err != nil {
			return err
		}
	}
	return nil
}

// Add feeds a newly arrived interval into the window. If it still fits
// within the configured length, the window simply extends (emitting Add);
// otherwise the window fills to capacity and then slides repeatedly
// (emitting one Move per slide step) until it has absorbed the whole
// interval.
func (w *WindowInterval) Add(interval Interval) error {
	w.buffer = append(w.buffer, interval)
	if !w.opened {
		w.wl = interval.Start
		w.wr = interval.Start
		w.opened = true
	}
	if (w.wr-w.wl)+interval.Length() <= w.length+EPS {
		w.wr += interval.Length()
		return w.notifyAdd(interval)
	}
	if w.wl+w.length-w.wr > EPS {
		if err := w.notifyAdd(interval.Subset(w.wr, w.wl+w.length)); err != nil {
			return err
		}
	}
	w.wr = w.wl + w.length
	last := w.buffer[len(w.buffer)-1]
	for !nearlyEqual(w.wr, last.End) {
		if err := w.slide(); err != nil {
			return err
		}
	}
	return nil
}

// slide performs one eviction/admission step: Δ = min(head.end-wl,
// lastBuffered.end-wr, L). If Δ is smaller than the head's remaining length,
// the head is split (left half removed, right half kept); otherwise the head
// is popped whole. The newly admitted piece is always a subset of the
// latest buffered interval, from wr to wr+Δ.
func (w *WindowInterval) slide() error {
	head := w.buffer[0]
	last := w.buffer[len(w.buffer)-1]
	delta := math.Min(head.End-w.wl, math.Min(last.End-w.wr, w.length))

	var removed Interval
	if delta < head.End-w.wl-EPS {
		left, right, err := head.Split(delta)
		if err != nil {
			return err
		}
		removed = left
		w.buffer[0] = right
	} else {
		removed = head
		w.buffer = w.buffer[1:]
	}
	added := last.Subset(w.wr, w.wr+delta)
	w.wr += delta
	w.wl = w.buffer[0].Start
	return w.notifyMove(removed, added)
}
