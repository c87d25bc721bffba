package slides

import "time"

// Phase is where a layer is in its enter/exit cycle.
type Phase int

const (
	Entering Phase = iota
	Visible
	Exiting
	Removed
)

func (p Phase) String() string {
	switch p {
	case Entering:
		return "entering"
	case Visible:
		return "visible"
	case Exiting:
		return "exiting"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Layer is one keyed element of a track: the image or caption shown for a
// single page value.
type Layer struct {
	Key      int // page value that created the layer
	Index    int // slide index the layer shows
	Phase    Phase
	Since    time.Time // start of the current phase
	Duration time.Duration
	Blur     float64
}

// EaseInOut is a cubic ease-in-out curve on [0, 1]. It is symmetric:
// EaseInOut(1-x) == 1-EaseInOut(x).
func EaseInOut(x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	case x < 0.5:
		return 4 * x * x * x
	default:
		y := -2*x + 2
		return 1 - y*y*y/2
	}
}

// Progress is the linear fraction of the current fade that has elapsed.
// Visible and removed layers report 1.
func (l Layer) Progress(now time.Time) float64 {
	if l.Phase != Entering && l.Phase != Exiting {
		return 1
	}
	if l.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(l.Since)) / float64(l.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Remaining is how long the current fade still runs.
func (l Layer) Remaining(now time.Time) time.Duration {
	if l.Phase != Entering && l.Phase != Exiting {
		return 0
	}
	left := l.Since.Add(l.Duration).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Opacity of the layer at now.
func (l Layer) Opacity(now time.Time) float64 {
	switch l.Phase {
	case Entering:
		return EaseInOut(l.Progress(now))
	case Visible:
		return 1
	case Exiting:
		return 1 - EaseInOut(l.Progress(now))
	default:
		return 0
	}
}

// BlurAt is the blur radius in pixels at now.
func (l Layer) BlurAt(now time.Time) float64 {
	return l.Blur * (1 - l.Opacity(now))
}

// advance moves the layer through any phases whose fade has finished by now.
func (l *Layer) advance(now time.Time) {
	if l.Phase != Entering && l.Phase != Exiting {
		return
	}
	if now.Sub(l.Since) < l.Duration {
		return
	}
	end := l.Since.Add(l.Duration)
	if l.Phase == Entering {
		l.Phase = Visible
	} else {
		l.Phase = Removed
	}
	l.Since = end
	l.Duration = 0
}

// exit starts the exit fade at now. A layer still entering exits from the
// opacity it has reached rather than jumping to fully visible.
func (l *Layer) exit(now time.Time, fade time.Duration) {
	done := 0.0
	if l.Phase == Entering {
		// Symmetric easing: exiting at progress 1-p has the opacity of entering at p.
		done = 1 - l.Progress(now)
	}
	l.Phase = Exiting
	l.Duration = fade
	l.Since = now.Add(-time.Duration(done * float64(fade)))
}

// Track is an ordered stack of layers where at most one layer is entering
// or visible; every older layer is exiting.
type Track struct {
	ZIndex int
	layers []Layer
}

// Show makes key the live layer of the track and starts fading the previous
// one out. Both fades use the same duration, so they cross.
func (t *Track) Show(key, index int, now time.Time, fade time.Duration, blur float64) {
	t.Advance(now)
	for i := range t.layers {
		if t.layers[i].Phase == Entering || t.layers[i].Phase == Visible {
			t.layers[i].exit(now, fade)
		}
	}
	t.layers = append(t.layers, Layer{
		Key:      key,
		Index:    index,
		Phase:    Entering,
		Since:    now,
		Duration: fade,
		Blur:     blur,
	})
	t.Advance(now)
}

// Advance moves every layer forward to now and prunes removed ones.
func (t *Track) Advance(now time.Time) {
	kept := t.layers[:0]
	for _, l := range t.layers {
		l.advance(now)
		if l.Phase != Removed {
			kept = append(kept, l)
		}
	}
	t.layers = kept
}

// Live returns the entering or visible layer, if any.
func (t *Track) Live() (Layer, bool) {
	for i := len(t.layers) - 1; i >= 0; i-- {
		if p := t.layers[i].Phase; p == Entering || p == Visible {
			return t.layers[i], true
		}
	}
	return Layer{}, false
}

// Layers returns a copy of the track's layers, oldest first.
func (t *Track) Layers() []Layer {
	out := make([]Layer, len(t.layers))
	copy(out, t.layers)
	return out
}

// LayerZ is the stacking order of a layer within its track; exiting layers
// sink below the live one.
func (t *Track) LayerZ(l Layer) int {
	if l.Phase == Exiting || l.Phase == Removed {
		return 0
	}
	return t.ZIndex
}
