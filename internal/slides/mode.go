package slides

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects the slideshow cadence.
type Mode int

const (
	// Showcase is the slow default cadence.
	Showcase Mode = iota
	// Video flips slides fast enough to read as motion.
	Video
)

// BlurMax is the blur radius, in pixels, a layer starts from or fades to.
const BlurMax = 5.0

// Timing is the set of durations a mode selects.
type Timing struct {
	Timer     time.Duration
	ImageFade time.Duration
	TextFade  time.Duration
}

var timings = [...]Timing{
	Showcase: {Timer: 10 * time.Second, ImageFade: 3 * time.Second, TextFade: 3 * time.Second},
	Video:    {Timer: 500 * time.Millisecond, ImageFade: 1500 * time.Millisecond, TextFade: 500 * time.Millisecond},
}

// Timing returns the durations for m. Unknown modes fall back to Showcase.
func (m Mode) Timing() Timing {
	if m < 0 || int(m) >= len(timings) {
		return timings[Showcase]
	}
	return timings[m]
}

// ImageBlur is the blur radius image layers fade through in this mode.
// Video mode fades without blur so quick cuts stay sharp.
func (m Mode) ImageBlur() float64 {
	if m == Video {
		return 0
	}
	return BlurMax
}

// On reports whether m is the video mode, the "on" state of the toggle.
func (m Mode) On() bool {
	return m == Video
}

// ModeFromToggle maps the toggle's checked state to a mode.
func ModeFromToggle(on bool) Mode {
	if on {
		return Video
	}
	return Showcase
}

func (m Mode) String() string {
	switch m {
	case Showcase:
		return "showcase"
	case Video:
		return "video"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "showcase" or "video", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "showcase":
		return Showcase, nil
	case "video":
		return Video, nil
	default:
		return Showcase, fmt.Errorf("unknown mode %q", s)
	}
}
