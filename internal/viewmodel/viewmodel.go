// Package viewmodel defines the view-layer types for the landing page.
// They carry no slideshow logic so that views can import them freely.
package viewmodel

// Layer is one keyed image, caption or counter element.
type Layer struct {
	Key         int
	Track       string
	ImageURL    string
	Text        string
	Phase       string
	Opacity     float64
	Blur        float64
	BlurMax     float64
	ZIndex      int
	FadeMs      int64
	RemainingMs int64
}

// Stage holds every layer currently on screen.
type Stage struct {
	Images   []Layer
	Captions []Layer
	Counters []Layer
}

// SlideFragment is the set of layers entering on one page change.
type SlideFragment struct {
	Page    int
	Image   Layer
	Caption Layer
	Counter Layer
}

// Toggle is the mode switch as rendered.
type Toggle struct {
	ID      string
	On      bool
	ModeURL string
	Label   string
}

// LandingPage carries everything the full page needs.
type LandingPage struct {
	Title      string
	SessionID  string
	StreamURL  string
	ArtistName string
	ArtistURL  string
	SourceName string
	SourceURL  string
	Stage      Stage
	Toggle     Toggle
}

// EmptyPage is shown when there are no slides.
type EmptyPage struct {
	Title   string
	Message string
}

// ModeState is the JSON reply to a mode change.
type ModeState struct {
	Mode        string `json:"mode"`
	On          bool   `json:"on"`
	TimerMs     int64  `json:"timerMs"`
	ImageFadeMs int64  `json:"imageFadeMs"`
	TextFadeMs  int64  `json:"textFadeMs"`
}

// LayerState is a layer in the JSON state.
type LayerState struct {
	Key         int     `json:"key"`
	Index       int     `json:"index"`
	Phase       string  `json:"phase"`
	Opacity     float64 `json:"opacity"`
	Blur        float64 `json:"blur"`
	ZIndex      int     `json:"zIndex"`
	RemainingMs int64   `json:"remainingMs"`
}

// SlideState is the JSON form of the current slide.
type SlideState struct {
	FileName string `json:"fileName"`
	ImageURL string `json:"imageUrl"`
	Part     string `json:"part"`
	Group    string `json:"group"`
	Number   string `json:"number"`
}

// State is the JSON snapshot served to polling and websocket clients.
type State struct {
	Session    string       `json:"session"`
	Page       int          `json:"page"`
	Index      int          `json:"index"`
	Count      int          `json:"count"`
	Slide      SlideState   `json:"slide"`
	Mode       ModeState    `json:"mode"`
	NextTickMs int64        `json:"nextTickMs"`
	Images     []LayerState `json:"images"`
	Captions   []LayerState `json:"captions"`
}
