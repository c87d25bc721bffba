package slides

import (
	"testing"
	"time"
)

func TestModeTiming(t *testing.T) {
	tests := []struct {
		mode Mode
		want Timing
	}{
		{Showcase, Timing{Timer: 10 * time.Second, ImageFade: 3 * time.Second, TextFade: 3 * time.Second}},
		{Video, Timing{Timer: 500 * time.Millisecond, ImageFade: 1500 * time.Millisecond, TextFade: 500 * time.Millisecond}},
		{Mode(42), Timing{Timer: 10 * time.Second, ImageFade: 3 * time.Second, TextFade: 3 * time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := tt.mode.Timing(); got != tt.want {
				t.Fatalf("Timing: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestModeFromToggle(t *testing.T) {
	if ModeFromToggle(false) != Showcase {
		t.Error("unchecked toggle should select showcase")
	}
	if ModeFromToggle(true) != Video {
		t.Error("checked toggle should select video")
	}
	if Showcase.On() || !Video.On() {
		t.Error("On should be true only for video")
	}
	var zero Mode
	if zero != Showcase {
		t.Error("zero Mode should be showcase")
	}
}

func TestModeImageBlur(t *testing.T) {
	if got := Showcase.ImageBlur(); got != BlurMax {
		t.Errorf("showcase image blur %v, want %v", got, BlurMax)
	}
	if got := Video.ImageBlur(); got != 0 {
		t.Errorf("video image blur %v, want 0", got)
	}
}

func TestParseMode(t *testing.T) {
	for _, tt := range []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "showcase", want: Showcase},
		{in: " Video ", want: Video},
		{in: "slow", want: Showcase, wantErr: true},
	} {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
