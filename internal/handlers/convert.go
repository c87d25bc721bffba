package handlers

import (
	"net/url"
	"strconv"
	"time"

	"lechefer/internal/slides"
	"lechefer/internal/viewmodel"
)

const (
	trackImage   = "image"
	trackCaption = "caption"
	trackCounter = "counter"
)

func imageURL(fileName string) string {
	return "/images/" + url.PathEscape(fileName)
}

func captionText(m slides.ImageMetadata) string {
	return m.Part + " | " + m.Group + " | " + m.Number
}

func counterText(index, count int) string {
	return strconv.Itoa(index+1) + "/" + strconv.Itoa(count)
}

func toLayer(track string, lv slides.LayerView, count int, fade time.Duration, blurMax float64) viewmodel.Layer {
	l := viewmodel.Layer{
		Key:         lv.Key,
		Track:       track,
		Phase:       lv.Phase.String(),
		Opacity:     lv.Opacity,
		Blur:        lv.Blur,
		BlurMax:     blurMax,
		ZIndex:      lv.ZIndex,
		FadeMs:      fade.Milliseconds(),
		RemainingMs: lv.Remaining.Milliseconds(),
	}
	switch track {
	case trackImage:
		l.ImageURL = imageURL(lv.Slide.FileName)
	case trackCaption:
		l.Text = captionText(lv.Slide)
	case trackCounter:
		l.Text = counterText(lv.Index, count)
	}
	return l
}

func toStage(snap slides.Snapshot) viewmodel.Stage {
	var stage viewmodel.Stage
	for _, lv := range snap.Images {
		stage.Images = append(stage.Images, toLayer(trackImage, lv, snap.Count, snap.Timing.ImageFade, snap.Mode.ImageBlur()))
	}
	for _, lv := range snap.Captions {
		stage.Captions = append(stage.Captions, toLayer(trackCaption, lv, snap.Count, snap.Timing.TextFade, slides.BlurMax))
		stage.Counters = append(stage.Counters, toLayer(trackCounter, lv, snap.Count, snap.Timing.TextFade, slides.BlurMax))
	}
	return stage
}

// toSlideFragment picks the live layer of each track, the ones that entered
// on the latest page change.
func toSlideFragment(snap slides.Snapshot) viewmodel.SlideFragment {
	stage := toStage(snap)
	f := viewmodel.SlideFragment{Page: snap.Page}
	if n := len(stage.Images); n > 0 {
		f.Image = stage.Images[n-1]
	}
	if n := len(stage.Captions); n > 0 {
		f.Caption = stage.Captions[n-1]
		f.Counter = stage.Counters[n-1]
	}
	return f
}

func toModeState(m slides.Mode) viewmodel.ModeState {
	timing := m.Timing()
	return viewmodel.ModeState{
		Mode:        m.String(),
		On:          m.On(),
		TimerMs:     timing.Timer.Milliseconds(),
		ImageFadeMs: timing.ImageFade.Milliseconds(),
		TextFadeMs:  timing.TextFade.Milliseconds(),
	}
}

func toLayerStates(views []slides.LayerView) []viewmodel.LayerState {
	out := make([]viewmodel.LayerState, 0, len(views))
	for _, lv := range views {
		out = append(out, viewmodel.LayerState{
			Key:         lv.Key,
			Index:       lv.Index,
			Phase:       lv.Phase.String(),
			Opacity:     lv.Opacity,
			Blur:        lv.Blur,
			ZIndex:      lv.ZIndex,
			RemainingMs: lv.Remaining.Milliseconds(),
		})
	}
	return out
}

func toState(sessionID string, snap slides.Snapshot) viewmodel.State {
	return viewmodel.State{
		Session: sessionID,
		Page:    snap.Page,
		Index:   snap.Index,
		Count:   snap.Count,
		Slide: viewmodel.SlideState{
			FileName: snap.Slide.FileName,
			ImageURL: imageURL(snap.Slide.FileName),
			Part:     snap.Slide.Part,
			Group:    snap.Slide.Group,
			Number:   snap.Slide.Number,
		},
		Mode:       toModeState(snap.Mode),
		NextTickMs: snap.NextTick.UnixMilli(),
		Images:     toLayerStates(snap.Images),
		Captions:   toLayerStates(snap.Captions),
	}
}
