package components

import (
	"context"
	"io"
	"math"
	"strconv"

	"github.com/a-h/templ"

	"lechefer/internal/viewmodel"
)

// Layer renders one keyed layer. The inline style is the layer's state at
// render time; the transition carries it to its target over the remaining fade.
func Layer(l viewmodel.Layer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := NewWriter(w)
		h.Raw(`<div`)
		h.Attr("class", "layer layer-"+l.Track)
		h.Attr("data-track", l.Track)
		h.Attr("data-key", strconv.Itoa(l.Key))
		h.Attr("data-phase", l.Phase)
		h.Attr("data-fade-ms", strconv.FormatInt(l.FadeMs, 10))
		h.Attr("data-remaining-ms", strconv.FormatInt(l.RemainingMs, 10))
		h.Attr("data-blur", formatFloat(l.BlurMax))
		h.Attr("style", layerStyle(l))
		h.Raw(">")
		if l.ImageURL != "" {
			h.Raw(`<img class="background-slide" alt=""`)
			h.Attr("src", l.ImageURL)
			h.Raw(">")
		}
		if l.Text != "" {
			h.Raw(`<span class="layer-text">`)
			h.Text(l.Text)
			h.Raw("</span>")
		}
		h.Raw("</div>")
		return h.Err()
	})
}

// Track renders a container and its layers, oldest first.
func Track(name string, layers []viewmodel.Layer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewWriter(w)
		h.Raw(`<div`)
		h.Attr("class", "track track-"+name)
		h.Attr("data-track-root", name)
		h.Raw(">")
		for _, l := range layers {
			h.Render(ctx, Layer(l))
		}
		h.Raw("</div>")
		return h.Err()
	})
}

// SlideFragment renders the layers entering on a page change, streamed to
// the browser as one event.
func SlideFragment(f viewmodel.SlideFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewWriter(w)
		h.Raw(`<template data-page="`)
		h.Int(int64(f.Page))
		h.Raw(`">`)
		h.Render(ctx, Layer(f.Image))
		h.Render(ctx, Layer(f.Caption))
		h.Render(ctx, Layer(f.Counter))
		h.Raw("</template>")
		return h.Err()
	})
}

func layerStyle(l viewmodel.Layer) string {
	return "z-index:" + strconv.Itoa(l.ZIndex) +
		";opacity:" + formatFloat(l.Opacity) +
		";filter:blur(" + formatFloat(l.Blur) + "px)" +
		";transition-duration:" + strconv.FormatInt(l.RemainingMs, 10) + "ms"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*1e4)/1e4, 'f', -1, 64)
}
