// Package pages holds full-document templ components.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"lechefer/internal/viewmodel"
	"lechefer/views/components"
)

func head(h *components.Writer, title string) {
	h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	h.Raw("<title>")
	h.Text(title)
	h.Raw("</title>")
	h.Raw(`<link rel="icon" href="/favicon.ico">`)
	h.Raw(`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">`)
	h.Raw(`<link rel="stylesheet" href="/static/landing.css">`)
	h.Raw("</head>")
}

func link(h *components.Writer, href, text string) {
	h.Raw(`<a class="links"`)
	h.Attr("href", href)
	h.Raw(">")
	h.Text(text)
	h.Raw("</a>")
}

// Landing renders the slideshow page for one session.
func Landing(data viewmodel.LandingPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		head(h, data.Title)
		h.Raw(`<body><div class="landing root vw-100 vh-100 overflow-hidden"`)
		h.Attr("data-session", data.SessionID)
		h.Attr("data-stream", data.StreamURL)
		h.Raw(">")

		h.Raw(`<div class="background-slide-wrapper">`)
		h.Render(ctx, components.Track("image", data.Stage.Images))
		h.Raw("</div>")

		h.Raw(`<div class="content mx-0 px-0 w-100 h-100 position-absolute top-0 start-0 d-flex flex-column">`)

		h.Raw(`<div class="remark mx-0 px-0 row g-0" style="height:10%">`)
		h.Raw(`<div class="text-container col align-self-start"><h6>Artist: `)
		link(h, data.ArtistURL, data.ArtistName)
		h.Raw("</h6></div>")
		h.Raw(`<div class="text-container col d-flex justify-content-center"><h4>`)
		h.Render(ctx, components.Track("caption", data.Stage.Captions))
		h.Raw("</h4></div>")
		h.Raw(`<div class="text-container col d-flex justify-content-end"><h6>`)
		h.Render(ctx, components.Track("counter", data.Stage.Counters))
		h.Raw("</h6></div>")
		h.Raw("</div>")

		h.Raw(`<div class="mx-0 px-0 row g-0 justify-content-center flex-fill" style="height:80%">`)
		h.Raw(`<div class="col d-flex justify-content-center align-items-center"><h3>`)
		h.Text(data.Title)
		h.Raw("</h3></div></div>")

		h.Raw(`<div class="remark mx-0 px-0 row g-0" style="height:10%">`)
		h.Raw(`<div class="text-container col d-flex align-items-end" id="mode-toggle">`)
		h.Render(ctx, components.Toggle(components.ToggleProps{
			ID:       data.Toggle.ID,
			IsOn:     data.Toggle.On,
			OnChange: data.Toggle.ModeURL,
		}, components.Text(data.Toggle.Label)))
		h.Raw("</div>")
		h.Raw(`<div class="text-container col d-flex justify-content-end align-items-end"><h6>Borrowed shamelessly from `)
		link(h, data.SourceURL, data.SourceName)
		h.Raw("</h6></div>")
		h.Raw("</div>")

		h.Raw("</div></div>")
		h.Raw(`<script src="/static/landing.js" defer></script>`)
		h.Raw("</body></html>")
		return h.Err()
	})
}

// NoSlides renders the placeholder shown when the gallery is empty.
func NoSlides(data viewmodel.EmptyPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		head(h, data.Title)
		h.Raw(`<body><div class="landing empty vw-100 vh-100 d-flex flex-column justify-content-center align-items-center">`)
		h.Raw("<h3>")
		h.Text(data.Title)
		h.Raw(`</h3><p class="text-container" data-empty>`)
		h.Text(data.Message)
		h.Raw("</p></div></body></html>")
		return h.Err()
	})
}
