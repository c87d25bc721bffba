package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lechefer/internal/config"
	"lechefer/internal/gallery"
	"lechefer/internal/logging"
	"lechefer/internal/slides"
	"lechefer/internal/viewmodel"
	"lechefer/views/components"
	"lechefer/views/pages"
)

var log = logging.New("handlers")

const toggleID = "video-mode"

// LandingHandler serves the slideshow page and its per-session endpoints.
type LandingHandler struct {
	store    *slides.Store
	provider gallery.Provider
	cfg      config.Config
}

// NewLandingHandler wires the handler to a session store and an image source.
func NewLandingHandler(store *slides.Store, provider gallery.Provider, cfg config.Config) *LandingHandler {
	return &LandingHandler{store: store, provider: provider, cfg: cfg}
}

// RegisterRoutes mounts the landing routes on r.
func (h *LandingHandler) RegisterRoutes(r chi.Router) {
	timeout := middleware.Timeout(15 * time.Second)
	r.With(timeout).Get("/", h.landing)
	r.Route("/s/{id}", func(r chi.Router) {
		// Long-lived streams are exempt from the request timeout.
		r.Get("/stream", h.stream)
		r.Get("/ws", h.websocket)

		r.With(timeout).Get("/state", h.state)
		r.With(timeout).Post("/mode", h.setMode)
		r.With(timeout).Post("/paginate", h.paginate)
	})
}

func (h *LandingHandler) landing(w http.ResponseWriter, r *http.Request) {
	images, err := h.provider.Images(r.Context())
	if err != nil {
		log.Error("collect images failed", "error", err)
		http.Error(w, "failed to load images", http.StatusInternalServerError)
		return
	}
	sess, err := h.store.CreateSession(images)
	if errors.Is(err, slides.ErrNoSlides) {
		render(w, r, pages.NoSlides(viewmodel.EmptyPage{
			Title:   h.cfg.SiteTitle,
			Message: "No slides to show yet.",
		}))
		return
	}
	if err != nil {
		log.Error("create session failed", "error", err)
		http.Error(w, "failed to start slideshow", http.StatusInternalServerError)
		return
	}
	log.Debug("session created", "session", sess.ID, "slides", sess.Len())

	snap := sess.Snapshot(time.Now().UTC())
	data := viewmodel.LandingPage{
		Title:      h.cfg.SiteTitle,
		SessionID:  sess.ID,
		StreamURL:  sessionPath(sess.ID, "stream"),
		ArtistName: h.cfg.ArtistName,
		ArtistURL:  h.cfg.ArtistURL,
		SourceName: h.cfg.SourceName,
		SourceURL:  h.cfg.SourceURL,
		Stage:      toStage(snap),
		Toggle:     h.toggleView(sess.ID, snap.Mode),
	}
	render(w, r, pages.Landing(data))
}

func (h *LandingHandler) toggleView(sessionID string, m slides.Mode) viewmodel.Toggle {
	return viewmodel.Toggle{
		ID:      toggleID,
		On:      m.On(),
		ModeURL: sessionPath(sessionID, "mode"),
		Label:   "Video mode",
	}
}

func (h *LandingHandler) toggleComponent(sessionID string, m slides.Mode) components.ToggleProps {
	v := h.toggleView(sessionID, m)
	return components.ToggleProps{ID: v.ID, IsOn: v.On, OnChange: v.ModeURL}
}

// setMode receives the toggle's forwarded change event. "on" carries the
// checkbox state after the change; without it the mode flips.
func (h *LandingHandler) setMode(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var (
		mode slides.Mode
		err  error
	)
	if _, ok := r.Form["on"]; ok {
		on, perr := parseChecked(r.FormValue("on"))
		if perr != nil {
			http.Error(w, "invalid toggle state", http.StatusBadRequest)
			return
		}
		mode, err = h.store.SetMode(sessionID, slides.ModeFromToggle(on))
	} else {
		mode, err = h.store.Toggle(sessionID)
	}
	if errors.Is(err, slides.ErrSessionNotFound) {
		http.NotFound(w, r)
		return
	}
	log.Debug("mode changed", "session", sessionID, "mode", mode)
	writeJSON(w, toModeState(mode))
}

func (h *LandingHandler) paginate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	direction, err := strconv.Atoi(strings.TrimSpace(r.FormValue("direction")))
	if err != nil {
		http.Error(w, "invalid direction", http.StatusBadRequest)
		return
	}
	err = h.store.Paginate(sessionID, direction)
	switch {
	case errors.Is(err, slides.ErrSessionNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, slides.ErrInvalidDirection):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, ok := h.store.GetSession(sessionID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, toState(sessionID, sess.Snapshot(time.Now().UTC())))
}

func (h *LandingHandler) state(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	sess, ok := h.store.GetSession(sessionID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, toState(sessionID, sess.Snapshot(time.Now().UTC())))
}

func (h *LandingHandler) stream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	sess, ok := h.store.GetSession(sessionID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	hub, ok := h.store.Broadcaster(sessionID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer func() {
		hub.Unsubscribe(sub)
		h.store.Release(sessionID)
		log.Debug("stream closed", "session", sessionID)
	}()
	if err := h.store.Mount(sessionID); err != nil {
		return
	}

	sendSlide := func() {
		snap := sess.Snapshot(time.Now().UTC())
		writeSSE(w, slides.EventSlide, renderToString(r, components.SlideFragment(toSlideFragment(snap))))
		flusher.Flush()
	}
	sendMode := func() {
		m := sess.Mode()
		writeSSE(w, slides.EventMode, renderToString(r, components.Toggle(h.toggleComponent(sessionID, m), components.Text("Video mode"))))
		flusher.Flush()
	}

	sendSlide()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub:
			if !open {
				return
			}
			switch event.Kind {
			case slides.EventSlide:
				sendSlide()
			case slides.EventMode:
				sendMode()
			}
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

func sessionPath(sessionID, action string) string {
	return "/s/" + sessionID + "/" + action
}

// parseChecked accepts the values browsers and scripts send for a checkbox.
func parseChecked(value string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "on" {
		return true, nil
	}
	if v == "off" || v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
