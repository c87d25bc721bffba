package main

import (
	"embed"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lechefer/internal/config"
	"lechefer/internal/gallery"
	"lechefer/internal/handlers"
	"lechefer/internal/logging"
	"lechefer/internal/slides"
)

func main() {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")
	_ = mime.AddExtensionType(".webp", "image/webp")
	_ = mime.AddExtensionType(".avif", "image/avif")

	logger := logging.New("web")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store := slides.NewStore()
	provider := gallery.NewDirProvider(os.DirFS(cfg.ImagesDir))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		log.Fatal(err)
	}

	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))
	r.Mount("/images", http.StripPrefix("/images", http.FileServer(http.Dir(cfg.ImagesDir))))
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(filepath.Dir(cfg.ImagesDir), "favicon.ico"))
	})

	landingHandler := handlers.NewLandingHandler(store, provider, cfg)
	landingHandler.RegisterRoutes(r)

	go sweepSessions(store, cfg.SessionIdle)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("listening", "url", "http://localhost"+cfg.Addr, "images", cfg.ImagesDir)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

// sweepSessions drops page loads whose viewer never connected or went away.
func sweepSessions(store *slides.Store, idle time.Duration) {
	logger := logging.New("sweeper")
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for range ticker.C {
		if n := store.Sweep(idle); n > 0 {
			logger.Debug("swept idle sessions", "count", n)
		}
	}
}

//go:embed static/*
var embeddedStatic embed.FS
