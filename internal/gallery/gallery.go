// Package gallery collects slide metadata from an image directory.
//
// Image files are named "<part>_<group>_<number>.<ext>", for example
// "Chapter 1_Opening_03.jpg". Files whose stem does not split into exactly
// three non-empty fields are skipped.
package gallery

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"lechefer/internal/logging"
	"lechefer/internal/slides"
)

var log = logging.New("gallery")

// Provider supplies the ordered slide list for one page load.
type Provider interface {
	Images(ctx context.Context) ([]slides.ImageMetadata, error)
}

var imageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
	".avif": {},
}

// DirProvider reads slides from the top level of a directory.
type DirProvider struct {
	FS fs.FS
}

// NewDirProvider returns a provider over fsys.
func NewDirProvider(fsys fs.FS) *DirProvider {
	return &DirProvider{FS: fsys}
}

// Images lists the directory and parses every image file name, sorted by name.
func (p *DirProvider) Images(ctx context.Context) ([]slides.ImageMetadata, error) {
	entries, err := fs.ReadDir(p.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("read image dir: %w", err)
	}
	out := make([]slides.ImageMetadata, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		meta, ok := ParseFileName(entry.Name())
		if !ok {
			log.Warn("skipping image with unparseable name", "file", entry.Name())
			continue
		}
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FileName < out[j].FileName
	})
	log.Debug("collected images", "count", len(out))
	return out, nil
}

// IsImage reports whether name has a supported image extension.
func IsImage(name string) bool {
	_, ok := imageExts[strings.ToLower(path.Ext(name))]
	return ok
}

// ParseFileName splits "<part>_<group>_<number>.<ext>" into slide metadata.
func ParseFileName(name string) (slides.ImageMetadata, bool) {
	stem := strings.TrimSuffix(name, path.Ext(name))
	fields := strings.Split(stem, "_")
	if len(fields) != 3 {
		return slides.ImageMetadata{}, false
	}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
		if fields[i] == "" {
			return slides.ImageMetadata{}, false
		}
	}
	return slides.ImageMetadata{
		FileName: name,
		Part:     fields[0],
		Group:    fields[1],
		Number:   fields[2],
	}, true
}

// Static is a fixed slide list, used when images come from somewhere other
// than a directory.
type Static []slides.ImageMetadata

// Images returns a copy of the list.
func (s Static) Images(context.Context) ([]slides.ImageMetadata, error) {
	return append([]slides.ImageMetadata(nil), s...), nil
}
