package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// WallpaperHandler serves rendered wallpaper images.
type WallpaperHandler struct {
	dir string
}

// NewWallpaperHandler creates a handler rooted at the absolute image output directory.
func NewWallpaperHandler(dir string) *WallpaperHandler {
	return &WallpaperHandler{dir: dir}
}

// safeName validates that the filename is a plain image name (no path
// separators, no traversal) and returns its absolute path under dir.
func (h *WallpaperHandler) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	if ok, _ := filepath.Match("wallpaper_*.jpg", cleaned); !ok {
		return "", fmt.Errorf("not a wallpaper image: %s", name)
	}
	abs := filepath.Join(h.dir, cleaned)
	if !strings.HasPrefix(abs, h.dir+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes output directory")
	}
	return abs, nil
}

// ServeFile handles GET /wallpapers/{filename}.
func (h *WallpaperHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.safeName(filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}
