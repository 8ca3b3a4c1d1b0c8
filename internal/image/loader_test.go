package image

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	httputil "github.com/jmylchreest/tincture/internal/util/http"
)

func writePNG(t *testing.T, dir string) (string, []byte) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := range 4 {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
		img.Set(x, 1, color.RGBA{B: 255, A: 255})
	}
	path := filepath.Join(dir, "stripes.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create PNG: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close PNG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read PNG back: %v", err)
	}
	return path, data
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	pngPath, _ := writePNG(t, dir)
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("dummy image data"), 0o600); err != nil {
		t.Fatalf("Failed to write junk file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"valid png", pngPath, ""},
		{"empty path", "", "cannot be empty"},
		{"missing", filepath.Join(dir, "missing.png"), "not found"},
		{"directory", dir, "directory"},
		{"not an image", junk, "failed to decode"},
	}

	loader := NewFileLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := loader.Load(context.Background(), tt.path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
				t.Errorf("bounds = %v, want 4x2", b)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	pngPath, _ := writePNG(t, dir)
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("dummy image data"), 0o600); err != nil {
		t.Fatalf("Failed to write junk file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"png", pngPath, false},
		{"url", "https://example.com/wallpaper.jpg", false},
		{"empty", "", true},
		{"missing", filepath.Join(dir, "nope.png"), true},
		{"directory", dir, true},
		{"junk", junk, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestSmartLoaderURL(t *testing.T) {
	_, data := writePNG(t, t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img.png" {
			http.NotFound(w, r)
			return
		}
		if !strings.HasPrefix(r.UserAgent(), httputil.UserAgentName+"/") {
			t.Errorf("User-Agent = %q", r.UserAgent())
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	loader := NewSmartLoader(httputil.FetchOptions{Client: srv.Client()})
	img, err := loader.Load(context.Background(), srv.URL+"/img.png")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 {
		t.Errorf("bounds = %v", b)
	}

	if _, err := loader.Load(context.Background(), srv.URL+"/missing.png"); err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("missing URL error = %v, want HTTP 404", err)
	}

	small := NewSmartLoader(httputil.FetchOptions{Client: srv.Client(), MaxBytes: 8})
	if _, err := small.Load(context.Background(), srv.URL+"/img.png"); err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("oversized body error = %v", err)
	}
}

func TestIsImageFile(t *testing.T) {
	tests := map[string]bool{
		"a.PNG":     true,
		"b.webp":    true,
		"c.jpeg":    true,
		"d.txt":     false,
		"noext":     false,
		"e.gif.bak": false,
	}
	for path, want := range tests {
		if got := IsImageFile(path); got != want {
			t.Errorf("IsImageFile(%q) = %v, want %v", path, got, want)
		}
	}
}
