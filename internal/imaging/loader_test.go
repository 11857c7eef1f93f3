package imaging

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
)

// writePhoto saves a w x h gradient "photo" under dir with the given file
// name. The encoder is picked from the extension.
func writePhoto(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := imaging.New(w, h, color.White)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 96, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
	return path
}

func TestImageCache_LoadSessionImage(t *testing.T) {
	cache := NewImageCache()
	if cache.Len() != 0 {
		t.Fatalf("new cache holds %d images", cache.Len())
	}
	path := writePhoto(t, t.TempDir(), "session.png", 1000, 800)

	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b := first.Bounds(); b.Dx() != 1000 || b.Dy() != 800 {
		t.Fatalf("native size: got %dx%d, want 1000x800", b.Dx(), b.Dy())
	}

	// Reloading the same session image must not decode it again.
	again, err := cache.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again != first {
		t.Error("reload returned a fresh decode instead of the cached image")
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestImageCache_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	truncated := filepath.Join(dir, "truncated.png")
	if err := os.WriteFile(truncated, []byte("\x89PNG\r\n\x1a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	text := filepath.Join(dir, "notes.jpg")
	if err := os.WriteFile(text, []byte("crop at 100,80"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "gone.png")},
		{"truncated png", truncated},
		{"text with image extension", text},
		{"directory", dir},
	}

	cache := NewImageCache()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := cache.Load(tt.path); err == nil {
				t.Errorf("Load(%s) should fail", tt.path)
			}
		})
	}
	if cache.Len() != 0 {
		t.Errorf("failed loads were cached: Len = %d", cache.Len())
	}
}

func TestImageCache_SwitchingImages(t *testing.T) {
	dir := t.TempDir()
	landscape := writePhoto(t, dir, "landscape.png", 1000, 800)
	portrait := writePhoto(t, dir, "portrait.png", 600, 900)

	cache := NewImageCache()
	for _, p := range []string{landscape, portrait, landscape} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load(%s): %v", filepath.Base(p), err)
		}
	}
	if cache.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", cache.Len())
	}

	cache.Evict(landscape)
	if cache.Len() != 1 {
		t.Errorf("Len after Evict: got %d, want 1", cache.Len())
	}
	cache.Evict(landscape) // already gone
	cache.Evict(filepath.Join(dir, "never-loaded.png"))
	if cache.Len() != 1 {
		t.Errorf("evicting unknown paths changed Len to %d", cache.Len())
	}

	// An evicted image is decoded again on the next load.
	if _, err := cache.Load(landscape); err != nil {
		t.Fatalf("reload after Evict: %v", err)
	}
	if cache.Len() != 2 {
		t.Errorf("Len after reload: got %d, want 2", cache.Len())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", cache.Len())
	}
}

func TestImageCache_ParallelSessionLoads(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePhoto(t, dir, "a.png", 320, 240),
		writePhoto(t, dir, "b.png", 240, 320),
	}

	cache := NewImageCache()
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			img, err := cache.Load(p)
			if err != nil {
				errs <- err
				return
			}
			if img.Bounds().Empty() {
				errs <- os.ErrInvalid
			}
		}(paths[i%len(paths)])
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("parallel Load: %v", err)
	}
	if cache.Len() != len(paths) {
		t.Errorf("Len: got %d, want %d", cache.Len(), len(paths))
	}
}

func TestLoadImageInfo_SessionImage(t *testing.T) {
	cache := NewImageCache()
	path := writePhoto(t, t.TempDir(), "session.png", 1000, 800)

	info, img, err := LoadImageInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadImageInfo: %v", err)
	}
	want := ImageInfo{Path: path, Width: 1000, Height: 800, Format: "png"}
	got := *info
	got.FileSizeBytes, got.HasAlpha = 0, false
	if got != want {
		t.Errorf("info: got %+v, want %+v", got, want)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d", info.FileSizeBytes)
	}

	cached, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cached != img {
		t.Error("LoadImageInfo should hand back the cached image")
	}
}

func TestLoadImageInfo_Formats(t *testing.T) {
	dir := t.TempDir()

	// Files with an unrecognized extension still decode by content.
	odd := filepath.Join(dir, "scan.raw")
	f, err := os.Create(odd)
	if err != nil {
		t.Fatal(err)
	}
	if err := imaging.Encode(f, imaging.New(64, 48, color.Black), imaging.PNG); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tests := []struct {
		path   string
		format string
	}{
		{writePhoto(t, dir, "photo.png", 64, 48), "png"},
		{writePhoto(t, dir, "photo.jpg", 64, 48), "jpeg"},
		{writePhoto(t, dir, "photo.jpeg", 64, 48), "jpeg"},
		{writePhoto(t, dir, "photo.gif", 64, 48), "gif"},
		{writePhoto(t, dir, "photo.bmp", 64, 48), "bmp"},
		{writePhoto(t, dir, "photo.tif", 64, 48), "tiff"},
		{odd, "unknown"},
	}

	cache := NewImageCache()
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			info, _, err := LoadImageInfo(cache, tt.path)
			if err != nil {
				t.Fatalf("LoadImageInfo: %v", err)
			}
			if info.Format != tt.format {
				t.Errorf("Format: got %s, want %s", info.Format, tt.format)
			}
			if info.Width != 64 || info.Height != 48 {
				t.Errorf("size: got %dx%d, want 64x48", info.Width, info.Height)
			}
		})
	}
}

func TestLoadImageInfo_Alpha(t *testing.T) {
	dir := t.TempDir()

	gray := filepath.Join(dir, "gray.png")
	if err := imaging.Save(image.NewGray(image.Rect(0, 0, 40, 30)), gray); err != nil {
		t.Fatal(err)
	}
	translucent := filepath.Join(dir, "translucent.png")
	if err := imaging.Save(imaging.New(40, 30, color.NRGBA{R: 200, A: 128}), translucent); err != nil {
		t.Fatal(err)
	}

	cache := NewImageCache()
	for _, tt := range []struct {
		path  string
		alpha bool
	}{
		{gray, false},
		{translucent, true},
	} {
		info, _, err := LoadImageInfo(cache, tt.path)
		if err != nil {
			t.Fatalf("LoadImageInfo(%s): %v", filepath.Base(tt.path), err)
		}
		if info.HasAlpha != tt.alpha {
			t.Errorf("%s: HasAlpha got %v, want %v", filepath.Base(tt.path), info.HasAlpha, tt.alpha)
		}
	}
}

func TestLoadImageInfo_Missing(t *testing.T) {
	cache := NewImageCache()
	info, img, err := LoadImageInfo(cache, filepath.Join(t.TempDir(), "session.png"))
	if err == nil {
		t.Fatal("LoadImageInfo should fail for a missing file")
	}
	if info != nil || img != nil {
		t.Errorf("failed load returned info=%v img=%v", info, img)
	}
}
