package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFramebufferImageFlips(t *testing.T) {
	// Two rows of one pixel: bottom red, top blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FramebufferImage(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FramebufferImage: %v", err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Errorf("top pixel should be blue, got r=%d b=%d", r, b)
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Errorf("bottom pixel should be red, got r=%d b=%d", r, b)
	}
}

func TestFramebufferImageRejectsBadInput(t *testing.T) {
	if _, err := FramebufferImage(make([]byte, 3), 1, 1); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := FramebufferImage(nil, 0, 1); err == nil {
		t.Error("expected invalid size error")
	}
}

func TestScreenshotsSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "sgview")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	name, err := s.Save(make([]byte, 2*2*4), 2, 2, 42)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "sgview_2024-05-01_12-30-00_f42.png"); name != want {
		t.Errorf("name = %q, want %q", name, want)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
}

func TestScreenshotsFilenameWithoutDir(t *testing.T) {
	s := NewScreenshots("", "shot")
	if name := s.Filename(1); strings.ContainsRune(name, filepath.Separator) || !strings.HasPrefix(name, "shot_") {
		t.Errorf("unexpected name %q", name)
	}
}
