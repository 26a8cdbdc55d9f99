package processor

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func encode(t *testing.T, w, h int, format imaging.Format) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeThumbnailDownscalesLargeImages(t *testing.T) {
	data := encode(t, 3000, 1500, imaging.JPEG)

	out, err := NormalizeThumbnail(data, "image/jpeg", ResizeOption{Width: 1920, Height: 1080, Quality: 80})
	if err != nil {
		t.Fatalf("NormalizeThumbnail: %v", err)
	}
	if !out.Resized || out.Width != 1920 || out.Height != 960 {
		t.Fatalf("unexpected result %dx%d resized=%v", out.Width, out.Height, out.Resized)
	}
	if out.ContentType != "image/jpeg" {
		t.Fatalf("unexpected content type %q", out.ContentType)
	}
}

func TestNormalizeThumbnailKeepsSmallImages(t *testing.T) {
	data := encode(t, 640, 360, imaging.PNG)

	out, err := NormalizeThumbnail(data, "image/png", ResizeOption{Width: 1920, Height: 1080})
	if err != nil {
		t.Fatalf("NormalizeThumbnail: %v", err)
	}
	if out.Resized || !bytes.Equal(out.Data, data) {
		t.Fatalf("expected small image to pass through unchanged")
	}
	if out.Width != 640 || out.Height != 360 {
		t.Fatalf("unexpected dimensions %dx%d", out.Width, out.Height)
	}
}

func TestNormalizeThumbnailRejectsGarbage(t *testing.T) {
	_, err := NormalizeThumbnail([]byte("definitely not a png"), "image/png", ResizeOption{Width: 100, Height: 100})
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestNormalizeThumbnailPassesWebpThrough(t *testing.T) {
	data := []byte("RIFF....WEBP")
	out, err := NormalizeThumbnail(data, "image/webp", ResizeOption{Width: 10, Height: 10})
	if err != nil || !bytes.Equal(out.Data, data) {
		t.Fatalf("expected webp passthrough, got %v", err)
	}
}
