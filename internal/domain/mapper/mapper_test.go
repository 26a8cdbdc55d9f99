package mapper

import (
	"testing"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/dto"
)

func TestCreateInputToEntityLeavesBlankOptionalsNil(t *testing.T) {
	size := int64(42)
	v := CreateInputToEntity(dto.CreateVideoInput{
		Title:    "Reel",
		BlobURL:  "https://cdn.example.com/videos/reel.mp4",
		FileSize: &size,
	})

	if v.Title != "Reel" {
		t.Fatalf("unexpected title %q", v.Title)
	}
	if v.BlobURL == nil || *v.BlobURL != "https://cdn.example.com/videos/reel.mp4" {
		t.Fatalf("blob url not mapped: %v", v.BlobURL)
	}
	if v.Description != nil || v.Category != nil || v.VimeoID != nil {
		t.Fatalf("expected blank optionals to stay nil")
	}
	if v.FileSize == nil || *v.FileSize != 42 {
		t.Fatalf("file size not mapped")
	}

	out := VideoToDTO(v)
	if out.Title != "Reel" || out.BlobURL != v.BlobURL {
		t.Fatalf("dto mismatch: %+v", out)
	}
}
