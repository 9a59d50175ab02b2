package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/five82/lostfound/internal/workflow"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDescribe(t *testing.T) {
	p := Describe(workflow.File{Name: "keys.png", MediaType: "image/png", Data: make([]byte, 2048)})
	if p.Name != "keys.png" || p.MediaType != "image/png" || p.Size != "2.0 kB" {
		t.Fatalf("preview = %+v", p)
	}
	if p.Thumbnail != "" || p.Dimensions() != "" {
		t.Fatalf("Describe must not decode: %+v", p)
	}
}

func TestBuild(t *testing.T) {
	data := encodePNG(t, 40, 20)
	p := Build(workflow.File{Name: "bag.png", MediaType: "image/png", Data: data}, 10, 5)

	if p.Width != 40 || p.Height != 20 {
		t.Fatalf("dimensions = %dx%d, want 40x20", p.Width, p.Height)
	}
	if p.Dimensions() != "40×20" {
		t.Fatalf("Dimensions() = %q", p.Dimensions())
	}
	if p.Size == "" || p.Name != "bag.png" {
		t.Fatalf("preview = %+v", p)
	}
	lines := strings.Split(p.Thumbnail, "\n")
	// 40x20 scaled into 10x10 pixels is 10x5, drawn as 3 rows of half blocks.
	if len(lines) != 3 {
		t.Fatalf("thumbnail rows = %d, want 3", len(lines))
	}
	if strings.Count(lines[0], halfBlock) != 10 {
		t.Fatalf("thumbnail width = %d, want 10", strings.Count(lines[0], halfBlock))
	}
}

func TestBuild_Undecodable(t *testing.T) {
	p := Build(workflow.File{Name: "x.heic", MediaType: "image/heic", Data: []byte("not an image")}, 10, 5)
	if p.Thumbnail != "" || p.Dimensions() != "" {
		t.Fatalf("expected no thumbnail, got %+v", p)
	}
	if p.Name != "x.heic" || p.Size == "" {
		t.Fatalf("metadata missing: %+v", p)
	}
}

func TestThumbnail_EmptyArea(t *testing.T) {
	if _, err := Thumbnail(encodePNG(t, 4, 4), 0, 3); err == nil {
		t.Fatalf("expected error for empty area")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{4, 4, 10, 10, 4, 4},
		{100, 50, 20, 20, 20, 10},
		{50, 100, 20, 20, 10, 20},
		{0, 10, 5, 5, 1, 1},
	}
	for _, tt := range tests {
		gotW, gotH := fit(tt.w, tt.h, tt.maxW, tt.maxH)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Fatalf("fit(%d,%d,%d,%d) = %d,%d want %d,%d", tt.w, tt.h, tt.maxW, tt.maxH, gotW, gotH, tt.wantW, tt.wantH)
		}
	}
}
