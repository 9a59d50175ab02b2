// Package preview renders a candidate image for the terminal: basic metadata
// and a half-block thumbnail.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/five82/lostfound/internal/workflow"
)

const halfBlock = "▀"

// Preview is everything the UI shows for a staged file.
type Preview struct {
	Name      string
	MediaType string
	Size      string
	Width     int
	Height    int
	Thumbnail string
}

// Dimensions formats the pixel size, or "" when the image could not be decoded.
func (p Preview) Dimensions() string {
	if p.Width == 0 || p.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%d×%d", p.Width, p.Height)
}

// Describe returns the metadata-only preview of f. It does not decode.
func Describe(f workflow.File) Preview {
	return Preview{
		Name:      f.Name,
		MediaType: f.MediaType,
		Size:      humanize.Bytes(uint64(len(f.Data))),
	}
}

// Build renders f into a preview whose thumbnail fits cols×rows cells. Images
// in formats the terminal cannot decode still get a preview without a
// thumbnail. Build decodes the whole image; call it off the UI loop.
func Build(f workflow.File, cols, rows int) Preview {
	p := Describe(f)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(f.Data))
	if err != nil {
		return p
	}
	p.Width, p.Height = cfg.Width, cfg.Height
	if thumb, err := Thumbnail(f.Data, cols, rows); err == nil {
		p.Thumbnail = thumb
	}
	return p
}

// Thumbnail decodes data and draws it with upper-half blocks, two pixels per
// cell, preserving aspect ratio within cols×rows.
func Thumbnail(data []byte, cols, rows int) (string, error) {
	if cols <= 0 || rows <= 0 {
		return "", fmt.Errorf("thumbnail area %dx%d is empty", cols, rows)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	w, h := fit(src.Bounds().Dx(), src.Bounds().Dy(), cols, rows*2)
	if h%2 == 1 {
		h++
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var b strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			b.WriteString(cell(dst.At(x, y), dst.At(x, y+1)))
		}
	}
	return b.String(), nil
}

func cell(top, bottom color.Color) string {
	return lipgloss.NewStyle().
		Foreground(hex(top)).
		Background(hex(bottom)).
		Render(halfBlock)
}

func hex(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// fit scales w×h to fit within maxW×maxH without upscaling.
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
}
