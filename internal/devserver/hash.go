package devserver

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math/bits"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const hashSide = 8

// averageHash is a 64-bit perceptual hash: the image is shrunk to 8×8
// grayscale and each bit records whether a pixel is brighter than the mean.
func averageHash(data []byte) (uint64, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("decode image: %w", err)
	}
	small := image.NewGray(image.Rect(0, 0, hashSide, hashSide))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), src, src.Bounds(), draw.Src, nil)

	var sum int
	for _, v := range small.Pix {
		sum += int(v)
	}
	mean := sum / len(small.Pix)

	var hash uint64
	for i, v := range small.Pix {
		if int(v) > mean {
			hash |= 1 << uint(i)
		}
	}
	return hash, nil
}

// similarity maps the Hamming distance between two hashes onto [0,1].
func similarity(a, b uint64) float64 {
	return 1 - float64(bits.OnesCount64(a^b))/64
}
