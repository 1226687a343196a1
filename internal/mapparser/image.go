package mapparser

import (
	"fmt"
	"image"
	"io"

	// Register the decoders accepted for map images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/tervalon/delveforge/internal/domain"
)

// decodeGrid converts an image into a tile grid. Pixels at or above the
// luminance threshold become floor, everything else wall. Image x maps to
// map x (width) and image y to map z (depth).
func decodeGrid(r io.Reader, threshold int) ([][]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: "+ErrMsgDecodeImageFailed, domain.ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	depth := bounds.Dy()

	if width == 0 || depth == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidImage)
	}

	if width > MaxImageDimension || depth > MaxImageDimension {
		return nil, fmt.Errorf("%w: "+ErrMsgImageTooLarge, domain.ErrInvalidImage, width, depth, MaxImageDimension, MaxImageDimension)
	}

	tiles := make([][]byte, width)
	for x := range tiles {
		tiles[x] = make([]byte, depth)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if luminance(img.At(x, y)) >= threshold {
				tiles[x-bounds.Min.X][y-bounds.Min.Y] = domain.TileFloor
			}
		}
	}

	return tiles, nil
}

// luminance returns the Rec. 601 luma of a color on a 0-255 scale.
func luminance(c interface{ RGBA() (r, g, b, a uint32) }) int {
	r, g, b, _ := c.RGBA()
	// RGBA components are 16-bit; scale down after weighting.
	return int((299*r + 587*g + 114*b) / 1000 >> 8)
}
