package mapparser

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/tervalon/delveforge/internal/domain"
)

// EncodeTileData serializes a tile grid as base64(gzip(RLE)). The RLE form
// is a stream of either a literal value byte or the escaped triple
// (value, 0xFF, count) for runs of rleMinRun or longer. Tiles are flattened
// x-major with z as the inner axis, matching the decoder and the on-disk
// map format.
func EncodeTileData(tiles [][]byte) (string, error) {
	var rle bytes.Buffer

	var runValue byte
	runLength := 0

	flush := func() {
		for runLength > 0 {
			n := runLength
			if n > rleMaxRun {
				n = rleMaxRun
			}
			if n >= rleMinRun {
				rle.WriteByte(runValue)
				rle.WriteByte(rleMarker)
				rle.WriteByte(byte(n))
			} else {
				for i := 0; i < n; i++ {
					rle.WriteByte(runValue)
				}
			}
			runLength -= n
		}
	}

	for x := range tiles {
		for z := range tiles[x] {
			v := tiles[x][z]
			if runLength > 0 && v == runValue {
				runLength++
				continue
			}
			flush()
			runValue = v
			runLength = 1
		}
	}
	flush()

	var compressed bytes.Buffer
	gz := gzip.NewWriter(&compressed)
	if _, err := gz.Write(rle.Bytes()); err != nil {
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(compressed.Bytes()), nil
}

// DecodeTileData reverses EncodeTileData into a width x depth grid. Missing
// trailing data leaves tiles at TileWall rather than failing; structurally
// broken input returns domain.ErrCorruptedTile.
func DecodeTileData(tileData string, width, depth int) ([][]byte, error) {
	if width <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w: non-positive dimensions %dx%d", domain.ErrCorruptedTile, width, depth)
	}

	compressed, err := base64.StdEncoding.DecodeString(tileData)
	if err != nil {
		return nil, fmt.Errorf("%w: "+ErrMsgBase64DecodeFailed, domain.ErrCorruptedTile, err)
	}

	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: "+ErrMsgGzipOpenFailed, domain.ErrCorruptedTile, err)
	}
	defer gz.Close()

	decompressed, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("%w: "+ErrMsgGzipReadFailed, domain.ErrCorruptedTile, err)
	}

	tiles := make([][]byte, width)
	for x := range tiles {
		tiles[x] = make([]byte, depth)
	}

	x, z := 0, 0
	for i := 0; i < len(decompressed) && x < width; {
		value := decompressed[i]
		i++

		count := 1
		if i < len(decompressed) && decompressed[i] == rleMarker {
			i++
			if i >= len(decompressed) {
				return nil, fmt.Errorf("%w: truncated run marker", domain.ErrCorruptedTile)
			}
			count = int(decompressed[i])
			i++
		}

		for j := 0; j < count && x < width; j++ {
			tiles[x][z] = value
			z++
			if z >= depth {
				z = 0
				x++
			}
		}
	}

	return tiles, nil
}
