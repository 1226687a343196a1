package mapparser

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tervalon/delveforge/internal/domain"
)

func gzipBase64(t *testing.T, raw []byte) string {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeTileData_WireFormat(t *testing.T) {
	// Escaped run of four floors followed by two literal walls, flattened
	// x-major with z inner: tiles[0] = 1,1,1 and tiles[1] = 1,0,0.
	raw := []byte{domain.TileFloor, 0xFF, 4, domain.TileWall, domain.TileWall}

	tiles, err := DecodeTileData(gzipBase64(t, raw), 2, 3)
	require.NoError(t, err)

	assert.Equal(t, []byte{1, 1, 1}, tiles[0])
	assert.Equal(t, []byte{1, 0, 0}, tiles[1])
}

func TestDecodeTileData_ShortDataLeavesWalls(t *testing.T) {
	raw := []byte{domain.TileFloor, domain.TileFloor}

	tiles, err := DecodeTileData(gzipBase64(t, raw), 2, 2)
	require.NoError(t, err)

	assert.Equal(t, []byte{1, 1}, tiles[0])
	assert.Equal(t, []byte{0, 0}, tiles[1])
}

func TestDecodeTileData_TruncatedMarker(t *testing.T) {
	raw := []byte{domain.TileFloor, 0xFF}

	_, err := DecodeTileData(gzipBase64(t, raw), 2, 2)
	assert.ErrorIs(t, err, domain.ErrCorruptedTile)
}

func TestDecodeTileData_BadBase64(t *testing.T) {
	_, err := DecodeTileData("not-base64!!!", 2, 2)
	assert.ErrorIs(t, err, domain.ErrCorruptedTile)
}

func TestDecodeTileData_BadGzip(t *testing.T) {
	_, err := DecodeTileData(base64.StdEncoding.EncodeToString([]byte("plain")), 2, 2)
	assert.ErrorIs(t, err, domain.ErrCorruptedTile)
}

func TestDecodeTileData_BadDimensions(t *testing.T) {
	_, err := DecodeTileData("", 0, 5)
	assert.ErrorIs(t, err, domain.ErrCorruptedTile)

	_, err = DecodeTileData("", 5, -1)
	assert.ErrorIs(t, err, domain.ErrCorruptedTile)
}

func TestTileData_Roundtrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42)) //nolint:gosec // deterministic test randomness

	tests := []struct {
		name         string
		width, depth int
		fill         func(x, z int) byte
	}{
		{"all walls", 10, 10, func(int, int) byte { return domain.TileWall }},
		{"all floor", 10, 10, func(int, int) byte { return domain.TileFloor }},
		{"checkerboard", 17, 9, func(x, z int) byte { return byte((x + z) % 2) }},
		{"random", 64, 48, func(int, int) byte { return byte(rng.Intn(2)) }},
		{"long runs", 300, 3, func(x, _ int) byte {
			if x < 150 {
				return domain.TileFloor
			}
			return domain.TileWall
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := make([][]byte, tt.width)
			for x := range tiles {
				tiles[x] = make([]byte, tt.depth)
				for z := range tiles[x] {
					tiles[x][z] = tt.fill(x, z)
				}
			}

			encoded, err := EncodeTileData(tiles)
			require.NoError(t, err)

			decoded, err := DecodeTileData(encoded, tt.width, tt.depth)
			require.NoError(t, err)
			assert.Equal(t, tiles, decoded)
		})
	}
}
