package mapparser

// ==================== Parsing Tunables ====================

const (
	// LuminanceThreshold splits pixels into wall (dark) and floor (bright).
	// Range 0-255 against the Rec. 601 luma of the pixel.
	LuminanceThreshold = 128

	// MinRoomArea is the smallest flood-filled region counted as a room.
	// Smaller regions become corridor candidates.
	MinRoomArea = 9

	// MinRoomSquareness rejects long thin regions as rooms. A region is a
	// room only when area / boundingBoxArea is at least this ratio.
	MinRoomSquareness = 0.4

	// TreasureRoomMinDistance is how far a dead-end room's center must be
	// from spawn before it is tagged as a treasure room.
	TreasureRoomMinDistance = 30.0
)

// ==================== Tile Codec ====================

const (
	// rleMarker escapes a run: value byte, marker, count byte. Tile values
	// stay below the marker so it is unambiguous.
	rleMarker = 0xFF

	// rleMaxRun is the largest run a single count byte can express.
	rleMaxRun = 255

	// rleMinRun is the shortest run worth escaping; shorter runs are
	// emitted as literal bytes.
	rleMinRun = 3
)

// MapSchemaPath is the path (relative to project root) for the map schema
const MapSchemaPath = "configs/schemas/map.schema.json"

// ==================== Error Messages ====================

const (
	ErrMsgDecodeImageFailed  = "failed to decode map image: %w"
	ErrMsgImageTooLarge      = "image %dx%d exceeds maximum %dx%d"
	ErrMsgBase64DecodeFailed = "base64 decode failed: %w"
	ErrMsgGzipOpenFailed     = "gzip open failed: %w"
	ErrMsgGzipReadFailed     = "gzip read failed: %w"
	ErrMsgReadMapFileFailed  = "failed to read map file: %w"
	ErrMsgParseMapFileFailed = "failed to parse map file: %w"
	ErrMsgWriteMapFailed     = "failed to write map file: %w"
)

// MaxImageDimension caps accepted map image width and height.
const MaxImageDimension = 2048

// ==================== Log Messages ====================

const (
	LogMsgMapParsed        = "Map parsed"
	LogMsgUnreachableRooms = "Rooms unreachable from spawn"
)
