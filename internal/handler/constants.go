package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidIlvlParam  = "Invalid ilvl parameter"

	// Loot error messages
	ErrMsgGenerateLootFailed = "Failed to generate loot"
	ErrMsgInvalidCount       = "count must be between 1 and 100"

	// Map error messages
	ErrMsgUploadMapFailed     = "Failed to parse map image"
	ErrMsgMissingMapImage     = "Missing image file in form field 'image'"
	ErrMsgMapNameRequired     = "Map name is required"
	ErrMsgGetMapFailed        = "Failed to get map"
	ErrMsgListMapsFailed      = "Failed to list maps"
	ErrMsgDeleteMapFailed     = "Failed to delete map"
	ErrMsgPopulateMapFailed   = "Failed to populate map"
	ErrMsgPopulateQueueIsFull = "Populate queue is full. Try again later"
)

// User-facing messages for successful operations
const (
	MsgMapDeletedSuccess     = "Map deleted"
	MsgPopulateQueuedSuccess = "Populate job queued"
)

// Multipart upload limits
const (
	// MaxUploadBytes bounds the in-memory portion of a multipart map upload.
	MaxUploadBytes = 8 << 20
)
