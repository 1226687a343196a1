package dungeon

import "time"

// Cache defaults
const (
	// DefaultCacheSize is the maximum number of maps held in memory.
	DefaultCacheSize = 64

	// DefaultCacheTTL expires cached maps after this duration.
	DefaultCacheTTL = 10 * time.Minute
)

// ==================== Error Messages ====================

const (
	ErrMsgEmptyMapName   = "map name must not be empty"
	ErrMsgEmptyMapID     = "map id must not be empty"
	ErrMsgSaveMapFailed  = "failed to save map: %w"
	ErrMsgUpdateFailed   = "failed to update placements: %w"
	ErrMsgPopulateFailed = "populate failed for map %s: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgMapParsed            = "Map parsed and stored"
	LogMsgMapDeleted           = "Map deleted"
	LogMsgMapPopulated         = "Map populated"
	LogMsgPopulateEnqueued     = "Populate job enqueued"
	LogMsgEventPublishFailed   = "Failed to publish map event"
	LogMsgAsyncPopulateStarted = "Async populate started"
)
