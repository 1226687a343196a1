package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgTemplateNotFound    = "template not found"
	ErrMsgNoEligibleTemplates = "no eligible templates"

	// Affix errors
	ErrMsgAffixNotFound      = "affix not found"
	ErrMsgAffixPoolExhausted = "affix pool exhausted"

	// Map errors
	ErrMsgMapNotFound   = "map not found"
	ErrMsgInvalidImage  = "invalid map image"
	ErrMsgNoFloorTiles  = "map contains no floor tiles"
	ErrMsgCorruptedTile = "corrupted tile data"

	// Sync errors
	ErrMsgSyncMetadataNotFound = "sync metadata not found"

	// Validation errors (used for partial matches)
	ErrMsgInvalidInput = "invalid input"

	// Worker errors
	ErrMsgQueueFull = "job queue is full"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Catalog errors
	ErrTemplateNotFound    = errors.New(ErrMsgTemplateNotFound)
	ErrNoEligibleTemplates = errors.New(ErrMsgNoEligibleTemplates)

	// Affix errors
	ErrAffixNotFound      = errors.New(ErrMsgAffixNotFound)
	ErrAffixPoolExhausted = errors.New(ErrMsgAffixPoolExhausted)

	// Map errors
	ErrMapNotFound   = errors.New(ErrMsgMapNotFound)
	ErrInvalidImage  = errors.New(ErrMsgInvalidImage)
	ErrNoFloorTiles  = errors.New(ErrMsgNoFloorTiles)
	ErrCorruptedTile = errors.New(ErrMsgCorruptedTile)

	// Sync errors
	ErrSyncMetadataNotFound = errors.New(ErrMsgSyncMetadataNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Worker errors
	ErrQueueFull = errors.New(ErrMsgQueueFull)
)
