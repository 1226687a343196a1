package affix

// ==================== Configuration File Names ====================

const (
	// ConfigFileName is the name of the affix configuration file
	ConfigFileName = "affixes.json"

	// SchemaPath is the path (relative to project root) for the affix schema
	SchemaPath = "configs/schemas/affixes.schema.json"
)

// ==================== Error Messages ====================

const (
	ErrMsgReadConfigFileFailed  = "failed to read affix config file: %w"
	ErrMsgParseConfigFailed     = "failed to parse affix config: %w"
	ErrMsgStatConfigFileFailed  = "failed to stat config file: %w"
	ErrMsgReadForHashFailed     = "failed to read config file: %w"
	ErrMsgUpsertAffixFailed     = "failed to upsert affix '%s': %w"
	ErrMsgCheckFileChangeFail   = "failed to check if file changed: %w"
	ErrMsgGetSyncMetadataFailed = "failed to get sync metadata: %w"
)

const (
	ErrMsgConfigNil       = "config is nil"
	ErrMsgNoAffixesListed = "no affixes defined"
)

// ==================== Format Strings for Error Construction ====================

const (
	ErrFmtAffixAtIndexEmptyKey = "%w: affix at index %d has empty key"
	ErrFmtAffixBadKind         = "%w: affix '%s' has unknown kind '%s'"
	ErrFmtAffixEmptyName       = "%w: affix '%s' has empty name"
	ErrFmtAffixEmptyStat       = "%w: affix '%s' has empty stat"
	ErrFmtAffixNoSlots         = "%w: affix '%s' lists no slots"
	ErrFmtAffixBadSlot         = "%w: affix '%s' has unknown slot '%s'"
	ErrFmtAffixBadLevelRange   = "%w: affix '%s' has min_ilvl %d > max_ilvl %d"
	ErrFmtAffixBadMagnitude    = "%w: affix '%s' has magnitude_min %g > magnitude_max %g"
	ErrFmtAffixBadWeight       = "%w: affix '%s' has non-positive weight %d"
)

// ==================== Log Messages ====================

const (
	LogMsgConfigUnchanged      = "Affix config file unchanged, skipping sync"
	LogMsgSyncCompleted        = "Affix sync completed"
	LogMsgUpsertedAffix        = "Upserted affix"
	LogMsgUpdateMetadataFailed = "Failed to update sync metadata"
)
