package catalog

// ==================== Configuration File Names ====================

const (
	// ConfigFileName is the name of the base item catalog configuration file
	ConfigFileName = "base_items.json"

	// SchemaPath is the path (relative to project root) for the catalog schema
	SchemaPath = "configs/schemas/base_items.schema.json"
)

// ==================== Error Messages ====================

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read base items config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse base items config: %w"
	ErrMsgStatConfigFileFailed = "failed to stat config file: %w"
	ErrMsgReadForHashFailed    = "failed to read config file: %w"
)

// Validation error messages (fragments used with error wrapping)
const (
	ErrMsgConfigNil          = "config is nil"
	ErrMsgNoTemplatesDefined = "no templates defined"
)

// Database operation error messages
const (
	ErrMsgCheckFileChangeFailed      = "failed to check if file changed: %w"
	ErrMsgGetSyncMetadataFailed      = "failed to get sync metadata: %w"
	ErrMsgGetExistingTemplatesFailed = "failed to get existing templates: %w"
	ErrMsgUpdateTemplateFailed       = "failed to update template '%s': %w"
	ErrMsgInsertTemplateFailed       = "failed to insert template '%s': %w"
)

// ==================== Format Strings for Error Construction ====================

const (
	ErrFmtTemplateAtIndexEmpty     = "%w: template at index %d has empty internal_name"
	ErrFmtTemplateEmptyDisplay     = "%w: template '%s' has empty display_name"
	ErrFmtTemplateBadSlot          = "%w: template '%s' has unknown slot '%s'"
	ErrFmtTemplateBadLevelRange    = "%w: template '%s' has min_ilvl %d > max_ilvl %d"
	ErrFmtTemplateBadWeight        = "%w: template '%s' has non-positive weight %d"
	ErrFmtTemplateNonPositiveValue = "%w: template '%s' has non-positive base_value"
	ErrFmtTemplateBadImplicit      = "%w: template '%s' implicit '%s' has min > max"
	ErrFmtTemplateFixedAffixOnly   = "%w: template '%s' declares fixed_affixes without unique_rarity"
)

// ==================== Log Messages ====================

const (
	LogMsgConfigUnchanged      = "Base items config file unchanged, skipping sync"
	LogMsgSyncCompleted        = "Base items sync completed"
	LogMsgUpdatedTemplate      = "Updated template"
	LogMsgInsertedTemplate     = "Inserted template"
	LogMsgUpdateMetadataFailed = "Failed to update sync metadata"
)
