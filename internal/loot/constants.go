package loot

// ==================== Rarity Roll Tunables ====================

// Base drop chances per rarity tier. Checked rarest-first against a single
// uniform roll, so the effective NORMAL chance is whatever remains.
const (
	ChanceSet    = 0.005
	ChanceUnique = 0.015
	ChanceRare   = 0.12
	ChanceMagic  = 0.40
)

// CritUpgradeChance is the chance a rolled rarity is bumped one tier up.
const CritUpgradeChance = 0.01

// MagicFindScale is the diminishing-returns midpoint for magic find: at
// MF == MagicFindScale the rarity chances are boosted by 50% of the cap.
const MagicFindScale = 100.0

// MagicFindMaxBonus caps the multiplier applied to rare+ chances. At the
// asymptote the chances are doubled.
const MagicFindMaxBonus = 1.0

// ==================== Item Level Bounds ====================

const (
	MinItemLevel = 1
	MaxItemLevel = 100
)

// ==================== Rare Name Tables ====================

// Rare item names are assembled from two word tables plus the base name,
// e.g. "Storm Bane Iron Sword".
var (
	RareNameFirstWords = []string{
		"Storm", "Blood", "Doom", "Grim", "Shadow", "Bone",
		"Raven", "Viper", "Ember", "Frost", "Gale", "Stone",
	}

	RareNameSecondWords = []string{
		"Bane", "Song", "Mark", "Ward", "Bite", "Veil",
		"Call", "Brand", "Coil", "Shroud", "Edge", "Grasp",
	}
)

// ==================== Value Tunables ====================

// AffixValueFactor converts total affix magnitude into gold value.
const AffixValueFactor = 2.0

// MinItemValue is the floor for computed gold values.
const MinItemValue = 1

// ==================== Error Messages ====================

const (
	ErrMsgItemLevelOutOfRange = "item level %d outside [%d, %d]"
	ErrMsgNegativeMagicFind   = "magic find must be non-negative, got %g"
	ErrMsgUnknownSlot         = "unknown slot '%s'"
	ErrMsgTemplateSelection   = "template selection failed: %w"
	ErrMsgAffixRollFailed     = "affix roll failed: %w"
	ErrMsgFixedAffixFailed    = "fixed affix '%s' on template '%s': %w"
)

// ==================== Log Messages ====================

const (
	LogMsgItemGenerated        = "Generated item"
	LogMsgUniquePoolEmpty      = "No unique template available, downgrading to RARE"
	LogMsgAffixPoolExhausted   = "Affix pool exhausted early"
	LogMsgEventPublishFailed   = "Failed to publish loot event"
	LogMsgBatchGenerated       = "Generated item batch"
	LogMsgBatchItemRollSkipped = "Skipping failed roll in batch"
)
