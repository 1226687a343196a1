package domain

import "fmt"

// EquipSlot identifies the inventory slot a piece of equipment occupies.
type EquipSlot string

const (
	SlotMainHand EquipSlot = "mainhand"
	SlotOffHand  EquipSlot = "offhand"
	SlotHead     EquipSlot = "head"
	SlotChest    EquipSlot = "chest"
	SlotHands    EquipSlot = "hands"
	SlotFeet     EquipSlot = "feet"
	SlotRing     EquipSlot = "ring"
	SlotAmulet   EquipSlot = "amulet"
)

// AllEquipSlots lists every valid equip slot. Order is stable and used for
// uniform random slot selection.
var AllEquipSlots = []EquipSlot{
	SlotMainHand,
	SlotOffHand,
	SlotHead,
	SlotChest,
	SlotHands,
	SlotFeet,
	SlotRing,
	SlotAmulet,
}

// IsValid reports whether the slot is one of the known equip slots.
func (s EquipSlot) IsValid() bool {
	for _, slot := range AllEquipSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// ItemClass is the broad category of a base item template.
type ItemClass string

const (
	ClassWeapon    ItemClass = "weapon"
	ClassArmor     ItemClass = "armor"
	ClassAccessory ItemClass = "accessory"
)

// StatRange is an inclusive numeric range an implicit stat rolls within.
type StatRange struct {
	Stat string  `json:"stat"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// BaseItemTemplate is a static catalog entry with three-layer naming:
// - InternalName: stable code identifier (e.g., "sword_iron")
// - DisplayName: user-facing name (e.g., "Iron Sword")
// Templates are eligible for generation only when the requested item level
// falls inside [MinItemLevel, MaxItemLevel].
type BaseItemTemplate struct {
	InternalName string      `json:"internal_name" db:"internal_name"`
	DisplayName  string      `json:"display_name" db:"display_name"`
	Slot         EquipSlot   `json:"slot" db:"slot"`
	Class        ItemClass   `json:"class" db:"item_class"`
	MinItemLevel int         `json:"min_ilvl" db:"min_ilvl"`
	MaxItemLevel int         `json:"max_ilvl" db:"max_ilvl"`
	BaseValue    int         `json:"base_value" db:"base_value"`
	Weight       int         `json:"weight" db:"weight"`
	Implicits    []StatRange `json:"implicits,omitempty"`
	Tags         []string    `json:"tags,omitempty"`

	// UniqueRarity marks a template that only drops as UNIQUE or SET. Its
	// FixedAffixes replace the random affix roll; magnitudes still roll.
	UniqueRarity Rarity   `json:"unique_rarity,omitempty"`
	FixedAffixes []string `json:"fixed_affixes,omitempty"`
}

// Eligible reports whether the template may be generated at the given item level.
func (t *BaseItemTemplate) Eligible(ilvl int) bool {
	return ilvl >= t.MinItemLevel && ilvl <= t.MaxItemLevel
}

// AffixKind distinguishes name-prefixing affixes from name-suffixing ones.
type AffixKind string

const (
	AffixPrefix AffixKind = "prefix"
	AffixSuffix AffixKind = "suffix"
)

// ItemAffix is a rolled stat modifier owned by its EquipmentItem.
type ItemAffix struct {
	Key       string    `json:"key"`
	Kind      AffixKind `json:"kind"`
	Name      string    `json:"name"`
	Stat      string    `json:"stat"`
	Magnitude float64   `json:"magnitude"`
	Tier      int       `json:"tier"`
}

// RolledStat is a resolved implicit stat on a generated item.
type RolledStat struct {
	Stat  string  `json:"stat"`
	Value float64 `json:"value"`
}

// EquipmentItem is a generated equipment instance, owned by whichever
// inventory slot holds it.
type EquipmentItem struct {
	ID           string       `json:"id"`
	TemplateName string       `json:"template"`
	DisplayName  string       `json:"display_name"`
	Slot         EquipSlot    `json:"slot"`
	Class        ItemClass    `json:"class"`
	ItemLevel    int          `json:"ilvl"`
	Rarity       Rarity       `json:"rarity"`
	Affixes      []ItemAffix  `json:"affixes,omitempty"`
	Implicits    []RolledStat `json:"implicits,omitempty"`
	Value        int          `json:"value"`
}

// String renders a short human-readable summary, used by the CLI and logs.
func (e *EquipmentItem) String() string {
	return fmt.Sprintf("%s [%s %s ilvl %d, %d affixes, value %d]",
		e.DisplayName, e.Rarity, e.Slot, e.ItemLevel, len(e.Affixes), e.Value)
}
