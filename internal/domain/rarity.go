package domain

// Rarity is the tier of a generated item. It determines affix count and the
// naming convention applied to the finished item.
type Rarity string

const (
	RarityNormal Rarity = "NORMAL"
	RarityMagic  Rarity = "MAGIC"
	RarityRare   Rarity = "RARE"
	RarityUnique Rarity = "UNIQUE"
	RaritySet    Rarity = "SET"
)

// AffixBounds returns the inclusive [min, max] random affix count for the
// rarity. UNIQUE and SET return (0, 0) because their affixes are fixed by
// the template, not rolled from the open pool.
func (r Rarity) AffixBounds() (int, int) {
	switch r {
	case RarityMagic:
		return 1, 2
	case RarityRare:
		return 3, 6
	default:
		return 0, 0
	}
}

// rank orders rarities from most common to rarest for upgrade logic.
func (r Rarity) rank() int {
	switch r {
	case RarityNormal:
		return 0
	case RarityMagic:
		return 1
	case RarityRare:
		return 2
	case RarityUnique:
		return 3
	case RaritySet:
		return 4
	default:
		return 0
	}
}

// Next returns the rarity one tier up. SET has no upgrade.
func (r Rarity) Next() Rarity {
	switch r {
	case RarityNormal:
		return RarityMagic
	case RarityMagic:
		return RarityRare
	case RarityRare:
		return RarityUnique
	case RarityUnique:
		return RaritySet
	default:
		return r
	}
}

// IsValid reports whether the rarity is one of the known tiers.
func (r Rarity) IsValid() bool {
	switch r {
	case RarityNormal, RarityMagic, RarityRare, RarityUnique, RaritySet:
		return true
	}
	return false
}

// AtLeast reports whether r is the same tier or rarer than other.
func (r Rarity) AtLeast(other Rarity) bool {
	return r.rank() >= other.rank()
}
