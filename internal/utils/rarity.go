package utils

import (
	"github.com/tervalon/delveforge/internal/domain"
)

// Value multipliers per rarity tier
const (
	MultNormal = 1.0
	MultMagic  = 1.5
	MultRare   = 3.0
	MultUnique = 6.0
	MultSet    = 8.0
)

// GetRarityMultiplier returns the value multiplier for a rarity tier.
// Unknown tiers are treated as NORMAL.
func GetRarityMultiplier(r domain.Rarity) float64 {
	switch r {
	case domain.RarityMagic:
		return MultMagic
	case domain.RarityRare:
		return MultRare
	case domain.RarityUnique:
		return MultUnique
	case domain.RaritySet:
		return MultSet
	default:
		return MultNormal
	}
}
