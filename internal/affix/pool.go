package affix

import (
	"fmt"
	"sort"

	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/utils"
)

type poolKey struct {
	slot domain.EquipSlot
	kind domain.AffixKind
}

// Database holds affix definitions bucketed per (slot, kind) for rolling.
// It is immutable after construction and safe for concurrent use.
type Database struct {
	pools  map[poolKey][]*Definition
	byKey  map[string]*Definition
	counts map[domain.AffixKind]int
}

// NewDatabase builds a Database from a validated config.
func NewDatabase(config *Config) (*Database, error) {
	if config == nil || len(config.Affixes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoAffixesListed)
	}

	db := &Database{
		pools:  make(map[poolKey][]*Definition),
		byKey:  make(map[string]*Definition, len(config.Affixes)),
		counts: make(map[domain.AffixKind]int),
	}

	for i := range config.Affixes {
		def := &config.Affixes[i]
		db.byKey[def.Key] = def
		db.counts[def.Kind]++
		for _, s := range def.Slots {
			key := poolKey{slot: domain.EquipSlot(s), kind: def.Kind}
			db.pools[key] = append(db.pools[key], def)
		}
	}

	// Sort each pool by min level so eligibility scans can stop early.
	for key := range db.pools {
		pool := db.pools[key]
		sort.Slice(pool, func(a, b int) bool {
			if pool[a].MinItemLevel != pool[b].MinItemLevel {
				return pool[a].MinItemLevel < pool[b].MinItemLevel
			}
			return pool[a].Key < pool[b].Key
		})
	}

	return db, nil
}

// ByKey returns the definition registered under key.
func (db *Database) ByKey(key string) (*Definition, error) {
	def, ok := db.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAffixNotFound, key)
	}
	return def, nil
}

// Len returns the total number of definitions per kind.
func (db *Database) Len(kind domain.AffixKind) int {
	return db.counts[kind]
}

// All returns every definition sorted by key. Used by listing endpoints.
func (db *Database) All() []*Definition {
	defs := make([]*Definition, 0, len(db.byKey))
	for _, def := range db.byKey {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(a, b int) bool { return defs[a].Key < defs[b].Key })
	return defs
}

// Roll selects one eligible affix by weighted random pick and rolls its
// magnitude. Groups already present on the item are excluded so stat lines
// never stack. Returns domain.ErrAffixPoolExhausted when nothing is left
// to roll.
func (db *Database) Roll(slot domain.EquipSlot, kind domain.AffixKind, ilvl int, usedGroups map[string]bool, rnd func() float64) (domain.ItemAffix, error) {
	eligible, totalWeight := db.eligible(slot, kind, ilvl, usedGroups)
	if len(eligible) == 0 {
		return domain.ItemAffix{}, fmt.Errorf("%w: slot=%s kind=%s ilvl=%d", domain.ErrAffixPoolExhausted, slot, kind, ilvl)
	}

	def := selectWeighted(eligible, totalWeight, rnd())

	return domain.ItemAffix{
		Key:       def.Key,
		Kind:      def.Kind,
		Name:      def.Name,
		Stat:      def.Stat,
		Magnitude: rollMagnitude(def, ilvl, rnd()),
		Tier:      def.Tier,
	}, nil
}

// RollFixed resolves a template's fixed affix by key and rolls its magnitude.
func (db *Database) RollFixed(key string, ilvl int, rnd func() float64) (domain.ItemAffix, error) {
	def, err := db.ByKey(key)
	if err != nil {
		return domain.ItemAffix{}, err
	}

	return domain.ItemAffix{
		Key:       def.Key,
		Kind:      def.Kind,
		Name:      def.Name,
		Stat:      def.Stat,
		Magnitude: rollMagnitude(def, ilvl, rnd()),
		Tier:      def.Tier,
	}, nil
}

func (db *Database) eligible(slot domain.EquipSlot, kind domain.AffixKind, ilvl int, usedGroups map[string]bool) ([]*Definition, int) {
	pool := db.pools[poolKey{slot: slot, kind: kind}]

	var eligible []*Definition
	totalWeight := 0
	for _, def := range pool {
		if def.MinItemLevel > ilvl {
			break
		}
		if ilvl > def.MaxItemLevel {
			continue
		}
		if usedGroups[def.GroupKey()] {
			continue
		}
		eligible = append(eligible, def)
		totalWeight += def.Weight
	}
	return eligible, totalWeight
}

// selectWeighted picks a definition via binary search over cumulative weights.
func selectWeighted(eligible []*Definition, totalWeight int, roll float64) *Definition {
	cumulative := make([]int, len(eligible))
	sum := 0
	for i, def := range eligible {
		sum += def.Weight
		cumulative[i] = sum
	}

	target := int(roll * float64(totalWeight))
	if target >= totalWeight {
		target = totalWeight - 1
	}

	idx := sort.SearchInts(cumulative, target+1)
	return eligible[idx]
}

// rollMagnitude rolls a magnitude in the definition's range. The floor of
// the roll rises with item level progress through the affix's level band,
// so a given affix trends stronger on higher-level items.
func rollMagnitude(def *Definition, ilvl int, roll float64) float64 {
	progress := 0.0
	if def.MaxItemLevel > def.MinItemLevel {
		progress = float64(ilvl-def.MinItemLevel) / float64(def.MaxItemLevel-def.MinItemLevel)
		progress = utils.ClampFloat(progress, 0, 1)
	}

	low := def.MagnitudeMin + (def.MagnitudeMax-def.MagnitudeMin)*progress*0.5
	return low + (def.MagnitudeMax-low)*roll
}
