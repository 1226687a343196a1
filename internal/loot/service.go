package loot

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tervalon/delveforge/internal/affix"
	"github.com/tervalon/delveforge/internal/catalog"
	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/event"
	"github.com/tervalon/delveforge/internal/logger"
	"github.com/tervalon/delveforge/internal/utils"
)

// Request describes one generation roll.
type Request struct {
	// Slot restricts generation to one equip slot. Empty means a uniform
	// random slot among those with templates.
	Slot domain.EquipSlot

	// ItemLevel drives template and affix eligibility.
	ItemLevel int

	// MagicFind boosts rare+ chances with diminishing returns.
	MagicFind float64

	// ForceRarity skips the rarity roll entirely when set. Used by the
	// CLI and by tests.
	ForceRarity domain.Rarity
}

// Service generates equipment items.
type Service interface {
	Generate(ctx context.Context, req Request) (*domain.EquipmentItem, error)
	GenerateBatch(ctx context.Context, req Request, count int) ([]*domain.EquipmentItem, error)
}

type service struct {
	index    *catalog.Index
	affixes  *affix.Database
	eventBus event.Bus
	rnd      func() float64
}

// NewService creates a Service backed by the global random source.
func NewService(index *catalog.Index, affixes *affix.Database, eventBus event.Bus) Service {
	return NewServiceWithRand(index, affixes, eventBus, utils.RandomFloat)
}

// NewServiceWithRand creates a Service with an injected random source.
// Deterministic sources make generation reproducible for tests and for
// seeded map population.
func NewServiceWithRand(index *catalog.Index, affixes *affix.Database, eventBus event.Bus, rnd func() float64) Service {
	return &service{
		index:    index,
		affixes:  affixes,
		eventBus: eventBus,
		rnd:      rnd,
	}
}

// Generate rolls one item: rarity first, then a weighted template pick,
// then implicits and affixes, then naming and value.
func (s *service) Generate(ctx context.Context, req Request) (*domain.EquipmentItem, error) {
	log := logger.FromContext(ctx)

	if err := s.validateRequest(&req); err != nil {
		return nil, err
	}

	slot := req.Slot
	if slot == "" {
		slot = s.randomSlot()
	}

	rarity := req.ForceRarity
	if rarity == "" {
		rarity = s.rollRarity(req.MagicFind)
	}

	tmpl, rarity, err := s.selectTemplate(ctx, slot, req.ItemLevel, rarity)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgTemplateSelection, err)
	}

	item := &domain.EquipmentItem{
		ID:           uuid.NewString(),
		TemplateName: tmpl.InternalName,
		DisplayName:  tmpl.DisplayName,
		Slot:         slot,
		Class:        tmpl.Class,
		ItemLevel:    req.ItemLevel,
		Rarity:       rarity,
		Implicits:    s.rollImplicits(tmpl),
	}

	if err := s.rollAffixes(ctx, item, tmpl); err != nil {
		return nil, err
	}

	item.DisplayName = s.itemName(tmpl, item)
	item.Value = itemValue(tmpl, item)

	log.Debug(LogMsgItemGenerated, "id", item.ID, "template", item.TemplateName, "rarity", item.Rarity, "ilvl", item.ItemLevel)

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, event.NewLootGeneratedEvent(item)); err != nil {
			log.Warn(LogMsgEventPublishFailed, "error", err)
		}
	}

	return item, nil
}

// GenerateBatch rolls count items with the same request parameters. Rolls
// that fail template selection are skipped rather than failing the batch.
func (s *service) GenerateBatch(ctx context.Context, req Request, count int) ([]*domain.EquipmentItem, error) {
	log := logger.FromContext(ctx)

	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", domain.ErrInvalidInput, count)
	}

	items := make([]*domain.EquipmentItem, 0, count)
	for i := 0; i < count; i++ {
		item, err := s.Generate(ctx, req)
		if err != nil {
			log.Warn(LogMsgBatchItemRollSkipped, "error", err)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items generated", domain.ErrNoEligibleTemplates)
	}

	log.Debug(LogMsgBatchGenerated, "requested", count, "generated", len(items))
	return items, nil
}

func (s *service) validateRequest(req *Request) error {
	if req.ItemLevel < MinItemLevel || req.ItemLevel > MaxItemLevel {
		return fmt.Errorf("%w: "+ErrMsgItemLevelOutOfRange, domain.ErrInvalidInput, req.ItemLevel, MinItemLevel, MaxItemLevel)
	}

	if req.MagicFind < 0 {
		return fmt.Errorf("%w: "+ErrMsgNegativeMagicFind, domain.ErrInvalidInput, req.MagicFind)
	}

	if req.Slot != "" && !req.Slot.IsValid() {
		return fmt.Errorf("%w: "+ErrMsgUnknownSlot, domain.ErrInvalidInput, req.Slot)
	}

	return nil
}

func (s *service) randomSlot() domain.EquipSlot {
	slots := s.index.Slots()
	idx := int(s.rnd() * float64(len(slots)))
	if idx >= len(slots) {
		idx = len(slots) - 1
	}
	return slots[idx]
}

// rollRarity checks the roll against cumulative chances ordered rarest
// first. Magic find multiplies each chance; a separate 1% critical roll
// upgrades the result one tier.
func (s *service) rollRarity(magicFind float64) domain.Rarity {
	boost := 1.0 + MagicFindMaxBonus*utils.DiminishingReturns(magicFind, MagicFindScale)

	roll := s.rnd()
	rarity := domain.RarityNormal

	cumulative := 0.0
	for _, band := range []struct {
		chance float64
		tier   domain.Rarity
	}{
		{ChanceSet, domain.RaritySet},
		{ChanceUnique, domain.RarityUnique},
		{ChanceRare, domain.RarityRare},
		{ChanceMagic, domain.RarityMagic},
	} {
		cumulative += band.chance * boost
		if roll < cumulative {
			rarity = band.tier
			break
		}
	}

	if s.rnd() < CritUpgradeChance {
		rarity = rarity.Next()
	}

	return rarity
}

// selectTemplate picks a template by cumulative weight. UNIQUE and SET pull
// from the dedicated unique pool and fall back to RARE on an open pool when
// no unique template fits the slot and level.
func (s *service) selectTemplate(ctx context.Context, slot domain.EquipSlot, ilvl int, rarity domain.Rarity) (*domain.BaseItemTemplate, domain.Rarity, error) {
	if rarity == domain.RarityUnique || rarity == domain.RaritySet {
		pool := s.index.UniqueTemplates(slot, ilvl, rarity)
		if len(pool) > 0 {
			return s.pickWeighted(pool), rarity, nil
		}

		logger.FromContext(ctx).Debug(LogMsgUniquePoolEmpty, "slot", slot, "ilvl", ilvl, "rolled", rarity)
		rarity = domain.RarityRare
	}

	pool := s.index.EligibleTemplates(slot, ilvl, false)
	if len(pool) == 0 {
		return nil, rarity, fmt.Errorf("%w: slot=%s ilvl=%d", domain.ErrNoEligibleTemplates, slot, ilvl)
	}

	return s.pickWeighted(pool), rarity, nil
}

func (s *service) pickWeighted(pool []*domain.BaseItemTemplate) *domain.BaseItemTemplate {
	cumulative := make([]int, len(pool))
	sum := 0
	for i, tmpl := range pool {
		sum += tmpl.Weight
		cumulative[i] = sum
	}

	target := int(s.rnd() * float64(sum))
	if target >= sum {
		target = sum - 1
	}

	idx := sort.SearchInts(cumulative, target+1)
	return pool[idx]
}

func (s *service) rollImplicits(tmpl *domain.BaseItemTemplate) []domain.RolledStat {
	if len(tmpl.Implicits) == 0 {
		return nil
	}

	implicits := make([]domain.RolledStat, len(tmpl.Implicits))
	for i, imp := range tmpl.Implicits {
		implicits[i] = domain.RolledStat{
			Stat:  imp.Stat,
			Value: imp.Min + (imp.Max-imp.Min)*s.rnd(),
		}
	}
	return implicits
}

// rollAffixes fills the item's affix list. UNIQUE and SET resolve the
// template's fixed affix keys; MAGIC and RARE roll from the open pool with
// group exclusion. RARE guarantees at least one prefix and one suffix.
func (s *service) rollAffixes(ctx context.Context, item *domain.EquipmentItem, tmpl *domain.BaseItemTemplate) error {
	switch item.Rarity {
	case domain.RarityUnique, domain.RaritySet:
		return s.rollFixedAffixes(item, tmpl)
	case domain.RarityMagic, domain.RarityRare:
		return s.rollOpenAffixes(ctx, item)
	default:
		return nil
	}
}

func (s *service) rollFixedAffixes(item *domain.EquipmentItem, tmpl *domain.BaseItemTemplate) error {
	for _, key := range tmpl.FixedAffixes {
		rolled, err := s.affixes.RollFixed(key, item.ItemLevel, s.rnd)
		if err != nil {
			return fmt.Errorf(ErrMsgFixedAffixFailed, key, tmpl.InternalName, err)
		}
		item.Affixes = append(item.Affixes, rolled)
	}
	return nil
}

func (s *service) rollOpenAffixes(ctx context.Context, item *domain.EquipmentItem) error {
	minCount, maxCount := item.Rarity.AffixBounds()
	count := minCount + int(s.rnd()*float64(maxCount-minCount+1))
	if count > maxCount {
		count = maxCount
	}

	usedGroups := make(map[string]bool, count)

	kinds := s.planKinds(item.Rarity, count)
	for _, kind := range kinds {
		rolled, err := s.rollOneAffix(item.Slot, kind, item.ItemLevel, usedGroups)
		if err != nil {
			// Pool ran dry. Accept a short item if the minimum count
			// was reached, otherwise surface the error.
			if len(item.Affixes) >= minCount {
				logger.FromContext(ctx).Debug(LogMsgAffixPoolExhausted, "slot", item.Slot, "have", len(item.Affixes), "wanted", count)
				return nil
			}
			return fmt.Errorf(ErrMsgAffixRollFailed, err)
		}

		usedGroups[groupOf(s.affixes, rolled.Key)] = true
		item.Affixes = append(item.Affixes, rolled)
	}

	return nil
}

// planKinds decides the prefix/suffix split up front. MAGIC alternates so a
// two-affix roll is one of each; RARE seeds one of each then alternates the
// remaining slots.
func (s *service) planKinds(rarity domain.Rarity, count int) []domain.AffixKind {
	kinds := make([]domain.AffixKind, 0, count)

	first := domain.AffixPrefix
	if s.rnd() < 0.5 {
		first = domain.AffixSuffix
	}

	for i := 0; i < count; i++ {
		if i%2 == 0 {
			kinds = append(kinds, first)
		} else {
			kinds = append(kinds, other(first))
		}
	}

	// RARE must carry at least one of each kind.
	if rarity == domain.RarityRare && count >= 2 {
		kinds[1] = other(kinds[0])
	}

	return kinds
}

// rollOneAffix tries the preferred kind and falls back to the other when
// that pool is exhausted.
func (s *service) rollOneAffix(slot domain.EquipSlot, kind domain.AffixKind, ilvl int, usedGroups map[string]bool) (domain.ItemAffix, error) {
	rolled, err := s.affixes.Roll(slot, kind, ilvl, usedGroups, s.rnd)
	if err == nil {
		return rolled, nil
	}

	return s.affixes.Roll(slot, other(kind), ilvl, usedGroups, s.rnd)
}

func other(kind domain.AffixKind) domain.AffixKind {
	if kind == domain.AffixPrefix {
		return domain.AffixSuffix
	}
	return domain.AffixPrefix
}

func groupOf(db *affix.Database, key string) string {
	def, err := db.ByKey(key)
	if err != nil {
		return key
	}
	return def.GroupKey()
}

// itemName applies the naming convention for the rarity: MAGIC wraps the
// base name in the first prefix and suffix names, RARE gets a generated
// two-word name from the word tables, UNIQUE and SET keep the template's
// display name.
func (s *service) itemName(tmpl *domain.BaseItemTemplate, item *domain.EquipmentItem) string {
	switch item.Rarity {
	case domain.RarityMagic:
		return magicName(tmpl, item)
	case domain.RarityRare:
		return s.rareName(tmpl.DisplayName)
	default:
		return tmpl.DisplayName
	}
}

func magicName(tmpl *domain.BaseItemTemplate, item *domain.EquipmentItem) string {
	var prefix, suffix string
	for _, a := range item.Affixes {
		if a.Kind == domain.AffixPrefix && prefix == "" {
			prefix = a.Name
		}
		if a.Kind == domain.AffixSuffix && suffix == "" {
			suffix = a.Name
		}
	}

	parts := make([]string, 0, 3)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, tmpl.DisplayName)
	if suffix != "" {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, " ")
}

func (s *service) rareName(base string) string {
	first := RareNameFirstWords[s.tableIndex(len(RareNameFirstWords))]
	second := RareNameSecondWords[s.tableIndex(len(RareNameSecondWords))]
	return first + " " + second + " " + base
}

func (s *service) tableIndex(n int) int {
	idx := int(s.rnd() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// itemValue computes gold value from the base value, the rarity multiplier
// and the total rolled affix magnitude. Every item is worth at least one
// gold.
func itemValue(tmpl *domain.BaseItemTemplate, item *domain.EquipmentItem) int {
	value := float64(tmpl.BaseValue) * utils.GetRarityMultiplier(item.Rarity)

	for _, a := range item.Affixes {
		value += a.Magnitude * AffixValueFactor
	}

	rounded := int(math.Round(value))
	if rounded < MinItemValue {
		return MinItemValue
	}
	return rounded
}
