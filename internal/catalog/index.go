package catalog

import (
	"fmt"
	"sort"

	"github.com/tervalon/delveforge/internal/domain"
)

// Index is the read-only runtime view of the base item catalog, built once
// at startup. Templates are bucketed per slot and sorted by min item level
// so eligibility filtering is a scan over a presorted slice.
type Index struct {
	bySlot map[domain.EquipSlot][]*domain.BaseItemTemplate
	byName map[string]*domain.BaseItemTemplate
}

// NewIndex builds an Index from a validated config.
func NewIndex(config *Config) (*Index, error) {
	if config == nil || len(config.Templates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoTemplatesDefined)
	}

	idx := &Index{
		bySlot: make(map[domain.EquipSlot][]*domain.BaseItemTemplate),
		byName: make(map[string]*domain.BaseItemTemplate, len(config.Templates)),
	}

	for i := range config.Templates {
		tmpl := &config.Templates[i]
		idx.bySlot[tmpl.Slot] = append(idx.bySlot[tmpl.Slot], tmpl)
		idx.byName[tmpl.InternalName] = tmpl
	}

	for slot := range idx.bySlot {
		templates := idx.bySlot[slot]
		sort.Slice(templates, func(a, b int) bool {
			if templates[a].MinItemLevel != templates[b].MinItemLevel {
				return templates[a].MinItemLevel < templates[b].MinItemLevel
			}
			return templates[a].InternalName < templates[b].InternalName
		})
	}

	return idx, nil
}

// TemplateByName returns the template with the given internal name.
func (idx *Index) TemplateByName(name string) (*domain.BaseItemTemplate, error) {
	tmpl, ok := idx.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, name)
	}
	return tmpl, nil
}

// EligibleTemplates returns templates for the slot whose level band contains
// ilvl. Unique-only templates are excluded unless includeUnique is set.
func (idx *Index) EligibleTemplates(slot domain.EquipSlot, ilvl int, includeUnique bool) []*domain.BaseItemTemplate {
	var eligible []*domain.BaseItemTemplate
	for _, tmpl := range idx.bySlot[slot] {
		if tmpl.MinItemLevel > ilvl {
			// Sorted by min level: nothing later can match.
			break
		}
		if !tmpl.Eligible(ilvl) {
			continue
		}
		if tmpl.UniqueRarity != "" && !includeUnique {
			continue
		}
		eligible = append(eligible, tmpl)
	}
	return eligible
}

// UniqueTemplates returns unique/set templates for the slot eligible at ilvl
// whose declared rarity matches.
func (idx *Index) UniqueTemplates(slot domain.EquipSlot, ilvl int, rarity domain.Rarity) []*domain.BaseItemTemplate {
	var eligible []*domain.BaseItemTemplate
	for _, tmpl := range idx.bySlot[slot] {
		if tmpl.MinItemLevel > ilvl {
			break
		}
		if tmpl.Eligible(ilvl) && tmpl.UniqueRarity == rarity {
			eligible = append(eligible, tmpl)
		}
	}
	return eligible
}

// SlotTemplates returns every template for the slot regardless of level.
func (idx *Index) SlotTemplates(slot domain.EquipSlot) []*domain.BaseItemTemplate {
	return idx.bySlot[slot]
}

// AllTemplates returns every template grouped by slot order. Used by
// listing endpoints.
func (idx *Index) AllTemplates() []*domain.BaseItemTemplate {
	templates := make([]*domain.BaseItemTemplate, 0, len(idx.byName))
	for _, slot := range domain.AllEquipSlots {
		templates = append(templates, idx.bySlot[slot]...)
	}
	return templates
}

// Slots returns every slot with at least one template.
func (idx *Index) Slots() []domain.EquipSlot {
	slots := make([]domain.EquipSlot, 0, len(idx.bySlot))
	for _, slot := range domain.AllEquipSlots {
		if len(idx.bySlot[slot]) > 0 {
			slots = append(slots, slot)
		}
	}
	return slots
}

// Len returns the total number of templates in the index.
func (idx *Index) Len() int {
	return len(idx.byName)
}
