package handler

import (
	"net/http"
	"strconv"

	"github.com/tervalon/delveforge/internal/affix"
	"github.com/tervalon/delveforge/internal/catalog"
	"github.com/tervalon/delveforge/internal/domain"
)

// CatalogHandler exposes the loaded item catalog and affix database.
// Both are immutable after startup so the handlers read them directly.
type CatalogHandler struct {
	index   *catalog.Index
	affixes *affix.Database
}

// NewCatalogHandler creates a CatalogHandler
func NewCatalogHandler(index *catalog.Index, affixes *affix.Database) *CatalogHandler {
	return &CatalogHandler{index: index, affixes: affixes}
}

// TemplatesResponse lists item templates
type TemplatesResponse struct {
	Templates []*domain.BaseItemTemplate `json:"templates"`
	Count     int                        `json:"count"`
}

// HandleListTemplates handles GET /catalog/templates with optional slot and
// ilvl query filters. Filtering by ilvl requires a slot.
func (h *CatalogHandler) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	slotParam := GetOptionalQueryParam(r, "slot", "")
	ilvlParam := GetOptionalQueryParam(r, "ilvl", "")

	if slotParam == "" {
		templates := h.index.AllTemplates()
		respondJSON(w, http.StatusOK, TemplatesResponse{Templates: templates, Count: len(templates)})
		return
	}

	slot := domain.EquipSlot(slotParam)
	if !slot.IsValid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
		return
	}

	var templates []*domain.BaseItemTemplate
	if ilvlParam == "" {
		templates = h.index.SlotTemplates(slot)
	} else {
		ilvl, err := strconv.Atoi(ilvlParam)
		if err != nil || ilvl < 1 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidIlvlParam)
			return
		}
		templates = h.index.EligibleTemplates(slot, ilvl, true)
	}
	respondJSON(w, http.StatusOK, TemplatesResponse{Templates: templates, Count: len(templates)})
}

// AffixesResponse lists affix definitions
type AffixesResponse struct {
	Affixes []*affix.Definition `json:"affixes"`
	Count   int                 `json:"count"`
}

// HandleListAffixes handles GET /catalog/affixes with an optional kind filter
func (h *CatalogHandler) HandleListAffixes(w http.ResponseWriter, r *http.Request) {
	kindParam := GetOptionalQueryParam(r, "kind", "")

	defs := h.affixes.All()
	if kindParam != "" {
		kind := domain.AffixKind(kindParam)
		filtered := defs[:0:0]
		for _, def := range defs {
			if def.Kind == kind {
				filtered = append(filtered, def)
			}
		}
		defs = filtered
	}

	respondJSON(w, http.StatusOK, AffixesResponse{Affixes: defs, Count: len(defs)})
}
