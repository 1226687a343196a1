package handler

import (
	"net/http"
	"strings"

	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/logger"
	"github.com/tervalon/delveforge/internal/loot"
)

// LootHandler exposes loot generation over HTTP
type LootHandler struct {
	service loot.Service
}

// NewLootHandler creates a LootHandler
func NewLootHandler(service loot.Service) *LootHandler {
	return &LootHandler{service: service}
}

// GenerateLootRequest represents the expected body of the generate request.
// Slot and force_rarity are optional; count defaults to 1.
type GenerateLootRequest struct {
	Slot        string  `json:"slot" validate:"equipslot"`
	ItemLevel   int     `json:"item_level" validate:"required,min=1,max=100"`
	MagicFind   float64 `json:"magic_find" validate:"min=0"`
	ForceRarity string  `json:"force_rarity" validate:"rarity"`
	Count       int     `json:"count" validate:"min=0,max=100"`
}

// GenerateLootResponse carries the generated items
type GenerateLootResponse struct {
	Items []*domain.EquipmentItem `json:"items"`
}

// HandleGenerateLoot handles POST /loot/generate
func (h *LootHandler) HandleGenerateLoot(w http.ResponseWriter, r *http.Request) {
	var req GenerateLootRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Generate loot"); err != nil {
		return
	}

	count := req.Count
	if count == 0 {
		count = 1
	}

	lootReq := loot.Request{
		Slot:        domain.EquipSlot(req.Slot),
		ItemLevel:   req.ItemLevel,
		MagicFind:   req.MagicFind,
		ForceRarity: domain.Rarity(strings.ToUpper(req.ForceRarity)),
	}

	items, err := h.service.GenerateBatch(r.Context(), lootReq, count)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to generate loot", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, GenerateLootResponse{Items: items})
}
