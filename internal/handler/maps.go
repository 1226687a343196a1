package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/dungeon"
	"github.com/tervalon/delveforge/internal/logger"
	"github.com/tervalon/delveforge/internal/mapparser"
	"github.com/tervalon/delveforge/internal/populate"
)

// MapHandler exposes map parsing, inspection and population over HTTP
type MapHandler struct {
	service dungeon.Service
}

// NewMapHandler creates a MapHandler
func NewMapHandler(service dungeon.Service) *MapHandler {
	return &MapHandler{service: service}
}

// HandleUploadMap handles POST /maps. The body is multipart form data with
// the bitmap in the "image" field and the map name in the "name" field.
// Optional "threshold" and "min_room_area" fields tune the parser.
func (h *MapHandler) HandleUploadMap(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		log.Error("Failed to parse multipart form", "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, ErrMsgMapNameRequired)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgMissingMapImage)
		return
	}
	defer file.Close()

	var opts mapparser.Options
	if v := r.FormValue("threshold"); v != "" {
		if opts.LuminanceThreshold, err = strconv.Atoi(v); err != nil {
			http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
			return
		}
	}
	if v := r.FormValue("min_room_area"); v != "" {
		if opts.MinRoomArea, err = strconv.Atoi(v); err != nil {
			http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
			return
		}
	}

	m, err := h.service.Parse(r.Context(), name, file, opts)
	if err != nil {
		log.Error("Failed to parse map", "name", name, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusCreated, m)
}

// HandleGetMap handles GET /maps/{mapID}
func (h *MapHandler) HandleGetMap(w http.ResponseWriter, r *http.Request) {
	mapID := chi.URLParam(r, "mapID")

	m, err := h.service.GetMap(r.Context(), mapID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get map", "map_id", mapID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, m)
}

// HandleListMaps handles GET /maps
func (h *MapHandler) HandleListMaps(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListMaps(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list maps", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgListMapsFailed)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"maps":  summaries,
		"count": len(summaries),
	})
}

// HandleDeleteMap handles DELETE /maps/{mapID}
func (h *MapHandler) HandleDeleteMap(w http.ResponseWriter, r *http.Request) {
	mapID := chi.URLParam(r, "mapID")

	if err := h.service.DeleteMap(r.Context(), mapID); err != nil {
		logger.FromContext(r.Context()).Error("Failed to delete map", "map_id", mapID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgMapDeletedSuccess})
}

// PopulateMapRequest tunes a population pass. All fields are optional.
type PopulateMapRequest struct {
	MonsterDensityDivisor int  `json:"monster_density_divisor" validate:"min=0"`
	PropDensityDivisor    int  `json:"prop_density_divisor" validate:"min=0"`
	SkipClusters          bool `json:"skip_clusters"`
}

// HandlePopulateMap handles POST /maps/{mapID}/populate. With ?async=true
// the job is queued on the worker pool and the response is 202.
func (h *MapHandler) HandlePopulateMap(w http.ResponseWriter, r *http.Request) {
	mapID := chi.URLParam(r, "mapID")
	log := logger.FromContext(r.Context())

	var req PopulateMapRequest
	if r.ContentLength > 0 {
		if err := DecodeAndValidateRequest(r, w, &req, "Populate map"); err != nil {
			return
		}
	}

	opts := populate.Options{
		MonsterDensityDivisor: req.MonsterDensityDivisor,
		PropDensityDivisor:    req.PropDensityDivisor,
		SkipClusters:          req.SkipClusters,
	}

	if GetOptionalQueryParam(r, "async", "false") == "true" {
		if err := h.service.EnqueuePopulate(r.Context(), mapID, opts); err != nil {
			log.Error("Failed to enqueue populate job", "map_id", mapID, "error", err)
			if errors.Is(err, domain.ErrQueueFull) {
				respondError(w, http.StatusServiceUnavailable, ErrMsgPopulateQueueIsFull)
				return
			}
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}
		respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgPopulateQueuedSuccess})
		return
	}

	result, err := h.service.Populate(r.Context(), mapID, opts)
	if err != nil {
		log.Error("Failed to populate map", "map_id", mapID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
