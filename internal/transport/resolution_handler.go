package transport

import (
	"errors"
	"net/http"
	"strconv"

	"shelfmatch/internal/middleware"
	"shelfmatch/internal/repository"
	"shelfmatch/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResolveRequest is one raw platform listing in the wire format.
type ResolveRequest struct {
	Platform          string  `json:"platform" validate:"required"`
	PlatformProductID string  `json:"platform_product_id"`
	Brand             string  `json:"brand"`
	Name              string  `json:"name" validate:"required"`
	Quantity          string  `json:"quantity"`
	Category          string  `json:"category"`
	Price             float64 `json:"price" validate:"gte=0"`
}

// BatchResolveRequest wraps an ordered batch of listings.
type BatchResolveRequest struct {
	Listings []ResolveRequest `json:"listings" validate:"required,min=1,max=500,dive"`
}

// BatchResolveResponse reports per-listing outcomes in input order.
type BatchResolveResponse struct {
	Results []*service.ResolvedListing `json:"results"`
}

// CatalogListResponse is a paginated page of catalog entries.
type CatalogListResponse struct {
	Entries    interface{} `json:"entries"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// ResolutionHandler handles HTTP requests for listing resolution and
// catalog browsing.
type ResolutionHandler struct {
	service service.ResolutionService
	logger  *zap.Logger
}

// NewResolutionHandler creates a new ResolutionHandler
func NewResolutionHandler(svc service.ResolutionService, logger *zap.Logger) *ResolutionHandler {
	return &ResolutionHandler{
		service: svc,
		logger:  logger,
	}
}

// RegisterRoutes registers all resolution and catalog routes
func (h *ResolutionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/listings/resolve", h.Resolve)
		r.Post("/listings/resolve/batch", h.ResolveBatch)
		r.Get("/catalog", h.ListCatalog)
		r.Get("/catalog/{id}", h.GetEntry)
		r.Get("/catalog/{id}/listings", h.ListingsForEntry)
		r.Get("/stats", h.Stats)
	})
}

// Resolve handles a single listing resolution
func (h *ResolutionHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Resolve validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resolved, err := h.service.ResolveListing(r.Context(), toListingInput(req))
	if err != nil {
		h.logger.Error("Resolution failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to resolve listing")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, resolved)
}

// ResolveBatch handles an ordered batch of listings. Listings resolved
// before a failure stay resolved; the response reports how far the
// batch got.
func (h *ResolutionHandler) ResolveBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchResolveRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Batch validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inputs := make([]service.ListingInput, 0, len(req.Listings))
	for _, l := range req.Listings {
		inputs = append(inputs, toListingInput(l))
	}

	results, err := h.service.ResolveBatch(r.Context(), inputs)
	if err != nil {
		h.logger.Error("Batch resolution failed",
			zap.Error(err),
			zap.Int("resolved", len(results)),
			zap.Int("submitted", len(inputs)),
		)
		middleware.RespondWithErrorDetails(w, http.StatusInternalServerError, "batch resolution failed", map[string]interface{}{
			"resolved":  len(results),
			"submitted": len(inputs),
		})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, BatchResolveResponse{Results: results})
}

// GetEntry returns one catalog entry by id
func (h *ResolutionHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid catalog entry id")
		return
	}

	entry, err := h.service.GetEntry(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "catalog entry not found")
			return
		}

		h.logger.Error("Failed to fetch catalog entry", zap.Error(err), zap.String("id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch catalog entry")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, entry)
}

// ListCatalog returns a paginated catalog page, optionally filtered by
// canonical brand.
func (h *ResolutionHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	brand := r.URL.Query().Get("brand")

	entries, total, err := h.service.ListEntries(r.Context(), brand, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to list catalog", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list catalog")
		return
	}

	totalPages := (total + pageSize - 1) / pageSize

	middleware.RespondWithJSON(w, http.StatusOK, CatalogListResponse{
		Entries:    entries,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// ListingsForEntry returns all raw listings resolved to one entry
func (h *ResolutionHandler) ListingsForEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid catalog entry id")
		return
	}

	if _, err := h.service.GetEntry(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "catalog entry not found")
			return
		}

		h.logger.Error("Failed to fetch catalog entry", zap.Error(err), zap.String("id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch catalog entry")
		return
	}

	listings, err := h.service.ListingsForEntry(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list listings", zap.Error(err), zap.String("id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list listings")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, listings)
}

// Stats returns the engine's resolution counters
func (h *ResolutionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.service.Stats())
}

func toListingInput(req ResolveRequest) service.ListingInput {
	return service.ListingInput{
		Platform:          req.Platform,
		PlatformProductID: req.PlatformProductID,
		Brand:             req.Brand,
		Name:              req.Name,
		Quantity:          req.Quantity,
		Category:          req.Category,
		Price:             req.Price,
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
