package transport

import (
	"net/http"
	"strconv"
	"strings"

	"handcrafted-haven/internal/catalog"
	"handcrafted-haven/internal/config"
	"handcrafted-haven/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogPageResponse is one page of the filtered catalog
type CatalogPageResponse struct {
	TotalCount int                   `json:"total_count"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
	Items      []catalog.ProductView `json:"items"`
}

// CatalogHandler serves the browsable, filterable product catalog
type CatalogHandler struct {
	catalog *catalog.Service
	cfg     config.CatalogConfig
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalog.Service, cfg config.CatalogConfig, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogService,
		cfg:     cfg,
		logger:  logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/", h.GetPage)
		r.Get("/categories", h.GetCategories)
		r.Get("/featured", h.GetFeatured)
	})
}

// GetPage answers GET /api/catalog?categories=&sellers=&price=&page=&page_size=
func (h *CatalogHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sel := catalog.FilterSelection{
		Category:     strings.TrimSpace(q.Get("categories")),
		PriceBracket: catalog.PriceBracket(q.Get("price")),
	}
	if raw := q.Get("sellers"); raw != "" {
		sellerID, err := uuid.Parse(raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "sellers must be a seller id")
			return
		}
		sel.SellerID = &sellerID
	}

	page, err := intParam(q.Get("page"), 1)
	if err != nil || page < 1 {
		middleware.RespondWithError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	pageSize, err := intParam(q.Get("page_size"), h.cfg.DefaultPageSize)
	if err != nil || pageSize < 1 {
		middleware.RespondWithError(w, http.StatusBadRequest, "page_size must be a positive integer")
		return
	}
	if h.cfg.MaxPageSize > 0 && pageSize > h.cfg.MaxPageSize {
		pageSize = h.cfg.MaxPageSize
	}

	result, err := h.catalog.Page(r.Context(), sel, pageSize, page)
	if err != nil {
		h.logger.Error("Catalog query failed",
			zap.String("category", sel.Category),
			zap.String("price", string(sel.PriceBracket)),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load catalog")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CatalogPageResponse{
		TotalCount: result.TotalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (result.TotalCount + pageSize - 1) / pageSize,
		Items:      result.Items,
	})
}

// GetCategories answers GET /api/catalog/categories
func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string][]string{"categories": categories})
}

// GetFeatured answers GET /api/catalog/featured
func (h *CatalogHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Featured(r.Context(), h.cfg.FeaturedCount)
	if err != nil {
		h.logger.Error("Failed to load featured products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load featured products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string][]catalog.ProductView{"items": items})
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
