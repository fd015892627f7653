package transport

import (
	"errors"
	"net/http"

	"handcrafted-haven/internal/catalog"
	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/middleware"
	"handcrafted-haven/internal/repository"
	"handcrafted-haven/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SellerBasicsRequest struct {
	FirstName   string `json:"firstname" validate:"required,max=100"`
	LastName    string `json:"lastname" validate:"required,max=100"`
	Category    string `json:"category" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	ImageURL    string `json:"image_url" validate:"omitempty,max=255"`
}

type StoryRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// SellerHandler serves seller storefronts, their products and stories
type SellerHandler struct {
	sellerService service.SellerService
	catalog       *catalog.Service
	logger        *zap.Logger
}

func NewSellerHandler(sellerService service.SellerService, catalogService *catalog.Service, logger *zap.Logger) *SellerHandler {
	return &SellerHandler{
		sellerService: sellerService,
		catalog:       catalogService,
		logger:        logger,
	}
}

func (h *SellerHandler) RegisterRoutes(r chi.Router, authMiddleware, writeLimit func(http.Handler) http.Handler) {
	if writeLimit == nil {
		writeLimit = passthrough
	}

	r.Route("/api/sellers", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware, middleware.RequireRole([]string{domain.RoleSeller}, h.logger))
			r.Get("/me", h.GetOwnProfile)
			r.With(writeLimit).Put("/me", h.UpdateBasics)
			r.With(writeLimit).Post("/me/stories", h.PostStory)
		})

		r.Get("/", h.ListSellers)
		r.Get("/{id}", h.GetSeller)
		r.Get("/{id}/products", h.ListProducts)
		r.Get("/{id}/stories", h.ListStories)
	})
}

func (h *SellerHandler) ListSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.sellerService.List(r.Context())
	if err != nil {
		h.respondWithServiceError(w, err, "failed to load sellers")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, sellers)
}

func (h *SellerHandler) GetSeller(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	h.writeProfile(w, r, sellerID)
}

func (h *SellerHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}
	h.writeProfile(w, r, sellerID)
}

func (h *SellerHandler) writeProfile(w http.ResponseWriter, r *http.Request, sellerID uuid.UUID) {
	seller, err := h.sellerService.Get(r.Context(), sellerID)
	if err != nil {
		h.respondWithServiceError(w, err, "failed to load seller")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, seller)
}

// ListProducts returns every product of one seller, ordered by name
func (h *SellerHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	products, err := h.catalog.List(r.Context(), catalog.FilterSelection{SellerID: &sellerID})
	if err != nil {
		h.respondWithServiceError(w, err, "failed to load seller products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *SellerHandler) ListStories(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	stories, err := h.sellerService.Stories(r.Context(), sellerID)
	if err != nil {
		h.respondWithServiceError(w, err, "failed to load stories")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, stories)
}

func (h *SellerHandler) UpdateBasics(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req SellerBasicsRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	profile, err := h.sellerService.UpdateBasics(r.Context(), domain.SellerBasics{
		UserID:      sellerID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Category:    req.Category,
		Phone:       req.Phone,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.respondWithServiceError(w, err, "failed to update seller profile")
		return
	}

	h.logger.Info("Seller profile updated", zap.String("seller_id", sellerID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, profile)
}

func (h *SellerHandler) PostStory(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req StoryRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	story, err := h.sellerService.PostStory(r.Context(), sellerID, req.Content)
	if err != nil {
		h.respondWithServiceError(w, err, "failed to post story")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, story)
}

func (h *SellerHandler) respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrSellerNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "seller not found")
	case errors.Is(err, service.ErrStoryTooShort):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
