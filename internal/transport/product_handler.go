package transport

import (
	"errors"
	"net/http"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/middleware"
	"handcrafted-haven/internal/repository"
	"handcrafted-haven/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description" validate:"required,max=500"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Image       string           `json:"image" validate:"omitempty,max=255"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
}

func (req ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Image:       req.Image,
		Category:    req.Category,
	}
}

type DescriptionRequest struct {
	Description string `json:"description" validate:"required,min=10,max=500"`
}

type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review string `json:"review" validate:"required,min=10,max=2000"`
}

// ProductHandler serves single products, their reviews and seller edits
type ProductHandler struct {
	productService service.ProductService
	reviewService  service.ReviewService
	logger         *zap.Logger
}

func NewProductHandler(productService service.ProductService, reviewService service.ReviewService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		reviewService:  reviewService,
		logger:         logger,
	}
}

// RegisterRoutes mounts /api/products. writeLimit wraps every mutating route.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, writeLimit func(http.Handler) http.Handler) {
	if writeLimit == nil {
		writeLimit = passthrough
	}

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/{id}", h.GetProduct)
		r.Get("/{id}/reviews", h.ListReviews)
		r.Get("/{id}/stats", h.GetStats)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware, writeLimit)
			r.Post("/{id}/reviews", h.PostReview)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole([]string{domain.RoleSeller}, h.logger))
				r.Post("/", h.CreateProduct)
				r.Put("/{id}", h.UpdateProduct)
				r.Patch("/{id}/description", h.UpdateDescription)
				r.Delete("/{id}", h.DeleteProduct)
			})
		})
	})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.productService.Get(r.Context(), productID)
	if err != nil {
		h.respondWithServiceError(w, err, "failed to load product")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, view)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req ProductRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	product, err := h.productService.Create(r.Context(), sellerID, req.input())
	if err != nil {
		h.respondWithServiceError(w, err, "failed to create product")
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}
	productID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	product, err := h.productService.Update(r.Context(), sellerID, productID, req.input())
	if err != nil {
		h.respondWithServiceError(w, err, "failed to update product")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}
	productID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req DescriptionRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	if err := h.productService.UpdateDescription(r.Context(), sellerID, productID, req.Description); err != nil {
		h.respondWithServiceError(w, err, "failed to update description")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "description updated"})
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}
	productID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(r.Context(), sellerID, productID); err != nil {
		h.respondWithServiceError(w, err, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", productID.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.List(r.Context(), productID)
	if err != nil {
		h.respondWithServiceError(w, err, "failed to load reviews")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, reviews)
}

func (h *ProductHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	stats, err := h.reviewService.Stats(r.Context(), productID)
	if err != nil {
		h.respondWithServiceError(w, err, "failed to load review stats")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *ProductHandler) PostReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	productID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req ReviewRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	review, err := h.reviewService.Post(r.Context(), userID, productID, req.Rating, req.Review)
	if err != nil {
		h.respondWithServiceError(w, err, "failed to post review")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, review)
}

func (h *ProductHandler) respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, service.ErrForbidden):
		middleware.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrPriceTooLarge),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrReviewTooShort):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
