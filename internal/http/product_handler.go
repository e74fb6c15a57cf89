package api

import (
	"encoding/json"
	"net/http"

	"launchboard/internal/domain/product"
	"launchboard/internal/platform/apperr"
)

type submitProductRequest struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	WebsiteURL  string   `json:"website_url"`
	Tags        []string `json:"tags"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// @Summary     Submit a product
// @Tags        products
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      submitProductRequest  true  "Product fields"
// @Success     201      {object}  product.Product
// @Failure     400      {object}  map[string]string  "validation failure"
// @Failure     401      {object}  map[string]string  "unauthorized"
// @Failure     409      {object}  map[string]string  "slug taken"
// @Router      /api/v1/products [post]
func (h *Handler) handleSubmitProduct(w http.ResponseWriter, r *http.Request) {
	var req submitProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	p := &product.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Tagline:     req.Tagline,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
		Tags:        req.Tags,
	}

	if err := h.productSvc.Submit(r.Context(), p, identityFromCtx(r)); err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// @Summary     All products sorted by votes
// @Tags        products
// @Produce     json
// @Success     200  {array}   product.Product
// @Failure     500  {object}  map[string]string  "server error"
// @Router      /api/v1/products [get]
func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.AllByVotes(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// @Summary     Featured products
// @Tags        products
// @Produce     json
// @Success     200  {array}  product.Product
// @Router      /api/v1/products/featured [get]
func (h *Handler) handleFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.Featured(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// @Summary     Products launched in the last seven days
// @Tags        products
// @Produce     json
// @Success     200  {array}  product.Product
// @Router      /api/v1/products/recent [get]
func (h *Handler) handleRecentProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.RecentlyLaunched(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// @Summary     Product detail by id
// @Tags        products
// @Produce     json
// @Param       id  path      string  true  "Product ID"
// @Success     200  {object}  map[string]any
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/products/{id} [get]
func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid product id", err))
		return
	}

	p, err := h.productSvc.GetByID(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.writeProductDetail(w, r, p)
}

// @Summary     Product detail by slug
// @Tags        products
// @Produce     json
// @Param       slug  path      string  true  "Product slug"
// @Success     200   {object}  map[string]any
// @Failure     404   {object}  map[string]string  "not found"
// @Router      /api/v1/products/slug/{slug} [get]
func (h *Handler) handleGetProductBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.productSvc.GetBySlug(r.Context(), slugParam(r))
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.writeProductDetail(w, r, p)
}

func (h *Handler) writeProductDetail(w http.ResponseWriter, r *http.Request, p *product.Product) {
	hasVoted := false
	if id := identityFromCtx(r); id.UserID != 0 {
		var err error
		hasVoted, err = h.voteSvc.HasVoted(r.Context(), p.ID, id.UserID)
		if err != nil {
			errorResponse(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product":   p,
		"has_voted": hasVoted,
	})
}

// @Summary     Update product status
// @Tags        products
// @Security    BearerAuth
// @Accept      json
// @Param       id       path      string               true  "Product ID"
// @Param       request  body      updateStatusRequest  true  "New status"
// @Success     204
// @Failure     400      {object}  map[string]string  "invalid status"
// @Failure     403      {object}  map[string]string  "forbidden"
// @Failure     404      {object}  map[string]string  "not found"
// @Router      /api/v1/products/{id}/status [patch]
func (h *Handler) handleUpdateProductStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid product id", err))
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	if err := h.productSvc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		errorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
