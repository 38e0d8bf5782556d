package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/mattertouch/storefront/app/carousel"
	"github.com/mattertouch/storefront/app/repositories"
	"github.com/mattertouch/storefront/app/services"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepositoryImpl
	catalogSvc  *services.CatalogService
	validator   *validator.Validate
}

func NewProductHandler(r *render.Render, productRepo repositories.ProductRepositoryImpl, catalogSvc *services.CatalogService, validator *validator.Validate) *ProductHandler {
	return &ProductHandler{
		render:      r,
		productRepo: productRepo,
		catalogSvc:  catalogSvc,
		validator:   validator,
	}
}

// List returns all products, or the products of one collection when
// ?collection={slug} is given. An unknown slug yields an empty array.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("collection")

	var err error
	var products interface{}
	if slug != "" {
		products, err = h.productRepo.GetByCollectionSlug(r.Context(), slug)
	} else {
		products, err = h.productRepo.GetAll(r.Context())
	}
	if err != nil {
		writeServiceError(h.render, w, "ProductHandler.List", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(h.render, w, "ProductHandler.Get", err)
		return
	}
	if product == nil {
		writeServiceError(h.render, w, "ProductHandler.Get", services.ErrProductNotFound)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

// Gallery serves the initial carousel state for a product's image gallery,
// optionally under a color selection (?color=). A color with no mapped image
// comes back as the labeled placeholder, which is the intended missing-asset
// signal.
func (h *ProductHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	color := r.URL.Query().Get("color")

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(h.render, w, "ProductHandler.Gallery", err)
		return
	}
	if product == nil {
		writeServiceError(h.render, w, "ProductHandler.Gallery", services.ErrProductNotFound)
		return
	}

	var gallery []string
	if len(product.GalleryImages) > 0 {
		if err := json.Unmarshal(product.GalleryImages, &gallery); err != nil {
			writeServiceError(h.render, w, "ProductHandler.Gallery", err)
			return
		}
	}
	colorImages := map[string]string{}
	if len(product.ColorImages) > 0 {
		if err := json.Unmarshal(product.ColorImages, &colorImages); err != nil {
			writeServiceError(h.render, w, "ProductHandler.Gallery", err)
			return
		}
	}

	ctrl := carousel.NewGallery(product.Name, gallery, color, colorImages)
	_ = h.render.JSON(w, http.StatusOK, ctrl.View())
}

type ProductPayload struct {
	Name           string             `json:"name" validate:"required"`
	Description    *string            `json:"description"`
	Price          json.RawMessage    `json:"price"`
	ImageURL       *string            `json:"imageUrl"`
	HoverImageURL  *string            `json:"hoverImageUrl"`
	Colors         *[]string          `json:"colors"`
	Sizes          *[]string          `json:"sizes"`
	Composition    *string            `json:"composition"`
	Care           *string            `json:"care"`
	GalleryImages  *[]string          `json:"galleryImages"`
	DetailTexts    *[]string          `json:"detailTexts"`
	DetailImages   *[]string          `json:"detailImages"`
	ColorImages    *map[string]string `json:"colorImages"`
	CollectionID   *string            `json:"collectionId"`
	CollectionSlug *string            `json:"collectionSlug"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		writeBadRequest(h.render, w, "name is required")
		return
	}

	price, _, err := parsePrice(payload.Price)
	if err != nil {
		writeBadRequest(h.render, w, "price must be a number")
		return
	}

	product, err := h.catalogSvc.CreateProduct(r.Context(), services.ProductInput{
		Name:           payload.Name,
		Description:    payload.Description,
		Price:          price,
		ImageURL:       payload.ImageURL,
		HoverImageURL:  payload.HoverImageURL,
		Colors:         payload.Colors,
		Sizes:          payload.Sizes,
		Composition:    payload.Composition,
		Care:           payload.Care,
		GalleryImages:  payload.GalleryImages,
		DetailTexts:    payload.DetailTexts,
		DetailImages:   payload.DetailImages,
		ColorImages:    payload.ColorImages,
		CollectionID:   payload.CollectionID,
		CollectionSlug: payload.CollectionSlug,
	})
	if err != nil {
		writeServiceError(h.render, w, "ProductHandler.Create", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, product)
}

type ProductPatchPayload struct {
	Name           *string            `json:"name"`
	Description    *string            `json:"description"`
	Price          json.RawMessage    `json:"price"`
	ImageURL       *string            `json:"imageUrl"`
	HoverImageURL  *string            `json:"hoverImageUrl"`
	Colors         *[]string          `json:"colors"`
	Sizes          *[]string          `json:"sizes"`
	Composition    *string            `json:"composition"`
	Care           *string            `json:"care"`
	GalleryImages  *[]string          `json:"galleryImages"`
	DetailTexts    *[]string          `json:"detailTexts"`
	DetailImages   *[]string          `json:"detailImages"`
	ColorImages    *map[string]string `json:"colorImages"`
	CollectionID   *string            `json:"collectionId"`
	CollectionSlug *string            `json:"collectionSlug"`
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload ProductPatchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(h.render, w, "invalid request body")
		return
	}

	price, priceSet, err := parsePrice(payload.Price)
	if err != nil {
		writeBadRequest(h.render, w, "price must be a number")
		return
	}

	product, err := h.catalogSvc.UpdateProduct(r.Context(), id, services.ProductUpdate{
		Name:           payload.Name,
		Description:    payload.Description,
		Price:          price,
		PriceSet:       priceSet,
		ImageURL:       payload.ImageURL,
		HoverImageURL:  payload.HoverImageURL,
		Colors:         payload.Colors,
		Sizes:          payload.Sizes,
		Composition:    payload.Composition,
		Care:           payload.Care,
		GalleryImages:  payload.GalleryImages,
		DetailTexts:    payload.DetailTexts,
		DetailImages:   payload.DetailImages,
		ColorImages:    payload.ColorImages,
		CollectionID:   payload.CollectionID,
		CollectionSlug: payload.CollectionSlug,
	})
	if err != nil {
		writeServiceError(h.render, w, "ProductHandler.Update", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.catalogSvc.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(h.render, w, "ProductHandler.Delete", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// parsePrice accepts a number, a numeric string, "", or null. Absent means
// "leave alone" (set=false); null and "" mean "clear to NULL" (set=true,
// price=nil).
func parsePrice(raw json.RawMessage) (*decimal.Decimal, bool, error) {
	if len(raw) == 0 {
		return nil, false, nil
	}
	if string(raw) == "null" {
		return nil, true, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil, true, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, false, err
		}
		return &d, true, nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, false, err
	}
	return &d, true, nil
}
