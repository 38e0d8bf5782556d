package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/mattertouch/storefront/app/repositories"
	"github.com/mattertouch/storefront/app/services"
	"github.com/unrolled/render"
)

type CollectionHandler struct {
	render         *render.Render
	collectionRepo repositories.CollectionRepositoryImpl
	catalogSvc     *services.CatalogService
	validator      *validator.Validate
}

func NewCollectionHandler(r *render.Render, collectionRepo repositories.CollectionRepositoryImpl, catalogSvc *services.CatalogService, validator *validator.Validate) *CollectionHandler {
	return &CollectionHandler{
		render:         r,
		collectionRepo: collectionRepo,
		catalogSvc:     catalogSvc,
		validator:      validator,
	}
}

func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	collections, err := h.collectionRepo.GetAll(r.Context())
	if err != nil {
		writeServiceError(h.render, w, "CollectionHandler.List", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, collections)
}

func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	collection, err := h.collectionRepo.GetByIDWithProducts(r.Context(), id)
	if err != nil {
		writeServiceError(h.render, w, "CollectionHandler.Get", err)
		return
	}
	if collection == nil {
		writeServiceError(h.render, w, "CollectionHandler.Get", services.ErrCollectionNotFound)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, collection)
}

type CollectionPayload struct {
	Name          string  `json:"name" validate:"required"`
	Slug          string  `json:"slug" validate:"required"`
	CoverImageURL *string `json:"coverImageUrl"`
	Description   *string `json:"description"`
}

func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CollectionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		writeBadRequest(h.render, w, "name and slug are required")
		return
	}

	collection, err := h.catalogSvc.CreateCollection(r.Context(), services.CollectionInput{
		Name:          payload.Name,
		Slug:          payload.Slug,
		CoverImageURL: payload.CoverImageURL,
		Description:   payload.Description,
	})
	if err != nil {
		writeServiceError(h.render, w, "CollectionHandler.Create", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, collection)
}

type CollectionPatchPayload struct {
	Name          *string `json:"name"`
	Slug          *string `json:"slug"`
	CoverImageURL *string `json:"coverImageUrl"`
	Description   *string `json:"description"`
}

func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload CollectionPatchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(h.render, w, "invalid request body")
		return
	}

	collection, err := h.catalogSvc.UpdateCollection(r.Context(), id, services.CollectionUpdate{
		Name:          payload.Name,
		Slug:          payload.Slug,
		CoverImageURL: payload.CoverImageURL,
		Description:   payload.Description,
	})
	if err != nil {
		writeServiceError(h.render, w, "CollectionHandler.Update", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, collection)
}

func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.catalogSvc.DeleteCollection(r.Context(), id); err != nil {
		writeServiceError(h.render, w, "CollectionHandler.Delete", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "collection deleted"})
}
