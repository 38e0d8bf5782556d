package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/mattertouch/storefront/app/carousel"
	"github.com/mattertouch/storefront/app/models"
	"github.com/mattertouch/storefront/app/repositories"
	"github.com/mattertouch/storefront/app/services"
	"github.com/unrolled/render"
)

const brandLabel = "MATTER TOUCH"

type HeroHandler struct {
	render    *render.Render
	heroRepo  repositories.HeroImageRepositoryImpl
	validator *validator.Validate
}

func NewHeroHandler(r *render.Render, heroRepo repositories.HeroImageRepositoryImpl, validator *validator.Validate) *HeroHandler {
	return &HeroHandler{
		render:    r,
		heroRepo:  heroRepo,
		validator: validator,
	}
}

func (h *HeroHandler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.heroRepo.GetAll(r.Context())
	if err != nil {
		writeServiceError(h.render, w, "HeroHandler.List", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, images)
}

// Carousel serves the initial render state of the landing-page banner. With
// no hero rows this is the static branded placeholder and no timer.
func (h *HeroHandler) Carousel(w http.ResponseWriter, r *http.Request) {
	images, err := h.heroRepo.GetAll(r.Context())
	if err != nil {
		writeServiceError(h.render, w, "HeroHandler.Carousel", err)
		return
	}

	frames := make([]carousel.Image, len(images))
	for i, img := range images {
		frames[i] = carousel.Image{
			Src:      img.ImageURL,
			Alt:      img.Name,
			Priority: i == 0,
		}
	}
	ctrl := carousel.NewHero(brandLabel, frames)
	_ = h.render.JSON(w, http.StatusOK, ctrl.View())
}

type HeroImagePayload struct {
	Name     string `json:"name" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required"`
	Position int    `json:"position"`
}

func (h *HeroHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload HeroImagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		writeBadRequest(h.render, w, "name and imageUrl are required")
		return
	}

	image := payloadToHero(payload)
	if err := h.heroRepo.Create(r.Context(), image); err != nil {
		writeServiceError(h.render, w, "HeroHandler.Create", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, image)
}

type HeroImagePatchPayload struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"imageUrl"`
	Position *int    `json:"position"`
}

func (h *HeroHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	image, err := h.heroRepo.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(h.render, w, "HeroHandler.Update", err)
		return
	}
	if image == nil {
		writeServiceError(h.render, w, "HeroHandler.Update", services.ErrHeroImageNotFound)
		return
	}

	var payload HeroImagePatchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(h.render, w, "invalid request body")
		return
	}

	if payload.Name != nil {
		image.Name = *payload.Name
	}
	if payload.ImageURL != nil {
		image.ImageURL = *payload.ImageURL
	}
	if payload.Position != nil {
		image.Position = *payload.Position
	}

	if err := h.heroRepo.Update(r.Context(), image); err != nil {
		writeServiceError(h.render, w, "HeroHandler.Update", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, image)
}

func (h *HeroHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	image, err := h.heroRepo.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(h.render, w, "HeroHandler.Delete", err)
		return
	}
	if image == nil {
		writeServiceError(h.render, w, "HeroHandler.Delete", services.ErrHeroImageNotFound)
		return
	}

	if err := h.heroRepo.Delete(r.Context(), id); err != nil {
		writeServiceError(h.render, w, "HeroHandler.Delete", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "hero image deleted"})
}

func payloadToHero(p HeroImagePayload) *models.HeroImage {
	return &models.HeroImage{
		Name:     p.Name,
		ImageURL: p.ImageURL,
		Position: p.Position,
	}
}
