package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/mattertouch/storefront/app/services"
	"github.com/unrolled/render"
)

// writeServiceError translates the service-level sentinels into the API's
// status taxonomy. Anything unrecognized is a 500 with a generic body; the
// underlying cause goes to the server log only.
func writeServiceError(rnd *render.Render, w http.ResponseWriter, logPrefix string, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCollectionNotFound),
		errors.Is(err, services.ErrCartItemNotFound),
		errors.Is(err, services.ErrHeroImageNotFound),
		errors.Is(err, services.ErrUserNotFound):
		_ = rnd.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrNotCartOwner):
		_ = rnd.JSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrSlugTaken),
		errors.Is(err, services.ErrInvalidSlug),
		errors.Is(err, services.ErrCollectionRequired),
		errors.Is(err, services.ErrEmailTaken):
		_ = rnd.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	default:
		log.Printf("%s: %v", logPrefix, err)
		_ = rnd.JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func writeBadRequest(rnd *render.Render, w http.ResponseWriter, msg string) {
	_ = rnd.JSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
