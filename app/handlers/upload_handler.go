package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattertouch/storefront/app/configs"
	"github.com/unrolled/render"
)

// UploadHandler stores admin-uploaded catalog images under the configured
// upload directory and answers with the public URL.
type UploadHandler struct {
	render *render.Render
	env    configs.ENV
}

func NewUploadHandler(r *render.Render, env configs.ENV) *UploadHandler {
	return &UploadHandler{render: r, env: env}
}

type UploadPayload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var payload UploadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(h.render, w, "invalid request body")
		return
	}
	if payload.Filename == "" || payload.ContentType == "" || payload.Data == "" {
		writeBadRequest(h.render, w, "filename, contentType, data required")
		return
	}

	// The filename may carry a relative directory ("clothings/product-9/
	// main.webp") but must stay inside the upload dir.
	clean := filepath.Clean(payload.Filename)
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		writeBadRequest(h.render, w, "invalid filename")
		return
	}

	data, err := base64.StdEncoding.DecodeString(payload.Data)
	if err != nil {
		writeBadRequest(h.render, w, "data must be base64 encoded")
		return
	}

	dst := filepath.Join(h.env.UploadDir, clean)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		log.Printf("UploadHandler.Upload: failed to create directory for %s: %v", dst, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "upload failed"})
		return
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		log.Printf("UploadHandler.Upload: failed to write %s: %v", dst, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "upload failed"})
		return
	}

	url := strings.TrimSuffix(h.env.UploadBaseURL, "/") + "/" + filepath.ToSlash(clean)
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"url": url})
}
