package content

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tecknovice/blogapi/internal/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type generateReq struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// Generate runs a blocking completion. POST /generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}
	if req.Prompt == "" {
		utils.JSONError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	text, err := h.svc.Generate(r.Context(), req.Prompt, req.Model)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, map[string]string{
			"prompt": req.Prompt,
			"error":  err.Error(),
		})
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"prompt":  req.Prompt,
		"content": text,
	})
}

// GenerateStream relays completion deltas as server-sent events.
// GET /generate_stream?prompt=...
//
// Each delta goes out as `data: "<text>"` followed by a flush, and the
// stream ends with `data: [DONE]`. The request context cancels the
// upstream read when the client disconnects.
func (h *Handler) GenerateStream(w http.ResponseWriter, r *http.Request) {
	prompt := r.URL.Query().Get("prompt")
	if prompt == "" {
		utils.JSONError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.JSONError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	err := h.svc.GenerateStream(r.Context(), prompt, r.URL.Query().Get("model"), func(chunk string) error {
		encoded, err := json.Marshal(chunk)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", encoded); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		// headers are already out; report in-band
		payload, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
		return
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}
