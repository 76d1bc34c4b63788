package blogs

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tecknovice/blogapi/internal/auth"
	"github.com/tecknovice/blogapi/internal/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns the blogs visible to the caller. GET /blogs
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.svc.List(r.Context(), auth.ActorFromContext(r.Context()))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, blogs)
}

// Show returns one blog. GET /blogs/{id}
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	blog, err := h.svc.Get(r.Context(), auth.ActorFromContext(r.Context()), urlID(r))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, blog)
}

// Create adds a blog owned by the caller. POST /blogs
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		return
	}

	blog, err := h.svc.Create(r.Context(), auth.ActorFromContext(r.Context()), in)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, blog)
}

// Update edits a blog. PUT /blogs/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		return
	}

	blog, err := h.svc.Update(r.Context(), auth.ActorFromContext(r.Context()), urlID(r), in)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, blog)
}

// Destroy deletes a blog. DELETE /blogs/{id}
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Destroy(r.Context(), auth.ActorFromContext(r.Context()), urlID(r)); err != nil {
		utils.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Publish and Unpublish take no body. PATCH /blogs/{id}/publish,
// PATCH /blogs/{id}/unpublish
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, true)
}

func (h *Handler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, false)
}

func (h *Handler) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	blog, err := h.svc.SetPublished(r.Context(), auth.ActorFromContext(r.Context()), urlID(r), published)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, blog)
}

// PublicList serves anonymous readers. GET /public/blogs
func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.svc.PublicList(r.Context())
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, blogs)
}

// PublicShow serves one published blog. GET /public/blogs/{id}
func (h *Handler) PublicShow(w http.ResponseWriter, r *http.Request) {
	blog, err := h.svc.PublicShow(r.Context(), urlID(r))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, blog)
}

func urlID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}
