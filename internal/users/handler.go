package users

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

type registerReq struct {
	User RegisterInput `json:"user"`
}

// Register creates an account. POST /register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if _, err := h.svc.Register(r.Context(), req.User); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]string{"message": "Signed up successfully."})
}

// ShowProfile returns the caller's own record. GET /profile
func (h *Handler) ShowProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Profile(r.Context(), auth.ActorFromContext(r.Context()))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// UpdateProfile applies a self-service update. PUT /profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in ProfileUpdate
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), auth.ActorFromContext(r.Context()), in)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// List is the admin user index. GET /admin/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context(), auth.ActorFromContext(r.Context()))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

// Show returns one user. GET /admin/users/{id}
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Get(r.Context(), auth.ActorFromContext(r.Context()), urlID(r))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

type adminUpdateReq struct {
	User AdminUpdate `json:"user"`
}

// Update applies an email/role change. PUT /admin/users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req adminUpdateReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	user, err := h.svc.Update(r.Context(), auth.ActorFromContext(r.Context()), urlID(r), req.User)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// Destroy deletes a user and their blogs. DELETE /admin/users/{id}
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Destroy(r.Context(), auth.ActorFromContext(r.Context()), urlID(r)); err != nil {
		utils.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func urlID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}
