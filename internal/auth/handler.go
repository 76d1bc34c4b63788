package auth

import (
	"net/http"

	"github.com/tecknovice/blogapi/internal/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type loginReq struct {
	User struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

// Login issues a token. POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.User.Email, req.User.Password)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"message": "Logged in.",
		"user":    user,
		"token":   token,
	})
}

// Logout denylists the presented token. POST /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := BearerToken(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, utils.MsgUnauthenticated)
		return
	}

	if err := h.svc.Revoke(r.Context(), token); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Logged out."})
}

// Me returns the authenticated user. GET /me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.User(r.Context(), ActorFromContext(r.Context()))
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
