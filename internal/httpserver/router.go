package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tecknovice/blogapi/internal/auth"
	"github.com/tecknovice/blogapi/internal/blogs"
	"github.com/tecknovice/blogapi/internal/content"
	"github.com/tecknovice/blogapi/internal/users"
	"github.com/tecknovice/blogapi/internal/utils"
)

// NewRouter wires the whole API surface. Route paths match the
// existing frontend client.
func NewRouter(
	authSvc *auth.Service,
	authH *auth.Handler,
	usersH *users.Handler,
	blogsH *blogs.Handler,
	contentH *content.Handler,
) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public
	r.Post("/register", usersH.Register)
	r.Post("/login", authH.Login)
	r.Get("/public/blogs", blogsH.PublicList)
	r.Get("/public/blogs/{id}", blogsH.PublicShow)

	// Blog reads work anonymously too; the policy scope decides what
	// each caller sees. A presented-but-invalid token is still a 401.
	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth(authSvc))

		r.Get("/blogs", blogsH.List)
		r.Get("/blogs/{id}", blogsH.Show)
	})

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(authSvc))

		r.Post("/logout", authH.Logout)
		r.Get("/me", authH.Me)

		r.Get("/profile", usersH.ShowProfile)
		r.Put("/profile", usersH.UpdateProfile)

		r.Post("/blogs", blogsH.Create)
		r.Put("/blogs/{id}", blogsH.Update)
		r.Delete("/blogs/{id}", blogsH.Destroy)
		r.Patch("/blogs/{id}/publish", blogsH.Publish)
		r.Patch("/blogs/{id}/unpublish", blogsH.Unpublish)

		r.Route("/admin/users", func(r chi.Router) {
			r.Get("/", usersH.List)
			r.Get("/{id}", usersH.Show)
			r.Put("/{id}", usersH.Update)
			r.Delete("/{id}", usersH.Destroy)
		})

		r.Post("/generate", contentH.Generate)
		r.Get("/generate_stream", contentH.GenerateStream)
	})

	return withCORS(r)
}

// withCORS covers the local frontend dev server.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
