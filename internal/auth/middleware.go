package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/tecknovice/blogapi/internal/policy"
	"github.com/tecknovice/blogapi/internal/utils"
)

type ctxKey string

const actorKey ctxKey = "actor"

func WithActor(ctx context.Context, a policy.Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// ActorFromContext returns the request actor. Handlers behind
// OptionalAuth get an anonymous actor rather than a missing one.
func ActorFromContext(ctx context.Context) policy.Actor {
	if a, ok := ctx.Value(actorKey).(policy.Actor); ok {
		return a
	}
	return policy.Anonymous()
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", false
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// RequireAuth rejects requests without a valid, unrevoked token.
func RequireAuth(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				utils.JSONError(w, http.StatusUnauthorized, utils.MsgUnauthenticated)
				return
			}

			actor, err := svc.Verify(r.Context(), token)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, utils.MsgUnauthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// OptionalAuth resolves a token when one is presented but lets
// anonymous requests through. A token that is present and invalid is
// still rejected rather than silently downgraded.
func OptionalAuth(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), policy.Anonymous())))
				return
			}

			actor, err := svc.Verify(r.Context(), token)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, utils.MsgUnauthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}
