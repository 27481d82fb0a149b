package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const SessionIDKey contextKey = "sessionID"

// SessionAuthorizer confere se um token dá acesso à sessão.
type SessionAuthorizer interface {
	Authorize(token, sessionID string) error
}

// SessionAuth exige "Authorization: Bearer <token>" emitido para a sessão do path ({id}).
// forbidden identifica o erro que vira 403; os demais viram 401.
func SessionAuth(auth SessionAuthorizer, forbidden error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "Autenticação requerida")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "Formato de token inválido (esperado: Bearer <token>)")
				return
			}

			sessionID := chi.URLParam(r, "id")
			if err := auth.Authorize(parts[1], sessionID); err != nil {
				if errors.Is(err, forbidden) {
					writeError(w, http.StatusForbidden, err.Error())
					return
				}
				writeError(w, http.StatusUnauthorized, "Token inválido ou expirado: "+err.Error())
				return
			}

			// Injeta ID no contexto
			ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
