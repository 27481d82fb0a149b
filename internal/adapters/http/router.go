package httpadapter

import (
	"net/http"

	"microquiz/internal/adapters/http/handlers"
	"microquiz/internal/adapters/http/middlewares"
	"microquiz/internal/adapters/websocket"
	"microquiz/internal/application/usecases"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter configura as rotas e middlewares.
func NewRouter(
	catalogHandler *handlers.CatalogHandler,
	sessionHandler *handlers.SessionHandler,
	wsHandler *websocket.WebSocketHandler,
	authorizer middlewares.SessionAuthorizer,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Middlewares globais
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Configuração CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Rota de Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// WebSocket Endpoint (token na query)
	if wsHandler != nil {
		r.Get("/ws", wsHandler.HandleWS)
	}

	r.Route("/api", func(r chi.Router) {
		// Catálogo público
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/quizzes/{category}", catalogHandler.ListQuizzes)
		r.Get("/quiz/{id}", catalogHandler.GetQuiz)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.StartSession)

			// Demais rotas exigem o token da própria sessão
			r.Route("/{id}", func(r chi.Router) {
				r.Use(middlewares.SessionAuth(authorizer, usecases.ErrSessionForbidden))

				r.Get("/", sessionHandler.GetSession)
				r.Delete("/", sessionHandler.EndSession)
				r.Post("/select", sessionHandler.SelectOption)
				r.Post("/submit", sessionHandler.SubmitAnswer)
				r.Post("/advance", sessionHandler.Advance)
				r.Post("/restart", sessionHandler.Restart)
			})
		})
	})

	return r
}
