package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// RouterDeps carries everything the router needs to wire routes and guards.
type RouterDeps struct {
	Logger *slog.Logger

	Verifier domain.TokenVerifier
	Profiles domain.ProfileRepository

	Auth          *controllers.AuthController
	Users         *controllers.UserController
	EventRequests *controllers.EventRequestController
	Events        *controllers.EventController
	Clubs         *controllers.ClubController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(deps RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(deps.Verifier, deps.Logger)
	admin := middleware.RequireAdmin(deps.Profiles, deps.Logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", deps.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", deps.Auth.Login)

	// Profiles
	mux.HandleFunc("GET /users/me", authed(deps.Users.GetMe))
	mux.HandleFunc("PATCH /users/me", authed(deps.Users.UpdateMe))

	// Event requests
	mux.HandleFunc("POST /event-requests", authed(deps.EventRequests.Create))
	mux.HandleFunc("GET /event-requests", authed(admin(deps.EventRequests.ListForAdmin)))
	mux.HandleFunc("GET /event-requests/my-requests", authed(deps.EventRequests.ListMine))
	mux.HandleFunc("GET /event-requests/{requestID}", authed(deps.EventRequests.GetByID))
	mux.HandleFunc("PUT /event-requests/{requestID}", authed(deps.EventRequests.Update))
	mux.HandleFunc("DELETE /event-requests/{requestID}", authed(deps.EventRequests.Delete))

	// Events (public read, admin write)
	mux.HandleFunc("GET /events", deps.Events.List)
	mux.HandleFunc("POST /events", authed(admin(deps.Events.Create)))
	mux.HandleFunc("PUT /events/{eventID}", authed(admin(deps.Events.Update)))
	mux.HandleFunc("DELETE /events/{eventID}", authed(admin(deps.Events.Delete)))

	// Clubs
	mux.HandleFunc("GET /clubs", deps.Clubs.List)
	mux.HandleFunc("GET /clubs/{clubID}", authed(deps.Clubs.Get))
	mux.HandleFunc("PATCH /clubs/{clubID}", authed(deps.Clubs.Rename))
	mux.HandleFunc("GET /clubs/{clubID}/president", authed(deps.Clubs.GetPresident))
	mux.HandleFunc("PUT /clubs/{clubID}/president", authed(deps.Clubs.SetPresident))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
