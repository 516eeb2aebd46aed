package api

import (
	"database/sql"
	"net/http"

	"github.com/unilost/unilost/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{DB: db}
	claimsHandler := &ClaimsHandler{DB: db}
	adminHandler := &AdminHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: register, login, browse the catalog.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)

	// Authenticated.
	mux.Handle("GET /api/auth", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("POST /api/claims", authMW(http.HandlerFunc(claimsHandler.Create)))

	// Admin dashboard.
	mux.Handle("GET /api/admin/stats", authMW(requireAdmin(http.HandlerFunc(adminHandler.Stats))))
	mux.Handle("GET /api/admin/claims", authMW(requireAdmin(http.HandlerFunc(adminHandler.ListClaims))))
	mux.Handle("PUT /api/admin/claims/{id}", authMW(requireAdmin(http.HandlerFunc(adminHandler.DecideClaim))))
	mux.Handle("GET /api/admin/items", authMW(requireAdmin(http.HandlerFunc(adminHandler.ListItems))))
	mux.Handle("PUT /api/admin/items/{id}/verify", authMW(requireAdmin(http.HandlerFunc(adminHandler.VerifyItem))))
	mux.Handle("GET /api/admin/users", authMW(requireAdmin(http.HandlerFunc(adminHandler.ListUsers))))
	mux.Handle("POST /api/admin/users", authMW(requireAdmin(http.HandlerFunc(adminHandler.CreateUser))))
	mux.Handle("PUT /api/admin/users/{id}", authMW(requireAdmin(http.HandlerFunc(adminHandler.UpdateUser))))
	mux.Handle("DELETE /api/admin/users/{id}", authMW(requireAdmin(http.HandlerFunc(adminHandler.DeleteUser))))

	return mux
}
