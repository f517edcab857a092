package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/players", handler.ListRosterPlayers)
	mux.HandleFunc("POST /v1/teams", handler.SaveTeamName)
	mux.HandleFunc("POST /v1/teams/submit", handler.SubmitTeam)
	mux.HandleFunc("POST /v1/teams/submission-quote", handler.QuoteSubmission)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/stats", handler.GetStats)
	mux.HandleFunc("GET /v1/market/offers", handler.ListOffers)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("GET /v1/admin/players", RequireAdminToken(adminToken, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("POST /v1/admin/players", RequireAdminToken(adminToken, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PUT /v1/admin/players/points", RequireAdminToken(adminToken, http.HandlerFunc(handler.AdjustPlayerPoints)))
	mux.Handle("DELETE /v1/admin/players/{nftID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.DeletePlayer)))
}
