package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("GET /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.ListMyLeagues)))
	mux.Handle("GET /v1/leagues/{leagueID}", RequireAuth(verifier, http.HandlerFunc(handler.GetLeague)))
	mux.Handle("PATCH /v1/leagues/{leagueID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateLeagueSettings)))
	mux.Handle("PUT /v1/leagues/{leagueID}/members/{userID}/role", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMemberRole)))
	mux.Handle("DELETE /v1/leagues/{leagueID}/members/{userID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveMember)))
	mux.Handle("POST /v1/leagues/{leagueID}/leave", RequireAuth(verifier, http.HandlerFunc(handler.LeaveLeague)))
	mux.Handle("GET /v1/leagues/{leagueID}/standings", RequireAuth(verifier, http.HandlerFunc(handler.GetStandings)))
}

func registerInviteRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues/{leagueID}/invites", RequireAuth(verifier, http.HandlerFunc(handler.CreateInvite)))
	mux.Handle("GET /v1/leagues/{leagueID}/invites", RequireAuth(verifier, http.HandlerFunc(handler.ListInvites)))
	mux.Handle("GET /v1/invites/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyInvites)))
	mux.Handle("POST /v1/invites/{inviteID}/respond", RequireAuth(verifier, http.HandlerFunc(handler.RespondToInvite)))
	mux.Handle("DELETE /v1/invites/{inviteID}", RequireAuth(verifier, http.HandlerFunc(handler.DeactivateInvite)))
	mux.Handle("POST /v1/invites/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinByToken)))
}

func registerPickRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/leagues/{leagueID}/picks", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPicks)))
	mux.Handle("GET /v1/leagues/{leagueID}/picks/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyPicks)))
	mux.Handle("GET /v1/phases/{phase}/events", RequireAuth(verifier, http.HandlerFunc(handler.ListPhaseEvents)))
}
