package endpoints

import (
	"net/http"

	"coride/pkg/server"
)

// StatusResponse reports component health for load balancer probes.
type StatusResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// RegisterStatusEndpoint registers GET /status (no auth, never cached).
func RegisterStatusEndpoint(s *server.Server) {
	db := s.DB
	cacheClient := s.Cache

	s.Router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		resp := StatusResponse{Status: "ok", Database: "ok", Cache: "ok"}
		code := http.StatusOK

		var one int
		if err := db.WithContext(r.Context()).Raw(`SELECT 1`).Scan(&one).Error; err != nil {
			resp.Status = "degraded"
			resp.Database = err.Error()
			code = http.StatusServiceUnavailable
		}

		// A cache outage degrades reads but does not fail requests, so it
		// never flips the overall status.
		if cacheClient == nil {
			resp.Cache = "disabled"
		} else if err := cacheClient.Ping(r.Context()); err != nil {
			resp.Cache = err.Error()
		}

		respondWithJSON(w, code, resp)
	}).Methods("GET")
}
