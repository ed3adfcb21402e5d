package api

import (
	"encoding/json"
	"net/http"

	v1 "github.com/hwrest/restarea/infrastructure/api/v1"
)

type healthResponse struct {
	Status        string `json:"status"`
	RestAreaCount int    `json:"restAreaCount"`
	LastUpdated   string `json:"lastUpdated,omitempty"`
}

// healthHandler reports healthy once a dataset is loaded.
func healthHandler(provider v1.CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := healthResponse{Status: "loading"}
		status := http.StatusServiceUnavailable
		if c := provider.Catalog(); c != nil {
			meta := c.Metadata()
			resp = healthResponse{
				Status:        "healthy",
				RestAreaCount: meta.RestAreaCount,
				LastUpdated:   meta.LastUpdated.Time().UTC().Format("2006-01-02T15:04:05Z"),
			}
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
