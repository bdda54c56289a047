package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mas-astro/nightwatch/internal/db"
	"mas-astro/nightwatch/internal/models/entities"
)

// GatewayStatus reports the Discord connection's heartbeat latency.
// Satisfied by *discordgo.Session.
type GatewayStatus interface {
	HeartbeatLatency() time.Duration
}

// HealthCheckHandler handles GET /healthCheck. A nil gateway means the
// deployment runs without a Discord connection; directoryEnabled false
// means it runs without the member directory. Disabled dependencies are
// reported but never count against overall health.
func HealthCheckHandler(upSince time.Time, gateway GatewayStatus, directoryEnabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := make(map[string]entities.ServiceStatus)

		if directoryEnabled {
			mongoStatus := "ok"
			mongoDetails := "Directory connected"
			ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
			if err := db.Ping(ctx); err != nil {
				mongoStatus = "down"
				mongoDetails = err.Error()
			}
			cancel()
			services["mongo"] = entities.ServiceStatus{
				Status:  mongoStatus,
				Details: mongoDetails,
			}
		} else {
			services["mongo"] = entities.ServiceStatus{
				Status:  "disabled",
				Details: "No directory configured",
			}
		}

		if gateway != nil {
			services["discord"] = entities.ServiceStatus{
				Status:  "ok",
				Details: fmt.Sprintf("Heartbeat latency %s", gateway.HeartbeatLatency().Truncate(time.Millisecond)),
			}
		} else {
			services["discord"] = entities.ServiceStatus{
				Status:  "disabled",
				Details: "No gateway connection configured",
			}
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status == "down" {
				overallStatus = "down"
				break
			}
		}

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
