package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the database and credential vault
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	tenantsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	tenantsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	vault *cryptox.Vault,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &tenantsdk.HealthChecks{
			Database: "ok",
			Vault:    "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: database unreachable"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if vault == nil {
			checks.Vault = "error: no master key loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, tenantsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
