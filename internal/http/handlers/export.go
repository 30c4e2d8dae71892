package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teetime/campusride/internal/config"
	"github.com/teetime/campusride/internal/domain/ride"
	"github.com/teetime/campusride/internal/export"
	"github.com/teetime/campusride/internal/http/middlewares"
	"github.com/teetime/campusride/internal/observability"
)

type ExportHandler struct {
	svc  RideWorkflow
	prom *observability.Prom
}

func NewExportHandler(svc RideWorkflow, prom *observability.Prom) *ExportHandler {
	return &ExportHandler{svc: svc, prom: prom}
}

// ExportRides streams the caller's ride history as CSV. Passengers get the
// rides they requested; `?scope=driving` gives drivers the rides they accepted.
func (h *ExportHandler) ExportRides(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	var rides []ride.Ride
	var err error

	switch ctx.Query("scope") {
	case "driving":
		rides, err = h.svc.RidesByDriver(cctx, userID)
	case "", "mine":
		rides, err = h.svc.RidesByPassenger(cctx, userID)
	default:
		RespondBadRequest(ctx, "scope must be mine or driving", nil)
		return
	}

	if err != nil {
		RespondInternal(ctx, "Could not export rides")
		return
	}

	var buf bytes.Buffer

	if err := export.WriteRides(&buf, rides); err != nil {
		RespondInternal(ctx, "Could not export rides")
		return
	}

	if h.prom != nil {
		h.prom.ExportsTotal.Inc()
	}

	ctx.Header("Content-Disposition", `attachment; filename="rides.csv"`)
	ctx.Data(http.StatusOK, "text/csv", buf.Bytes())
}
