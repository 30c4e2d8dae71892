package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teetime/campusride/internal/cache"
	"github.com/teetime/campusride/internal/config"
	"github.com/teetime/campusride/internal/domain/car"
	"github.com/teetime/campusride/internal/domain/ride"
	"github.com/teetime/campusride/internal/http/middlewares"
	"github.com/teetime/campusride/internal/observability"
	"github.com/teetime/campusride/internal/service"
)

type RideWorkflow interface {
	CreateRideRequest(ctx context.Context, req ride.CreateRideRequest) (ride.Ride, error)
	AcceptRide(ctx context.Context, rideID, driverID, carID int64) (ride.Ride, error)
	CompleteRide(ctx context.Context, rideID int64) (ride.Ride, error)
	CancelRide(ctx context.Context, rideID, passengerID int64) (ride.Ride, error)
	PendingRides(ctx context.Context) ([]ride.Ride, error)
	RidesByPassenger(ctx context.Context, passengerID int64) ([]ride.Ride, error)
	RidesByDriver(ctx context.Context, driverID int64) ([]ride.Ride, error)
}

type RidesHandler struct {
	svc     RideWorkflow
	pending *cache.PendingRides
	prom    *observability.Prom
}

func NewRidesHandler(svc RideWorkflow, pending *cache.PendingRides, prom *observability.Prom) *RidesHandler {
	return &RidesHandler{
		svc:     svc,
		pending: pending,
		prom:    prom,
	}
}

type AcceptRideRequest struct {
	CarID int64 `json:"carId" binding:"required,min=1"`
}

func (h *RidesHandler) CreateRide(ctx *gin.Context) {
	var req ride.CreateRideRequest

	if !BindJSON(ctx, &req) {
		return
	}

	passengerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	// identity is the source of truth for the passenger id
	req.PassengerID = passengerID

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rd, err := h.svc.CreateRideRequest(cctx, req)

	if err != nil {
		h.respondRideError(ctx, err, "Could not create ride request")
		return
	}

	h.rideEvent("requested")
	h.invalidatePending()

	ctx.JSON(http.StatusCreated, rd)
}

func (h *RidesHandler) ListPending(ctx *gin.Context) {
	if h.pending != nil {
		if rides, ok := h.pending.Get(); ok {
			ctx.JSON(http.StatusOK, gin.H{"items": rides, "count": len(rides)})
			return
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rides, err := h.svc.PendingRides(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list pending rides")
		return
	}

	if h.pending != nil {
		h.pending.Set(rides)
	}

	if h.prom != nil {
		h.prom.RidesOpen.Set(float64(len(rides)))
	}

	ctx.JSON(http.StatusOK, gin.H{"items": rides, "count": len(rides)})
}

// ListMine returns the caller's rides as a passenger.
func (h *RidesHandler) ListMine(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rides, err := h.svc.RidesByPassenger(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not list rides")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": rides, "count": len(rides)})
}

// ListDriving returns the rides the caller accepted as a driver.
func (h *RidesHandler) ListDriving(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rides, err := h.svc.RidesByDriver(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not list rides")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": rides, "count": len(rides)})
}

func (h *RidesHandler) AcceptRide(ctx *gin.Context) {
	rideID, ok := rideIDParam(ctx)

	if !ok {
		return
	}

	var req AcceptRideRequest

	if !BindJSON(ctx, &req) {
		return
	}

	driverID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rd, err := h.svc.AcceptRide(cctx, rideID, driverID, req.CarID)

	if err != nil {
		h.respondRideError(ctx, err, "Could not accept ride")
		return
	}

	h.rideEvent("confirmed")
	h.invalidatePending()

	ctx.JSON(http.StatusOK, rd)
}

func (h *RidesHandler) CompleteRide(ctx *gin.Context) {
	rideID, ok := rideIDParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rd, err := h.svc.CompleteRide(cctx, rideID)

	if err != nil {
		h.respondRideError(ctx, err, "Could not complete ride")
		return
	}

	h.rideEvent("completed")

	ctx.JSON(http.StatusOK, rd)
}

func (h *RidesHandler) CancelRide(ctx *gin.Context) {
	rideID, ok := rideIDParam(ctx)

	if !ok {
		return
	}

	passengerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rd, err := h.svc.CancelRide(cctx, rideID, passengerID)

	if err != nil {
		h.respondRideError(ctx, err, "Could not cancel ride")
		return
	}

	h.rideEvent("cancelled")
	h.invalidatePending()

	ctx.JSON(http.StatusOK, rd)
}

func (h *RidesHandler) respondRideError(ctx *gin.Context, err error, fallback string) {
	var validationErr *service.ValidationError
	var capacityErr *ride.CapacityError
	var stateErr *ride.StateError

	switch {
	case errors.As(err, &validationErr):
		RespondBadRequest(ctx, validationErr.Message, gin.H{"field": validationErr.Field})
	case errors.As(err, &capacityErr):
		RespondConflict(ctx, "capacity_exceeded", capacityErr.Error())
	case errors.As(err, &stateErr):
		RespondConflict(ctx, "invalid_state", stateErr.Error())
	case errors.Is(err, ride.ErrNotFound):
		RespondNotFound(ctx, "Ride not found")
	case errors.Is(err, car.ErrNotFound):
		RespondNotFound(ctx, "Car not found")
	default:
		RespondInternal(ctx, fallback)
	}
}

func (h *RidesHandler) rideEvent(event string) {
	if h.prom != nil {
		h.prom.RideEvents.WithLabelValues(event).Inc()
	}
}

func (h *RidesHandler) invalidatePending() {
	if h.pending != nil {
		h.pending.Invalidate()
	}
}

func rideIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil || id <= 0 {
		RespondBadRequest(ctx, "ride id must be a positive integer", nil)
		return 0, false
	}

	return id, true
}
