package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teetime/campusride/internal/config"
	"github.com/teetime/campusride/internal/domain/car"
	"github.com/teetime/campusride/internal/http/middlewares"
	"github.com/teetime/campusride/internal/service"
)

type CarManager interface {
	AddCar(ctx context.Context, req car.AddCarRequest) (car.Car, error)
	CarsByDriver(ctx context.Context, driverID int64) ([]car.Car, error)
	DeleteCar(ctx context.Context, carID int64) error
}

type CarsHandler struct {
	svc CarManager
}

func NewCarsHandler(svc CarManager) *CarsHandler {
	return &CarsHandler{svc: svc}
}

func (h *CarsHandler) AddCar(ctx *gin.Context) {
	var req car.AddCarRequest

	if !BindJSON(ctx, &req) {
		return
	}

	driverID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	// the owner is always the authenticated driver
	req.DriverID = driverID

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.svc.AddCar(cctx, req)

	if err != nil {
		var validationErr *service.ValidationError

		if errors.As(err, &validationErr) {
			RespondBadRequest(ctx, validationErr.Message, gin.H{"field": validationErr.Field})
			return
		}

		RespondInternal(ctx, "Could not add car")
		return
	}

	ctx.JSON(http.StatusCreated, c)
}

func (h *CarsHandler) ListCars(ctx *gin.Context) {
	driverID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	cars, err := h.svc.CarsByDriver(cctx, driverID)

	if err != nil {
		RespondInternal(ctx, "Could not list cars")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": cars, "count": len(cars)})
}

// DeleteCar is idempotent; deleting an unknown id still returns 204.
func (h *CarsHandler) DeleteCar(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil || id <= 0 {
		RespondBadRequest(ctx, "car id must be a positive integer", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if err := h.svc.DeleteCar(cctx, id); err != nil {
		RespondInternal(ctx, "Could not delete car")
		return
	}

	ctx.Status(http.StatusNoContent)
}
