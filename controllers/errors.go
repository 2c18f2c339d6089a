package controllers

import (
	"errors"

	"github.com/alexandru1c/refeelv2/pkg/resp"
	"github.com/alexandru1c/refeelv2/services"

	"github.com/gin-gonic/gin"
)

// writeError แปลง error ของ service เป็น HTTP status ที่เดียว
func writeError(c *gin.Context, err error) {
	var tio *services.TransientIOError
	switch {
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidTotal):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInsufficientBalance):
		resp.Unprocessable(c, err.Error())
	case errors.Is(err, services.ErrRestaurantMismatch),
		errors.Is(err, services.ErrCheckoutInProgress):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrRestaurantNotFound):
		resp.NotFound(c, err.Error())
	case errors.As(err, &tio):
		c.Error(err)
		resp.Unavailable(c)
	default:
		resp.ServerError(c, err)
	}
}
