package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Demianms/MuseosApp/internal/api/handler/v1/request"
	"github.com/Demianms/MuseosApp/internal/api/handler/v1/response"
	"github.com/Demianms/MuseosApp/internal/domain"
	"github.com/Demianms/MuseosApp/internal/service"
)

type WeatherService interface {
	GetCurrent(ctx context.Context, location string) (domain.Weather, error)
}

type WeatherHandler struct {
	svc WeatherService
}

func NewWeatherHandler(svc WeatherService) *WeatherHandler {
	return &WeatherHandler{
		svc: svc,
	}
}

// HandleGetWeather godoc
// @Summary      Current weather
// @Description  Current conditions for a location, or for the configured default location
// @Tags         weather
// @Produce      json
// @Param        q    query     string  false  "Location"
// @Success      200  {object}  domain.Weather
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /weather [get]
func (h *WeatherHandler) HandleGetWeather(ctx *gin.Context) {
	var query request.WeatherQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	w, err := h.svc.GetCurrent(ctx.Request.Context(), query.Location)
	if err != nil {
		if errors.Is(err, service.ErrWeatherUnavailable) {
			response.RenderErr(ctx, response.ErrNotFound("weather", "location", query.Location))
			return
		}

		err = fmt.Errorf("HandleGetWeather -> h.svc.GetCurrent -> %w", err)
		response.RenderErr(ctx, response.ErrBadGateway(err))
		return
	}

	ctx.JSON(http.StatusOK, w)
}
