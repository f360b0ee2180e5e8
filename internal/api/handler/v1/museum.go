package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Demianms/MuseosApp/internal/api/handler/v1/request"
	"github.com/Demianms/MuseosApp/internal/api/handler/v1/response"
	"github.com/Demianms/MuseosApp/internal/domain"
	"github.com/Demianms/MuseosApp/internal/service"
)

type MuseumService interface {
	LoadCatalog(ctx context.Context, categoryID *int) (service.Catalog, error)
	GetMuseum(ctx context.Context, id int) (domain.Museum, error)
	GetRoom(ctx context.Context, museumID, roomID int) (domain.Room, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListDiscounts(ctx context.Context) ([]domain.Discount, error)
}

type MuseumHandler struct {
	svc MuseumService
}

func NewMuseumHandler(svc MuseumService) *MuseumHandler {
	return &MuseumHandler{
		svc: svc,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int, *response.Err) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id < 1 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s '%s'", name, ctx.Param(name)))
	}
	return id, nil
}

// HandleListMuseums godoc
// @Summary      List museums
// @Description  Lists museums together with every category, optionally keeping only museums of one category
// @Tags         museums
// @Produce      json
// @Param        category_id  query     int  false  "Category ID"
// @Success      200          {object}  response.Catalog
// @Failure      400          {object}  response.Err
// @Failure      502          {object}  response.Err
// @Router       /museums [get]
func (h *MuseumHandler) HandleListMuseums(ctx *gin.Context) {
	var query request.MuseumListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	catalog, err := h.svc.LoadCatalog(ctx.Request.Context(), query.CategoryID)
	if err != nil {
		err = fmt.Errorf("HandleListMuseums -> h.svc.LoadCatalog -> %w", err)
		response.RenderErr(ctx, response.ErrBadGateway(err))
		return
	}

	ctx.JSON(http.StatusOK, response.Catalog{
		Museums:    catalog.Museums,
		Categories: catalog.Categories,
	})
}

// HandleGetMuseum godoc
// @Summary      Get a museum
// @Description  Gets a museum with its rooms, categories and discounts
// @Tags         museums
// @Produce      json
// @Param        museumID  path      int  true  "Museum ID"
// @Success      200       {object}  domain.Museum
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      502       {object}  response.Err
// @Router       /museums/{museumID} [get]
func (h *MuseumHandler) HandleGetMuseum(ctx *gin.Context) {
	museumID, respErr := parseIDParam(ctx, "museumID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	museum, err := h.svc.GetMuseum(ctx.Request.Context(), museumID)
	if err != nil {
		if errors.Is(err, service.ErrMuseumNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("museum", "ID", museumID))
			return
		}

		err = fmt.Errorf("HandleGetMuseum -> h.svc.GetMuseum -> %w", err)
		response.RenderErr(ctx, response.ErrBadGateway(err))
		return
	}

	ctx.JSON(http.StatusOK, museum)
}

// HandleGetRoom godoc
// @Summary      Get a room
// @Description  Gets one room of a museum
// @Tags         museums
// @Produce      json
// @Param        museumID  path      int  true  "Museum ID"
// @Param        roomID    path      int  true  "Room ID"
// @Success      200       {object}  response.Room
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      502       {object}  response.Err
// @Router       /museums/{museumID}/rooms/{roomID} [get]
func (h *MuseumHandler) HandleGetRoom(ctx *gin.Context) {
	museumID, respErr := parseIDParam(ctx, "museumID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	roomID, respErr := parseIDParam(ctx, "roomID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	room, err := h.svc.GetRoom(ctx.Request.Context(), museumID, roomID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMuseumNotFound):
			response.RenderErr(ctx, response.ErrNotFound("museum", "ID", museumID))
		case errors.Is(err, service.ErrRoomNotFound):
			response.RenderErr(ctx, response.ErrNotFound("room", "ID", roomID))
		default:
			err = fmt.Errorf("HandleGetRoom -> h.svc.GetRoom -> %w", err)
			response.RenderErr(ctx, response.ErrBadGateway(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.Room{MuseumID: museumID, Room: room})
}

// HandleListCategories godoc
// @Summary      List categories
// @Tags         museums
// @Produce      json
// @Success      200  {array}   domain.Category
// @Failure      502  {object}  response.Err
// @Router       /categories [get]
func (h *MuseumHandler) HandleListCategories(ctx *gin.Context) {
	categories, err := h.svc.ListCategories(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListCategories -> h.svc.ListCategories -> %w", err)
		response.RenderErr(ctx, response.ErrBadGateway(err))
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// HandleListDiscounts godoc
// @Summary      List discounts
// @Tags         museums
// @Produce      json
// @Success      200  {array}   domain.Discount
// @Failure      502  {object}  response.Err
// @Router       /discounts [get]
func (h *MuseumHandler) HandleListDiscounts(ctx *gin.Context) {
	discounts, err := h.svc.ListDiscounts(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListDiscounts -> h.svc.ListDiscounts -> %w", err)
		response.RenderErr(ctx, response.ErrBadGateway(err))
		return
	}

	ctx.JSON(http.StatusOK, discounts)
}
