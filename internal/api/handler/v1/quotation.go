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

const defaultHistoryLimit = 20

type QuotationService interface {
	CreateDraft(ctx context.Context, museumID *int) (service.Draft, error)
	GetDraft(draftID string) (service.Draft, error)
	SelectMuseum(ctx context.Context, draftID string, museumID int) (service.Draft, error)
	SetSchedule(draftID, date, startHour, endHour string) (service.Draft, error)
	SetCounts(draftID, general, infants string) (service.Draft, error)
	AddGroup(draftID string) (service.Draft, error)
	RemoveGroup(draftID, groupID string) (service.Draft, error)
	UpdateGroup(draftID, groupID string, in service.UpdateGroupInput) (service.Draft, error)
	Submit(ctx context.Context, draftID string) (service.Draft, error)
	Search(ctx context.Context, uniqueID, draftID string) (domain.Quotation, error)
	Clear(draftID string) (service.Draft, error)
	ClearSearch(draftID string) (service.Draft, error)
	DeleteDraft(draftID string) error
	History(ctx context.Context, limit int) ([]domain.QuotationRecord, error)
}

type QuotationHandler struct {
	svc QuotationService
}

func NewQuotationHandler(svc QuotationService) *QuotationHandler {
	return &QuotationHandler{
		svc: svc,
	}
}

func draftIDParam(ctx *gin.Context) (string, *response.Err) {
	draftID := ctx.Param("draftID")
	if err := request.ValidateID(draftID); err != nil {
		return "", response.ErrBadRequest(fmt.Errorf("draftID: %w", err))
	}
	return draftID, nil
}

// renderQuotationErr maps service errors of the quotation flow to responses.
func renderQuotationErr(ctx *gin.Context, op string, draftID string, err error) {
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		response.RenderErr(ctx, response.ErrNotFound("draft", "ID", draftID))
	case errors.Is(err, service.ErrGroupNotFound):
		response.RenderErr(ctx, response.ErrNotFound("group", "ID", ctx.Param("groupID")))
	case errors.Is(err, service.ErrMuseumNotFound):
		response.RenderErr(ctx, response.ErrNotFound("museum", "ID", ctx.Param("museumID")))
	case errors.Is(err, service.ErrDiscountNotAvailable),
		errors.Is(err, service.ErrIncompleteQuotation):
		response.RenderErr(ctx, response.ErrUnprocessable(err))
	default:
		response.RenderErr(ctx, response.ErrBadGateway(fmt.Errorf("%s -> %w", op, err)))
	}
}

// HandleCreateDraft godoc
// @Summary      Start a quotation
// @Description  Creates a quotation draft, optionally with a museum already selected
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateDraftRequest  false  "Museum to select"
// @Success      201    {object}  response.Draft
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      502    {object}  response.Err
// @Router       /quotations/drafts [post]
func (h *QuotationHandler) HandleCreateDraft(ctx *gin.Context) {
	var input request.CreateDraftRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&input); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	draft, err := h.svc.CreateDraft(ctx.Request.Context(), input.MuseumID)
	if err != nil {
		if errors.Is(err, service.ErrMuseumNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("museum", "ID", *input.MuseumID))
			return
		}

		err = fmt.Errorf("HandleCreateDraft -> h.svc.CreateDraft -> %w", err)
		response.RenderErr(ctx, response.ErrBadGateway(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewDraft(draft))
}

// HandleGetDraft godoc
// @Summary      Get a quotation draft
// @Description  Gets a draft with its attendance and price totals
// @Tags         quotations
// @Produce      json
// @Param        draftID  path      string  true  "Draft ID"
// @Success      200      {object}  response.Draft
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /quotations/drafts/{draftID} [get]
func (h *QuotationHandler) HandleGetDraft(ctx *gin.Context) {
	draftID, respErr := draftIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	draft, err := h.svc.GetDraft(draftID)
	if err != nil {
		renderQuotationErr(ctx, "HandleGetDraft -> h.svc.GetDraft", draftID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewDraft(draft))
}

// HandleSelectMuseum godoc
// @Summary      Select the museum of a draft
// @Description  Loads the museum and its discounts into the draft; museum_id -1 resets the draft
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        draftID  path      string                       true  "Draft ID"
// @Param        input    body      request.SelectMuseumRequest  true  "Museum"
// @Success      200      {object}  response.Draft
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      502      {object}  response.Err
// @Router       /quotations/drafts/{draftID}/museum [put]
func (h *QuotationHandler) HandleSelectMuseum(ctx *gin.Context) {
	draftID, respErr := draftIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.SelectMuseumRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	draft, err := h.svc.SelectMuseum(ctx.Request.Context(), draftID, input.MuseumID)
	if err != nil {
		if errors.Is(err, service.ErrMuseumNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("museum", "ID", input.MuseumID))
			return
		}

		renderQuotationErr(ctx, "HandleSelectMuseum -> h.svc.SelectMuseum", draftID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewDraft(draft))
}

// HandleSetSchedule godoc
// @Summary      Set the visit schedule
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        draftID  path      string                   true  "Draft ID"
// @Param        input    body      request.ScheduleRequest  true  "Date (YYYY-MM-DD) and hours (HH:mm)"
// @Success      200      {object}  response.Draft
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /quotations/drafts/{draftID}/schedule [put]
func (h *QuotationHandler) HandleSetSchedule(ctx *gin.Context) {
	draftID, respErr := draftIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.ScheduleRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	draft, err := h.svc.SetSchedule(draftID, input.AppointmentDate, input.StartHour, input.EndHour)
	if err != nil {
		renderQuotationErr(ctx, "HandleSetSchedule -> h.svc.SetSchedule", draftID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewDraft(draft))
}

// HandleSetCounts godoc
// @Summary      Set head-counts
// @Description  Stores the general and infants counts as typed; text that is not a number counts as zero
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        draftID  path      string                 true  "Draft ID"
// @Param        input    body      request.CountsRequest  true  "Counts"
// @Success      200      {object}  response.Draft
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /quotations/drafts/{draftID}/counts [put]
func (h *QuotationHandler) HandleSetCounts(ctx *gin.Context) {
	draftID, respErr := draftIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CountsRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	draft, err := h.svc.SetCounts(draftID, input.General, input.Infants)
	if err != nil {
		renderQuotationErr(ctx, "HandleSetCounts -> h.svc.SetCounts", draftID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewDraft(draft))
}

// HandleAddGroup godoc
// @Summary      Add a discount group
// @Tags         quotations
// @Produce      json
// @Param        draftID  path      string  true  "Draft ID"
// @Success      201      {object}  response.Draft
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /quotations/drafts/{draftID}/groups [post]
func (h *QuotationHandler) HandleAddGroup(ctx *gin.Context) {
	draftID, respErr := draftIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	draft, err := h.svc.AddGroup(draftID)
	if err != nil {
		renderQuotationErr(ctx, "HandleAddGroup -> h.svc.AddGroup", draftID, err)
		return
	}

	ctx.JSON(http.StatusCreated, response.NewDraft(draft))
}

// HandleUpdateGroup godoc
// @Summary      Update a discount group
// @Description  Changes the count text and/or the discount of a group
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        draftID  path      string                      true  "Draft ID"
// @Param        groupID  path      string                      true  "Group ID"
// @Param        input    body      request.UpdateGroupRequest  true  "Changes"
// @Success      200      {object}  response.Draft
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /quotations/drafts/{draftID}/groups/{groupID} [put]
func (h *QuotationHandler) HandleUpdateGroup(ctx *gin.Context) {
	draftID, respErr := draftIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	groupID := ctx.Param("groupID")
	if err := request.ValidateID(groupID); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("groupID: %w", err)))
		return
	}

	var input request.UpdateGroupRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	draft, err := h.svc.UpdateGroup(draftID, groupID, service.UpdateGroupInput{
		Count:         input.Count,
		DiscountID:    input.DiscountID,
		ClearDiscount: input.ClearDiscount,
	})
	if err != nil {
		renderQuotationErr(ctx, "HandleUpdateGroup -> h.svc.UpdateGroup", draftID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewDraft(draft))
}

// HandleRemoveGroup godoc
// @Summary      Remove a discount group
// @Description  Removes a group; removing the last one leaves a single empty group
// @Tags         quotations
// @Produce      json
// @Param        draftID  path      string  true  "Draft ID"
// @Param        groupID  path      string  true  "Group ID"
// @Success      200      {object}  response.Draft
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /quotations/drafts/{draftID}/groups/{groupID} [delete]
func (h *QuotationHandler) HandleRemoveGroup(ctx *gin.Context) {
	draftID, respErr := draftIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	groupID := ctx.Param("groupID")
	if err := request.ValidateID(groupID); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("groupID: %w", err)))
		return
	}

	draft, err := h.svc.RemoveGroup(draftID, groupID)
	if err != nil {
		renderQuotationErr(ctx, "HandleRemoveGroup -> h.svc.RemoveGroup", draftID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewDraft(draft))
}

// HandleSubmit godoc
// @Summary      Submit a quotation
// @Description  Creates the quotation on the backend from the draft
// @Tags         quotations
// @Produce      json
// @Param        draftID  path      string  true  "Draft ID"
// @Success      201      {object}  response.Draft
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      502      {object}  response.Err
// @Router       /quotations/drafts/{draftID}/submit [post]
func (h *QuotationHandler) HandleSubmit(ctx *gin.Context) {
	draftID, respErr := draftIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	draft, err := h.svc.Submit(ctx.Request.Context(), draftID)
	if err != nil {
		renderQuotationErr(ctx, "HandleSubmit -> h.svc.Submit", draftID, err)
		return
	}

	ctx.JSON(http.StatusCreated, response.NewDraft(draft))
}

// HandleClearDraft godoc
// @Summary      Clear a draft
// @Description  Resets every input of the draft; with ?scope=search only the stored quotation is dropped
// @Tags         quotations
// @Produce      json
// @Param        draftID  path      string  true   "Draft ID"
// @Param        scope    query     string  false  "all (default) or search"
// @Success      200      {object}  response.Draft
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /quotations/drafts/{draftID}/clear [post]
func (h *QuotationHandler) HandleClearDraft(ctx *gin.Context) {
	draftID, respErr := draftIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var (
		draft service.Draft
		err   error
	)
	switch scope := ctx.DefaultQuery("scope", "all"); scope {
	case "all":
		draft, err = h.svc.Clear(draftID)
	case "search":
		draft, err = h.svc.ClearSearch(draftID)
	default:
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown scope '%s'", scope)))
		return
	}
	if err != nil {
		renderQuotationErr(ctx, "HandleClearDraft -> h.svc.Clear", draftID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewDraft(draft))
}

// HandleDeleteDraft godoc
// @Summary      Delete a draft
// @Tags         quotations
// @Param        draftID  path  string  true  "Draft ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /quotations/drafts/{draftID} [delete]
func (h *QuotationHandler) HandleDeleteDraft(ctx *gin.Context) {
	draftID, respErr := draftIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteDraft(draftID); err != nil {
		renderQuotationErr(ctx, "HandleDeleteDraft -> h.svc.DeleteDraft", draftID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSearchQuotation godoc
// @Summary      Find a quotation
// @Description  Looks a quotation up on the backend by its unique id; with draft_id the result is also kept on that draft
// @Tags         quotations
// @Produce      json
// @Param        uniqueID  path      string  true   "Quotation unique ID"
// @Param        draft_id  query     string  false  "Draft to store the result on"
// @Success      200       {object}  domain.Quotation
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      502       {object}  response.Err
// @Router       /quotations/{uniqueID} [get]
func (h *QuotationHandler) HandleSearchQuotation(ctx *gin.Context) {
	uniqueID := ctx.Param("uniqueID")
	draftID := ctx.Query("draft_id")
	if draftID != "" {
		if err := request.ValidateID(draftID); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("draft_id: %w", err)))
			return
		}
	}

	q, err := h.svc.Search(ctx.Request.Context(), uniqueID, draftID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyQuotationID):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrQuotationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("quotation", "unique ID", uniqueID))
		default:
			renderQuotationErr(ctx, "HandleSearchQuotation -> h.svc.Search", draftID, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, q)
}

// HandleListHistory godoc
// @Summary      Quotation history
// @Description  Quotations created through this API, newest first; empty when history is disabled
// @Tags         quotations
// @Produce      json
// @Param        limit  query     int  false  "Max entries (default 20, max 100)"
// @Success      200    {array}   domain.QuotationRecord
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /quotations/history [get]
func (h *QuotationHandler) HandleListHistory(ctx *gin.Context) {
	var query request.HistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if query.Limit == 0 {
		query.Limit = defaultHistoryLimit
	}

	records, err := h.svc.History(ctx.Request.Context(), query.Limit)
	if err != nil {
		err = fmt.Errorf("HandleListHistory -> h.svc.History -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}
