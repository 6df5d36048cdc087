package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
)

// ReportHandler handles moderation reports.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Create returns the handler for POST /api/v1/{kind}s/:{kind}id/reports.
//
// @Summary      Report a discussion, answer or comment
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        id    path      int                  true  "Reported entity id"
// @Param        body  body      createReportRequest  true  "Reason"
// @Success      201   {object}  domain.Report
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /discussions/{id}/reports [post]
// @Router       /answers/{id}/reports [post]
// @Router       /comments/{id}/reports [post]
func (h *ReportHandler) Create(kind domain.ReportKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		targetID, err := pathID(c, string(kind)+"id")
		if err != nil {
			return err
		}
		var req createReportRequest
		if err := bindValid(c, &req); err != nil {
			return err
		}
		caller, err := ctxCaller(c)
		if err != nil {
			return err
		}

		r, err := h.service.Create(c.Request().Context(), ports.CreateReportInput{
			Kind:     kind,
			TargetID: targetID,
			Reason:   req.Reason,
			Caller:   caller,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, r)
	}
}

// List handles GET /api/v1/reports.
//
// @Summary      List reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        kind  query     string  false  "discussion, answer or comment"
// @Success      200   {array}   domain.Report
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	var q listReportsQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	reports, err := h.service.List(c.Request().Context(), caller, domain.ReportKind(q.Kind))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// Get handles GET /api/v1/reports/:id.
//
// @Summary      Get a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        id  path      int  true  "Report id"
// @Success      200 {object}  domain.Report
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	r, err := h.service.Get(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Resolve handles PUT /api/v1/reports/:id/status.
//
// @Summary      Set the moderation status of a report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        id    path      int                   true  "Report id"
// @Param        body  body      resolveReportRequest  true  "Status"
// @Success      200   {object}  domain.Report
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /reports/{id}/status [put]
func (h *ReportHandler) Resolve(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req resolveReportRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	r, err := h.service.Resolve(c.Request().Context(), caller, id, domain.ReportStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}
