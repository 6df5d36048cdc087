package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmsforum/forum/internal/core/ports"
)

// DiscussionHandler handles discussions and their answers.
type DiscussionHandler struct {
	service ports.DiscussionService
}

func NewDiscussionHandler(service ports.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{service: service}
}

// Create handles POST /api/v1/discussions.
//
// @Summary      Open a discussion
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        body  body      createDiscussionRequest  true  "Discussion"
// @Success      201   {object}  domain.Discussion
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /discussions [post]
func (h *DiscussionHandler) Create(c echo.Context) error {
	var req createDiscussionRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	d, err := h.service.Create(c.Request().Context(), ports.CreateDiscussionInput{
		Title:   req.Title,
		Content: req.Content,
		Caller:  caller,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

// List handles GET /api/v1/discussions.
//
// @Summary      List discussions
// @Tags         discussions
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Success      200  {array}   domain.Discussion
// @Failure      401  {object}  errorResponse
// @Router       /discussions [get]
func (h *DiscussionHandler) List(c echo.Context) error {
	discussions, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, discussions)
}

// Get handles GET /api/v1/discussions/:discussionid.
//
// @Summary      Get a discussion
// @Tags         discussions
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        discussionid  path      int  true  "Discussion id"
// @Success      200           {object}  domain.Discussion
// @Failure      400           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Router       /discussions/{discussionid} [get]
func (h *DiscussionHandler) Get(c echo.Context) error {
	id, err := pathID(c, "discussionid")
	if err != nil {
		return err
	}
	d, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// Answer handles POST /api/v1/discussions/:discussionid/answers.
//
// @Summary      Answer a discussion
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        discussionid  path      int                  true  "Discussion id"
// @Param        body          body      createAnswerRequest  true  "Answer"
// @Success      201           {object}  domain.Answer
// @Failure      400           {object}  errorResponse
// @Failure      403           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Router       /discussions/{discussionid}/answers [post]
func (h *DiscussionHandler) Answer(c echo.Context) error {
	discussionID, err := pathID(c, "discussionid")
	if err != nil {
		return err
	}
	var req createAnswerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	a, err := h.service.Answer(c.Request().Context(), ports.CreateAnswerInput{
		DiscussionID: discussionID,
		Content:      req.Content,
		Caller:       caller,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// ListAnswers handles GET /api/v1/discussions/:discussionid/answers.
//
// @Summary      List the answers of a discussion
// @Tags         answers
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        discussionid  path      int  true  "Discussion id"
// @Success      200           {array}   domain.Answer
// @Failure      400           {object}  errorResponse
// @Router       /discussions/{discussionid}/answers [get]
func (h *DiscussionHandler) ListAnswers(c echo.Context) error {
	discussionID, err := pathID(c, "discussionid")
	if err != nil {
		return err
	}
	answers, err := h.service.ListAnswers(c.Request().Context(), discussionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, answers)
}
