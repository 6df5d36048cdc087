package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmsforum/forum/internal/core/ports"
)

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create handles POST /api/v1/answers/:answerid/comments.
//
// @Summary      Comment an answer
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        answerid  path      int                   true  "Answer id"
// @Param        body      body      createCommentRequest  true  "Comment"
// @Success      200       {object}  domain.Comment
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /answers/{answerid}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	answerID, err := pathID(c, "answerid")
	if err != nil {
		return err
	}
	var req createCommentRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	comment, err := h.service.Create(c.Request().Context(), ports.CreateCommentInput{
		DiscussionID: req.DiscussionID,
		AnswerID:     answerID,
		Content:      req.Content,
		Caller:       caller,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// ListForDiscussion handles GET /api/v1/discussions/:discussionid/comments.
//
// @Summary      List the comments of a discussion
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        discussionid  path      int  true  "Discussion id"
// @Success      200           {array}   domain.Comment
// @Failure      400           {object}  errorResponse
// @Failure      401           {object}  errorResponse
// @Router       /discussions/{discussionid}/comments [get]
func (h *CommentHandler) ListForDiscussion(c echo.Context) error {
	discussionID, err := pathID(c, "discussionid")
	if err != nil {
		return err
	}
	comments, err := h.service.ListForDiscussion(c.Request().Context(), discussionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// ListForAnswer handles GET /api/v1/answers/:answerid/comments.
//
// @Summary      List the comments of an answer
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        answerid  path      int  true  "Answer id"
// @Success      200       {array}   domain.Comment
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /answers/{answerid}/comments [get]
func (h *CommentHandler) ListForAnswer(c echo.Context) error {
	answerID, err := pathID(c, "answerid")
	if err != nil {
		return err
	}
	comments, err := h.service.ListForAnswer(c.Request().Context(), answerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// Get handles GET /api/v1/discussions/:discussionid/answers/:answerid/comment.
//
// @Summary      Get the comment of an answer
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        discussionid  path      int  true  "Discussion id"
// @Param        answerid      path      int  true  "Answer id"
// @Success      200           {object}  domain.Comment
// @Failure      400           {object}  errorResponse
// @Failure      401           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Router       /discussions/{discussionid}/answers/{answerid}/comment [get]
func (h *CommentHandler) Get(c echo.Context) error {
	discussionID, err := pathID(c, "discussionid")
	if err != nil {
		return err
	}
	answerID, err := pathID(c, "answerid")
	if err != nil {
		return err
	}
	comment, err := h.service.Get(c.Request().Context(), discussionID, answerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}
