package api

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/dmsforum/forum/docs"
	"github.com/dmsforum/forum/internal/api/handler"
	"github.com/dmsforum/forum/internal/api/middleware"
	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
	infrahttp "github.com/dmsforum/forum/internal/infrastructure/http"
	"github.com/dmsforum/forum/internal/infrastructure/http/handlers"
)

// Dependencies are the collaborators the backend router needs.
type Dependencies struct {
	Comments    ports.CommentService
	Discussions ports.DiscussionService
	Reports     ports.ReportService
	Security    middleware.SecurityConfig
	Checks      []handlers.Check
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := infrahttp.NewServer(infrahttp.Options{
		Logger:       deps.Logger,
		ErrorHandler: NewHTTPErrorHandler(deps.Logger),
		Checks:       deps.Checks,
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	comments := handler.NewCommentHandler(deps.Comments)
	discussions := handler.NewDiscussionHandler(deps.Discussions)
	reports := handler.NewReportHandler(deps.Reports)

	// --- Protected API: every route passes the security callbacks first ---
	v1 := e.Group("/api/v1", middleware.Security(deps.Security))

	v1.POST("/discussions", discussions.Create)
	v1.GET("/discussions", discussions.List)
	v1.GET("/discussions/:discussionid", discussions.Get)
	v1.POST("/discussions/:discussionid/answers", discussions.Answer)
	v1.GET("/discussions/:discussionid/answers", discussions.ListAnswers)

	v1.POST("/answers/:answerid/comments", comments.Create)
	v1.GET("/answers/:answerid/comments", comments.ListForAnswer)
	v1.GET("/discussions/:discussionid/comments", comments.ListForDiscussion)
	v1.GET("/discussions/:discussionid/answers/:answerid/comment", comments.Get)

	v1.POST("/discussions/:discussionid/reports", reports.Create(domain.ReportDiscussion))
	v1.POST("/answers/:answerid/reports", reports.Create(domain.ReportAnswer))
	v1.POST("/comments/:commentid/reports", reports.Create(domain.ReportComment))
	v1.GET("/reports", reports.List)
	v1.GET("/reports/:id", reports.Get)
	v1.PUT("/reports/:id/status", reports.Resolve)

	return e
}
