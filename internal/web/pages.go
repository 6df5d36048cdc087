package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
	"github.com/dmsforum/forum/internal/infrastructure/rest"
	"github.com/dmsforum/forum/internal/metrics"
)

// view is the data every template receives.
type view struct {
	Name  string
	Roles []string
	Error string
	Page  any
}

type discussionPage struct {
	Discussion *domain.Discussion
	Answers    []domain.Answer
	// Comments groups the discussion's comments by answer id.
	Comments map[int64][]domain.Comment
}

type reportsPage struct {
	Discussions []domain.Report
	Answers     []domain.Report
	Comments    []domain.Report
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type discussionQuery struct {
	DiscussionID int64 `query:"discussionid" validate:"required,gt=0"`
}

type reportQuery struct {
	ReportID int64 `query:"reportid" validate:"required,gt=0"`
}

type newDiscussionForm struct {
	Title   string `form:"title"   validate:"required,max=100"`
	Content string `form:"content" validate:"required,max=500"`
}

type answerForm struct {
	DiscussionID int64  `form:"discussionid" validate:"required,gt=0"`
	Content      string `form:"content"      validate:"required,max=500"`
}

type commentForm struct {
	DiscussionID int64  `form:"discussionid" validate:"required,gt=0"`
	AnswerID     int64  `form:"answerid"     validate:"required,gt=0"`
	Content      string `form:"content"      validate:"required,max=250"`
}

type reportForm struct {
	DiscussionID int64  `form:"discussionid" validate:"required,gt=0"`
	Kind         string `form:"kind"         validate:"required,oneof=discussion answer comment"`
	TargetID     int64  `form:"targetid"     validate:"required,gt=0"`
	Reason       string `form:"reason"       validate:"required,max=250"`
}

type resolveForm struct {
	ReportID int64  `form:"reportid" validate:"required,gt=0"`
	Status   string `form:"status"   validate:"required,oneof=pending accepted rejected"`
}

// Pages holds the frontend's page handlers.
type Pages struct {
	gate         *Gate
	auth         ports.AuthClient
	backend      ports.BackendClient
	sessions     ports.SessionStore
	sessionTTL   time.Duration
	cookieSecure bool
	log          zerolog.Logger
}

func render(c echo.Context, code int, name string, sess *domain.Session, page any) error {
	v := view{Page: page}
	if sess != nil {
		v.Name = sess.User
		v.Roles = sess.Roles
	}
	return c.Render(code, name, v)
}

func bindForm(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// fail renders backend failures. A 401 from the backend means the token
// expired, so the session is ended.
func (p *Pages) fail(c echo.Context, sess *domain.Session, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return render(c, he.Code, "error", sess, he.Message)
	}

	code := rest.StatusCode(err)
	switch {
	case code == http.StatusUnauthorized:
		p.gate.end(c, sess.ID)
		return c.Redirect(http.StatusFound, loginPath)
	case code == http.StatusForbidden:
		return c.Redirect(http.StatusFound, homePath)
	case code >= 400 && code < 500:
		return render(c, code, "error", sess, err.Error())
	}

	p.log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("backend call failed")
	return render(c, http.StatusBadGateway, "error", sess, "the forum is unavailable, try again later")
}

func discussionURL(base string, id int64) string {
	return base + "?discussionid=" + strconv.FormatInt(id, 10)
}

// ── Public pages ──────────────────────────────────────────────────────────────

func (p *Pages) LoginForm(c echo.Context) error {
	return render(c, http.StatusOK, "login", nil, nil)
}

// Login authenticates against the auth service, collects the roles it
// confirms and starts a new session.
func (p *Pages) Login(c echo.Context) error {
	var form loginForm
	if err := bindForm(c, &form); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.Render(http.StatusBadRequest, "login", view{Error: "username and password are required"})
	}

	ctx := c.Request().Context()
	token, err := p.auth.Login(ctx, form.Username, form.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		p.log.Info().Err(err).Str("user", form.Username).Msg("login rejected")
		return c.Render(http.StatusUnauthorized, "login", view{Error: "invalid username or password"})
	}

	roles, err := p.auth.Roles(ctx, token, form.Username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		p.log.Error().Err(err).Str("user", form.Username).Msg("failed to resolve roles")
		return c.Render(http.StatusBadGateway, "login", view{Error: "the authentication service is unavailable"})
	}

	if old := p.gate.load(c); old != nil {
		p.gate.end(c, old.ID)
	}

	sess := &domain.Session{User: form.Username, Roles: roles, Token: token}
	if err := p.sessions.Create(ctx, sess); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		p.log.Error().Err(err).Msg("failed to create session")
		return c.Render(http.StatusInternalServerError, "login", view{Error: "could not start a session"})
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(p.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   p.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	p.log.Info().Str("user", sess.User).Strs("roles", roles).Msg("user logged in")
	return c.Redirect(http.StatusSeeOther, homePath)
}

func (p *Pages) Logout(c echo.Context) error {
	id := ""
	if sess := p.gate.load(c); sess != nil {
		id = sess.ID
	}
	p.gate.end(c, id)
	return c.Redirect(http.StatusFound, loginPath)
}

// ── Discussion pages ──────────────────────────────────────────────────────────

func (p *Pages) Home(c echo.Context, sess *domain.Session) error {
	return render(c, http.StatusOK, "home", sess, nil)
}

func (p *Pages) Discussions(c echo.Context, sess *domain.Session) error {
	list, err := p.backend.ListDiscussions(c.Request().Context(), sess.Token)
	if err != nil {
		return p.fail(c, sess, err)
	}
	return render(c, http.StatusOK, "discussions", sess, list)
}

func (p *Pages) ViewDiscussion(c echo.Context, sess *domain.Session) error {
	var q discussionQuery
	if err := bindForm(c, &q); err != nil {
		return p.fail(c, sess, err)
	}

	ctx := c.Request().Context()
	d, err := p.backend.GetDiscussion(ctx, sess.Token, q.DiscussionID)
	if err != nil {
		return p.fail(c, sess, err)
	}
	answers, err := p.backend.ListAnswers(ctx, sess.Token, q.DiscussionID)
	if err != nil {
		return p.fail(c, sess, err)
	}
	comments, err := p.backend.ListComments(ctx, sess.Token, q.DiscussionID)
	if err != nil {
		return p.fail(c, sess, err)
	}

	byAnswer := make(map[int64][]domain.Comment, len(answers))
	for _, cm := range comments {
		byAnswer[cm.AnswerID] = append(byAnswer[cm.AnswerID], cm)
	}
	return render(c, http.StatusOK, "discussion", sess, discussionPage{
		Discussion: d,
		Answers:    answers,
		Comments:   byAnswer,
	})
}

func (p *Pages) NewDiscussion(c echo.Context, sess *domain.Session) error {
	var form newDiscussionForm
	if err := bindForm(c, &form); err != nil {
		return p.fail(c, sess, err)
	}
	d, err := p.backend.CreateDiscussion(c.Request().Context(), sess.Token, form.Title, form.Content)
	if err != nil {
		return p.fail(c, sess, err)
	}
	return c.Redirect(http.StatusSeeOther, discussionURL("/discussions/view", d.ID))
}

func (p *Pages) Answer(c echo.Context, sess *domain.Session) error {
	var form answerForm
	if err := bindForm(c, &form); err != nil {
		return p.fail(c, sess, err)
	}
	if _, err := p.backend.CreateAnswer(c.Request().Context(), sess.Token, form.DiscussionID, form.Content); err != nil {
		return p.fail(c, sess, err)
	}
	return c.Redirect(http.StatusSeeOther, discussionURL("/discussions/view", form.DiscussionID))
}

func (p *Pages) Comment(c echo.Context, sess *domain.Session) error {
	var form commentForm
	if err := bindForm(c, &form); err != nil {
		return p.fail(c, sess, err)
	}
	if _, err := p.backend.CreateComment(c.Request().Context(), sess.Token, form.DiscussionID, form.AnswerID, form.Content); err != nil {
		return p.fail(c, sess, err)
	}
	return c.Redirect(http.StatusSeeOther, discussionURL("/discussions/view", form.DiscussionID))
}

func (p *Pages) Report(c echo.Context, sess *domain.Session) error {
	var form reportForm
	if err := bindForm(c, &form); err != nil {
		return p.fail(c, sess, err)
	}
	if _, err := p.backend.CreateReport(c.Request().Context(), sess.Token, domain.ReportKind(form.Kind), form.TargetID, form.Reason); err != nil {
		return p.fail(c, sess, err)
	}
	return c.Redirect(http.StatusSeeOther, discussionURL("/discussions/view", form.DiscussionID))
}

// ── Moderator pages ───────────────────────────────────────────────────────────

func (p *Pages) Moderator(c echo.Context, sess *domain.Session) error {
	return render(c, http.StatusOK, "moderator", sess, nil)
}

func (p *Pages) Reports(c echo.Context, sess *domain.Session) error {
	ctx := c.Request().Context()
	var page reportsPage
	for kind, dst := range map[domain.ReportKind]*[]domain.Report{
		domain.ReportDiscussion: &page.Discussions,
		domain.ReportAnswer:     &page.Answers,
		domain.ReportComment:    &page.Comments,
	} {
		list, err := p.backend.ListReports(ctx, sess.Token, kind)
		if err != nil {
			return p.fail(c, sess, err)
		}
		*dst = list
	}
	return render(c, http.StatusOK, "reports", sess, page)
}

func (p *Pages) ViewReport(c echo.Context, sess *domain.Session) error {
	var q reportQuery
	if err := bindForm(c, &q); err != nil {
		return p.fail(c, sess, err)
	}
	r, err := p.backend.GetReport(c.Request().Context(), sess.Token, q.ReportID)
	if err != nil {
		return p.fail(c, sess, err)
	}
	return render(c, http.StatusOK, "report", sess, r)
}

func (p *Pages) ResolveReport(c echo.Context, sess *domain.Session) error {
	var form resolveForm
	if err := bindForm(c, &form); err != nil {
		return p.fail(c, sess, err)
	}
	if _, err := p.backend.ResolveReport(c.Request().Context(), sess.Token, form.ReportID, domain.ReportStatus(form.Status)); err != nil {
		return p.fail(c, sess, err)
	}
	return c.Redirect(http.StatusSeeOther, "/moderator/report/view?reportid="+strconv.FormatInt(form.ReportID, 10))
}

func (p *Pages) ModeratorDiscussions(c echo.Context, sess *domain.Session) error {
	list, err := p.backend.ListDiscussions(c.Request().Context(), sess.Token)
	if err != nil {
		return p.fail(c, sess, err)
	}
	return render(c, http.StatusOK, "moderator_discussions", sess, list)
}

func (p *Pages) Resolution(c echo.Context, sess *domain.Session) error {
	return render(c, http.StatusOK, "resolution", sess, c.QueryParam("reporttitle"))
}

func (p *Pages) TitleView(c echo.Context, sess *domain.Session) error {
	return render(c, http.StatusOK, "title", sess, c.QueryParam("discussiontitle"))
}

// redirectHome serves GET /.
func redirectHome(c echo.Context) error {
	return c.Redirect(http.StatusFound, homePath)
}
