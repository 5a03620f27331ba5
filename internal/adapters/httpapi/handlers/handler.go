package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/ThurpatiNainesh/tinylink/internal/adapters/httpapi/problems"
	"github.com/ThurpatiNainesh/tinylink/internal/app/links"
	"github.com/ThurpatiNainesh/tinylink/internal/domain"
)

const defaultVisitTimeout = 2 * time.Second

type Handler struct {
	svc     links.UseCase
	baseURL string

	version      string
	startedAt    time.Time
	visitTimeout time.Duration
	now          func() time.Time
}

type Option func(*Handler)

func WithVersion(v string) Option {
	return func(h *Handler) { h.version = v }
}

// WithStartedAt sets the instant health uptime is measured from.
func WithStartedAt(t time.Time) Option {
	return func(h *Handler) { h.startedAt = t }
}

// WithVisitTimeout bounds the click update of a redirect. The update runs
// detached from the client connection.
func WithVisitTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.visitTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func New(svc links.UseCase, baseURL string, opts ...Option) *Handler {
	h := &Handler{
		svc:          svc,
		baseURL:      baseURL,
		version:      "dev",
		visitTimeout: defaultVisitTimeout,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.startedAt.IsZero() {
		h.startedAt = h.now()
	}

	return h
}

func (h *Handler) fail(c *gin.Context, err error) {
	p := problemFromError(err)
	if p.Status >= http.StatusInternalServerError {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}

		_ = c.Error(err)
	}

	problems.WriteProblem(c, p)
}

func (h *Handler) NotFound(c *gin.Context) {
	problems.WriteProblem(c, problems.Problem{
		Type:   problems.ProblemTypeNotFound,
		Title:  problems.TitleNotFound,
		Status: http.StatusNotFound,
		Detail: problems.DetailRouteNotFound,
	})
}

func problemFromError(err error) problems.Problem {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return validationProblem(problems.DetailInvalidURL)
	case errors.Is(err, domain.ErrReservedCode):
		return validationProblem(problems.DetailReservedCode)
	case errors.Is(err, domain.ErrInvalidCode):
		return validationProblem(problems.DetailInvalidCode)
	case errors.Is(err, domain.ErrCodeExists):
		return problems.Problem{
			Type:   problems.ProblemTypeConflict,
			Title:  problems.TitleConflict,
			Status: http.StatusConflict,
			Detail: problems.DetailCodeExists,
		}
	case errors.Is(err, domain.ErrNotFound):
		return problems.Problem{
			Type:   problems.ProblemTypeNotFound,
			Title:  problems.TitleNotFound,
			Status: http.StatusNotFound,
			Detail: problems.DetailNotFound,
		}
	case errors.Is(err, domain.ErrAllocationExhausted):
		return problems.Problem{
			Type:   problems.ProblemTypeInternal,
			Title:  problems.TitleInternalError,
			Status: http.StatusInternalServerError,
			Detail: problems.DetailExhausted,
		}
	case errors.Is(err, context.DeadlineExceeded):
		return problems.Problem{
			Type:   problems.ProblemTypeTimeout,
			Title:  problems.TitleGatewayTimeout,
			Status: http.StatusGatewayTimeout,
			Detail: problems.DetailTimeout,
		}
	case errors.Is(err, context.Canceled):
		return problems.Problem{
			Type:   problems.ProblemTypeCanceled,
			Title:  problems.TitleRequestCanceled,
			Status: problems.StatusClientClosedRequest,
			Detail: problems.DetailRequestCanceled,
		}
	case errors.Is(err, domain.ErrStoreUnavailable):
		return problems.Problem{
			Type:   problems.ProblemTypeUnavailable,
			Title:  problems.TitleServiceUnavailable,
			Status: http.StatusServiceUnavailable,
			Detail: problems.DetailUnavailable,
		}
	default:
		return problems.Problem{
			Type:   problems.ProblemTypeInternal,
			Title:  problems.TitleInternalError,
			Status: http.StatusInternalServerError,
			Detail: problems.DetailInternalError,
		}
	}
}

func validationProblem(detail string) problems.Problem {
	return problems.Problem{
		Type:   problems.ProblemTypeValidation,
		Title:  problems.TitleValidation,
		Status: http.StatusBadRequest,
		Detail: detail,
	}
}
