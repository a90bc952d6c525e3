package handlers

import (
	"errors"
	"net/http"

	"github.com/fatflowers/frontdesk/internal/app/service/catalog"
	"github.com/fatflowers/frontdesk/internal/app/service/checkin"
	"github.com/fatflowers/frontdesk/internal/app/service/membership"
	"github.com/fatflowers/frontdesk/internal/app/service/revenue"
	"github.com/fatflowers/frontdesk/internal/app/service/statistics"
	"github.com/fatflowers/frontdesk/pkg/logctx"
	"github.com/fatflowers/frontdesk/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	badRequestErrors = []error{
		checkin.ErrMissingIdentifier,
		checkin.ErrInvalidFacility,
		catalog.ErrUnknownPlan,
		membership.ErrMissingIdentity,
		membership.ErrMissingName,
		membership.ErrDropInPlan,
		membership.ErrInvalidPassType,
		membership.ErrInvalidPauseDays,
		revenue.ErrInvalidAmount,
		revenue.ErrMissingPlan,
		statistics.ErrEmptyRequest,
	}
	notFoundErrors = []error{
		membership.ErrMemberNotFound,
		revenue.ErrMemberNotFound,
	}
	conflictErrors = []error{
		membership.ErrDuplicateMember,
		membership.ErrPauseNotAllowed,
		membership.ErrResumeNotAllowed,
		membership.ErrNoEndDate,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func codeFor(err error) response.APIResponseCode {
	switch {
	case isAny(err, badRequestErrors):
		return response.APIResponseCodeBadRequest
	case isAny(err, notFoundErrors):
		return response.APIResponseCodeNotFound
	case isAny(err, conflictErrors):
		return response.APIResponseCodeConflict
	default:
		return response.APIResponseCodeError
	}
}

// writeError maps service errors onto the response envelope. Unclassified errors are logged and
// reported with the generic system error message.
func writeError(c *gin.Context, base *zap.SugaredLogger, err error) {
	code := codeFor(err)
	if code == response.APIResponseCodeError {
		logctx.FromGin(c, base).Errorw("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusOK, response.Fail(code, ""))
		return
	}
	c.JSON(http.StatusOK, response.Fail(code, err.Error()))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, response.Fail(response.APIResponseCodeBadRequest, msg))
}
