package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/fatflowers/frontdesk/internal/app/service/membership"
	"github.com/fatflowers/frontdesk/internal/models"
	"github.com/fatflowers/frontdesk/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MemberService is the subset of membership.Service used by the admin endpoints.
type MemberService interface {
	Register(ctx context.Context, req membership.RegisterRequest, now time.Time) (*models.Member, error)
	SetActive(ctx context.Context, memberID string, active bool, operatorID string) (*models.Member, error)
	Delete(ctx context.Context, memberID, operatorID string) error
	Pause(ctx context.Context, memberID string, req membership.PauseRequest, now time.Time) (*models.Member, error)
	Resume(ctx context.Context, memberID, operatorID string, now time.Time) (*models.Member, error)
	Status(ctx context.Context, memberID string, now time.Time) (*membership.StatusView, error)
	IssueDayPass(ctx context.Context, req membership.DayPassRequest) (*models.DayPass, error)
}

type OperatorRequest struct {
	OperatorID string `json:"operator_id"`
}

type SetActiveRequest struct {
	Active     bool   `json:"active"`
	OperatorID string `json:"operator_id"`
}

// @Summary      Membership status
// @Description  Evaluates a member without recording a visit: validity, pause eligibility and unlocked facilities.
// @Tags         Desk
// @Produce      json
// @Param        id  path  string  true  "Member id"
// @Success      200  {object}  handlers.RespMemberStatus
// @Router       /api/v1/members/{id}/status [get]
func ApiMemberStatus(svc MemberService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Status(c.Request.Context(), c.Param("id"), time.Now())
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(view))
	}
}

// @Summary      Register member (Admin)
// @Description  Creates a member on a catalog plan. The end date is derived from the plan.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request  body  membership.RegisterRequest  true  "Member details and plan"
// @Success      200  {object}  handlers.RespMember
// @Router       /api/v1/admin/members [post]
func ApiRegisterMember(svc MemberService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req membership.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		m, err := svc.Register(c.Request.Context(), req, time.Now())
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(m))
	}
}

// @Summary      Pause membership (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id       path  string                   true  "Member id"
// @Param        request  body  membership.PauseRequest  true  "Pause length in days"
// @Success      200  {object}  handlers.RespMember
// @Router       /api/v1/admin/members/{id}/pause [post]
func ApiPauseMember(svc MemberService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req membership.PauseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		m, err := svc.Pause(c.Request.Context(), c.Param("id"), req, time.Now())
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(m))
	}
}

// @Summary      Resume membership (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id       path  string                    true   "Member id"
// @Param        request  body  handlers.OperatorRequest  false  "Operator"
// @Success      200  {object}  handlers.RespMember
// @Router       /api/v1/admin/members/{id}/resume [post]
func ApiResumeMember(svc MemberService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OperatorRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				badRequest(c, err.Error())
				return
			}
		}
		m, err := svc.Resume(c.Request.Context(), c.Param("id"), req.OperatorID, time.Now())
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(m))
	}
}

// @Summary      Activate or deactivate membership (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Member id"
// @Param        request  body  handlers.SetActiveRequest  true  "Target state"
// @Success      200  {object}  handlers.RespMember
// @Router       /api/v1/admin/members/{id}/active [post]
func ApiSetMemberActive(svc MemberService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetActiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		m, err := svc.SetActive(c.Request.Context(), c.Param("id"), req.Active, req.OperatorID)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(m))
	}
}

// @Summary      Delete member (Admin)
// @Description  Soft deletes a member; history rows are kept.
// @Tags         Admin
// @Produce      json
// @Param        id           path   string  true   "Member id"
// @Param        operator_id  query  string  false  "Operator"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/members/{id} [delete]
func ApiDeleteMember(svc MemberService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id"), c.Query("operator_id")); err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

// @Summary      Sell day pass (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request  body  membership.DayPassRequest  true  "Walk-in customer and pass type"
// @Success      200  {object}  handlers.RespDayPass
// @Router       /api/v1/admin/day_passes [post]
func ApiIssueDayPass(svc MemberService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req membership.DayPassRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		p, err := svc.IssueDayPass(c.Request.Context(), req)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

func RegisterMemberRoutes(r gin.IRouter, svc MemberService, log *zap.SugaredLogger) {
	r.GET("/members/:id/status", ApiMemberStatus(svc, log))
}
