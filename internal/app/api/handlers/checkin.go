package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fatflowers/frontdesk/internal/app/service/checkin"
	"github.com/fatflowers/frontdesk/internal/models"
	"github.com/fatflowers/frontdesk/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckInService is the subset of checkin.Service used by the desk endpoints.
type CheckInService interface {
	CheckIn(ctx context.Context, req checkin.Request) (*checkin.Result, error)
	History(ctx context.Context, memberID string, limit int) ([]*models.CheckIn, error)
}

// @Summary      Check in
// @Description  Validates a member or day pass for entry to a facility. Denials are returned with code 0 and success=false.
// @Tags         Desk
// @Accept       json
// @Produce      json
// @Param        X-Desk-ID  header  string           false  "Front desk terminal id"
// @Param        request    body    checkin.Request  true   "Identifier (email or passport id) and facility"
// @Success      200  {object}  handlers.RespCheckIn
// @Router       /api/v1/checkin [post]
func ApiCheckIn(svc CheckInService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkin.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		res, err := svc.CheckIn(c.Request.Context(), req)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Check-in history (Admin)
// @Description  Lists the most recent check-ins of a member, newest first.
// @Tags         Admin
// @Produce      json
// @Param        id     path   string  true   "Member id"
// @Param        limit  query  int     false  "Max rows (default 20, max 200)"
// @Success      200  {object}  handlers.RespCheckInHistory
// @Router       /api/v1/admin/members/{id}/checkins [get]
func ApiCheckInHistory(svc CheckInService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				badRequest(c, "invalid limit")
				return
			}
			limit = n
		}
		rows, err := svc.History(c.Request.Context(), c.Param("id"), limit)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

func RegisterCheckInRoutes(r gin.IRouter, svc CheckInService, log *zap.SugaredLogger) {
	r.POST("/checkin", ApiCheckIn(svc, log))
}
