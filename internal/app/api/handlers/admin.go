package handlers

import (
	"context"
	"net/http"

	"github.com/fatflowers/frontdesk/internal/app/service/statistics"
	"github.com/fatflowers/frontdesk/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatisticService interface {
	GetStatistic(ctx context.Context, request *statistics.Request) (*statistics.Response, error)
}

// @Summary      Get statistics (Admin)
// @Description  Daily check-ins per facility, revenue attribution per business and day pass sales.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request  body  statistics.Request  true  "Data items and filters"
// @Success      200  {object}  handlers.RespStatistic
// @Router       /api/v1/admin/get_statistic [post]
func ApiGetStatistic(svc StatisticService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			badRequest(c, err.Error())
			return
		}
		res, err := svc.GetStatistic(c.Request.Context(), &req)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// AdminServices groups the dependencies of the staff back office routes.
type AdminServices struct {
	Members    MemberService
	CheckIns   CheckInService
	Payments   PaymentService
	Statistics StatisticService
}

func RegisterAdminRoutes(r gin.IRouter, s AdminServices, log *zap.SugaredLogger) {
	r.POST("/members", ApiRegisterMember(s.Members, log))
	r.DELETE("/members/:id", ApiDeleteMember(s.Members, log))
	r.POST("/members/:id/pause", ApiPauseMember(s.Members, log))
	r.POST("/members/:id/resume", ApiResumeMember(s.Members, log))
	r.POST("/members/:id/active", ApiSetMemberActive(s.Members, log))
	r.GET("/members/:id/checkins", ApiCheckInHistory(s.CheckIns, log))
	r.POST("/day_passes", ApiIssueDayPass(s.Members, log))
	r.POST("/payments", ApiRecordPayment(s.Payments, log))
	r.POST("/revenue_split", ApiRevenueSplit(s.Payments, log))
	r.POST("/get_statistic", ApiGetStatistic(s.Statistics, log))
}
