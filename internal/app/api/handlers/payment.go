package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/fatflowers/frontdesk/internal/app/service/revenue"
	"github.com/fatflowers/frontdesk/internal/models"
	"github.com/fatflowers/frontdesk/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentService is the subset of revenue.Service used by the admin endpoints.
type PaymentService interface {
	RecordPayment(ctx context.Context, req revenue.PaymentRequest, now time.Time) (*models.Payment, *revenue.Shares, error)
	Preview(req revenue.PaymentRequest) (*revenue.Shares, error)
}

type RecordPaymentResponse struct {
	Payment *models.Payment `json:"payment"`
	Shares  *revenue.Shares `json:"shares"`
}

// @Summary      Record payment (Admin)
// @Description  Stores a payment with its plan snapshot and the gym / CrossFit revenue attribution.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request  body  revenue.PaymentRequest  true  "Payment"
// @Success      200  {object}  handlers.RespRecordPayment
// @Router       /api/v1/admin/payments [post]
func ApiRecordPayment(svc PaymentService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req revenue.PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		p, shares, err := svc.RecordPayment(c.Request.Context(), req, time.Now())
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(&RecordPaymentResponse{Payment: p, Shares: shares}))
	}
}

// @Summary      Preview revenue split (Admin)
// @Description  Computes the gym / CrossFit attribution of an amount without storing anything.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request  body  revenue.PaymentRequest  true  "Amount, plan and optional overrides"
// @Success      200  {object}  handlers.RespShares
// @Router       /api/v1/admin/revenue_split [post]
func ApiRevenueSplit(svc PaymentService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req revenue.PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		shares, err := svc.Preview(req)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(shares))
	}
}
