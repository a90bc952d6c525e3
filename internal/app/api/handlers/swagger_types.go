package handlers

import (
	"github.com/fatflowers/frontdesk/internal/app/service/checkin"
	"github.com/fatflowers/frontdesk/internal/app/service/membership"
	"github.com/fatflowers/frontdesk/internal/app/service/revenue"
	"github.com/fatflowers/frontdesk/internal/app/service/statistics"
	"github.com/fatflowers/frontdesk/internal/models"
	"github.com/fatflowers/frontdesk/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

type RespCheckIn struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    checkin.Result           `json:"data"`
}

type RespCheckInHistory struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.CheckIn         `json:"data"`
}

type RespMemberStatus struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    membership.StatusView    `json:"data"`
}

type RespMember struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Member            `json:"data"`
}

type RespDayPass struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.DayPass           `json:"data"`
}

type RespRecordPayment struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    RecordPaymentResponse    `json:"data"`
}

type RespShares struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    revenue.Shares           `json:"data"`
}

type RespStatistic struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    statistics.Response      `json:"data"`
}
