package app

import (
	"time"

	"github.com/fatflowers/frontdesk/internal/app/api/server"
	"github.com/fatflowers/frontdesk/internal/app/service/catalog"
	"github.com/fatflowers/frontdesk/internal/app/service/checkin"
	"github.com/fatflowers/frontdesk/internal/app/service/membership"
	"github.com/fatflowers/frontdesk/internal/app/service/revenue"
	"github.com/fatflowers/frontdesk/internal/app/service/statistics"
	"github.com/fatflowers/frontdesk/internal/platform/db"
	"github.com/fatflowers/frontdesk/pkg/config"
	"github.com/fatflowers/frontdesk/pkg/logger"
	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 35 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	catalog.Module,
	membership.Module,
	checkin.Module,
	revenue.Module,
	statistics.Module,
	server.Module,
)
