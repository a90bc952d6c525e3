package statistics

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fatflowers/frontdesk/internal/models"
	"github.com/fatflowers/frontdesk/pkg/config"
	"github.com/fatflowers/frontdesk/pkg/types"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatisticType string

const (
	StatisticTypeDailyCheckInCount   StatisticType = "daily_check_in_count"
	StatisticTypeDailyRevenue        StatisticType = "daily_revenue"
	StatisticTypeTotalRevenue        StatisticType = "total_revenue"
	StatisticTypeDailyDayPassSales   StatisticType = "daily_day_pass_sales"
	StatisticTypeDailyNewMemberCount StatisticType = "daily_new_member_count"
)

// filterFields whitelists the columns each statistic can be filtered on.
var filterFields = map[StatisticType][]string{
	StatisticTypeDailyCheckInCount:   {"facility_type", "check_in_time"},
	StatisticTypeDailyRevenue:        {"method", "plan_type", "paid_at"},
	StatisticTypeTotalRevenue:        {"method", "plan_type", "paid_at"},
	StatisticTypeDailyDayPassSales:   {"pass_type", "created_at"},
	StatisticTypeDailyNewMemberCount: {"plan_type", "created_at"},
}

var ErrEmptyRequest = errors.New("no data items requested")

type DataItem struct {
	ID StatisticType `json:"id"`
}

type Request struct {
	Filters   []*types.CommonFilter `json:"filters"`
	DataItems []*DataItem           `json:"data_items"`
}

// Validate rejects unknown statistics and filters that apply to none of the requested statistics.
func (r *Request) Validate() error {
	if r == nil || len(r.DataItems) == 0 {
		return ErrEmptyRequest
	}
	var allowed []string
	for _, di := range r.DataItems {
		if di == nil {
			return errors.New("nil data item")
		}
		fields, ok := filterFields[di.ID]
		if !ok {
			return fmt.Errorf("invalid data item id: %s", di.ID)
		}
		allowed = append(allowed, fields...)
	}
	for _, f := range r.Filters {
		if err := f.Validate(lo.Uniq(allowed)); err != nil {
			return err
		}
	}
	return nil
}

// filterSet is the subset of request filters applicable to one statistic.
type filterSet []*types.CommonFilter

func (r *Request) filtersFor(t StatisticType) filterSet {
	return lo.Filter(r.Filters, func(f *types.CommonFilter, _ int) bool {
		return lo.Contains(filterFields[t], f.Field)
	})
}

func (fs filterSet) Build(builder clause.Builder) {
	if len(fs) == 0 {
		builder.WriteString("1=1")
		return
	}
	for i, f := range fs {
		if i > 0 {
			builder.WriteString(" AND ")
		}
		f.Build(builder)
	}
}

func (fs filterSet) where() clause.Where {
	return clause.Where{Exprs: []clause.Expression{fs}}
}

// ResponseDataItem is one point of a series. Revenue values are in cents: Value is the gym share and
// Value2 the CrossFit share.
type ResponseDataItem struct {
	Date   string `json:"date,omitempty"`
	Label  string `json:"label,omitempty"`
	Value  int64  `json:"value"`
	Value2 int64  `json:"value2,omitempty"`
}

type Response struct {
	DataItems map[StatisticType][]ResponseDataItem `json:"data_items"`
}

// Service computes staff dashboards. Days are bucketed in the facility timezone.
type Service struct {
	db       *gorm.DB
	timezone string
}

func New(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{db: db, timezone: cfg.Facility.Location().String()}
}

func (s *Service) localDay(column string) string {
	return fmt.Sprintf("TO_CHAR(%s AT TIME ZONE '%s', 'YYYY-MM-DD')", column, s.timezone)
}

const (
	gymCents      = "CAST(ROUND(COALESCE(SUM(gym_share_amount), 0) * 100) AS BIGINT)"
	crossfitCents = "CAST(ROUND(COALESCE(SUM(crossfit_share_amount), 0) * 100) AS BIGINT)"
)

func (s *Service) getDailyCheckInCount(ctx context.Context, fs filterSet) ([]ResponseDataItem, error) {
	var results []ResponseDataItem
	day := s.localDay("check_in_time")
	err := s.db.WithContext(ctx).Table(models.CheckIn{}.TableName()).
		Select(day + " as date, facility_type as label, count(*) as value").
		Where(fs.where()).
		Group(day).Group("facility_type").
		Order("date DESC, label").
		Find(&results).Error
	return results, err
}

func (s *Service) getDailyRevenue(ctx context.Context, fs filterSet) ([]ResponseDataItem, error) {
	var results []ResponseDataItem
	day := s.localDay("paid_at")
	err := s.db.WithContext(ctx).Table(models.Payment{}.TableName()).
		Select(day + " as date, " + gymCents + " as value, " + crossfitCents + " as value2").
		Where(fs.where()).
		Group(day).
		Order("date DESC").
		Find(&results).Error
	return results, err
}

func (s *Service) getTotalRevenue(ctx context.Context, fs filterSet) ([]ResponseDataItem, error) {
	var results []ResponseDataItem
	err := s.db.WithContext(ctx).Table(models.Payment{}.TableName()).
		Select(gymCents + " as value, " + crossfitCents + " as value2").
		Where(fs.where()).
		Find(&results).Error
	return results, err
}

func (s *Service) getDailyDayPassSales(ctx context.Context, fs filterSet) ([]ResponseDataItem, error) {
	var results []ResponseDataItem
	day := s.localDay("created_at")
	err := s.db.WithContext(ctx).Table(models.DayPass{}.TableName()).
		Select(day + " as date, pass_type as label, count(*) as value").
		Where(fs.where()).
		Group(day).Group("pass_type").
		Order("date DESC, label").
		Find(&results).Error
	return results, err
}

func (s *Service) getDailyNewMemberCount(ctx context.Context, fs filterSet) ([]ResponseDataItem, error) {
	var results []ResponseDataItem
	day := s.localDay("created_at")
	err := s.db.WithContext(ctx).Model(&models.Member{}).
		Select(day + " as date, count(*) as value").
		Where(fs.where()).
		Group(day).
		Order("date DESC").
		Find(&results).Error
	return results, err
}

func (s *Service) getStatistic(ctx context.Context, request *Request, id StatisticType) ([]ResponseDataItem, error) {
	fs := request.filtersFor(id)
	switch id {
	case StatisticTypeDailyCheckInCount:
		return s.getDailyCheckInCount(ctx, fs)
	case StatisticTypeDailyRevenue:
		return s.getDailyRevenue(ctx, fs)
	case StatisticTypeTotalRevenue:
		return s.getTotalRevenue(ctx, fs)
	case StatisticTypeDailyDayPassSales:
		return s.getDailyDayPassSales(ctx, fs)
	case StatisticTypeDailyNewMemberCount:
		return s.getDailyNewMemberCount(ctx, fs)
	default:
		return nil, fmt.Errorf("invalid data item id: %s", id)
	}
}

// GetStatistic computes the requested data items concurrently; the first failure cancels the rest.
func (s *Service) GetStatistic(ctx context.Context, request *Request) (*Response, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	results := make(map[StatisticType][]ResponseDataItem, len(request.DataItems))

	for _, item := range lo.UniqBy(request.DataItems, func(di *DataItem) StatisticType { return di.ID }) {
		id := item.ID
		g.Go(func() error {
			res, err := s.getStatistic(gctx, request, id)
			if err != nil {
				return fmt.Errorf("failed to get %s: %w", id, err)
			}
			mu.Lock()
			results[id] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Response{DataItems: results}, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
