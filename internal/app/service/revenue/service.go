package revenue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fatflowers/frontdesk/internal/app/service/catalog"
	"github.com/fatflowers/frontdesk/internal/models"
	"github.com/fatflowers/frontdesk/pkg/logctx"
	"github.com/fatflowers/frontdesk/pkg/metrics"
	"github.com/fatflowers/frontdesk/pkg/tool"
	"github.com/fatflowers/frontdesk/pkg/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount  = errors.New("payment amount must be positive")
	ErrMissingPlan    = errors.New("plan_type or legacy_type is required")
	ErrMemberNotFound = errors.New("member not found")
)

const defaultBackfillBatch = 500

type Service struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	log     *zap.SugaredLogger
}

func NewService(db *gorm.DB, c *catalog.Catalog, log *zap.SugaredLogger) *Service {
	return &Service{db: db, catalog: c, log: log}
}

type PaymentRequest struct {
	MemberID   *string         `json:"member_id"`
	DayPassID  *string         `json:"day_pass_id"`
	PlanType   string          `json:"plan_type"`
	LegacyType string          `json:"legacy_type"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string"`
	Method     string          `json:"method"`
	PaidAt     *time.Time      `json:"paid_at"`
	// Manually corrected split; any non-zero value takes precedence over derived shares.
	GymShareAmount      *decimal.Decimal `json:"gym_share_amount" swaggertype:"string"`
	CrossfitShareAmount *decimal.Decimal `json:"crossfit_share_amount" swaggertype:"string"`
	OperatorID          string           `json:"operator_id"`
}

// planRef is what a payment says about its plan: a catalog id, a frozen snapshot or a legacy label.
type planRef struct {
	planType   string
	legacyType string
	snapshot   *types.Plan
}

// resolve picks the category and plan percentages for a payment. A frozen snapshot wins over the
// live catalog so later catalog edits never re-attribute old revenue.
func (s *Service) resolve(ref planRef) (types.PlanCategory, *Percentages, []string, error) {
	if ref.snapshot != nil {
		return ref.snapshot.Category, PercentagesOf(ref.snapshot), nil, nil
	}
	if ref.planType != "" {
		plan, err := s.catalog.Get(ref.planType)
		if err != nil {
			return "", nil, nil, err
		}
		return plan.Category, PercentagesOf(plan), nil, nil
	}
	if ref.legacyType == "" {
		return "", nil, nil, ErrMissingPlan
	}
	if plan, ok := s.catalog.Resolve(ref.legacyType); ok {
		return plan.Category, PercentagesOf(plan), nil, nil
	}
	if c := types.PlanCategory(strings.ToLower(strings.TrimSpace(ref.legacyType))); c.Valid() {
		return c, nil, nil, nil
	}
	return types.PlanCategoryGym, nil, []string{fmt.Sprintf("unrecognized legacy type %q attributed to gym", ref.legacyType)}, nil
}

// Preview computes the split a payment would get without persisting anything.
func (s *Service) Preview(req PaymentRequest) (*Shares, error) {
	category, percents, warnings, err := s.resolve(planRef{planType: req.PlanType, legacyType: req.LegacyType})
	if err != nil {
		return nil, err
	}
	shares := Split(req.Amount, category, percents, &Override{Gym: req.GymShareAmount, Crossfit: req.CrossfitShareAmount})
	shares.Warnings = append(warnings, shares.Warnings...)
	return &shares, nil
}

// RecordPayment stores a payment with its plan snapshot and attributed shares.
func (s *Service) RecordPayment(ctx context.Context, req PaymentRequest, now time.Time) (*models.Payment, *Shares, error) {
	if !req.Amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}
	shares, err := s.Preview(req)
	if err != nil {
		return nil, nil, err
	}
	var snapshot *types.Plan
	if req.PlanType != "" {
		snapshot, _ = s.catalog.Resolve(req.PlanType)
	}

	p := &models.Payment{
		ID:        tool.GenerateUUIDV7(),
		MemberID:  req.MemberID,
		DayPassID: req.DayPassID,
		Amount:    req.Amount,
		Method:    req.Method,
		PaidAt:    lo.FromPtrOr(req.PaidAt, now),
	}
	if snapshot != nil {
		p.PlanType = lo.ToPtr(snapshot.ID)
	}
	if req.LegacyType != "" {
		p.LegacyType = lo.ToPtr(req.LegacyType)
	}
	gym, crossfit := storedShares(req.Amount, shares)
	p.GymShareAmount, p.CrossfitShareAmount = &gym, &crossfit
	p.Extra = datatypes.NewJSONType(&models.PaymentExtra{
		OperatorID:   req.OperatorID,
		PlanSnapshot: snapshot,
		SplitSource:  string(shares.Source),
		Warnings:     shares.Warnings,
	})

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.MemberID != nil {
			var count int64
			if err := tx.Model(&models.Member{}).Where("id = ?", *req.MemberID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check member: %w", err)
			}
			if count == 0 {
				return ErrMemberNotFound
			}
		}
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordRevenue(string(types.BusinessGym), gym.InexactFloat64())
	metrics.RecordRevenue(string(types.BusinessCrossfit), crossfit.InexactFloat64())
	for _, w := range shares.Warnings {
		metrics.RecordDataIntegrityWarning("revenue_split")
		logctx.FromCtx(ctx, s.log).Warnw("revenue split warning", "payment_id", p.ID, "warning", w)
	}
	return p, shares, nil
}

// storedShares rounds derived shares to cents keeping their sum equal to the amount.
// Overrides are stored as given.
func storedShares(amount decimal.Decimal, s *Shares) (decimal.Decimal, decimal.Decimal) {
	if s.Source == SourcePaymentOverride {
		return s.Gym, s.Crossfit
	}
	gym := s.Gym.Round(2)
	return gym, amount.Sub(gym)
}

// BackfillShares fills share amounts on payments written before attribution existed and returns
// the number of rows updated. Amounts and all other columns are left untouched.
func (s *Service) BackfillShares(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = defaultBackfillBatch
	}
	var rows []*models.Payment
	if err := s.db.WithContext(ctx).
		Where("gym_share_amount IS NULL OR crossfit_share_amount IS NULL").
		Order("paid_at").Limit(limit).Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to find payments without shares: %w", err)
	}

	updated := 0
	for _, p := range rows {
		category, percents, warnings, err := s.resolve(planRef{
			planType:   lo.FromPtr(p.PlanType),
			legacyType: lo.FromPtr(p.LegacyType),
			snapshot:   p.GetPlanSnapshot(),
		})
		if err != nil {
			logctx.FromCtx(ctx, s.log).Warnw("skipping payment without a resolvable plan", "payment_id", p.ID, "err", err)
			continue
		}
		shares := Split(p.Amount, category, percents, &Override{Gym: p.GymShareAmount, Crossfit: p.CrossfitShareAmount})
		shares.Warnings = append(warnings, shares.Warnings...)
		gym, crossfit := storedShares(p.Amount, &shares)
		res := s.db.WithContext(ctx).Model(&models.Payment{}).
			Where("id = ? AND (gym_share_amount IS NULL OR crossfit_share_amount IS NULL)", p.ID).
			Updates(map[string]any{"gym_share_amount": gym, "crossfit_share_amount": crossfit})
		if res.Error != nil {
			return updated, fmt.Errorf("failed to backfill payment %s: %w", p.ID, res.Error)
		}
		updated += int(res.RowsAffected)
		for _, w := range shares.Warnings {
			metrics.RecordDataIntegrityWarning("revenue_split")
			logctx.FromCtx(ctx, s.log).Warnw("revenue split warning", "payment_id", p.ID, "warning", w)
		}
	}
	logctx.FromCtx(ctx, s.log).Infow("revenue shares backfilled", "scanned", len(rows), "updated", updated)
	return updated, nil
}

// backfillOnStart runs one backfill batch in the background after startup so legacy payments
// show up in revenue statistics.
func backfillOnStart(lc fx.Lifecycle, svc *Service, log *zap.SugaredLogger) {
	runInBackground(lc, log, "revenue share backfill", func(ctx context.Context) error {
		_, err := svc.BackfillShares(ctx, defaultBackfillBatch)
		return err
	})
}

// runInBackground starts job on start and cancels it on stop. Stop returns only once job has
// returned, so the db module never closes the pool under it.
func runInBackground(lc fx.Lifecycle, log *zap.SugaredLogger, name string, job func(ctx context.Context) error) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := job(ctx); err != nil && ctx.Err() == nil {
					log.Errorw(name+" failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

var Module = fx.Options(
	fx.Provide(NewService),
	fx.Invoke(backfillOnStart),
)
