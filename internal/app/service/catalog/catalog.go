package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fatflowers/frontdesk/pkg/config"
	"github.com/fatflowers/frontdesk/pkg/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrUnknownPlan = errors.New("unknown plan")

// Catalog resolves plan-type strings into typed plan entries. It is the only place in the
// service that interprets a plan-type string.
type Catalog struct {
	plans  []*types.Plan
	byKey  map[string]*types.Plan
	issues []string
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// New builds the catalog from cfg.Plans, or from DefaultPlans when none are configured.
func New(cfg *config.Config, log *zap.SugaredLogger) (*Catalog, error) {
	plans := DefaultPlans()
	if cfg != nil && len(cfg.Plans) > 0 {
		plans = cfg.Plans
	}
	c, err := NewFromPlans(plans)
	if err != nil {
		return nil, err
	}
	for _, issue := range c.issues {
		log.Warnw("plan catalog anomaly", "issue", issue)
	}
	log.Infow("plan catalog loaded", "plans", len(c.plans))
	return c, nil
}

func NewFromPlans(plans []*types.Plan) (*Catalog, error) {
	c := &Catalog{byKey: make(map[string]*types.Plan, len(plans))}
	for _, p := range plans {
		if p == nil || strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("plan without id")
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("plan %s: invalid category %q", p.ID, p.Category)
		}
		if p.VisitLimit != nil && *p.VisitLimit <= 0 {
			return nil, fmt.Errorf("plan %s: visit_limit must be positive", p.ID)
		}
		if p.VisitLimit != nil && p.DurationMonths != nil {
			return nil, fmt.Errorf("plan %s: a plan is either pass-based or time-based", p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("plan %s: negative price", p.ID)
		}
		for _, key := range append([]string{p.ID}, p.Aliases...) {
			k := normalizeKey(key)
			if k == "" {
				continue
			}
			if other, ok := c.byKey[k]; ok {
				return nil, fmt.Errorf("plan %s: key %q already used by %s", p.ID, key, other.ID)
			}
			c.byKey[k] = p
		}
		c.issues = append(c.issues, inspect(p)...)
		c.plans = append(c.plans, p)
	}
	return c, nil
}

// inspect reports misconfigurations that do not prevent loading.
func inspect(p *types.Plan) []string {
	var issues []string
	if p.DurationMonths != nil && !lo.Contains([]int{1, 3, 6, 12}, *p.DurationMonths) {
		issues = append(issues, fmt.Sprintf("plan %s: duration %d months has no pause allowance", p.ID, *p.DurationMonths))
	}
	if p.IsPassBased() && (p.ValidityDays == nil || *p.ValidityDays <= 0) {
		issues = append(issues, fmt.Sprintf("plan %s: pass plan without validity_days", p.ID))
	}
	if p.HasShareOverride() {
		sum := decimal.Zero
		if p.GymSharePercent != nil {
			sum = sum.Add(*p.GymSharePercent)
		}
		if p.CrossfitSharePercent != nil {
			sum = sum.Add(*p.CrossfitSharePercent)
		}
		if !sum.Equal(decimal.NewFromInt(100)) {
			issues = append(issues, fmt.Sprintf("plan %s: share percentages sum to %s, not 100", p.ID, sum))
		}
	}
	return issues
}

// Resolve finds the plan for a plan-type string by id or alias, ignoring case and
// surrounding whitespace.
func (c *Catalog) Resolve(planType string) (*types.Plan, bool) {
	p, ok := c.byKey[normalizeKey(planType)]
	return p, ok
}

func (c *Catalog) Get(planType string) (*types.Plan, error) {
	p, ok := c.Resolve(planType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlan, planType)
	}
	return p, nil
}

// List returns all plans ordered by id.
func (c *Catalog) List() []*types.Plan {
	out := append([]*types.Plan(nil), c.plans...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Issues returns the load-time anomalies for staff-facing views.
func (c *Catalog) Issues() []string {
	return append([]string(nil), c.issues...)
}

var Module = fx.Options(
	fx.Provide(New),
)
