// Package visit deducts pass visits at most once per member per calendar day.
package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatflowers/frontdesk/internal/models"
	"github.com/samber/lo"
)

var ErrVisitsExhausted = errors.New("no visits remaining")

// Store is the slice of the check-in store the ledger reads and writes. Callers pass a
// transaction-scoped store so the day check, the counter update and the check-in append commit together.
type Store interface {
	// FindTodaysCheckIns returns the member's check-ins inside the operating-timezone day containing now.
	FindTodaysCheckIns(ctx context.Context, memberID string, now time.Time) ([]*models.CheckIn, error)
	UpdateMemberVisits(ctx context.Context, memberID string, usedVisits int) error
}

type Outcome struct {
	Deducted    bool   `json:"deducted"`
	UsedVisits  int    `json:"used_visits"`
	Remaining   int    `json:"remaining"`
	TotalVisits int    `json:"total_visits"`
	Message     string `json:"message"`
}

// ShouldDeductVisit is true when the member has no check-in yet today.
func ShouldDeductVisit(ctx context.Context, store Store, memberID string, now time.Time) (bool, error) {
	rows, err := store.FindTodaysCheckIns(ctx, memberID, now)
	if err != nil {
		return false, fmt.Errorf("failed to find today's check-ins: %w", err)
	}
	return len(rows) == 0, nil
}

// RecordVisit runs before today's check-in row is appended. It increments member.UsedVisits by one
// on the first check-in of the day and leaves it unchanged on re-entry.
func RecordVisit(ctx context.Context, store Store, member *models.Member, totalVisits int, now time.Time) (*Outcome, error) {
	deduct, err := ShouldDeductVisit(ctx, store, member.ID, now)
	if err != nil {
		return nil, err
	}
	used := member.GetUsedVisits()
	if !deduct {
		return outcome(false, used, totalVisits), nil
	}
	if used >= totalVisits {
		return nil, ErrVisitsExhausted
	}
	used++
	if err := store.UpdateMemberVisits(ctx, member.ID, used); err != nil {
		return nil, fmt.Errorf("failed to update used visits: %w", err)
	}
	member.UsedVisits = lo.ToPtr(used)
	return outcome(true, used, totalVisits), nil
}

func outcome(deducted bool, used, total int) *Outcome {
	remaining := max(total-used, 0)
	o := &Outcome{Deducted: deducted, UsedVisits: used, Remaining: remaining, TotalVisits: total}
	counts := fmt.Sprintf("%d %s remaining, %d/%d used.", remaining, visitWord(remaining), used, total)
	if deducted {
		o.Message = "Visit recorded. " + counts
	} else {
		o.Message = "Welcome back! Already checked in today. " + counts
	}
	return o
}

func visitWord(n int) string {
	if n == 1 {
		return "visit"
	}
	return "visits"
}
