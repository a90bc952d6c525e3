package membership

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fatflowers/frontdesk/internal/app/service/catalog"
	"github.com/fatflowers/frontdesk/internal/platform/db/dbtest"
	"github.com/fatflowers/frontdesk/pkg/config"
	"github.com/fatflowers/frontdesk/pkg/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const lockMemberSQL = `SELECT \* FROM "member" WHERE id = \$1 AND "member"."deleted_at" IS NULL ORDER BY "member"."id" LIMIT \$2 FOR UPDATE`

var memberColumns = []string{
	"id", "full_name", "email", "plan_type", "plan_duration", "current_end_date",
	"is_active", "is_paused", "pause_count", "paused_at", "pause_days", "used_visits",
}

func newService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	gdb, mock := dbtest.NewMock(t)
	c, err := catalog.NewFromPlans(catalog.DefaultPlans())
	require.NoError(t, err)
	cfg := &config.Config{Facility: config.FacilityConfig{ExpiringSoonDays: 30, MaxPauseDays: 21}}
	return NewService(gdb, c, cfg, zap.NewNop().Sugar()), mock
}

func TestRegister_TimePlan(t *testing.T) {
	svc, mock := newService(t)
	now := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "member" WHERE \(lower\(email\) = \$1 OR upper\(passport_id\) = \$2\)`).
		WithArgs("ana@box.io", "P123").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "member"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "member_log"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m, err := svc.Register(context.Background(), RegisterRequest{
		FullName:   " Ana Lima ",
		Email:      "Ana@Box.io",
		PassportID: "p123",
		PlanType:   "GYM_3M",
	}, now)
	require.NoError(t, err)
	require.Equal(t, "Ana Lima", m.FullName)
	require.Equal(t, "ana@box.io", *m.Email)
	require.Equal(t, "P123", *m.PassportID)
	require.Equal(t, "gym_3m", *m.PlanType)
	require.Equal(t, 3, *m.PlanDuration)
	require.True(t, m.IsActive)
	require.Nil(t, m.UsedVisits)
	require.Equal(t, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC), *m.CurrentEndDate)
	require.Equal(t, *m.CurrentEndDate, *m.OriginalEndDate)
}

func TestRegister_PassPlan(t *testing.T) {
	svc, mock := newService(t)
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "member" WHERE lower\(email\) = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "member"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "member_log"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m, err := svc.Register(context.Background(), RegisterRequest{FullName: "Bo", Email: "bo@x.io", PlanType: "gym_5pass"}, now)
	require.NoError(t, err)
	require.Equal(t, 0, *m.UsedVisits)
	require.Nil(t, m.PlanDuration)
	require.Equal(t, now.AddDate(0, 0, 30), *m.CurrentEndDate)
}

func TestRegister_Rejects(t *testing.T) {
	svc, mock := newService(t)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.c"}, now)
	require.ErrorIs(t, err, ErrMissingName)

	_, err = svc.Register(ctx, RegisterRequest{FullName: "A"}, now)
	require.ErrorIs(t, err, ErrMissingIdentity)

	_, err = svc.Register(ctx, RegisterRequest{FullName: "A", Email: "a@b.c", PlanType: "platinum"}, now)
	require.ErrorIs(t, err, catalog.ErrUnknownPlan)

	_, err = svc.Register(ctx, RegisterRequest{FullName: "A", Email: "a@b.c", PlanType: "gym_dropin"}, now)
	require.ErrorIs(t, err, ErrDropInPlan)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "member"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()
	_, err = svc.Register(ctx, RegisterRequest{FullName: "A", PassportID: "x1"}, now)
	require.ErrorIs(t, err, ErrDuplicateMember)
}

func TestPause_ExtendsEndDate(t *testing.T) {
	svc, mock := newService(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(lockMemberSQL).
		WithArgs("m1", 1).
		WillReturnRows(sqlmock.NewRows(memberColumns).
			AddRow("m1", "Ana", "ana@box.io", "gym_3m", 3, end, true, false, 1, nil, 0, nil))
	mock.ExpectExec(`UPDATE "member" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "member_log"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m, err := svc.Pause(context.Background(), "m1", PauseRequest{Days: 14, OperatorID: "desk-1"}, now)
	require.NoError(t, err)
	require.True(t, m.IsPaused)
	require.Equal(t, 2, m.PauseCount)
	require.Equal(t, 14, m.PauseDays)
	require.Equal(t, now, *m.PausedAt)
	require.Equal(t, end.AddDate(0, 0, 14), *m.CurrentEndDate)
}

func TestPause_Rejected(t *testing.T) {
	svc, mock := newService(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.Pause(context.Background(), "m1", PauseRequest{Days: 22}, now)
	require.ErrorIs(t, err, ErrInvalidPauseDays)
	_, err = svc.Pause(context.Background(), "m1", PauseRequest{Days: 0}, now)
	require.ErrorIs(t, err, ErrInvalidPauseDays)

	mock.ExpectBegin()
	mock.ExpectQuery(lockMemberSQL).
		WillReturnRows(sqlmock.NewRows(memberColumns).
			AddRow("m1", "Ana", "ana@box.io", "gym_1m", 1, end, true, false, 1, nil, 0, nil))
	mock.ExpectRollback()
	_, err = svc.Pause(context.Background(), "m1", PauseRequest{Days: 7}, now)
	require.ErrorIs(t, err, ErrPauseNotAllowed)
	require.ErrorContains(t, err, "Maximum pause limit reached (1).")

	mock.ExpectBegin()
	mock.ExpectQuery(lockMemberSQL).
		WillReturnRows(sqlmock.NewRows(memberColumns).
			AddRow("m2", "Bo", "bo@box.io", "gym_5pass", nil, end, true, false, 0, nil, 0, 2))
	mock.ExpectRollback()
	_, err = svc.Pause(context.Background(), "m2", PauseRequest{Days: 7}, now)
	require.ErrorContains(t, err, "5-pass plans cannot be paused.")

	mock.ExpectBegin()
	mock.ExpectQuery(lockMemberSQL).WillReturnRows(sqlmock.NewRows(memberColumns))
	mock.ExpectRollback()
	_, err = svc.Pause(context.Background(), "missing", PauseRequest{Days: 7}, now)
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestResume_ReturnsUnusedDays(t *testing.T) {
	svc, mock := newService(t)
	pausedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := pausedAt.Add(4*24*time.Hour + time.Hour)
	end := time.Date(2026, 4, 29, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(lockMemberSQL).
		WillReturnRows(sqlmock.NewRows(memberColumns).
			AddRow("m1", "Ana", "ana@box.io", "gym_3m", 3, end, true, true, 1, pausedAt, 14, nil))
	mock.ExpectExec(`UPDATE "member" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "member_log"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m, err := svc.Resume(context.Background(), "m1", "desk-1", now)
	require.NoError(t, err)
	require.False(t, m.IsPaused)
	require.Nil(t, m.PausedAt)
	require.Zero(t, m.PauseDays)
	require.Equal(t, 1, m.PauseCount)
	// 5 of 14 days counted as used
	require.Equal(t, end.AddDate(0, 0, -9), *m.CurrentEndDate)
}

func TestResume_NotPaused(t *testing.T) {
	svc, mock := newService(t)
	end := time.Date(2026, 4, 29, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(lockMemberSQL).
		WillReturnRows(sqlmock.NewRows(memberColumns).
			AddRow("m1", "Ana", "ana@box.io", "gym_3m", 3, end, true, false, 1, nil, 0, nil))
	mock.ExpectRollback()

	_, err := svc.Resume(context.Background(), "m1", "desk-1", time.Now())
	require.ErrorIs(t, err, ErrResumeNotAllowed)
}

func TestSetActiveAndDelete(t *testing.T) {
	svc, mock := newService(t)
	end := time.Date(2026, 4, 29, 0, 0, 0, 0, time.UTC)
	row := func() *sqlmock.Rows {
		return sqlmock.NewRows(memberColumns).
			AddRow("m1", "Ana", "ana@box.io", "gym_3m", 3, end, true, false, 0, nil, 0, nil)
	}

	mock.ExpectBegin()
	mock.ExpectQuery(lockMemberSQL).WillReturnRows(row())
	mock.ExpectExec(`UPDATE "member" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "member_log"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	m, err := svc.SetActive(context.Background(), "m1", false, "desk-1")
	require.NoError(t, err)
	require.False(t, m.IsActive)

	mock.ExpectBegin()
	mock.ExpectQuery(lockMemberSQL).WillReturnRows(row())
	mock.ExpectExec(`UPDATE "member" SET "deleted_at"=\$1 WHERE "member"."id" = \$2 AND "member"."deleted_at" IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "member_log"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, svc.Delete(context.Background(), "m1", "desk-1"))
}

func TestStatus(t *testing.T) {
	svc, mock := newService(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "member" WHERE id = \$1 AND "member"."deleted_at" IS NULL`).
		WithArgs("m1", 1).
		WillReturnRows(sqlmock.NewRows(memberColumns).
			AddRow("m1", "Ana", "ana@box.io", "crossfit_5pass", nil, now.AddDate(0, 0, 12), true, false, 0, nil, 0, 3))

	view, err := svc.Status(context.Background(), "m1", now)
	require.NoError(t, err)
	require.True(t, view.Verdict.IsValid)
	require.Equal(t, types.MembershipStatusExpiringSoon, view.Verdict.Status)
	require.Equal(t, 12, view.Verdict.DaysRemaining)
	require.False(t, view.Pause.CanPause)
	require.Equal(t, []types.FacilityType{types.FacilityGym, types.FacilityCrossfit}, view.Facilities)
	require.Empty(t, view.Warnings)

	mock.ExpectQuery(`SELECT \* FROM "member"`).WillReturnRows(sqlmock.NewRows(memberColumns))
	_, err = svc.Status(context.Background(), "nope", now)
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestAnomalies(t *testing.T) {
	s := Snapshot{PlanType: "legacy_gold"}
	require.Equal(t, []string{`plan type "legacy_gold" is not in the catalog`}, Anomalies(s))

	s = Snapshot{PlanType: "gym_1m", Plan: plan(t, "gym_1m"), PlanDuration: lo.ToPtr(2)}
	require.Equal(t, []string{"plan duration 2 months is not a supported tier"}, Anomalies(s))

	s = Snapshot{PlanType: "gym_5pass", Plan: plan(t, "gym_5pass"), UsedVisits: 6}
	require.Len(t, Anomalies(s), 1)
}

func TestIssueDayPass(t *testing.T) {
	svc, mock := newService(t)

	_, err := svc.IssueDayPass(context.Background(), DayPassRequest{PassType: "spa", Email: "a@b.c"})
	require.ErrorIs(t, err, ErrInvalidPassType)
	_, err = svc.IssueDayPass(context.Background(), DayPassRequest{PassType: types.DayPassOpenGym})
	require.ErrorIs(t, err, ErrMissingIdentity)

	mock.ExpectExec(`INSERT INTO "day_pass"`).WillReturnResult(sqlmock.NewResult(0, 1))
	p, err := svc.IssueDayPass(context.Background(), DayPassRequest{
		CustomerName: "Walk In",
		PassportID:   "ab99",
		PassType:     types.DayPassCrossfitDropIn,
	})
	require.NoError(t, err)
	require.Equal(t, "AB99", *p.PassportID)
	require.False(t, p.IsUsed)
	require.Nil(t, p.Email)
}
