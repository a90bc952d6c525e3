package checkin

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fatflowers/frontdesk/internal/models"
	"github.com/fatflowers/frontdesk/internal/platform/db/dbtest"
	"github.com/fatflowers/frontdesk/pkg/config"
	"github.com/fatflowers/frontdesk/pkg/types"
	"github.com/stretchr/testify/require"
)

type timeArg struct{ want time.Time }

func (a timeArg) Match(v driver.Value) bool {
	t, ok := v.(time.Time)
	return ok && t.Equal(a.want)
}

func newGormStore(t *testing.T, tz string) (*GormStore, sqlmock.Sqlmock) {
	gdb, mock := dbtest.NewMock(t)
	return NewGormStore(gdb, &config.Config{Facility: config.FacilityConfig{Timezone: tz}}), mock
}

func TestGormStore_FindMemberByIdentifier(t *testing.T) {
	store, mock := newGormStore(t, "UTC")
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "member" WHERE \(lower\(email\) = \$1 OR upper\(passport_id\) = \$2\) AND "member"."deleted_at" IS NULL ORDER BY created_at desc`).
		WithArgs("ab12@x.io", "AB12@X.IO", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "is_active"}).AddRow("m1", "Ana", "ab12@x.io", true))
	m, err := store.FindMemberByIdentifier(ctx, " Ab12@X.io ")
	require.NoError(t, err)
	require.Equal(t, "m1", m.ID)

	mock.ExpectQuery(`SELECT \* FROM "member"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	m, err = store.FindMemberByIdentifier(ctx, "nobody@x.com")
	require.NoError(t, err)
	require.Nil(t, m)

	mock.ExpectQuery(`SELECT \* FROM "member"`).WillReturnError(errors.New("conn reset"))
	_, err = store.FindMemberByIdentifier(ctx, "nobody@x.com")
	require.Error(t, err)
}

func TestGormStore_FindUnusedDayPass(t *testing.T) {
	store, mock := newGormStore(t, "UTC")

	mock.ExpectQuery(`SELECT \* FROM "day_pass" WHERE \(lower\(email\) = \$1 OR upper\(passport_id\) = \$2\) AND is_used = \$3 ORDER BY created_at,"day_pass"."id" LIMIT \$4`).
		WithArgs("x99", "X99", false, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "pass_type", "is_used"}).AddRow("d1", "open_gym", false))
	p, err := store.FindUnusedDayPass(context.Background(), "x99")
	require.NoError(t, err)
	require.Equal(t, types.DayPassOpenGym, p.PassType)
}

func TestGormStore_MarkDayPassUsedIsConditional(t *testing.T) {
	store, mock := newGormStore(t, "UTC")
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE "day_pass" SET "is_used"=\$1,"used_at"=\$2,"updated_at"=\$3 WHERE id = \$4 AND is_used = \$5`).
		WithArgs(true, timeArg{now}, sqlmock.AnyArg(), "d1", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := store.MarkDayPassUsed(context.Background(), "d1", now)
	require.NoError(t, err)
	require.True(t, ok)

	mock.ExpectExec(`UPDATE "day_pass" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = store.MarkDayPassUsed(context.Background(), "d1", now)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGormStore_FindTodaysCheckInsUsesOperatingDay(t *testing.T) {
	store, mock := newGormStore(t, "Asia/Tokyo")
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2026-03-10 16:00 UTC is 2026-03-11 01:00 in Tokyo
	now := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 11, 0, 0, 0, 0, tokyo)
	end := time.Date(2026, 3, 12, 0, 0, 0, 0, tokyo)

	mock.ExpectQuery(`SELECT \* FROM "check_in" WHERE member_id = \$1 AND check_in_time >= \$2 AND check_in_time < \$3 ORDER BY check_in_time`).
		WithArgs("m1", timeArg{start}, timeArg{end}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "facility_type", "check_in_time"}).
			AddRow("c1", "m1", "gym", now.Add(-time.Hour)))
	rows, err := store.FindTodaysCheckIns(context.Background(), "m1", now)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestGormStore_UpdateMemberVisits(t *testing.T) {
	store, mock := newGormStore(t, "UTC")

	mock.ExpectExec(`UPDATE "member" SET "used_visits"=\$1,"updated_at"=\$2 WHERE id = \$3 AND "member"."deleted_at" IS NULL`).
		WithArgs(5, sqlmock.AnyArg(), "m1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.UpdateMemberVisits(context.Background(), "m1", 5))

	mock.ExpectExec(`UPDATE "member" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.Error(t, store.UpdateMemberVisits(context.Background(), "gone", 5))
}

func TestGormStore_TransactionLocksMember(t *testing.T) {
	store, mock := newGormStore(t, "UTC")
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "member" WHERE id = \$1 AND "member"."deleted_at" IS NULL ORDER BY "member"."id" LIMIT \$2 FOR UPDATE`).
		WithArgs("m1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name"}).AddRow("m1", "Ana"))
	mock.ExpectExec(`INSERT INTO "check_in"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Transaction(context.Background(), func(tx Store) error {
		m, err := tx.LockMember(context.Background(), "m1")
		if err != nil {
			return err
		}
		return tx.AppendCheckIn(context.Background(), &models.CheckIn{MemberID: &m.ID, FacilityType: types.FacilityGym, CheckInTime: now})
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m1"))
	mock.ExpectRollback()
	boom := errors.New("boom")
	err = store.Transaction(context.Background(), func(tx Store) error {
		if _, err := tx.LockMember(context.Background(), "m1"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
}

func TestGormStore_GetLastPayment(t *testing.T) {
	store, mock := newGormStore(t, "UTC")
	paidAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "payment" WHERE member_id = \$1 ORDER BY paid_at desc`).
		WithArgs("m1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "amount", "paid_at"}).AddRow("p1", "m1", "135.00", paidAt))
	p, err := store.GetLastPayment(context.Background(), "m1")
	require.NoError(t, err)
	require.Equal(t, "135", p.Amount.String())

	mock.ExpectQuery(`SELECT \* FROM "payment"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	p, err = store.GetLastPayment(context.Background(), "m2")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestGormStore_RecentCheckIns(t *testing.T) {
	store, mock := newGormStore(t, "UTC")

	mock.ExpectQuery(`SELECT \* FROM "check_in" WHERE member_id = \$1 ORDER BY check_in_time desc LIMIT \$2`).
		WithArgs("m1", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c2").AddRow("c1"))
	rows, err := store.RecentCheckIns(context.Background(), "m1", 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}
