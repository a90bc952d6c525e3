package models

import (
	"testing"

	"github.com/fatflowers/frontdesk/pkg/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestTableNames(t *testing.T) {
	require.Equal(t, "member", Member{}.TableName())
	require.Equal(t, "day_pass", DayPass{}.TableName())
	require.Equal(t, "check_in", CheckIn{}.TableName())
	require.Equal(t, "payment", Payment{}.TableName())
	require.Equal(t, "member_log", MemberLog{}.TableName())
}

func TestMemberAccessors(t *testing.T) {
	var nilMember *Member
	require.Equal(t, "", nilMember.GetPlanType())
	require.Equal(t, 0, nilMember.GetUsedVisits())

	m := &Member{PlanType: lo.ToPtr("gym_5pass"), UsedVisits: lo.ToPtr(3)}
	require.Equal(t, "gym_5pass", m.GetPlanType())
	require.Equal(t, 3, m.GetUsedVisits())
}

func TestPaymentPlanSnapshot(t *testing.T) {
	var p *Payment
	require.Nil(t, p.GetPlanSnapshot())

	p = &Payment{Extra: datatypes.NewJSONType(&PaymentExtra{PlanSnapshot: &types.Plan{ID: "crossfit_only"}})}
	require.Equal(t, "crossfit_only", p.GetPlanSnapshot().ID)
}
