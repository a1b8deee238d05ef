package points

import (
	"testing"
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedHistory 建立 [+100, −40 X, +20, −15 Y]，每筆間隔一分鐘
func seedHistory(t *testing.T, f *fixture, memberID points.MemberID) {
	t.Helper()
	steps := []struct {
		earn   int
		redeem int
		reward int64
		name   string
	}{
		{earn: 100},
		{redeem: 40, reward: 1, name: "X"},
		{earn: 20},
		{redeem: 15, reward: 2, name: "Y"},
	}
	for i, s := range steps {
		clock := shared.FixedClock{At: fixedNow.Add(time.Duration(i) * time.Minute)}
		var err error
		if s.earn > 0 {
			_, err = NewEarnPointsUseCase(f.writer, f.publisher, clock, logging.Discard()).
				Execute(EarnPointsCommand{MemberID: memberID.String(), Amount: s.earn})
		} else {
			_, err = NewRedeemPointsUseCase(f.writer, f.publisher, clock, logging.Discard()).
				Execute(RedeemPointsCommand{MemberID: memberID.String(), Amount: s.redeem, RewardID: s.reward, RewardName: s.name})
		}
		require.NoError(t, err)
	}
}

func TestGetHistoryUseCase_RedemptionView(t *testing.T) {
	// Arrange
	f := newFixture()
	memberID := newMemberID(t)
	seedHistory(t, f, memberID)

	// Act
	result, err := NewGetHistoryUseCase(f.repo).Execute(GetHistoryQuery{
		MemberID: memberID.String(),
		View:     HistoryViewRedemptions,
	})

	// Assert：[40 X, 15 Y]
	require.NoError(t, err)
	require.Len(t, result.Redemptions, 2)
	assert.Equal(t, 40, result.Redemptions[0].Amount)
	assert.Equal(t, "X", result.Redemptions[0].RewardName)
	assert.Equal(t, 15, result.Redemptions[1].Amount)
	assert.Equal(t, "Y", result.Redemptions[1].RewardName)
	assert.Nil(t, result.Entries)
}

func TestGetHistoryUseCase_AllView_OrderedByTime(t *testing.T) {
	f := newFixture()
	memberID := newMemberID(t)
	seedHistory(t, f, memberID)

	result, err := NewGetHistoryUseCase(f.repo).Execute(GetHistoryQuery{MemberID: memberID.String()})

	require.NoError(t, err)
	require.Len(t, result.Entries, 4)
	deltas := []int{}
	for _, e := range result.Entries {
		deltas = append(deltas, e.Delta)
	}
	assert.Equal(t, []int{100, -40, 20, -15}, deltas)
	assert.Equal(t, int64(1), result.Entries[1].RewardID)
}

func TestGetHistoryUseCase_UnknownView(t *testing.T) {
	f := newFixture()

	_, err := NewGetHistoryUseCase(f.repo).Execute(GetHistoryQuery{MemberID: newMemberID(t).String(), View: "earned"})

	assert.ErrorIs(t, err, ErrInvalidHistoryView)
}

func TestGetPointsBalanceUseCase(t *testing.T) {
	// Arrange
	f := newFixture()
	memberID := newMemberID(t)
	seedHistory(t, f, memberID)

	// Act
	result, err := NewGetPointsBalanceUseCase(f.repo).Execute(GetPointsBalanceQuery{MemberID: memberID.String()})

	// Assert：100 − 40 + 20 − 15 = 65
	require.NoError(t, err)
	assert.Equal(t, 65, result.Balance)
	assert.Equal(t, 4, result.TransactionCount)
}

func TestGetPointsBalanceUseCase_NoTransactions_Zero(t *testing.T) {
	f := newFixture()

	result, err := NewGetPointsBalanceUseCase(f.repo).Execute(GetPointsBalanceQuery{MemberID: newMemberID(t).String()})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Balance)
}
