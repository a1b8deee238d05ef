package points_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newMemberID(t *testing.T) points.MemberID {
	t.Helper()
	id, err := points.MemberIDFromString(uuid.NewString())
	require.NoError(t, err)
	return id
}

func amount(t *testing.T, v int) points.PointsAmount {
	t.Helper()
	a, err := points.NewPositivePointsAmount(v)
	require.NoError(t, err)
	return a
}

func emptyLedger(t *testing.T) *points.Ledger {
	t.Helper()
	ledger, err := points.NewLedger(newMemberID(t), nil)
	require.NoError(t, err)
	return ledger
}

func earn(t *testing.T, ledger *points.Ledger, v int, at time.Time) *points.LedgerTransaction {
	t.Helper()
	tx, err := ledger.Earn(points.EarnCommand{
		Amount:      amount(t, v),
		Source:      points.SourcePromotion,
		Description: "測試入帳",
	}, at)
	require.NoError(t, err)
	return tx
}

// ===== Earn 測試 =====

func TestLedger_Earn_AppendsPositiveTransaction(t *testing.T) {
	// Arrange
	ledger := emptyLedger(t)

	// Act
	tx, err := ledger.Earn(points.EarnCommand{
		Amount:      amount(t, 100),
		Source:      points.SourceSettlement,
		SourceRef:   "pay_001",
		Description: "消費回饋",
	}, baseTime)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 100, tx.Delta())
	assert.Equal(t, int64(1), tx.Sequence())
	assert.Equal(t, points.SourceSettlement, tx.Source())
	assert.Equal(t, "pay_001", tx.SourceRef())
	_, hasReward := tx.Reward()
	assert.False(t, hasReward)
	assert.Equal(t, 100, ledger.Balance().Value())
	assert.Equal(t, int64(2), ledger.NextSequence())
}

func TestLedger_Earn_ZeroAmount_ReturnsError(t *testing.T) {
	ledger := emptyLedger(t)

	_, err := ledger.Earn(points.EarnCommand{Source: points.SourceManual}, baseTime)

	assert.ErrorIs(t, err, points.ErrInvalidPointsAmount)
	assert.Equal(t, int64(1), ledger.NextSequence())
}

func TestLedger_Earn_RedemptionSource_ReturnsError(t *testing.T) {
	ledger := emptyLedger(t)

	_, err := ledger.Earn(points.EarnCommand{Amount: amount(t, 10), Source: points.SourceRedemption}, baseTime)

	assert.ErrorIs(t, err, points.ErrInvalidPointsSource)
}

func TestLedger_Earn_PublishesEvent(t *testing.T) {
	ledger := emptyLedger(t)
	earn(t, ledger, 30, baseTime)

	events := ledger.PullEvents()

	require.Len(t, events, 1)
	earned, ok := events[0].(*points.PointsEarnedEvent)
	require.True(t, ok)
	assert.Equal(t, points.EventTypePointsEarned, earned.EventType())
	assert.Equal(t, 30, earned.Amount().Value())
	assert.Equal(t, 30, earned.Balance().Value())
	assert.Empty(t, ledger.PullEvents())
}

// ===== Redeem 測試 =====

func TestLedger_Redeem_SufficientBalance_AppendsNegativeTransaction(t *testing.T) {
	// Arrange
	ledger := emptyLedger(t)
	earn(t, ledger, 100, baseTime)

	// Act
	tx, err := ledger.Redeem(points.RedeemCommand{
		Amount:      amount(t, 40),
		Reward:      &points.RewardRef{ID: 7, Name: "咖啡券"},
		Description: "咖啡券",
	}, baseTime.Add(time.Minute))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, -40, tx.Delta())
	assert.Equal(t, points.SourceRedemption, tx.Source())
	assert.Equal(t, "reward:7", tx.SourceRef())
	reward, ok := tx.Reward()
	require.True(t, ok)
	assert.Equal(t, int64(7), reward.ID)
	assert.Equal(t, 60, ledger.Balance().Value())
}

func TestLedger_Redeem_InsufficientBalance_AppendsNothing(t *testing.T) {
	// Arrange
	ledger := emptyLedger(t)
	earn(t, ledger, 50, baseTime)
	ledger.PullEvents()

	// Act
	_, err := ledger.Redeem(points.RedeemCommand{Amount: amount(t, 60)}, baseTime)

	// Assert
	assert.ErrorIs(t, err, points.ErrInsufficientBalance)
	assert.Equal(t, 50, ledger.Balance().Value())
	assert.Len(t, ledger.History(), 1)
	assert.Empty(t, ledger.PullEvents())
}

func TestLedger_Redeem_Sequential_SecondFails(t *testing.T) {
	ledger := emptyLedger(t)
	earn(t, ledger, 50, baseTime)

	_, err := ledger.Redeem(points.RedeemCommand{Amount: amount(t, 30)}, baseTime)
	require.NoError(t, err)
	assert.Equal(t, 20, ledger.Balance().Value())

	_, err = ledger.Redeem(points.RedeemCommand{Amount: amount(t, 30)}, baseTime)
	assert.ErrorIs(t, err, points.ErrInsufficientBalance)
	assert.Equal(t, 20, ledger.Balance().Value())
}

func TestLedger_Redeem_ExactBalance_Succeeds(t *testing.T) {
	ledger := emptyLedger(t)
	earn(t, ledger, 50, baseTime)

	_, err := ledger.Redeem(points.RedeemCommand{Amount: amount(t, 50)}, baseTime)

	require.NoError(t, err)
	assert.Equal(t, 0, ledger.Balance().Value())
}

// ===== 帳本不變量 =====

func TestLedger_Balance_EqualsSumOfDeltas(t *testing.T) {
	ledger := emptyLedger(t)
	deltas := []int{100, -40, 20, -15, 5}
	for i, d := range deltas {
		at := baseTime.Add(time.Duration(i) * time.Minute)
		if d > 0 {
			earn(t, ledger, d, at)
		} else {
			_, err := ledger.Redeem(points.RedeemCommand{Amount: amount(t, -d)}, at)
			require.NoError(t, err)
		}
	}

	sum := 0
	for _, tx := range ledger.History() {
		sum += tx.Delta()
	}
	assert.Equal(t, sum, ledger.Balance().Value())
	assert.Equal(t, 70, sum)
}

func TestNewLedger_ReplaysExistingTransactions(t *testing.T) {
	// Arrange
	memberID := newMemberID(t)
	tx1, err := points.ReconstructLedgerTransaction(points.NewTransactionID(), memberID, 1, 100, baseTime,
		points.SourcePromotion, "", nil, "歡迎禮", "")
	require.NoError(t, err)
	tx2, err := points.ReconstructLedgerTransaction(points.NewTransactionID(), memberID, 2, -30, baseTime,
		points.SourceRedemption, "reward:1", &points.RewardRef{ID: 1, Name: "貼紙"}, "貼紙", "key-1")
	require.NoError(t, err)

	// Act：順序顛倒仍依 sequence 重播
	ledger, err := points.NewLedger(memberID, []*points.LedgerTransaction{tx2, tx1})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 70, ledger.Balance().Value())
	assert.Equal(t, int64(3), ledger.NextSequence())
	found, ok := ledger.TransactionByIdempotencyKey("key-1")
	require.True(t, ok)
	assert.True(t, found.ID().Equals(tx2.ID()))
	_, ok = ledger.TransactionByIdempotencyKey("")
	assert.False(t, ok)
}

func TestLedger_Replay(t *testing.T) {
	memberID := newMemberID(t)
	tx1, err := points.ReconstructLedgerTransaction(points.NewTransactionID(), memberID, 1, 100, baseTime,
		points.SourcePromotion, "", nil, "歡迎禮", "earn:k")
	require.NoError(t, err)
	tx2, err := points.ReconstructLedgerTransaction(points.NewTransactionID(), memberID, 2, -25, baseTime,
		points.SourceRedemption, "reward:7", &points.RewardRef{ID: 7, Name: "貼紙"}, "貼紙", "redeem:r1")
	require.NoError(t, err)
	ledger, err := points.NewLedger(memberID, []*points.LedgerTransaction{tx1, tx2})
	require.NoError(t, err)

	tests := []struct {
		name     string
		key      string
		expect   points.ReplayExpectation
		want     *points.LedgerTransaction
		replayed bool
		reused   bool
	}{
		{
			name:   "未使用的鍵",
			key:    "earn:other",
			expect: points.ReplayExpectation{Delta: 100, Source: points.SourcePromotion},
		},
		{
			name:     "相同入帳請求",
			key:      "earn:k",
			expect:   points.ReplayExpectation{Delta: 100, Source: points.SourcePromotion},
			want:     tx1,
			replayed: true,
		},
		{
			name:   "數量不同",
			key:    "earn:k",
			expect: points.ReplayExpectation{Delta: 50, Source: points.SourcePromotion},
			reused: true,
		},
		{
			name:   "來源不同",
			key:    "earn:k",
			expect: points.ReplayExpectation{Delta: 100, Source: points.SourceManual},
			reused: true,
		},
		{
			name:     "相同獎品兌換",
			key:      "redeem:r1",
			expect:   points.ReplayExpectation{Delta: -25, Source: points.SourceRedemption, RewardID: 7},
			want:     tx2,
			replayed: true,
		},
		{
			name:   "不同獎品",
			key:    "redeem:r1",
			expect: points.ReplayExpectation{Delta: -25, Source: points.SourceRedemption, RewardID: 8},
			reused: true,
		},
		{
			name:   "未連結獎品的兌換",
			key:    "redeem:r1",
			expect: points.ReplayExpectation{Delta: -25, Source: points.SourceRedemption},
			reused: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, replayed, err := ledger.Replay(tt.key, tt.expect)

			if tt.reused {
				assert.ErrorIs(t, err, points.ErrIdempotencyKeyReused)
				assert.Nil(t, tx)
				assert.False(t, replayed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.replayed, replayed)
			if tt.want == nil {
				assert.Nil(t, tx)
				return
			}
			assert.True(t, tx.ID().Equals(tt.want.ID()))
		})
	}
}

func TestScopedIdempotencyKey(t *testing.T) {
	assert.Equal(t, "earn:k", points.ScopedIdempotencyKey(points.ScopeEarn, "k"))
	assert.Equal(t, "redeem:k", points.ScopedIdempotencyKey(points.ScopeRedeem, "k"))
	assert.Equal(t, "settlement:pay_1", points.ScopedIdempotencyKey(points.ScopeSettlement, "pay_1"))
	assert.Empty(t, points.ScopedIdempotencyKey(points.ScopeEarn, ""))
}

func TestNewLedger_CorruptedInput_ReturnsError(t *testing.T) {
	memberID := newMemberID(t)
	other := newMemberID(t)

	negative, _ := points.ReconstructLedgerTransaction(points.NewTransactionID(), memberID, 1, -10, baseTime,
		points.SourceRedemption, "", nil, "", "")
	gap, _ := points.ReconstructLedgerTransaction(points.NewTransactionID(), memberID, 2, 10, baseTime,
		points.SourceManual, "", nil, "", "")
	foreign, _ := points.ReconstructLedgerTransaction(points.NewTransactionID(), other, 1, 10, baseTime,
		points.SourceManual, "", nil, "", "")

	tests := []struct {
		name string
		txs  []*points.LedgerTransaction
	}{
		{"餘額為負", []*points.LedgerTransaction{negative}},
		{"序號不連續", []*points.LedgerTransaction{gap}},
		{"其他會員的交易", []*points.LedgerTransaction{foreign}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := points.NewLedger(memberID, tt.txs)
			assert.ErrorIs(t, err, points.ErrCorruptedLedger)
		})
	}
}

func TestReconstructLedgerTransaction_RejectsInvalidRows(t *testing.T) {
	memberID := newMemberID(t)

	_, err := points.ReconstructLedgerTransaction(points.NewTransactionID(), memberID, 1, 0, baseTime,
		points.SourceManual, "", nil, "", "")
	assert.ErrorIs(t, err, points.ErrCorruptedLedger)

	_, err = points.ReconstructLedgerTransaction(points.NewTransactionID(), memberID, 1, 10, baseTime,
		points.SourceManual, "", &points.RewardRef{ID: 1}, "", "")
	assert.ErrorIs(t, err, points.ErrCorruptedLedger)
}

// ===== History / Redemptions =====

func TestLedger_History_OrderedByTimeThenSequence(t *testing.T) {
	ledger := emptyLedger(t)
	late := earn(t, ledger, 10, baseTime.Add(time.Hour))
	early := earn(t, ledger, 20, baseTime)
	sameTime := earn(t, ledger, 30, baseTime)

	history := ledger.History()

	require.Len(t, history, 3)
	assert.True(t, history[0].ID().Equals(early.ID()))
	assert.True(t, history[1].ID().Equals(sameTime.ID()))
	assert.True(t, history[2].ID().Equals(late.ID()))
}

func TestLedger_Redemptions_FiltersNegativeEntriesWithAbsoluteValues(t *testing.T) {
	// Arrange：[+100, -40 (X), +20, -15 (Y)]
	ledger := emptyLedger(t)
	earn(t, ledger, 100, baseTime)
	_, err := ledger.Redeem(points.RedeemCommand{
		Amount: amount(t, 40), Reward: &points.RewardRef{ID: 1, Name: "X"}, Description: "X",
	}, baseTime.Add(1*time.Minute))
	require.NoError(t, err)
	earn(t, ledger, 20, baseTime.Add(2*time.Minute))
	_, err = ledger.Redeem(points.RedeemCommand{
		Amount: amount(t, 15), Reward: &points.RewardRef{ID: 2, Name: "Y"}, Description: "Y",
	}, baseTime.Add(3*time.Minute))
	require.NoError(t, err)

	// Act
	redemptions := ledger.Redemptions()

	// Assert
	require.Len(t, redemptions, 2)
	assert.Equal(t, 40, redemptions[0].Amount.Value())
	assert.Equal(t, "X", redemptions[0].RewardName)
	assert.Equal(t, int64(1), redemptions[0].RewardID)
	assert.Equal(t, 15, redemptions[1].Amount.Value())
	assert.Equal(t, "Y", redemptions[1].RewardName)
}

func TestLedger_Redeem_CopiesRewardSnapshot(t *testing.T) {
	ledger := emptyLedger(t)
	earn(t, ledger, 100, baseTime)
	ref := &points.RewardRef{ID: 3, Name: "原名稱"}

	tx, err := ledger.Redeem(points.RedeemCommand{Amount: amount(t, 10), Reward: ref}, baseTime)
	require.NoError(t, err)
	ref.Name = "目錄改名"

	reward, _ := tx.Reward()
	assert.Equal(t, "原名稱", reward.Name)
}
