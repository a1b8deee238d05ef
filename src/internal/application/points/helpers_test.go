package points

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/lock"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/logging"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.April, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	repo      *MockLedgerRepository
	txManager *MockTransactionManager
	publisher *MockEventPublisher
	writer    *LedgerWriter
	clock     shared.Clock
}

func newFixture() *fixture {
	repo := NewMockLedgerRepository()
	txManager := NewMockTransactionManager()
	return &fixture{
		repo:      repo,
		txManager: txManager,
		publisher: &MockEventPublisher{},
		writer:    NewLedgerWriter(repo, txManager, lock.NewKeyedMutex()),
		clock:     shared.FixedClock{At: fixedNow},
	}
}

func (f *fixture) earn() *EarnPointsUseCase {
	return NewEarnPointsUseCase(f.writer, f.publisher, f.clock, logging.Discard())
}

func (f *fixture) redeem() *RedeemPointsUseCase {
	return NewRedeemPointsUseCase(f.writer, f.publisher, f.clock, logging.Discard())
}

func newMemberID(t *testing.T) points.MemberID {
	t.Helper()
	id, err := points.MemberIDFromString(uuid.NewString())
	require.NoError(t, err)
	return id
}

// seedBalance 以單筆 promotion 交易建立起始餘額
func (f *fixture) seedBalance(t *testing.T, memberID points.MemberID, amount int) {
	t.Helper()
	_, err := f.earn().Execute(EarnPointsCommand{
		MemberID: memberID.String(),
		Amount:   amount,
		Source:   "promotion",
	})
	require.NoError(t, err)
}
