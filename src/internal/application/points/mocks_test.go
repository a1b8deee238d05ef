package points

import (
	"sync"

	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// ===========================
// Mock LedgerRepository
// ===========================

// MockLedgerRepository 以 map 模擬只追加的帳本，並模擬兩個唯一約束
type MockLedgerRepository struct {
	mu  sync.Mutex
	txs map[string][]*points.LedgerTransaction

	AppendCallCount int
	// AppendErrors 依序回傳的錯誤（模擬其他行程搶先寫入或儲存層故障）
	AppendErrors []error
	FindErr      error
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{txs: make(map[string][]*points.LedgerTransaction)}
}

func (m *MockLedgerRepository) FindByMemberID(ctx shared.TransactionContext, memberID points.MemberID) ([]*points.LedgerTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := make([]*points.LedgerTransaction, len(m.txs[memberID.String()]))
	copy(out, m.txs[memberID.String()])
	return out, nil
}

func (m *MockLedgerRepository) Append(ctx shared.TransactionContext, tx *points.LedgerTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendCallCount++

	if len(m.AppendErrors) > 0 {
		err := m.AppendErrors[0]
		m.AppendErrors = m.AppendErrors[1:]
		if err != nil {
			return err
		}
	}

	existing := m.txs[tx.MemberID().String()]
	for _, e := range existing {
		if e.Sequence() == tx.Sequence() {
			return points.ErrConcurrentAppend
		}
		if tx.IdempotencyKey() != "" && e.IdempotencyKey() == tx.IdempotencyKey() {
			return points.ErrDuplicateIdempotencyKey
		}
	}
	m.txs[tx.MemberID().String()] = append(existing, tx)
	return nil
}

// Seed 直接寫入既有交易（繞過 Use Case）
func (m *MockLedgerRepository) Seed(tx *points.LedgerTransaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs[tx.MemberID().String()] = append(m.txs[tx.MemberID().String()], tx)
}

// Count 會員的交易筆數
func (m *MockLedgerRepository) Count(memberID points.MemberID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.txs[memberID.String()])
}

// ===========================
// Mock TransactionManager
// ===========================

type MockTransactionManager struct {
	InTransactionCallCount int
	ShouldFail             bool
	FailError              error
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	m.InTransactionCallCount++
	if m.ShouldFail {
		return m.FailError
	}
	return fn(nil)
}

// ===========================
// Mock EventPublisher
// ===========================

type MockEventPublisher struct {
	mu        sync.Mutex
	Published []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(event shared.DomainEvent) error {
	return m.PublishBatch([]shared.DomainEvent{event})
}

func (m *MockEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, events...)
	return nil
}

func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.Published))
	for _, e := range m.Published {
		types = append(types, e.EventType())
	}
	return types
}
