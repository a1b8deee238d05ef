package subscription

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/application/common"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/domain/subscription"
)

// ===========================
// StartSubscription Use Case
// ===========================

// StartSubscriptionCommand 開始訂閱的命令
type StartSubscriptionCommand struct {
	MemberID  string
	PlanCode  string
	Start     string // YYYY-MM-DD；空字串表示今天
	Backdated bool
}

// SubscriptionResult 訂閱狀態（到期日由開始日與週期推導）
type SubscriptionResult struct {
	SubscriptionID string
	MemberID       string
	PlanCode       string
	Version        int
	UpdatedAt      time.Time
	ExpiryView
}

func newSubscriptionResult(s *subscription.Subscription) *SubscriptionResult {
	return &SubscriptionResult{
		SubscriptionID: s.ID().String(),
		MemberID:       s.MemberID().String(),
		PlanCode:       s.PlanCode().String(),
		Version:        s.Version(),
		UpdatedAt:      s.UpdatedAt(),
		ExpiryView:     newExpiryView(s.Start(), s.Cadence(), s.Expiry()),
	}
}

// StartSubscriptionUseCase 開始訂閱 Use Case
type StartSubscriptionUseCase struct {
	planRepo  subscription.PlanRepository
	subRepo   subscription.SubscriptionRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	clock     shared.Clock
	logger    *slog.Logger
}

// NewStartSubscriptionUseCase 創建 Use Case 實例
func NewStartSubscriptionUseCase(
	planRepo subscription.PlanRepository,
	subRepo subscription.SubscriptionRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	clock shared.Clock,
	logger *slog.Logger,
) *StartSubscriptionUseCase {
	return &StartSubscriptionUseCase{
		planRepo:  planRepo,
		subRepo:   subRepo,
		txManager: txManager,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Execute 執行開始訂閱
func (uc *StartSubscriptionUseCase) Execute(cmd StartSubscriptionCommand) (*SubscriptionResult, error) {
	memberID, err := subscription.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member ID: %w", err)
	}
	code, err := subscription.NewPlanCode(cmd.PlanCode)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	today := subscription.DateOf(now, nil)
	start := today
	if cmd.Start != "" {
		if start, err = subscription.ParseDate(cmd.Start); err != nil {
			return nil, err
		}
	}

	var sub *subscription.Subscription
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		plan, err := uc.planRepo.FindByCode(ctx, code)
		if err != nil {
			return fmt.Errorf("failed to find plan: %w", err)
		}
		sub, err = subscription.NewSubscription(memberID, plan, subscription.TermRequest{
			Start:       start,
			ScheduledOn: today,
			Backdated:   cmd.Backdated,
		}, now)
		if err != nil {
			return err
		}
		if err := uc.subRepo.Save(ctx, sub); err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.PublishEvents(uc.publisher, uc.logger, "start_subscription", sub.PullEvents())
	return newSubscriptionResult(sub), nil
}
