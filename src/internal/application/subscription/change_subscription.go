package subscription

import (
	"fmt"
	"log/slog"

	"github.com/jackyeh168/club_ledger/src/internal/application/common"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/domain/subscription"
)

// ===========================
// ChangeSubscription Use Case
// ===========================

// ChangeSubscriptionCommand 變更訂閱的命令
//
// PlanCode 與 Start 皆為選填，至少提供一個；到期日隨之重新推導。
type ChangeSubscriptionCommand struct {
	SubscriptionID string
	PlanCode       string
	Start          string
	Backdated      bool
}

// ChangeSubscriptionUseCase 變更訂閱 Use Case
//
// 以版本號做樂觀鎖：並行變更時後寫入者得到 ErrSubscriptionConflict。
type ChangeSubscriptionUseCase struct {
	planRepo  subscription.PlanRepository
	subRepo   subscription.SubscriptionRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	clock     shared.Clock
	logger    *slog.Logger
}

// NewChangeSubscriptionUseCase 創建 Use Case 實例
func NewChangeSubscriptionUseCase(
	planRepo subscription.PlanRepository,
	subRepo subscription.SubscriptionRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	clock shared.Clock,
	logger *slog.Logger,
) *ChangeSubscriptionUseCase {
	return &ChangeSubscriptionUseCase{
		planRepo:  planRepo,
		subRepo:   subRepo,
		txManager: txManager,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Execute 執行變更
//
// 同時變更方案與開始日時，先換方案再以新週期重算開始日。
func (uc *ChangeSubscriptionUseCase) Execute(cmd ChangeSubscriptionCommand) (*SubscriptionResult, error) {
	id, err := subscription.SubscriptionIDFromString(cmd.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if cmd.PlanCode == "" && cmd.Start == "" {
		return nil, subscription.ErrInvalidPlan.WithContext("reason", "plan code or start date is required")
	}

	var newStart subscription.Date
	if cmd.Start != "" {
		if newStart, err = subscription.ParseDate(cmd.Start); err != nil {
			return nil, err
		}
	}

	now := uc.clock.Now()
	var sub *subscription.Subscription
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		sub, err = uc.subRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if cmd.PlanCode != "" {
			code, err := subscription.NewPlanCode(cmd.PlanCode)
			if err != nil {
				return err
			}
			plan, err := uc.planRepo.FindByCode(ctx, code)
			if err != nil {
				return fmt.Errorf("failed to find plan: %w", err)
			}
			if err := sub.ChangePlan(plan, now); err != nil {
				return err
			}
		}
		if !newStart.IsZero() {
			if err := sub.ChangeStart(newStart, subscription.DateOf(now, nil), cmd.Backdated, now); err != nil {
				return err
			}
		}

		return uc.subRepo.Update(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	common.PublishEvents(uc.publisher, uc.logger, "change_subscription", sub.PullEvents())
	result := newSubscriptionResult(sub)
	result.Version = sub.Version() + 1 // Update 已在儲存層將版本加一
	return result, nil
}
