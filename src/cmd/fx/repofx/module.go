package repofx

import (
	"github.com/jackyeh168/club_ledger/src/internal/domain/reward"
	"github.com/jackyeh168/club_ledger/src/internal/domain/subscription"
	bookingpersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/booking"
	pointspersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/points"
	rewardpersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/reward"
	subscriptionpersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/subscription"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	providePlanRepo,
	subscriptionpersistence.NewSubscriptionRepository,
	pointspersistence.NewLedgerRepository,
	provideRewardRepo,
	bookingpersistence.NewBookingRepository,
)

func providePlanRepo(db *gorm.DB) subscription.PlanRepository {
	return subscriptionpersistence.NewPlanRepository(db)
}

func provideRewardRepo(db *gorm.DB) reward.RewardRepository {
	return rewardpersistence.NewRewardRepository(db)
}
