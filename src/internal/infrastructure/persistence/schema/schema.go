package schema

import (
	"fmt"

	"github.com/jackyeh168/club_ledger/src/internal/domain/reward"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/domain/subscription"
	bookingpersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/booking"
	pointspersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/points"
	rewardpersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/reward"
	subscriptionpersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/subscription"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Models 所有需要遷移的資料表
func Models() []any {
	var models []any
	models = append(models, subscriptionpersistence.Models()...)
	models = append(models, pointspersistence.Models()...)
	models = append(models, rewardpersistence.Models()...)
	models = append(models, bookingpersistence.Models()...)
	return models
}

// Migrate 建立或更新所有資料表與索引
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// ===========================
// 預設目錄
// ===========================

type planSeed struct {
	code     string
	name     string
	cadence  subscription.Cadence
	price    string
	currency string
}

var defaultPlans = []planSeed{
	{"day_pass", "Day Pass", subscription.CadenceDaily, "150", "TWD"},
	{"weekly", "Weekly", subscription.CadenceWeekly, "600", "TWD"},
	{"pro_monthly", "Pro Monthly", subscription.CadenceMonthly, "1800", "TWD"},
	{"pro_yearly", "Pro Yearly", subscription.CadenceYearly, "18000", "TWD"},
	{"founder_lifetime", "Founder Lifetime", subscription.CadenceLifetime, "50000", "TWD"},
}

type rewardSeed struct {
	id       int64
	name     string
	imageRef string
	cost     int
}

var defaultRewards = []rewardSeed{
	{1, "Welcome Drink", "rewards/welcome-drink.png", 10},
	{2, "Snack Platter", "rewards/snack-platter.png", 25},
	{7, "Club T-Shirt", "rewards/club-tshirt.png", 40},
	{8, "Guest Pass", "rewards/guest-pass.png", 60},
}

// DefaultPlans 預設方案目錄
func DefaultPlans() ([]subscription.Plan, error) {
	plans := make([]subscription.Plan, 0, len(defaultPlans))
	for _, s := range defaultPlans {
		code, err := subscription.NewPlanCode(s.code)
		if err != nil {
			return nil, err
		}
		plan, err := subscription.NewPlan(code, s.name, s.cadence, decimal.RequireFromString(s.price), s.currency)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// DefaultRewards 預設獎勵目錄
func DefaultRewards() ([]reward.Reward, error) {
	rewards := make([]reward.Reward, 0, len(defaultRewards))
	for _, s := range defaultRewards {
		id, err := reward.NewRewardID(s.id)
		if err != nil {
			return nil, err
		}
		r, err := reward.NewReward(id, s.name, s.imageRef, s.cost)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, r)
	}
	return rewards, nil
}

// SeedCatalog 寫入預設方案與獎勵（可重複執行）
//
// 兩份目錄在同一個事務內寫入。
func SeedCatalog(txManager shared.TransactionManager, db *gorm.DB) error {
	plans, err := DefaultPlans()
	if err != nil {
		return fmt.Errorf("build default plans: %w", err)
	}
	rewards, err := DefaultRewards()
	if err != nil {
		return fmt.Errorf("build default rewards: %w", err)
	}

	planRepo := subscriptionpersistence.NewPlanRepository(db)
	rewardRepo := rewardpersistence.NewRewardRepository(db)

	return txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if err := planRepo.Upsert(ctx, plans...); err != nil {
			return fmt.Errorf("seed plans: %w", err)
		}
		if err := rewardRepo.Upsert(ctx, rewards...); err != nil {
			return fmt.Errorf("seed rewards: %w", err)
		}
		return nil
	})
}
