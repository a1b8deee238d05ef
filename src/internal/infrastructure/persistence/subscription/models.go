package subscription

import (
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/subscription"
	"github.com/shopspring/decimal"
)

// ===========================
// GORM Models
// ===========================

// PlanGORM 方案目錄資料表模型
type PlanGORM struct {
	Code      string          `gorm:"column:code;type:varchar(64);primaryKey"`
	Name      string          `gorm:"column:name;type:varchar(255);not null"`
	Cadence   string          `gorm:"column:cadence;type:varchar(16);not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Currency  string          `gorm:"column:currency;type:char(3);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (PlanGORM) TableName() string {
	return "plans"
}

// SubscriptionGORM 訂閱資料表模型
//
// 只保存推導到期日所需的輸入（方案代碼、週期快照、開始日期），
// 不存在 expiry 欄位。
type SubscriptionGORM struct {
	SubscriptionID string    `gorm:"column:subscription_id;type:varchar(36);primaryKey"`
	MemberID       string    `gorm:"column:member_id;type:varchar(36);not null;index"`
	PlanCode       string    `gorm:"column:plan_code;type:varchar(64);not null"`
	Cadence        string    `gorm:"column:cadence;type:varchar(16);not null"`
	StartDate      time.Time `gorm:"column:start_date;type:date;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null"`
	Version        int       `gorm:"column:version;not null;default:1"` // 樂觀鎖
}

// TableName 指定資料表名稱
func (SubscriptionGORM) TableName() string {
	return "subscriptions"
}

// Models 本套件需要遷移的資料表
func Models() []any {
	return []any{&PlanGORM{}, &SubscriptionGORM{}}
}

// ===========================
// Mapper Functions
// ===========================

func (g *PlanGORM) toDomain() (subscription.Plan, error) {
	code, err := subscription.NewPlanCode(g.Code)
	if err != nil {
		return subscription.Plan{}, err
	}
	cadence, err := subscription.ParseCadence(g.Cadence)
	if err != nil {
		return subscription.Plan{}, err
	}
	return subscription.NewPlan(code, g.Name, cadence, g.Price, g.Currency)
}

func planToGORM(p subscription.Plan) *PlanGORM {
	return &PlanGORM{
		Code:     p.Code().String(),
		Name:     p.Name(),
		Cadence:  p.Cadence().String(),
		Price:    p.Price(),
		Currency: p.Currency(),
	}
}

func (g *SubscriptionGORM) toDomain() (*subscription.Subscription, error) {
	id, err := subscription.SubscriptionIDFromString(g.SubscriptionID)
	if err != nil {
		return nil, err
	}
	memberID, err := subscription.MemberIDFromString(g.MemberID)
	if err != nil {
		return nil, err
	}
	code, err := subscription.NewPlanCode(g.PlanCode)
	if err != nil {
		return nil, err
	}

	return subscription.ReconstructSubscription(
		id,
		memberID,
		code,
		subscription.Cadence(g.Cadence),
		subscription.DateOf(g.StartDate, time.UTC),
		g.CreatedAt,
		g.UpdatedAt,
		g.Version,
	)
}

func subscriptionToGORM(s *subscription.Subscription) *SubscriptionGORM {
	return &SubscriptionGORM{
		SubscriptionID: s.ID().String(),
		MemberID:       s.MemberID().String(),
		PlanCode:       s.PlanCode().String(),
		Cadence:        s.Cadence().String(),
		StartDate:      s.Start().Time(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
		Version:        s.Version(),
	}
}
