package reward

import (
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/reward"
)

// RewardGORM 獎品目錄資料表模型
//
// reward_id 由目錄維護者指定（正整數），不使用自動遞增。
type RewardGORM struct {
	RewardID  int64     `gorm:"column:reward_id;primaryKey;autoIncrement:false"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	ImageRef  string    `gorm:"column:image_ref;type:varchar(512);not null;default:''"`
	Cost      int       `gorm:"column:cost;not null;check:chk_rewards_cost_positive,cost > 0"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (RewardGORM) TableName() string {
	return "rewards"
}

// Models 本套件需要遷移的資料表
func Models() []any {
	return []any{&RewardGORM{}}
}

func (g *RewardGORM) toDomain() (reward.Reward, error) {
	return reward.NewReward(reward.RewardID(g.RewardID), g.Name, g.ImageRef, g.Cost)
}

func toGORM(r reward.Reward) *RewardGORM {
	return &RewardGORM{
		RewardID: r.ID().Int64(),
		Name:     r.Name(),
		ImageRef: r.ImageRef(),
		Cost:     r.Cost().Value(),
	}
}
