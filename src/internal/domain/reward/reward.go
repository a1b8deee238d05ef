package reward

import (
	"strconv"
	"strings"

	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
)

// RewardID 獎品 ID（目錄中的正整數流水號）
type RewardID int64

// NewRewardID 建立獎品 ID
func NewRewardID(v int64) (RewardID, error) {
	if v <= 0 {
		return 0, ErrInvalidRewardID.WithContext("input", v)
	}
	return RewardID(v), nil
}

// RewardIDFromString 解析路徑參數
func RewardIDFromString(s string) (RewardID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrInvalidRewardID.WithContext("input", s, "parse_error", err.Error())
	}
	return NewRewardID(v)
}

// Int64 回傳數值
func (id RewardID) Int64() int64 { return int64(id) }

// String 十進位字串
func (id RewardID) String() string { return strconv.FormatInt(int64(id), 10) }

// Reward 獎品目錄項目
//
// 不變量：
// 1. ID 為正整數
// 2. 名稱不可為空
// 3. 兌換成本為正整數積分
//
// 圖片參照由外部素材服務提供，核心不解讀其內容。
type Reward struct {
	id       RewardID
	name     string
	imageRef string
	cost     points.PointsAmount
}

// NewReward 建立獎品
func NewReward(id RewardID, name, imageRef string, cost int) (Reward, error) {
	if id <= 0 {
		return Reward{}, ErrInvalidRewardID.WithContext("input", int64(id))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Reward{}, ErrInvalidReward.WithContext("reward_id", id.String(), "reason", "name is required")
	}
	amount, err := points.NewPositivePointsAmount(cost)
	if err != nil {
		return Reward{}, ErrInvalidReward.WithContext("reward_id", id.String(), "cost", cost)
	}

	return Reward{id: id, name: name, imageRef: imageRef, cost: amount}, nil
}

func (r Reward) ID() RewardID { return r.id }
func (r Reward) Name() string { return r.name }
func (r Reward) ImageRef() string { return r.imageRef }
func (r Reward) Cost() points.PointsAmount { return r.cost }

// Ref 兌換交易使用的獎品快照
func (r Reward) Ref() points.RewardRef {
	return points.RewardRef{ID: int64(r.id), Name: r.name}
}
