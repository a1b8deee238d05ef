package subscription

import (
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// ===========================
// Subscription Aggregate Root
// ===========================

// Subscription 訂閱聚合根
//
// 聚合邊界：
// - 會員、方案代碼、方案週期快照
// - 開始日期
//
// 不變量（Invariants）：
// 1. 到期日永遠由 (開始日, 週期) 推導，不作為獨立狀態保存
// 2. 只有 ChangeStart / ChangePlan 能影響到期日
// 3. 重算是冪等的：相同輸入得到相同到期日
//
// 使用範例：
//
//	sub, err := NewSubscription(memberID, plan, TermRequest{...}, now)
//	expiry := sub.Expiry()
type Subscription struct {
	id       SubscriptionID
	memberID MemberID
	planCode PlanCode
	cadence  Cadence
	start    Date

	createdAt time.Time
	updatedAt time.Time
	version   int

	events []shared.DomainEvent
}

// NewSubscription 建立新訂閱（Checked Constructor）
//
// req.Cadence 會被方案的週期覆寫，呼叫者只需提供 Start、ScheduledOn、Backdated。
func NewSubscription(memberID MemberID, plan Plan, req TermRequest, now time.Time) (*Subscription, error) {
	if memberID.IsEmpty() {
		return nil, ErrInvalidMemberID.WithContext("reason", "member id is required")
	}
	req.Cadence = plan.Cadence()
	expiry, err := ComputeTerm(req)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		id:        NewSubscriptionID(),
		memberID:  memberID,
		planCode:  plan.Code(),
		cadence:   plan.Cadence(),
		start:     req.Start,
		createdAt: now,
		updatedAt: now,
		version:   1,
	}
	sub.events = append(sub.events, NewSubscriptionStartedEvent(sub.id, memberID, sub.planCode, expiry, now))
	return sub, nil
}

// ReconstructSubscription 重建訂閱聚合（用於從資料庫載入，不執行業務規則驗證）
func ReconstructSubscription(
	id SubscriptionID,
	memberID MemberID,
	planCode PlanCode,
	cadence Cadence,
	start Date,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Subscription, error) {
	if !cadence.IsValid() {
		return nil, ErrInvalidCadence.WithContext("subscription_id", id.String(), "cadence", string(cadence))
	}
	return &Subscription{
		id:        id,
		memberID:  memberID,
		planCode:  planCode,
		cadence:   cadence,
		start:     start,
		createdAt: createdAt,
		updatedAt: updatedAt,
		version:   version,
	}, nil
}

// ===========================
// 行為方法
// ===========================

// ChangeStart 變更開始日期，到期日隨之重算
func (s *Subscription) ChangeStart(start Date, scheduledOn Date, backdated bool, now time.Time) error {
	return s.change(s.planCode, s.cadence, start, scheduledOn, backdated, now)
}

// ChangePlan 變更方案，沿用原開始日期
//
// 原開始日期早於今天屬於既有事實，不視為補登。
func (s *Subscription) ChangePlan(plan Plan, now time.Time) error {
	return s.change(plan.Code(), plan.Cadence(), s.start, Date{}, true, now)
}

func (s *Subscription) change(code PlanCode, cadence Cadence, start, scheduledOn Date, backdated bool, now time.Time) error {
	previous := s.Expiry()
	expiry, err := ComputeTerm(TermRequest{
		Start:       start,
		Cadence:     cadence,
		ScheduledOn: scheduledOn,
		Backdated:   backdated,
	})
	if err != nil {
		return err
	}

	s.planCode = code
	s.cadence = cadence
	s.start = start
	s.updatedAt = now

	if !previous.Equal(expiry) {
		s.events = append(s.events, NewSubscriptionChangedEvent(s.id, previous, expiry, now))
	}
	return nil
}

// Expiry 到期日（每次讀取時由開始日與週期推導）
func (s *Subscription) Expiry() Expiry {
	expiry, err := ComputeExpiry(s.start, s.cadence)
	if err != nil {
		// 建構與重建都已驗證週期與開始日
		panic(err)
	}
	return expiry
}

// IsActiveOn 指定日期是否在訂閱期內
func (s *Subscription) IsActiveOn(d Date) bool {
	if d.Before(s.start) {
		return false
	}
	return s.Expiry().IsActiveOn(d)
}

// ===========================
// 查詢方法
// ===========================

func (s *Subscription) ID() SubscriptionID { return s.id }
func (s *Subscription) MemberID() MemberID { return s.memberID }
func (s *Subscription) PlanCode() PlanCode { return s.planCode }
func (s *Subscription) Cadence() Cadence { return s.cadence }
func (s *Subscription) Start() Date { return s.start }
func (s *Subscription) CreatedAt() time.Time { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time { return s.updatedAt }
func (s *Subscription) Version() int { return s.version }

// PullEvents 取出並清空尚未發布的領域事件
func (s *Subscription) PullEvents() []shared.DomainEvent {
	events := s.events
	s.events = nil
	return events
}
