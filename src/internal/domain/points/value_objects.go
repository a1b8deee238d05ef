package points

import (
	"fmt"
	"strings"
)

// MaxPointsAmount 單一數量的上限（避免加總溢位）
const MaxPointsAmount = 1_000_000_000

// ===========================
// PointsAmount 積分數量值對象
// ===========================

// PointsAmount 積分數量值對象
// 設計原則：值對象不可變、自我驗證
type PointsAmount struct {
	value int
}

// NewPointsAmount 建構函數（checked 版本）
//
// 建構約束：0 <= value <= MaxPointsAmount
func NewPointsAmount(value int) (PointsAmount, error) {
	if value < 0 {
		return PointsAmount{}, fmt.Errorf(
			"%w: attempted to create PointsAmount with value %d",
			ErrNegativePointsAmount,
			value,
		)
	}
	if value > MaxPointsAmount {
		return PointsAmount{}, ErrPointsOverflow.WithContext("value", value, "max", MaxPointsAmount)
	}
	return PointsAmount{value: value}, nil
}

// NewPositivePointsAmount 賺取／兌換用的數量，必須大於零
func NewPositivePointsAmount(value int) (PointsAmount, error) {
	if value <= 0 {
		return PointsAmount{}, ErrInvalidPointsAmount.WithContext("value", value)
	}
	return NewPointsAmount(value)
}

// newPointsAmountUnchecked 內部建構函數
//
// 前提條件：調用者必須保證 0 <= value <= MaxPointsAmount
func newPointsAmountUnchecked(value int) PointsAmount {
	return PointsAmount{value: value}
}

// Value 獲取積分數量
func (p PointsAmount) Value() int {
	return p.value
}

// IsZero 是否為零
func (p PointsAmount) IsZero() bool {
	return p.value == 0
}

// Add 相加（返回新的 PointsAmount，保持不變性）
//
// 結果超過 MaxPointsAmount 時回傳 ErrPointsOverflow。
func (p PointsAmount) Add(other PointsAmount) (PointsAmount, error) {
	sum := p.value + other.value
	if sum > MaxPointsAmount {
		return PointsAmount{}, ErrPointsOverflow.WithContext("left", p.value, "right", other.value)
	}
	return newPointsAmountUnchecked(sum), nil
}

// Subtract 相減（返回新的 PointsAmount）
// 業務規則：不能扣除超過當前數量的積分
func (p PointsAmount) Subtract(other PointsAmount) (PointsAmount, error) {
	if p.value < other.value {
		return PointsAmount{}, ErrInsufficientBalance.WithContext(
			"balance", p.value,
			"requested", other.value,
		)
	}
	return newPointsAmountUnchecked(p.value - other.value), nil
}

// Equals 比較兩個 PointsAmount 是否相等
func (p PointsAmount) Equals(other PointsAmount) bool {
	return p.value == other.value
}

// GreaterThan 判斷是否大於另一個 PointsAmount
func (p PointsAmount) GreaterThan(other PointsAmount) bool {
	return p.value > other.value
}

// LessThan 判斷是否小於另一個 PointsAmount
func (p PointsAmount) LessThan(other PointsAmount) bool {
	return p.value < other.value
}

// ===========================
// ConversionRate 轉換率值對象
// ===========================

// ConversionRate 多少金額（TWD）兌換 1 點
//
// 建構約束：1 <= value <= 1000
type ConversionRate struct {
	value int
}

// DefaultConversionRate 100 TWD = 1 點
var DefaultConversionRate = ConversionRate{value: 100}

// NewConversionRate 建構轉換率
func NewConversionRate(value int) (ConversionRate, error) {
	if value < 1 || value > 1000 {
		return ConversionRate{}, ErrInvalidConversionRate.WithContext("value", value)
	}
	return ConversionRate{value: value}, nil
}

// Value 獲取轉換率
func (r ConversionRate) Value() int {
	return r.value
}

// ===========================
// PointsSource 積分來源
// ===========================

// PointsSource 交易來源
type PointsSource string

const (
	// SourceSettlement 付款結算確認後入帳
	SourceSettlement PointsSource = "settlement"
	// SourcePromotion 促銷活動贈點
	SourcePromotion PointsSource = "promotion"
	// SourceManual 管理員手動調整
	SourceManual PointsSource = "manual"
	// SourceRedemption 兌換扣點
	SourceRedemption PointsSource = "redemption"
)

// ParsePointsSource 解析來源字串
func ParsePointsSource(s string) (PointsSource, error) {
	src := PointsSource(strings.ToLower(strings.TrimSpace(s)))
	switch src {
	case SourceSettlement, SourcePromotion, SourceManual, SourceRedemption:
		return src, nil
	default:
		return "", ErrInvalidPointsSource.WithContext("input", s)
	}
}

// IsEarnSource 是否為入帳來源（兌換只能用於扣點）
func (s PointsSource) IsEarnSource() bool {
	return s == SourceSettlement || s == SourcePromotion || s == SourceManual
}

// String 回傳來源字串
func (s PointsSource) String() string {
	return string(s)
}

// ===========================
// RewardRef 兌換的獎品參照
// ===========================

// RewardRef 兌換交易連結的獎品
//
// 名稱是兌換當下的快照，獎品目錄之後的修改不影響歷史交易。
type RewardRef struct {
	ID   int64
	Name string
}

// ===========================
// IdempotencyKey 冪等鍵
// ===========================

const maxIdempotencyKeyLength = 128

// NormalizeIdempotencyKey 去除空白並檢查長度；空字串代表未提供
func NormalizeIdempotencyKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if len(key) > maxIdempotencyKeyLength {
		return "", ErrInvalidIdempotencyKey.WithContext("length", len(key), "max", maxIdempotencyKeyLength)
	}
	return key, nil
}

// IdempotencyScope 冪等鍵的作用範圍，不同操作的鍵互不衝突
type IdempotencyScope string

const (
	ScopeEarn       IdempotencyScope = "earn"
	ScopeRedeem     IdempotencyScope = "redeem"
	ScopeSettlement IdempotencyScope = "settlement"
)

// ScopedIdempotencyKey 加上操作前綴後的儲存鍵；key 為空時回傳空字串
func ScopedIdempotencyKey(scope IdempotencyScope, key string) string {
	if key == "" {
		return ""
	}
	return string(scope) + ":" + key
}
