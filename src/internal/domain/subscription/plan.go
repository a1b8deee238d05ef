package subscription

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ===========================
// PlanCode 方案代碼
// ===========================

var planCodePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// PlanCode 方案代碼值對象（例如 pro_monthly）
type PlanCode struct {
	value string
}

// NewPlanCode 建立方案代碼（不分大小寫，統一轉為小寫）
func NewPlanCode(s string) (PlanCode, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if !planCodePattern.MatchString(normalized) {
		return PlanCode{}, ErrInvalidPlanCode.WithContext("input", s)
	}
	return PlanCode{value: normalized}, nil
}

// IsValidPlanCode 供輸入驗證使用
func IsValidPlanCode(s string) bool {
	_, err := NewPlanCode(s)
	return err == nil
}

// String 回傳方案代碼
func (c PlanCode) String() string { return c.value }

// IsEmpty 是否為零值
func (c PlanCode) IsEmpty() bool { return c.value == "" }

// Equals 比較方案代碼
func (c PlanCode) Equals(other PlanCode) bool { return c.value == other.value }

// ===========================
// Plan 方案（靜態參考資料）
// ===========================

// Plan 方案
//
// 不變量：
// 1. 代碼與名稱不可為空
// 2. 週期必須合法
// 3. 價格不可為負
// 4. 幣別為三碼大寫 ISO 4217
//
// 方案是不可變的參考資料，建立後只能查詢。
type Plan struct {
	code     PlanCode
	name     string
	cadence  Cadence
	price    decimal.Decimal
	currency string
}

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// NewPlan 建立方案
func NewPlan(code PlanCode, name string, cadence Cadence, price decimal.Decimal, currency string) (Plan, error) {
	if code.IsEmpty() {
		return Plan{}, ErrInvalidPlanCode.WithContext("reason", "plan code is required")
	}
	if strings.TrimSpace(name) == "" {
		return Plan{}, ErrInvalidPlan.WithContext("code", code.String(), "reason", "name is required")
	}
	if !cadence.IsValid() {
		return Plan{}, ErrInvalidCadence.WithContext("code", code.String(), "cadence", string(cadence))
	}
	if price.IsNegative() {
		return Plan{}, ErrInvalidPlan.WithContext("code", code.String(), "price", price.String())
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !currencyPattern.MatchString(currency) {
		return Plan{}, ErrInvalidPlan.WithContext("code", code.String(), "currency", currency)
	}

	return Plan{
		code:     code,
		name:     name,
		cadence:  cadence,
		price:    price,
		currency: currency,
	}, nil
}

// Code 方案代碼
func (p Plan) Code() PlanCode { return p.code }

// Name 顯示名稱
func (p Plan) Name() string { return p.name }

// Cadence 計費週期
func (p Plan) Cadence() Cadence { return p.cadence }

// Price 價格
func (p Plan) Price() decimal.Decimal { return p.price }

// Currency 幣別
func (p Plan) Currency() string { return p.currency }
