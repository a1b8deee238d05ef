package points

import (
	"github.com/shopspring/decimal"
)

// ===========================
// PointsCalculationService 領域服務
// ===========================

// PointsCalculationService 積分計算領域服務
//
// 協調多個值對象（ConversionRate + 結算金額 → PointsAmount），無狀態。
type PointsCalculationService struct{}

// NewPointsCalculationService 建構函數
func NewPointsCalculationService() *PointsCalculationService {
	return &PointsCalculationService{}
}

// CalculateFromAmount 根據結算金額和轉換率計算積分
//
// 業務規則：
// - 積分 = floor(金額 / 轉換率)
// - 使用向下取整（99.99 元在 100:1 下得到 0 點）
// - 負數金額返回 0 積分
func (s *PointsCalculationService) CalculateFromAmount(
	amount decimal.Decimal,
	rate ConversionRate,
) (PointsAmount, error) {
	if rate.Value() == 0 {
		return PointsAmount{}, ErrInvalidConversionRate.WithContext("value", 0)
	}
	rateValue := decimal.NewFromInt(int64(rate.Value()))

	points := amount.Div(rateValue).Floor()
	if points.IsNegative() {
		return newPointsAmountUnchecked(0), nil
	}
	if points.GreaterThan(decimal.NewFromInt(MaxPointsAmount)) {
		return PointsAmount{}, ErrPointsOverflow.WithContext("amount", amount.String())
	}

	return NewPointsAmount(int(points.IntPart()))
}

// Settlement 付款閘道的結算確認（不透明的「款項已收」訊號）
type Settlement struct {
	Reference string          // 閘道提供的唯一參照，同時作為冪等鍵
	Amount    decimal.Decimal // 實收金額
	Currency  string
}

// Validate 檢查結算確認是否可入帳
func (s Settlement) Validate() error {
	if s.Reference == "" {
		return ErrInvalidSettlement.WithContext("reason", "reference is required")
	}
	if len(s.Reference) > maxIdempotencyKeyLength {
		return ErrInvalidSettlement.WithContext("reason", "reference too long")
	}
	if !s.Amount.IsPositive() {
		return ErrInvalidSettlement.WithContext("reference", s.Reference, "amount", s.Amount.String())
	}
	return nil
}
