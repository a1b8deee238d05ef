package subscription

// ===========================
// 訂閱期限計算（純函數）
// ===========================

// ComputeExpiry 依開始日期與週期計算到期日
//
// 規則：
// - daily    → 開始日 + 1 天
// - weekly   → 開始日 + 7 天
// - monthly  → 開始日 + 1 個日曆月，夾到目標月份月底（2024-01-31 → 2024-02-29）
// - yearly   → 開始日 + 1 年，2/29 在非閏年夾到 2/28
// - lifetime → UnboundedExpiry()
//
// 純函數：相同輸入永遠得到相同輸出，不讀取時鐘、無副作用。
func ComputeExpiry(start Date, cadence Cadence) (Expiry, error) {
	if start.IsZero() {
		return Expiry{}, ErrInvalidStartDate.WithContext("reason", "start date is required")
	}

	switch cadence {
	case CadenceDaily:
		return ExpiresOn(start.AddDays(1)), nil
	case CadenceWeekly:
		return ExpiresOn(start.AddDays(7)), nil
	case CadenceMonthly:
		return ExpiresOn(start.AddMonthsClamped(1)), nil
	case CadenceYearly:
		return ExpiresOn(start.AddYearsClamped(1)), nil
	case CadenceLifetime:
		return UnboundedExpiry(), nil
	default:
		return Expiry{}, ErrInvalidCadence.WithContext("cadence", string(cadence))
	}
}

// TermRequest 期限計算請求
//
// ScheduledOn 是排程當下的日期，由呼叫者提供（Use Case 從 Clock 取得），
// 因此 ComputeTerm 本身仍是純函數。
type TermRequest struct {
	Start       Date
	Cadence     Cadence
	ScheduledOn Date
	Backdated   bool // 呼叫者明確標記為補登時，允許開始日早於排程日
}

// ComputeTerm 驗證開始日期後計算到期日
//
// 錯誤：
// - ErrInvalidStartDate：Start 嚴格早於 ScheduledOn 且未標記 Backdated
// - ErrInvalidCadence：未知週期
func ComputeTerm(req TermRequest) (Expiry, error) {
	if !req.Backdated && !req.ScheduledOn.IsZero() && req.Start.Before(req.ScheduledOn) {
		return Expiry{}, ErrInvalidStartDate.WithContext(
			"start", req.Start.String(),
			"scheduled_on", req.ScheduledOn.String(),
		)
	}
	return ComputeExpiry(req.Start, req.Cadence)
}
