package points

import "github.com/jackyeh168/club_ledger/src/internal/domain/shared"

// ErrInvalidHistoryView 未知的歷史視圖
var ErrInvalidHistoryView = shared.NewDomainError("INVALID_HISTORY_VIEW", shared.KindValidation, "無效的歷史視圖")
