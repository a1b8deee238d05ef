package http

import (
	"log/slog"

	bookingapp "github.com/jackyeh168/club_ledger/src/internal/application/booking"
	pointsapp "github.com/jackyeh168/club_ledger/src/internal/application/points"
	rewardapp "github.com/jackyeh168/club_ledger/src/internal/application/reward"
	subscriptionapp "github.com/jackyeh168/club_ledger/src/internal/application/subscription"
)

// UseCases HTTP 層依賴的所有 Use Case
type UseCases struct {
	ListPlans          *subscriptionapp.ListPlansUseCase
	QuoteExpiry        *subscriptionapp.QuoteExpiryUseCase
	StartSubscription  *subscriptionapp.StartSubscriptionUseCase
	ChangeSubscription *subscriptionapp.ChangeSubscriptionUseCase

	EarnPoints       *pointsapp.EarnPointsUseCase
	CreditSettlement *pointsapp.CreditSettlementUseCase
	RedeemPoints     *pointsapp.RedeemPointsUseCase
	GetBalance       *pointsapp.GetPointsBalanceUseCase
	GetHistory       *pointsapp.GetHistoryUseCase

	ListRewards  *rewardapp.ListRewardsUseCase
	RedeemReward *rewardapp.RedeemRewardUseCase

	ScheduleBooking *bookingapp.ScheduleBookingUseCase
	IsBooked        *bookingapp.IsBookedUseCase
	ArchiveBooking  *bookingapp.ArchiveBookingUseCase
}

// Handlers gin 處理函式集合
//
// 會員身分由外部驗證後以路徑參數帶入，這裡不做身分檢查。
type Handlers struct {
	uc         UseCases
	logger     *slog.Logger
	rejections RejectionRecorder
}

// NewHandlers 建立 Handlers；rejections 可為 nil
func NewHandlers(uc UseCases, logger *slog.Logger, rejections RejectionRecorder) *Handlers {
	return &Handlers{
		uc:         uc,
		logger:     logger,
		rejections: rejections,
	}
}
