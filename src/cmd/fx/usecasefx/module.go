package usecasefx

import (
	"fmt"

	bookingapp "github.com/jackyeh168/club_ledger/src/internal/application/booking"
	pointsapp "github.com/jackyeh168/club_ledger/src/internal/application/points"
	rewardapp "github.com/jackyeh168/club_ledger/src/internal/application/reward"
	subscriptionapp "github.com/jackyeh168/club_ledger/src/internal/application/subscription"
	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/config"
	httpapi "github.com/jackyeh168/club_ledger/src/internal/interfaces/http"
	"go.uber.org/fx"
)

var Module = fx.Provide(
	subscriptionapp.NewListPlansUseCase,
	subscriptionapp.NewQuoteExpiryUseCase,
	subscriptionapp.NewStartSubscriptionUseCase,
	subscriptionapp.NewChangeSubscriptionUseCase,

	pointsapp.NewLedgerWriter,
	provideConversionRate,
	pointsapp.NewEarnPointsUseCase,
	pointsapp.NewCreditSettlementUseCase,
	pointsapp.NewRedeemPointsUseCase,
	pointsapp.NewGetPointsBalanceUseCase,
	pointsapp.NewGetHistoryUseCase,

	rewardapp.NewListRewardsUseCase,
	rewardapp.NewRedeemRewardUseCase,

	bookingapp.NewScheduleBookingUseCase,
	bookingapp.NewIsBookedUseCase,
	bookingapp.NewArchiveBookingUseCase,

	provideUseCases,
)

func provideConversionRate(cfg config.Config) (points.ConversionRate, error) {
	rate, err := points.NewConversionRate(cfg.PointsConversionRate)
	if err != nil {
		return points.ConversionRate{}, fmt.Errorf("POINTS_CONVERSION_RATE: %w", err)
	}
	return rate, nil
}

type useCaseParams struct {
	fx.In

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

func provideUseCases(p useCaseParams) httpapi.UseCases {
	return httpapi.UseCases{
		ListPlans:          p.ListPlans,
		QuoteExpiry:        p.QuoteExpiry,
		StartSubscription:  p.StartSubscription,
		ChangeSubscription: p.ChangeSubscription,
		EarnPoints:         p.EarnPoints,
		CreditSettlement:   p.CreditSettlement,
		RedeemPoints:       p.RedeemPoints,
		GetBalance:         p.GetBalance,
		GetHistory:         p.GetHistory,
		ListRewards:        p.ListRewards,
		RedeemReward:       p.RedeemReward,
		ScheduleBooking:    p.ScheduleBooking,
		IsBooked:           p.IsBooked,
		ArchiveBooking:     p.ArchiveBooking,
	}
}
