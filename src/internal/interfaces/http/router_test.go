package http

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	bookingapp "github.com/jackyeh168/club_ledger/src/internal/application/booking"
	pointsapp "github.com/jackyeh168/club_ledger/src/internal/application/points"
	rewardapp "github.com/jackyeh168/club_ledger/src/internal/application/reward"
	subscriptionapp "github.com/jackyeh168/club_ledger/src/internal/application/subscription"
	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/events"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/lock"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/logging"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/metrics"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence"
	bookingpersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/booking"
	pointspersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/points"
	rewardpersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/reward"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/schema"
	subscriptionpersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/subscription"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// 測試輔助
// ===========================

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := persistence.NewTestDB(t, schema.Models()...)
	txManager := persistence.NewGORMTransactionManager(db)
	require.NoError(t, schema.SeedCatalog(txManager, db))

	logger := logging.Discard()
	clock := shared.FixedClock{At: time.Date(2025, time.May, 5, 18, 0, 0, 0, time.UTC)}
	locker := lock.NewKeyedMutex()

	registry := prometheus.NewRegistry()
	ledgerMetrics, err := metrics.NewLedgerMetrics(registry)
	require.NoError(t, err)
	bus := events.NewInProcessBus(logger)
	require.NoError(t, bus.Subscribe(events.AllEvents, ledgerMetrics))

	planRepo := subscriptionpersistence.NewPlanRepository(db)
	subRepo := subscriptionpersistence.NewSubscriptionRepository(db)
	ledgerRepo := pointspersistence.NewLedgerRepository(db)
	rewardRepo := rewardpersistence.NewRewardRepository(db)
	bookingRepo := bookingpersistence.NewBookingRepository(db)

	writer := pointsapp.NewLedgerWriter(ledgerRepo, txManager, locker)
	redeemPoints := pointsapp.NewRedeemPointsUseCase(writer, bus, clock, logger)

	uc := UseCases{
		ListPlans:          subscriptionapp.NewListPlansUseCase(planRepo),
		QuoteExpiry:        subscriptionapp.NewQuoteExpiryUseCase(planRepo, clock),
		StartSubscription:  subscriptionapp.NewStartSubscriptionUseCase(planRepo, subRepo, txManager, bus, clock, logger),
		ChangeSubscription: subscriptionapp.NewChangeSubscriptionUseCase(planRepo, subRepo, txManager, bus, clock, logger),
		EarnPoints:         pointsapp.NewEarnPointsUseCase(writer, bus, clock, logger),
		CreditSettlement:   pointsapp.NewCreditSettlementUseCase(writer, points.DefaultConversionRate, bus, clock, logger),
		RedeemPoints:       redeemPoints,
		GetBalance:         pointsapp.NewGetPointsBalanceUseCase(ledgerRepo),
		GetHistory:         pointsapp.NewGetHistoryUseCase(ledgerRepo),
		ListRewards:        rewardapp.NewListRewardsUseCase(rewardRepo),
		RedeemReward:       rewardapp.NewRedeemRewardUseCase(rewardRepo, redeemPoints),
		ScheduleBooking:    bookingapp.NewScheduleBookingUseCase(bookingRepo, txManager, locker, bus, clock, logger),
		IsBooked:           bookingapp.NewIsBookedUseCase(bookingRepo),
		ArchiveBooking:     bookingapp.NewArchiveBookingUseCase(bookingRepo, txManager, locker, bus, clock, logger),
	}

	router, err := NewRouter(NewHandlers(uc, logger, ledgerMetrics), logger, registry)
	require.NoError(t, err)
	return router
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func earn(t *testing.T, r *gin.Engine, memberID string, amount int) {
	t.Helper()
	w := doJSON(t, r, nethttp.MethodPost, "/members/"+memberID+"/points/earn", map[string]any{"amount": amount})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
}

// ===========================
// 基本路由
// ===========================

func TestRouter_Healthz(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, nethttp.MethodGet, "/healthz", nil)

	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRouter_RequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, nethttp.MethodGet, "/healthz", nil, requestIDHeader, "req-123")

	assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))
}

// ===========================
// 方案與訂閱
// ===========================

func TestListPlans_ReturnsSeededCatalog(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, nethttp.MethodGet, "/plans", nil)

	require.Equal(t, nethttp.StatusOK, w.Code)
	plans := decode(t, w)["plans"].([]any)
	require.Len(t, plans, 5)
	first := plans[0].(map[string]any)
	assert.Equal(t, "day_pass", first["code"])
	assert.Equal(t, "150.00", first["price"])
}

func TestQuoteExpiry(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantExpiry string
		unbounded  bool
	}{
		{
			name:       "monthly clamps to end of february",
			body:       map[string]any{"cadence": "monthly", "start": "2024-01-31", "backdated": true},
			wantStatus: nethttp.StatusOK,
			wantExpiry: "2024-02-29",
		},
		{
			name:       "plan code resolves cadence",
			body:       map[string]any{"plan_code": "pro_yearly", "start": "2028-02-29"},
			wantStatus: nethttp.StatusOK,
			wantExpiry: "2029-02-28",
		},
		{
			name:       "lifetime is unbounded",
			body:       map[string]any{"plan_code": "founder_lifetime", "start": "2025-05-05"},
			wantStatus: nethttp.StatusOK,
			unbounded:  true,
		},
		{
			name:       "past start without backdated flag",
			body:       map[string]any{"cadence": "daily", "start": "2025-05-01"},
			wantStatus: nethttp.StatusBadRequest,
		},
		{
			name:       "unknown cadence rejected by binding",
			body:       map[string]any{"cadence": "fortnightly", "start": "2025-05-05"},
			wantStatus: nethttp.StatusBadRequest,
		},
		{
			name:       "unknown plan",
			body:       map[string]any{"plan_code": "platinum", "start": "2025-05-05"},
			wantStatus: nethttp.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, nethttp.MethodPost, "/subscriptions/quote", tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != nethttp.StatusOK {
				return
			}
			body := decode(t, w)
			assert.Equal(t, tt.unbounded, body["unbounded"])
			if tt.unbounded {
				assert.NotContains(t, body, "expiry")
			} else {
				assert.Equal(t, tt.wantExpiry, body["expiry"])
			}
		})
	}
}

func TestQuoteExpiry_PastStartReportsDomainCode(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, nethttp.MethodPost, "/subscriptions/quote",
		map[string]any{"cadence": "weekly", "start": "2025-04-01"})

	require.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Equal(t, "SUBSCRIPTION_START_DATE_INVALID", decode(t, w)["code"])
}

func TestSubscription_StartThenChangePlan(t *testing.T) {
	r := newTestRouter(t)
	memberID := uuid.NewString()

	w := doJSON(t, r, nethttp.MethodPost, "/members/"+memberID+"/subscriptions",
		map[string]any{"plan_code": "pro_monthly"})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "2025-05-05", created["start"])
	assert.Equal(t, "2025-06-05", created["expiry"])

	subID := created["subscription_id"].(string)
	w = doJSON(t, r, nethttp.MethodPatch, "/subscriptions/"+subID,
		map[string]any{"plan_code": "founder_lifetime"})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	changed := decode(t, w)
	assert.Equal(t, "lifetime", changed["cadence"])
	assert.Equal(t, true, changed["unbounded"])
	assert.EqualValues(t, 2, changed["version"])
}

func TestSubscription_ChangeUnknownReturns404(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, nethttp.MethodPatch, "/subscriptions/"+uuid.NewString(),
		map[string]any{"start": "2025-06-01"})

	assert.Equal(t, nethttp.StatusNotFound, w.Code)
}

// ===========================
// 積分與獎品
// ===========================

func TestRedeemReward_DebitsCostAndLinksReward(t *testing.T) {
	r := newTestRouter(t)
	memberID := uuid.NewString()
	earn(t, r, memberID, 100)

	w := doJSON(t, r, nethttp.MethodPost, "/members/"+memberID+"/rewards/7/redeem", nil)

	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.EqualValues(t, 60, body["balance"])
	assert.EqualValues(t, 40, body["cost"])
	assert.Equal(t, "Club T-Shirt", body["reward_name"])

	w = doJSON(t, r, nethttp.MethodGet, "/members/"+memberID+"/points/history?view=redemptions", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	redemptions := decode(t, w)["redemptions"].([]any)
	require.Len(t, redemptions, 1)
	entry := redemptions[0].(map[string]any)
	assert.EqualValues(t, 40, entry["amount"])
	assert.EqualValues(t, 7, entry["reward_id"])
}

func TestRedeemReward_Rejections(t *testing.T) {
	r := newTestRouter(t)
	memberID := uuid.NewString()
	earn(t, r, memberID, 50)

	tests := []struct {
		name       string
		rewardID   string
		wantStatus int
		wantCode   string
	}{
		{"insufficient balance", "8", nethttp.StatusUnprocessableEntity, "POINTS_INSUFFICIENT_BALANCE"},
		{"unknown reward", "99", nethttp.StatusNotFound, "REWARD_NOT_FOUND"},
		{"malformed reward id", "abc", nethttp.StatusBadRequest, "REWARD_ID_INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, nethttp.MethodPost, "/members/"+memberID+"/rewards/"+tt.rewardID+"/redeem", nil)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, decode(t, w)["code"])
		})
	}

	w := doJSON(t, r, nethttp.MethodGet, "/members/"+memberID+"/points/balance", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.EqualValues(t, 50, decode(t, w)["balance"])
}

func TestRedeemReward_IdempotencyKeyReplays(t *testing.T) {
	r := newTestRouter(t)
	memberID := uuid.NewString()
	earn(t, r, memberID, 100)
	path := "/members/" + memberID + "/rewards/2/redeem"

	first := doJSON(t, r, nethttp.MethodPost, path, nil, idempotencyKeyHeader, "click-1")
	second := doJSON(t, r, nethttp.MethodPost, path, nil, idempotencyKeyHeader, "click-1")

	require.Equal(t, nethttp.StatusCreated, first.Code, first.Body.String())
	require.Equal(t, nethttp.StatusOK, second.Code, second.Body.String())
	firstBody, secondBody := decode(t, first), decode(t, second)
	assert.Equal(t, firstBody["transaction_id"], secondBody["transaction_id"])
	assert.Equal(t, true, secondBody["replayed"])

	w := doJSON(t, r, nethttp.MethodGet, "/members/"+memberID+"/points/balance", nil)
	assert.EqualValues(t, 75, decode(t, w)["balance"])
}

func TestRedeemReward_KeyReusedForOtherReward_Returns409(t *testing.T) {
	r := newTestRouter(t)
	memberID := uuid.NewString()
	earn(t, r, memberID, 200)

	first := doJSON(t, r, nethttp.MethodPost, "/members/"+memberID+"/rewards/7/redeem", nil, idempotencyKeyHeader, "r1")
	second := doJSON(t, r, nethttp.MethodPost, "/members/"+memberID+"/rewards/8/redeem", nil, idempotencyKeyHeader, "r1")

	require.Equal(t, nethttp.StatusCreated, first.Code, first.Body.String())
	require.Equal(t, nethttp.StatusConflict, second.Code, second.Body.String())
	assert.Equal(t, "IDEMPOTENCY_KEY_REUSED", decode(t, second)["code"])

	w := doJSON(t, r, nethttp.MethodGet, "/members/"+memberID+"/points/balance", nil)
	assert.EqualValues(t, 160, decode(t, w)["balance"])
}

func TestEarnThenRedeem_SameKeyIsTwoRequests(t *testing.T) {
	r := newTestRouter(t)
	memberID := uuid.NewString()

	earned := doJSON(t, r, nethttp.MethodPost, "/members/"+memberID+"/points/earn",
		map[string]any{"amount": 100}, idempotencyKeyHeader, "k")
	redeemed := doJSON(t, r, nethttp.MethodPost, "/members/"+memberID+"/rewards/7/redeem",
		nil, idempotencyKeyHeader, "k")

	require.Equal(t, nethttp.StatusCreated, earned.Code, earned.Body.String())
	require.Equal(t, nethttp.StatusCreated, redeemed.Code, redeemed.Body.String())
	body := decode(t, redeemed)
	assert.Equal(t, false, body["replayed"])
	assert.EqualValues(t, 40, body["cost"])
	assert.EqualValues(t, 60, body["balance"])
}

func TestRedeemPoints_SequentialSecondFails(t *testing.T) {
	r := newTestRouter(t)
	memberID := uuid.NewString()
	earn(t, r, memberID, 50)
	path := "/members/" + memberID + "/points/redeem"

	first := doJSON(t, r, nethttp.MethodPost, path, map[string]any{"amount": 30})
	second := doJSON(t, r, nethttp.MethodPost, path, map[string]any{"amount": 30})

	require.Equal(t, nethttp.StatusCreated, first.Code, first.Body.String())
	assert.EqualValues(t, 20, decode(t, first)["balance"])
	assert.Equal(t, nethttp.StatusUnprocessableEntity, second.Code)
}

func TestCreditSettlement(t *testing.T) {
	r := newTestRouter(t)
	memberID := uuid.NewString()
	path := "/members/" + memberID + "/points/settlements"

	w := doJSON(t, r, nethttp.MethodPost, path,
		map[string]any{"reference": "INV-001", "amount": "1250.00", "currency": "twd"})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["credited"])
	assert.EqualValues(t, 12, body["points"])

	w = doJSON(t, r, nethttp.MethodPost, path,
		map[string]any{"reference": "INV-002", "amount": "99", "currency": "TWD"})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, false, decode(t, w)["credited"])

	w = doJSON(t, r, nethttp.MethodPost, path,
		map[string]any{"reference": "INV-001", "amount": "1250.00", "currency": "TWD"})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, nethttp.MethodGet, "/members/"+memberID+"/points/balance", nil)
	assert.EqualValues(t, 12, decode(t, w)["balance"])
}

func TestGetHistory_InvalidView(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, nethttp.MethodGet, "/members/"+uuid.NewString()+"/points/history?view=bogus", nil)

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}

func TestEarnPoints_BindingErrors(t *testing.T) {
	r := newTestRouter(t)
	path := "/members/" + uuid.NewString() + "/points/earn"

	req := httptest.NewRequest(nethttp.MethodPost, path, strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Equal(t, codeInvalidRequest, decode(t, w)["code"])

	w = doJSON(t, r, nethttp.MethodPost, path, map[string]any{"amount": 10, "source": "redemption"})
	require.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Equal(t, codeInvalidRequest, decode(t, w)["code"])
}

func TestEarnPoints_InvalidMemberID(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, nethttp.MethodPost, "/members/not-a-uuid/points/earn", map[string]any{"amount": 10})

	require.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Equal(t, "MEMBER_ID_INVALID", decode(t, w)["code"])
}

// ===========================
// 預約
// ===========================

func TestBooking_DuplicateArchiveAndRebook(t *testing.T) {
	r := newTestRouter(t)
	memberID := uuid.NewString()
	path := "/members/" + memberID + "/bookings"
	slot := map[string]any{"event_id": 42, "occurs_at": "2025-06-01T19:00:00Z"}

	first := doJSON(t, r, nethttp.MethodPost, path, slot)
	require.Equal(t, nethttp.StatusCreated, first.Code, first.Body.String())

	dup := doJSON(t, r, nethttp.MethodPost, path, slot)
	require.Equal(t, nethttp.StatusConflict, dup.Code)
	assert.Equal(t, "BOOKING_DUPLICATE", decode(t, dup)["code"])

	other := doJSON(t, r, nethttp.MethodPost, path,
		map[string]any{"event_id": 42, "occurs_at": "2025-06-08T19:00:00Z"})
	require.Equal(t, nethttp.StatusCreated, other.Code, other.Body.String())

	w := doJSON(t, r, nethttp.MethodGet, "/members/"+memberID+"/events/42/booked", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["booked"])

	bookingID := decode(t, first)["booking_id"].(string)
	w = doJSON(t, r, nethttp.MethodPost, "/bookings/"+bookingID+"/archive", nil)
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "archived", decode(t, w)["status"])

	again := doJSON(t, r, nethttp.MethodPost, path, slot)
	assert.Equal(t, nethttp.StatusCreated, again.Code, again.Body.String())
}

func TestIsBooked_InvalidEventID(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, nethttp.MethodGet, "/members/"+uuid.NewString()+"/events/x/booked", nil)

	require.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Equal(t, "CLASS_EVENT_ID_INVALID", decode(t, w)["code"])
}

// ===========================
// 指標
// ===========================

func TestMetrics_ExposesLedgerCounters(t *testing.T) {
	r := newTestRouter(t)
	memberID := uuid.NewString()
	earn(t, r, memberID, 10)
	doJSON(t, r, nethttp.MethodPost, "/members/"+memberID+"/rewards/8/redeem", nil)

	w := doJSON(t, r, nethttp.MethodGet, "/metrics", nil)

	require.Equal(t, nethttp.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `club_ledger_points_earned_total{source="manual"} 10`)
	assert.Contains(t, body, `club_ledger_operation_rejections_total{kind="business_rule",operation="redeem_reward"} 1`)
}
