package usecasees

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	ctrlMocks "remesa/internal/controllers/mocks"
	mongoRepo "remesa/internal/repository/mongo"
	mongoMocks "remesa/internal/repository/mongo/mocks"
	mongoStructs "remesa/internal/repository/mongo/structs"
	pgMocks "remesa/internal/repository/postgres/mocks"
	"remesa/internal/usecasees/structs"
	"remesa/models"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func Test_NextStatus(t *testing.T) {
	tests := []struct {
		current             string
		recipientRegistered bool
		want                string
	}{
		{StatusPendingUserStart, true, StatusPendingDeposit},
		{StatusPendingUserStart, false, StatusPendingInvite},
		{StatusPendingInvite, true, StatusPendingDeposit},
		{StatusPendingDeposit, true, StatusPendingClaim},
		{StatusPendingClaim, true, StatusClaiming},
		{StatusClaiming, true, StatusProcessing},
		{StatusProcessing, true, StatusCompleted},
		{StatusCompleted, true, ""},
		{StatusFailed, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.current, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStatus(tt.current, tt.recipientRegistered))
		})
	}
}

func Test_CanUserAct(t *testing.T) {
	assert.True(t, CanUserAct(StatusPendingDeposit, RoleSender))
	assert.True(t, CanUserAct(StatusPendingClaim, RoleRecipient))

	assert.False(t, CanUserAct(StatusPendingClaim, RoleSender))
	assert.False(t, CanUserAct(StatusPendingDeposit, RoleRecipient))
	assert.False(t, CanUserAct(StatusClaiming, RoleSender))
	assert.False(t, CanUserAct(StatusClaiming, RoleRecipient))
	assert.False(t, CanUserAct(StatusCompleted, "operator"))
}

type claimMockGen struct {
	exchangeClientCtrl *ctrlMocks.ClientCtrl
	custodyClientCtrl  *ctrlMocks.ClientCtrl
	tgmCtrl            *ctrlMocks.TgmCtrl
	claimRepo          *pgMocks.ClaimRepo
	withdrawalRepo     *pgMocks.WithdrawalRepo
	settingsRepo       *mongoMocks.SettingsRepo

	metrics map[structs.MetricConst]prometheus.Counter

	logger *logrus.Logger
}

func newClaimMockGen() *claimMockGen {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	metrics := map[structs.MetricConst]prometheus.Counter{}
	for _, m := range []structs.MetricConst{
		structs.MetricClaimCompleted,
		structs.MetricClaimFailed,
		structs.MetricTradeExecuted,
		structs.MetricWithdrawalSubmitted,
	} {
		metrics[m] = prometheus.NewCounter(prometheus.CounterOpts{Name: m.ToString(), Help: m.ToString()})
	}

	return &claimMockGen{
		exchangeClientCtrl: &ctrlMocks.ClientCtrl{},
		custodyClientCtrl:  &ctrlMocks.ClientCtrl{},
		tgmCtrl:            &ctrlMocks.TgmCtrl{},
		claimRepo:          &pgMocks.ClaimRepo{},
		withdrawalRepo:     &pgMocks.WithdrawalRepo{},
		settingsRepo:       &mongoMocks.SettingsRepo{},
		metrics:            metrics,
		logger:             logger,
	}
}

func (mockGen *claimMockGen) initClaimUseCase() *claimUseCase {
	return mockGen.initClaimUseCaseCustody(MXN)
}

func (mockGen *claimMockGen) initClaimUseCaseCustody(custodyCurrency string) *claimUseCase {
	exchange := NewExchangeUseCase(mockGen.exchangeClientCtrl, "https://api.exchange.test", mockGen.logger)

	trade := NewTradeUseCase(exchange, mockGen.tgmCtrl, USD, time.Minute, time.Minute, 3, mockGen.logger)

	withdraw := NewWithdrawUseCase(
		mockGen.exchangeClientCtrl,
		exchange,
		mockGen.withdrawalRepo,
		mockGen.tgmCtrl,
		"https://api.exchange.test",
		mockGen.logger,
	)

	custody := NewCustodyUseCase(mockGen.custodyClientCtrl, "https://api.custody.test", mockGen.logger)

	return NewClaimUseCase(
		trade,
		withdraw,
		custody,
		mockGen.claimRepo,
		mockGen.settingsRepo,
		mockGen.tgmCtrl,
		nil,
		mockGen.metrics,
		custodyCurrency,
		mockGen.logger,
	)
}

func arsClaim(status string) *models.Claim {
	details, _ := json.Marshal(&structs.BankDetails{
		AccountHolderName: "Maria Lopez",
		CVU:               "0000003100010000000001",
	})

	return &models.Claim{
		ID:          "C1",
		SenderID:    "U1",
		Amount:      10000,
		Currency:    ARS,
		Status:      status,
		BankDetails: details,
		Metadata:    models.Metadata{},
	}
}

func (mockGen *claimMockGen) redemptionMocks() {
	redemptionStruct := structs.RedemptionResponse{
		Success: true,
		Payload: structs.Redemption{ID: "R1", Amount: 10000},
	}
	redemptionJson, _ := json.Marshal(&redemptionStruct)

	mockGen.custodyClientCtrl.On("Send", "POST", mock.MatchedBy(func(input *url.URL) bool {
		return input.Path == "/mint_platform/v1/redemptions"
	}), mock.AnythingOfType("[]uint8"), true).Return(redemptionJson, nil)
}

func (mockGen *claimMockGen) exchangeMocks(t *testing.T) {
	mockGen.exchangeClientCtrl.On("Send", "GET", mock.MatchedBy(func(input *url.URL) bool {
		return input.Path == "/v3/balance"
	}), []byte(nil), true).Return(balancePayload(t,
		structs.Balance{Currency: "mxn", Available: "20000", Locked: "0", Total: "20000"},
		structs.Balance{Currency: "ars", Available: "70000", Locked: "0", Total: "70000"},
	), nil)

	legs := []struct {
		book  string
		oid   string
		side  string
		fills []structs.Fill
	}{
		{BookUsdMxn, "O1", SideBuy, []structs.Fill{
			{OID: "O1", Side: SideBuy, Major: "525", MajorCurrency: "usd", Minor: "-10000", MinorCurrency: "mxn", FeesAmount: "5", FeesCurrency: "mxn"},
		}},
		{BookUsdArs, "O2", SideSell, []structs.Fill{
			{OID: "O2", Side: SideSell, Major: "-525", MajorCurrency: "usd", Minor: "70000", MinorCurrency: "ars", FeesAmount: "70", FeesCurrency: "ars"},
		}},
	}

	for _, leg := range legs {
		orderStruct := structs.OrderResponse{
			Success: true,
			Payload: structs.Order{OID: leg.oid, Book: leg.book, Side: leg.side, Status: OrderStatusOpen},
		}
		orderJson, _ := json.Marshal(&orderStruct)

		statusStruct := structs.OrderStatusResponse{
			Success: true,
			Payload: []structs.Order{{OID: leg.oid, Book: leg.book, Side: leg.side, Status: OrderStatusCompleted}},
		}
		statusJson, _ := json.Marshal(&statusStruct)

		fillsStruct := structs.FillsResponse{Success: true, Payload: leg.fills}
		fillsJson, _ := json.Marshal(&fillsStruct)

		book := leg.book
		oid := leg.oid

		mockGen.exchangeClientCtrl.On("Send", "POST", mock.MatchedBy(func(input *url.URL) bool {
			return input.Path == "/v3/orders"
		}), mock.MatchedBy(orderBodyForBook(book)), true).Return(orderJson, nil)

		mockGen.exchangeClientCtrl.On("Send", "GET", mock.MatchedBy(func(input *url.URL) bool {
			return input.Path == "/v3/orders/"+oid
		}), []byte(nil), true).Return(statusJson, nil)

		mockGen.exchangeClientCtrl.On("Send", "GET", mock.MatchedBy(func(input *url.URL) bool {
			return input.Path == "/v3/order_trades/"+oid
		}), []byte(nil), true).Return(fillsJson, nil)
	}
}

func (mockGen *claimMockGen) withdrawalMocks() {
	withdrawalStruct := structs.WithdrawalResponse{
		Success: true,
		Payload: structs.Withdrawal{WID: "W1", Status: models.WithdrawalStatusPending},
	}
	withdrawalJson, _ := json.Marshal(&withdrawalStruct)

	mockGen.exchangeClientCtrl.On("Send", "POST", mock.MatchedBy(func(input *url.URL) bool {
		return input.Path == "/v3/withdrawals"
	}), mock.AnythingOfType("[]uint8"), true).Return(withdrawalJson, nil)

	mockGen.withdrawalRepo.On("Store", mock.AnythingOfType("*models.Withdrawal")).Return(nil)
}

func Test_ClaimUseCase_ConfirmDeposit(t *testing.T) {
	t.Run("sender confirms while awaiting deposit", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("GetByID", "C1").Return(arsClaim(StatusPendingDeposit), nil)
		mockGen.claimRepo.On("UpdateStatus", "C1", StatusPendingClaim, mock.AnythingOfType("models.Metadata")).Return(nil)

		assert.NoError(t, mockGen.initClaimUseCase().ConfirmDeposit("C1", RoleSender))

		mockGen.claimRepo.AssertCalled(t, "UpdateStatus", "C1", StatusPendingClaim, mock.AnythingOfType("models.Metadata"))
	})

	t.Run("recipient may not confirm the deposit", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("GetByID", "C1").Return(arsClaim(StatusPendingDeposit), nil)

		err := mockGen.initClaimUseCase().ConfirmDeposit("C1", RoleRecipient)

		var actionErr *ActionNotAllowedError
		assert.ErrorAs(t, err, &actionErr)
		mockGen.claimRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sender may not act outside the deposit window", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("GetByID", "C1").Return(arsClaim(StatusPendingClaim), nil)

		err := mockGen.initClaimUseCase().ConfirmDeposit("C1", RoleSender)

		var actionErr *ActionNotAllowedError
		assert.ErrorAs(t, err, &actionErr)
		assert.Equal(t, StatusPendingClaim, actionErr.Status)
	})
}

func Test_ClaimUseCase_SubmitClaimDetails(t *testing.T) {
	t.Run("recipient submits a valid cvu", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("GetByID", "C1").Return(arsClaim(StatusPendingClaim), nil)
		mockGen.claimRepo.On("SetBankDetails", "C1", mock.AnythingOfType("[]uint8")).Return(nil)
		mockGen.claimRepo.On("UpdateStatus", "C1", StatusClaiming, mock.AnythingOfType("models.Metadata")).Return(nil)

		err := mockGen.initClaimUseCase().SubmitClaimDetails("C1", RoleRecipient, &structs.BankDetails{
			AccountHolderName: "Maria Lopez",
			CVU:               "0000003100010000000001",
		})

		assert.NoError(t, err)
		mockGen.claimRepo.AssertCalled(t, "SetBankDetails", "C1", mock.AnythingOfType("[]uint8"))
	})

	t.Run("malformed destination is rejected before persisting", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("GetByID", "C1").Return(arsClaim(StatusPendingClaim), nil)

		err := mockGen.initClaimUseCase().SubmitClaimDetails("C1", RoleRecipient, &structs.BankDetails{
			AccountHolderName: "Maria Lopez",
			CVU:               "12345",
		})

		var formatErr *InvalidAccountFormatError
		assert.ErrorAs(t, err, &formatErr)
		mockGen.claimRepo.AssertNotCalled(t, "SetBankDetails", mock.Anything, mock.Anything)
	})

	t.Run("sender may not claim", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("GetByID", "C1").Return(arsClaim(StatusPendingClaim), nil)

		err := mockGen.initClaimUseCase().SubmitClaimDetails("C1", RoleSender, &structs.BankDetails{
			AccountHolderName: "Maria Lopez",
			CVU:               "0000003100010000000001",
		})

		var actionErr *ActionNotAllowedError
		assert.ErrorAs(t, err, &actionErr)
	})

	t.Run("settlement outlives the submitting request", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("GetByID", "C1").Return(arsClaim(StatusPendingClaim), nil).Once()
		mockGen.claimRepo.On("GetByID", "C1").Return(arsClaim(StatusClaiming), nil)
		mockGen.claimRepo.On("SetBankDetails", "C1", mock.AnythingOfType("[]uint8")).Return(nil)

		settled := make(chan struct{})

		mockGen.claimRepo.On("UpdateStatus", "C1", StatusCompleted, mock.AnythingOfType("models.Metadata")).
			Run(func(args mock.Arguments) { close(settled) }).
			Return(nil)
		mockGen.claimRepo.On("UpdateStatus", "C1", mock.AnythingOfType("string"), mock.AnythingOfType("models.Metadata")).Return(nil)

		mockGen.redemptionMocks()
		mockGen.exchangeMocks(t)
		mockGen.withdrawalMocks()

		mockGen.tgmCtrl.On("Send", mock.AnythingOfType("string")).Return(1, nil)
		mockGen.tgmCtrl.On("Update", 1, mock.AnythingOfType("string")).Return(nil)

		err := mockGen.initClaimUseCase().SubmitClaimDetails("C1", RoleRecipient, &structs.BankDetails{
			AccountHolderName: "Maria Lopez",
			CVU:               "0000003100010000000001",
		})
		assert.NoError(t, err)

		select {
		case <-settled:
		case <-time.After(5 * time.Second):
			t.Fatal("settlement did not finish after submit returned")
		}
	})
}

func Test_ClaimUseCase_OnClaimRequested(t *testing.T) {
	t.Run("ars claim settles end to end", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("GetByID", "C1").Return(arsClaim(StatusClaiming), nil)
		mockGen.claimRepo.On("UpdateStatus", "C1", mock.AnythingOfType("string"), mock.AnythingOfType("models.Metadata")).Return(nil)

		mockGen.redemptionMocks()
		mockGen.exchangeMocks(t)
		mockGen.withdrawalMocks()

		mockGen.tgmCtrl.On("Send", mock.AnythingOfType("string")).Return(1, nil)
		mockGen.tgmCtrl.On("Update", 1, mock.AnythingOfType("string")).Return(nil)

		useCase := mockGen.initClaimUseCase()

		assert.NoError(t, useCase.OnClaimRequested(context.Background(), "C1"))

		mockGen.claimRepo.AssertCalled(t, "UpdateStatus", "C1", StatusProcessing, mock.MatchedBy(func(patch models.Metadata) bool {
			return patch["redemption_id"] == "R1"
		}))
		mockGen.claimRepo.AssertCalled(t, "UpdateStatus", "C1", StatusCompleted, mock.MatchedBy(func(patch models.Metadata) bool {
			return patch["withdrawal_id"] == "W1"
		}))

		assert.Equal(t, float64(1), testutil.ToFloat64(mockGen.metrics[structs.MetricClaimCompleted]))
		assert.Equal(t, float64(1), testutil.ToFloat64(mockGen.metrics[structs.MetricTradeExecuted]))
		assert.Equal(t, float64(1), testutil.ToFloat64(mockGen.metrics[structs.MetricWithdrawalSubmitted]))
		assert.Zero(t, testutil.ToFloat64(mockGen.metrics[structs.MetricClaimFailed]))
	})

	t.Run("claim in the custody currency skips conversion", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("GetByID", "C1").Return(arsClaim(StatusClaiming), nil)
		mockGen.claimRepo.On("UpdateStatus", "C1", mock.AnythingOfType("string"), mock.AnythingOfType("models.Metadata")).Return(nil)

		mockGen.redemptionMocks()

		mockGen.exchangeClientCtrl.On("Send", "GET", mock.MatchedBy(func(input *url.URL) bool {
			return input.Path == "/v3/balance"
		}), []byte(nil), true).Return(balancePayload(t,
			structs.Balance{Currency: "ars", Available: "70000", Locked: "0", Total: "70000"},
		), nil)

		withdrawalStruct := structs.WithdrawalResponse{
			Success: true,
			Payload: structs.Withdrawal{WID: "W1", Status: models.WithdrawalStatusPending},
		}
		withdrawalJson, _ := json.Marshal(&withdrawalStruct)

		var sentRequest structs.WithdrawalRequest

		mockGen.exchangeClientCtrl.On("Send", "POST", mock.MatchedBy(func(input *url.URL) bool {
			return input.Path == "/v3/withdrawals"
		}), mock.MatchedBy(func(body []byte) bool {
			return json.Unmarshal(body, &sentRequest) == nil
		}), true).Return(withdrawalJson, nil)

		mockGen.withdrawalRepo.On("Store", mock.AnythingOfType("*models.Withdrawal")).Return(nil)
		mockGen.tgmCtrl.On("Send", mock.AnythingOfType("string")).Return(1, nil)

		useCase := mockGen.initClaimUseCaseCustody(ARS)

		assert.NoError(t, useCase.OnClaimRequested(context.Background(), "C1"))

		assert.Equal(t, "10000.00", sentRequest.Amount)
		assert.Equal(t, "ars", sentRequest.Currency)

		mockGen.exchangeClientCtrl.AssertNotCalled(t, "Send", "POST", mock.MatchedBy(func(input *url.URL) bool {
			return input.Path == "/v3/orders"
		}), mock.Anything, true)

		assert.Zero(t, testutil.ToFloat64(mockGen.metrics[structs.MetricTradeExecuted]))
		assert.Equal(t, float64(1), testutil.ToFloat64(mockGen.metrics[structs.MetricClaimCompleted]))
	})

	t.Run("claim no longer claiming is a no-op", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("GetByID", "C1").Return(arsClaim(StatusCompleted), nil)

		assert.NoError(t, mockGen.initClaimUseCase().OnClaimRequested(context.Background(), "C1"))

		mockGen.claimRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("claim already in flight is a no-op", func(t *testing.T) {
		mockGen := newClaimMockGen()

		useCase := mockGen.initClaimUseCase()
		useCase.inFlight.Store("C1", struct{}{})

		assert.NoError(t, useCase.OnClaimRequested(context.Background(), "C1"))

		mockGen.claimRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	})

	t.Run("redemption failure lands the claim in failed", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("GetByID", "C1").Return(arsClaim(StatusClaiming), nil)
		mockGen.claimRepo.On("UpdateStatus", "C1", StatusFailed, mock.AnythingOfType("models.Metadata")).Return(nil)

		mockGen.custodyClientCtrl.On("Send", "POST", mock.MatchedBy(func(input *url.URL) bool {
			return input.Path == "/mint_platform/v1/redemptions"
		}), mock.AnythingOfType("[]uint8"), true).Return(nil, errors.New("redemption refused"))

		mockGen.tgmCtrl.On("Send", mock.AnythingOfType("string")).Return(1, nil)

		err := mockGen.initClaimUseCase().OnClaimRequested(context.Background(), "C1")
		assert.Error(t, err)

		mockGen.claimRepo.AssertCalled(t, "UpdateStatus", "C1", StatusFailed, mock.MatchedBy(func(patch models.Metadata) bool {
			return patch["error_step"] == "redemption"
		}))

		assert.Equal(t, float64(1), testutil.ToFloat64(mockGen.metrics[structs.MetricClaimFailed]))
	})
}

func Test_ClaimUseCase_CreateClaim(t *testing.T) {
	t.Run("registered recipient starts at pending_user_start", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("Store", mock.AnythingOfType("*models.Claim")).Return(nil)

		claim, err := mockGen.initClaimUseCase().CreateClaim("U1", "U2", true, 10000, "ARS")

		assert.NoError(t, err)
		assert.Equal(t, StatusPendingUserStart, claim.Status)
		assert.Equal(t, ARS, claim.Currency)
		assert.True(t, claim.RecipientID.Valid)
	})

	t.Run("unregistered recipient starts at pending_invite", func(t *testing.T) {
		mockGen := newClaimMockGen()

		mockGen.claimRepo.On("Store", mock.AnythingOfType("*models.Claim")).Return(nil)

		claim, err := mockGen.initClaimUseCase().CreateClaim("U1", "", false, 10000, "ars")

		assert.NoError(t, err)
		assert.Equal(t, StatusPendingInvite, claim.Status)
		assert.False(t, claim.RecipientID.Valid)
	})

	t.Run("unsupported currency is rejected", func(t *testing.T) {
		mockGen := newClaimMockGen()

		_, err := mockGen.initClaimUseCase().CreateClaim("U1", "U2", true, 10000, "brl")

		var currencyErr *UnsupportedCurrencyError
		assert.ErrorAs(t, err, &currencyErr)
	})

	t.Run("token currency cannot be claimed", func(t *testing.T) {
		mockGen := newClaimMockGen()

		_, err := mockGen.initClaimUseCase().CreateClaim("U1", "U2", true, 10000, MXNB)

		var currencyErr *UnsupportedCurrencyError
		assert.ErrorAs(t, err, &currencyErr)
		mockGen.claimRepo.AssertNotCalled(t, "Store", mock.Anything)
	})
}

func Test_ClaimUseCase_SetPipelineStatus(t *testing.T) {
	t.Run("persists the new status", func(t *testing.T) {
		mockGen := newClaimMockGen()

		id := primitive.NewObjectID()

		mockGen.settingsRepo.On("Load").Return(&mongoStructs.Settings{
			ID:     id,
			Status: mongoRepo.SettingsStatusEnabled,
		}, nil)
		mockGen.settingsRepo.On("UpdateStatus", id, mongoRepo.SettingsStatusDisabled).Return(nil)

		assert.NoError(t, mockGen.initClaimUseCase().SetPipelineStatus(mongoRepo.SettingsStatusDisabled))

		mockGen.settingsRepo.AssertCalled(t, "UpdateStatus", id, mongoRepo.SettingsStatusDisabled)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		mockGen := newClaimMockGen()

		assert.Error(t, mockGen.initClaimUseCase().SetPipelineStatus("paused"))

		mockGen.settingsRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})
}
