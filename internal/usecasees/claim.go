package usecasees

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"remesa/internal/controllers"
	"remesa/internal/repository/mongo"
	"remesa/internal/repository/postgres"
	"remesa/internal/usecasees/structs"
	"remesa/models"

	"github.com/google/uuid"
	"github.com/ic2hrmk/promtail"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	StatusPendingUserStart = "pending_user_start"
	StatusPendingInvite    = "pending_invite"
	StatusPendingDeposit   = "pending_deposit"
	StatusPendingClaim     = "pending_claim"
	StatusClaiming         = "claiming"
	StatusProcessing       = "processing"
	StatusCompleted        = "completed"
	StatusFailed           = "failed"
)

const (
	RoleSender    = "sender"
	RoleRecipient = "recipient"
)

// NextStatus returns the success-path follow-up state, or "" for a
// terminal state. Failure transitions go straight to StatusFailed from
// any non-terminal state.
func NextStatus(current string, recipientRegistered bool) string {
	switch current {
	case StatusPendingUserStart:
		if !recipientRegistered {
			return StatusPendingInvite
		}
		return StatusPendingDeposit
	case StatusPendingInvite:
		return StatusPendingDeposit
	case StatusPendingDeposit:
		return StatusPendingClaim
	case StatusPendingClaim:
		return StatusClaiming
	case StatusClaiming:
		return StatusProcessing
	case StatusProcessing:
		return StatusCompleted
	default:
		return ""
	}
}

// CanUserAct reports whether a role may act in a state. Everything
// outside these two windows is system-driven.
func CanUserAct(status, role string) bool {
	switch role {
	case RoleSender:
		return status == StatusPendingDeposit
	case RoleRecipient:
		return status == StatusPendingClaim
	}

	return false
}

type claimUseCase struct {
	tradeUseCase    *tradeUseCase
	withdrawUseCase *withdrawUseCase
	custodyUseCase  *custodyUseCase

	claimRepo    postgres.ClaimRepo
	settingsRepo mongo.SettingsRepo

	tgmController controllers.TgmCtrl

	promTail promtail.Client
	metrics  map[structs.MetricConst]prometheus.Counter

	custodyCurrency string

	inFlight sync.Map

	logger *logrus.Logger
}

func NewClaimUseCase(
	trade *tradeUseCase,
	withdraw *withdrawUseCase,
	custody *custodyUseCase,
	claimRepo postgres.ClaimRepo,
	settingsRepo mongo.SettingsRepo,
	tgmController controllers.TgmCtrl,
	promTail promtail.Client,
	metrics map[structs.MetricConst]prometheus.Counter,
	custodyCurrency string,
	logger *logrus.Logger,
) *claimUseCase {
	return &claimUseCase{
		tradeUseCase:    trade,
		withdrawUseCase: withdraw,
		custodyUseCase:  custody,
		claimRepo:       claimRepo,
		settingsRepo:    settingsRepo,
		tgmController:   tgmController,
		promTail:        promTail,
		metrics:         metrics,
		custodyCurrency: strings.ToLower(custodyCurrency),
		logger:          logger,
	}
}

func (u *claimUseCase) CreateClaim(senderID, recipientID string, recipientRegistered bool, amount float64, currency string) (*models.Claim, error) {
	if amount <= 0 {
		return nil, errors.Errorf("claim amount must be positive, got %f", amount)
	}

	// Claims settle in fiat only. The token currency has a withdrawal
	// rail but no conversion route, so a token claim could never settle.
	currency = strings.ToLower(currency)
	if _, ok := settleCurrencies[currency]; !ok {
		return nil, &UnsupportedCurrencyError{Currency: currency}
	}

	status := StatusPendingUserStart
	if !recipientRegistered {
		status = StatusPendingInvite
	}

	claim := models.Claim{
		ID:       uuid.NewString(),
		SenderID: senderID,
		Amount:   amount,
		Currency: currency,
		Status:   status,
		Metadata: models.Metadata{},
	}

	if recipientID != "" {
		claim.RecipientID.String = recipientID
		claim.RecipientID.Valid = true
	}

	if err := u.claimRepo.Store(&claim); err != nil {
		return nil, err
	}

	return &claim, nil
}

func (u *claimUseCase) GetClaim(claimID string) (*models.Claim, error) {
	return u.claimRepo.GetByID(claimID)
}

// ConfirmDeposit is the sender's only action: acknowledging the funding
// transfer while the claim awaits it.
func (u *claimUseCase) ConfirmDeposit(claimID, role string) error {
	claim, err := u.claimRepo.GetByID(claimID)
	if err != nil {
		return err
	}

	if role != RoleSender || !CanUserAct(claim.Status, role) {
		return &ActionNotAllowedError{Role: role, Status: claim.Status}
	}

	return u.claimRepo.UpdateStatus(claim.ID, StatusPendingClaim, models.Metadata{
		"deposit_confirmed_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// SubmitClaimDetails is the recipient's only action: supplying the
// destination account and entering the claiming state. The settlement
// pipeline is kicked off on its own goroutine so a slow settlement
// never stalls the caller.
func (u *claimUseCase) SubmitClaimDetails(claimID, role string, details *structs.BankDetails) error {
	claim, err := u.claimRepo.GetByID(claimID)
	if err != nil {
		return err
	}

	if role != RoleRecipient || !CanUserAct(claim.Status, role) {
		return &ActionNotAllowedError{Role: role, Status: claim.Status}
	}

	if details == nil || details.AccountHolderName == "" {
		return errors.New("account holder name is required")
	}

	if err := ValidateDestination(claim.Currency, details.Account()); err != nil {
		return err
	}

	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}

	if err := u.claimRepo.SetBankDetails(claim.ID, raw); err != nil {
		return err
	}

	if err := u.claimRepo.UpdateStatus(claim.ID, StatusClaiming, models.Metadata{
		"claimed_at": time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return err
	}

	// The worker outlives the request that triggered it, so it must not
	// inherit the request's context.
	go func() {
		if err := u.OnClaimRequested(context.Background(), claim.ID); err != nil {
			u.logger.
				WithError(err).
				WithField("claimId", claim.ID).
				Error(string(debug.Stack()))
		}
	}()

	return nil
}

// OnClaimRequested is the trigger entry point, invoked once per status
// transition into claiming. Duplicate deliveries are safe: a claim
// already being worked or no longer in claiming is a no-op.
func (u *claimUseCase) OnClaimRequested(ctx context.Context, claimID string) error {
	if _, busy := u.inFlight.LoadOrStore(claimID, struct{}{}); busy {
		return nil
	}
	defer u.inFlight.Delete(claimID)

	claim, err := u.claimRepo.GetByID(claimID)
	if err != nil {
		return err
	}

	if claim.Status != StatusClaiming {
		return nil
	}

	return u.processClaim(ctx, claim)
}

func (u *claimUseCase) processClaim(ctx context.Context, claim *models.Claim) error {
	u.logger.
		WithField("claimId", claim.ID).
		Infof("processing claim: %f %s", claim.Amount, claim.Currency)

	var details structs.BankDetails
	if err := json.Unmarshal(claim.BankDetails, &details); err != nil {
		return u.fail(claim, "bank details", err)
	}

	// Step 1: burn the custody tokens backing the claim.
	redemption, err := u.custodyUseCase.RedeemTokens(claim.Amount)
	if err != nil {
		return u.fail(claim, "redemption", err)
	}

	if err := u.claimRepo.UpdateStatus(claim.ID, StatusProcessing, models.Metadata{
		"redemption_id": redemption.ID,
	}); err != nil {
		return u.fail(claim, "status update", err)
	}

	// Step 2: convert through the bridge when the claim currency is not
	// the custody currency; otherwise the original amount stands.
	finalAmount := claim.Amount

	if !strings.EqualFold(claim.Currency, u.custodyCurrency) {
		result, err := u.tradeUseCase.Execute(ctx, u.custodyCurrency, claim.Currency, claim.Amount, OrderTypeMarket, 0)
		if err != nil {
			return u.fail(claim, "conversion", err)
		}

		finalAmount = result.ToAmount
		u.metrics[structs.MetricTradeExecuted].Inc()

		if err := u.claimRepo.UpdateStatus(claim.ID, StatusProcessing, models.Metadata{
			"trade_id":      result.TradeID,
			"executed_rate": result.ExecutedRate,
			"trade_fee":     result.TotalFee,
			"final_amount":  finalAmount,
		}); err != nil {
			return u.fail(claim, "status update", err)
		}
	}

	// Step 3: pay out on the currency's rail.
	withdrawal, err := u.withdrawUseCase.Submit(&structs.WithdrawalParams{
		ClaimID:       claim.ID,
		Currency:      claim.Currency,
		Amount:        finalAmount,
		RecipientName: details.AccountHolderName,
		Destination:   details.Account(),
		Description:   fmt.Sprintf("%s withdrawal for claim %s", strings.ToUpper(claim.Currency), claim.ID),
	})
	if err != nil {
		return u.fail(claim, "withdrawal", err)
	}

	u.metrics[structs.MetricWithdrawalSubmitted].Inc()

	if err := u.claimRepo.UpdateStatus(claim.ID, StatusCompleted, models.Metadata{
		"withdrawal_id": withdrawal.WID,
		"final_amount":  finalAmount,
		"completed_at":  time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return u.fail(claim, "status update", err)
	}

	u.metrics[structs.MetricClaimCompleted].Inc()

	if _, err := u.tgmController.Send(fmt.Sprintf("[ Claim Completed ]\n"+
		"claimId:\t%s\n"+
		"amount:\t%.2f %s\n"+
		"withdrawalId:\t%s\n",
		claim.ID,
		finalAmount,
		claim.Currency,
		withdrawal.WID)); err != nil {
		u.logger.WithError(err).Error("claim notification failed")
	}

	return nil
}

// fail terminates the claim. The error lands in metadata for the
// operator; the pipeline never retries on its own. A completed leg 1
// with a failed leg 2 leaves a real bridge-currency balance in custody,
// which is exactly why the error is surfaced loudly here.
func (u *claimUseCase) fail(claim *models.Claim, step string, cause error) error {
	if err := u.claimRepo.UpdateStatus(claim.ID, StatusFailed, models.Metadata{
		"error":      cause.Error(),
		"error_step": step,
		"failed_at":  time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		u.logger.
			WithError(err).
			WithField("claimId", claim.ID).
			Error("failed-status update failed")
	}

	u.metrics[structs.MetricClaimFailed].Inc()

	if u.promTail != nil {
		u.promTail.Errorf("claim %s failed at %s: %+v", claim.ID, step, cause)
	}

	if _, err := u.tgmController.Send(fmt.Sprintf("[ Claim Failed ]\n"+
		"claimId:\t%s\n"+
		"step:\t%s\n"+
		"err:\t%s\n",
		claim.ID,
		step,
		cause)); err != nil {
		u.logger.WithError(err).Error("claim notification failed")
	}

	return errors.Wrapf(cause, "claim %s failed at %s", claim.ID, step)
}

// SetPipelineStatus toggles the monitoring loop's settings gate. A
// disabled pipeline stops picking up claiming-state claims; claims
// already in flight run to completion.
func (u *claimUseCase) SetPipelineStatus(status string) error {
	if status != mongo.SettingsStatusEnabled && status != mongo.SettingsStatusDisabled {
		return errors.Errorf("unknown pipeline status %q", status)
	}

	settings, err := u.settingsRepo.Load()
	if err != nil {
		return err
	}

	return u.settingsRepo.UpdateStatus(settings.ID, status)
}

// Monitoring drives the pipeline from persisted state: every tick it
// reloads settings and launches a worker per claim sitting in the
// claiming state. One worker per claim; claims are independent.
func (u *claimUseCase) Monitoring(ctx context.Context) error {
	settings, err := u.settingsRepo.Load()
	if err != nil {
		return err
	}

	ticker := time.NewTicker(time.Duration(settings.PollIntervalSec) * time.Second)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				settings, err := u.settingsRepo.Load()
				if err != nil {
					u.logger.
						WithError(err).
						Error(string(debug.Stack()))
					continue
				}

				if settings.Status != mongo.SettingsStatusEnabled {
					continue
				}

				claims, err := u.claimRepo.GetByStatus(StatusClaiming)
				if err != nil {
					u.logger.
						WithError(err).
						Error(string(debug.Stack()))
					continue
				}

				for _, claim := range claims {
					claimID := claim.ID

					go func() {
						if err := u.OnClaimRequested(ctx, claimID); err != nil {
							u.logger.
								WithError(err).
								WithField("claimId", claimID).
								Error(string(debug.Stack()))
						}
					}()
				}
			}
		}
	}()

	return nil
}
