package usecasees

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"remesa/internal/controllers"
	"remesa/internal/repository/postgres"
	"remesa/internal/usecasees/structs"
	"remesa/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	withdrawalsUrlPath       = "/v3/withdrawals"
	withdrawalMethodsUrlPath = "/v3/withdrawal_methods"

	originIDMaxLen = 40
)

// rail fixes the payout parameters for one currency. Extending support
// to another currency is a row here, not new code.
type rail struct {
	Method   string
	Network  string
	Protocol string
	Asset    string

	// account is the destination format; crypto rails validate the
	// wallet address by minimum length instead.
	account *regexp.Regexp
	crypto  bool
}

var rails = map[string]rail{
	ARS: {
		Method:   "bind",
		Network:  "coelsa",
		Protocol: "cvu",
		Asset:    ARS,
		account:  regexp.MustCompile(`^\d{22}$`),
	},
	MXN: {
		Method:   "spei",
		Network:  "spei",
		Protocol: "clabe",
		Asset:    MXN,
		account:  regexp.MustCompile(`^\d{18}$`),
	},
	MXNB: {
		Method:   MXNB,
		Network:  "arbitrum",
		Protocol: "erc20",
		Asset:    MXNB,
		crypto:   true,
	},
}

const minWalletAddressLen = 10

// ValidateDestination checks the identifier format for the currency's
// rail before anything touches the network. A malformed identifier
// submitted to the rail is unrecoverable.
func ValidateDestination(currency, destination string) error {
	r, ok := rails[strings.ToLower(currency)]
	if !ok {
		return &UnsupportedCurrencyError{Currency: currency}
	}

	if r.crypto {
		if len(destination) < minWalletAddressLen {
			return &InvalidAccountFormatError{
				Currency: strings.ToLower(currency),
				Protocol: r.Protocol,
				Expected: fmt.Sprintf("wallet address of at least %d characters", minWalletAddressLen),
			}
		}

		return nil
	}

	if !r.account.MatchString(destination) {
		return &InvalidAccountFormatError{
			Currency: strings.ToLower(currency),
			Protocol: r.Protocol,
			Expected: strings.Trim(r.account.String(), "^$"),
		}
	}

	return nil
}

type withdrawUseCase struct {
	clientController controllers.ClientCtrl

	exchange *exchangeUseCase

	withdrawalRepo postgres.WithdrawalRepo

	tgmController controllers.TgmCtrl

	url string

	logger *logrus.Logger
}

func NewWithdrawUseCase(
	client controllers.ClientCtrl,
	exchange *exchangeUseCase,
	withdrawalRepo postgres.WithdrawalRepo,
	tgmController controllers.TgmCtrl,
	url string,
	logger *logrus.Logger,
) *withdrawUseCase {
	return &withdrawUseCase{
		clientController: client,
		exchange:         exchange,
		withdrawalRepo:   withdrawalRepo,
		tgmController:    tgmController,
		url:              url,
		logger:           logger,
	}
}

// generateOriginID builds the idempotency token the rail deduplicates
// on. Fresh per attempt; a retry that should be deduplicated upstream
// must reuse the token instead.
func generateOriginID() string {
	id := fmt.Sprintf("claim_%s_%s",
		strconv.FormatInt(time.Now().UnixMilli(), 36),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:9])

	if len(id) > originIDMaxLen {
		id = id[:originIDMaxLen]
	}

	return id
}

// Submit validates, checks the balance precondition and sends the
// payout. It does not retry: a failure is surfaced to the caller, which
// decides whether resubmission is appropriate. Terminal status arrives
// out of band via ReconcilePending.
func (u *withdrawUseCase) Submit(params *structs.WithdrawalParams) (*structs.Withdrawal, error) {
	currency := strings.ToLower(params.Currency)

	r, ok := rails[currency]
	if !ok {
		return nil, &UnsupportedCurrencyError{Currency: params.Currency}
	}

	if err := ValidateDestination(currency, params.Destination); err != nil {
		return nil, err
	}

	available, err := u.exchange.AvailableBalance(currency)
	if err != nil {
		return nil, errors.Wrap(err, "withdrawal balance check")
	}

	if available < params.Amount {
		return nil, &InsufficientFundsError{Currency: currency, Available: available, Requested: params.Amount}
	}

	request := structs.WithdrawalRequest{
		Currency:      currency,
		Amount:        strconv.FormatFloat(params.Amount, 'f', 2, 64),
		Asset:         r.Asset,
		Method:        r.Method,
		Network:       r.Network,
		Protocol:      r.Protocol,
		RecipientName: params.RecipientName,
		MaxFee:        "0",
		OriginID:      generateOriginID(),
		Description:   params.Description,
	}

	switch {
	case r.crypto:
		request.Address = params.Destination
	case r.Protocol == "cvu":
		request.CVU = params.Destination
	default:
		request.CLABE = params.Destination
	}

	baseURL, err := url.Parse(u.url)
	if err != nil {
		return nil, err
	}

	baseURL.Path = path.Join(withdrawalsUrlPath)

	payload, err := json.Marshal(&request)
	if err != nil {
		return nil, err
	}

	req, err := u.clientController.Send(http.MethodPost, baseURL, payload, true)
	if err != nil {
		return nil, err
	}

	var out structs.WithdrawalResponse

	if err := json.Unmarshal(req, &out); err != nil {
		return nil, err
	}

	if !out.Success {
		return nil, errors.Errorf("%s withdrawal returned unsuccessful response", currency)
	}

	if err := u.withdrawalRepo.Store(&models.Withdrawal{
		ID:          uuid.NewString(),
		WID:         out.Payload.WID,
		ClaimID:     params.ClaimID,
		Currency:    currency,
		Asset:       r.Asset,
		Amount:      params.Amount,
		Method:      r.Method,
		Network:     r.Network,
		Protocol:    r.Protocol,
		Destination: params.Destination,
		OriginID:    request.OriginID,
		Status:      out.Payload.Status,
	}); err != nil {
		return nil, errors.Wrap(err, "store withdrawal")
	}

	u.logger.
		WithField("wid", out.Payload.WID).
		WithField("claimId", params.ClaimID).
		Infof("withdrawal submitted: %f %s via %s/%s/%s", params.Amount, currency, r.Method, r.Network, r.Protocol)

	return &out.Payload, nil
}

func (u *withdrawUseCase) GetStatus(withdrawalID string) (*structs.Withdrawal, error) {
	baseURL, err := url.Parse(u.url)
	if err != nil {
		return nil, err
	}

	baseURL.Path = path.Join(withdrawalsUrlPath, withdrawalID)

	req, err := u.clientController.Send(http.MethodGet, baseURL, nil, true)
	if err != nil {
		return nil, err
	}

	var out structs.WithdrawalResponse

	if err := json.Unmarshal(req, &out); err != nil {
		return nil, err
	}

	if !out.Success {
		return nil, errors.Errorf("withdrawal %s status returned unsuccessful response", withdrawalID)
	}

	return &out.Payload, nil
}

func (u *withdrawUseCase) GetMethods(currency string) ([]structs.MethodDescriptor, error) {
	baseURL, err := url.Parse(u.url)
	if err != nil {
		return nil, err
	}

	baseURL.Path = path.Join(withdrawalMethodsUrlPath, strings.ToLower(currency))

	req, err := u.clientController.Send(http.MethodGet, baseURL, nil, true)
	if err != nil {
		return nil, err
	}

	var out structs.MethodsResponse

	if err := json.Unmarshal(req, &out); err != nil {
		return nil, err
	}

	return out.Payload, nil
}

// ReconcilePending refreshes the status of every non-terminal stored
// withdrawal. Runs on a cron schedule.
func (u *withdrawUseCase) ReconcilePending() error {
	pending, err := u.withdrawalRepo.GetPending()
	if err != nil {
		return err
	}

	for _, w := range pending {
		payload, err := u.GetStatus(w.WID)
		if err != nil {
			u.logger.
				WithError(err).
				WithField("wid", w.WID).
				Error("withdrawal status refresh failed")
			continue
		}

		if payload.Status == w.Status {
			continue
		}

		if err := u.withdrawalRepo.SetStatus(w.ID, payload.Status); err != nil {
			u.logger.
				WithError(err).
				WithField("wid", w.WID).
				Error("withdrawal status update failed")
			continue
		}

		if payload.Status == models.WithdrawalStatusComplete || payload.Status == models.WithdrawalStatusFailed {
			if _, err := u.tgmController.Send(fmt.Sprintf("[ Withdrawal ]\n"+
				"wid:\t%s\n"+
				"claimId:\t%s\n"+
				"amount:\t%.2f %s\n"+
				"status:\t%s\n",
				w.WID,
				w.ClaimID,
				w.Amount,
				w.Currency,
				payload.Status)); err != nil {
				u.logger.WithError(err).Error("withdrawal notification failed")
			}
		}
	}

	return nil
}
