package usecasees

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"remesa/internal/controllers"
	"remesa/internal/usecasees/structs"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	balanceUrlPath     = "/v3/balance"
	ordersUrlPath      = "/v3/orders"
	orderTradesUrlPath = "/v3/order_trades"

	SideBuy  = "buy"
	SideSell = "sell"

	OrderTypeMarket = "market"
	OrderTypeLimit  = "limit"

	OrderStatusOpen        = "open"
	OrderStatusPartialFill = "partial-fill"
	OrderStatusCompleted   = "completed"
	OrderStatusCancelled   = "cancelled"

	DenomMajor = "major"
	DenomMinor = "minor"

	ARS  = "ars"
	MXN  = "mxn"
	USD  = "usd"
	MXNB = "mxnb"

	BookUsdArs = "usd_ars"
	BookUsdMxn = "usd_mxn"
)

const (
	orderPollInterval = time.Second
	fillsBackoffStart = time.Second
	fillsBackoffCap   = 5 * time.Second
)

type exchangeUseCase struct {
	clientController controllers.ClientCtrl

	url string

	logger *logrus.Logger
}

func NewExchangeUseCase(
	client controllers.ClientCtrl,
	url string,
	logger *logrus.Logger,
) *exchangeUseCase {
	return &exchangeUseCase{
		clientController: client,
		url:              url,
		logger:           logger,
	}
}

func (u *exchangeUseCase) GetBalances() ([]structs.Balance, error) {
	baseURL, err := url.Parse(u.url)
	if err != nil {
		return nil, err
	}

	baseURL.Path = path.Join(balanceUrlPath)

	req, err := u.clientController.Send(http.MethodGet, baseURL, nil, true)
	if err != nil {
		return nil, err
	}

	var out structs.BalanceResponse

	if err := json.Unmarshal(req, &out); err != nil {
		return nil, err
	}

	if !out.Success {
		return nil, errors.New("balance request returned unsuccessful response")
	}

	return out.Payload.Balances, nil
}

// AvailableBalance resolves the spendable amount of one currency,
// matching case-insensitively. A currency the account does not hold
// reports zero.
func (u *exchangeUseCase) AvailableBalance(currency string) (float64, error) {
	balances, err := u.GetBalances()
	if err != nil {
		return 0, err
	}

	for _, b := range balances {
		if strings.EqualFold(b.Currency, currency) {
			available, err := strconv.ParseFloat(b.Available, 64)
			if err != nil {
				return 0, errors.Wrapf(err, "parse %s available balance", currency)
			}

			return available, nil
		}
	}

	return 0, nil
}

// PlaceOrder submits one order. The denomination decides whether the
// amount is the book's major or minor unit. Placement is not
// idempotent: calling again places a new order.
func (u *exchangeUseCase) PlaceOrder(book, side, kind string, amount float64, denom string, price float64) (*structs.Order, error) {
	baseURL, err := url.Parse(u.url)
	if err != nil {
		return nil, err
	}

	baseURL.Path = path.Join(ordersUrlPath)

	body := map[string]string{
		"book": book,
		"side": side,
		"type": kind,
	}

	switch denom {
	case DenomMajor:
		body["major"] = strconv.FormatFloat(amount, 'f', -1, 64)
	case DenomMinor:
		body["minor"] = strconv.FormatFloat(amount, 'f', -1, 64)
	default:
		return nil, errors.Errorf("unknown denomination %q", denom)
	}

	if kind == OrderTypeLimit {
		body["price"] = strconv.FormatFloat(price, 'f', -1, 64)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := u.clientController.Send(http.MethodPost, baseURL, payload, true)
	if err != nil {
		return nil, err
	}

	var out structs.OrderResponse

	if err := json.Unmarshal(req, &out); err != nil {
		return nil, err
	}

	if !out.Success {
		return nil, errors.Errorf("order placement on %s returned unsuccessful response", book)
	}

	return &out.Payload, nil
}

func (u *exchangeUseCase) GetOrderStatus(orderID string) (*structs.Order, error) {
	baseURL, err := url.Parse(u.url)
	if err != nil {
		return nil, err
	}

	baseURL.Path = path.Join(ordersUrlPath, orderID)

	req, err := u.clientController.Send(http.MethodGet, baseURL, nil, true)
	if err != nil {
		return nil, err
	}

	var out structs.OrderStatusResponse

	if err := json.Unmarshal(req, &out); err != nil {
		return nil, err
	}

	if !out.Success || len(out.Payload) == 0 {
		return nil, errors.Errorf("order %s not found", orderID)
	}

	return &out.Payload[0], nil
}

func (u *exchangeUseCase) GetOrderFills(orderID string) ([]structs.Fill, error) {
	baseURL, err := url.Parse(u.url)
	if err != nil {
		return nil, err
	}

	baseURL.Path = path.Join(orderTradesUrlPath, orderID)

	req, err := u.clientController.Send(http.MethodGet, baseURL, nil, true)
	if err != nil {
		return nil, err
	}

	var out structs.FillsResponse

	if err := json.Unmarshal(req, &out); err != nil {
		return nil, err
	}

	return out.Payload, nil
}

// AwaitOrderCompletion polls at a fixed cadence until the order reaches
// a terminal status or maxWait elapses. Transient fetch errors are
// retried on the same cadence; they do not consume a separate budget.
func (u *exchangeUseCase) AwaitOrderCompletion(ctx context.Context, orderID string, maxWait time.Duration) (*structs.Order, error) {
	deadline := time.NewTimer(maxWait)
	defer deadline.Stop()

	ticker := time.NewTicker(orderPollInterval)
	defer ticker.Stop()

	for {
		order, err := u.GetOrderStatus(orderID)
		if err != nil {
			u.logger.
				WithError(err).
				WithField("orderId", orderID).
				Debug("order status fetch failed, retrying")
		} else if order.Status == OrderStatusCompleted || order.Status == OrderStatusCancelled {
			return order, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, &TimeoutError{OrderID: orderID, MaxWait: maxWait}
		case <-ticker.C:
		}
	}
}

// AwaitOrderFills polls for at least one fill record with exponential
// backoff, bounded by wall clock and retry count together. Fill data
// can lag order completion by an API-specific delay, so either bound
// alone degenerates.
func (u *exchangeUseCase) AwaitOrderFills(ctx context.Context, orderID string, maxWait time.Duration, maxRetries int) ([]structs.Fill, error) {
	deadline := time.NewTimer(maxWait)
	defer deadline.Stop()

	wait := fillsBackoffStart

	for retry := 0; ; retry++ {
		fills, err := u.GetOrderFills(orderID)
		if err != nil {
			u.logger.
				WithError(err).
				WithField("orderId", orderID).
				Debugf("fills fetch failed, retry %d", retry)
		} else if len(fills) > 0 {
			u.logger.Debug(fmt.Sprintf("found %d fills for order %s after %d retries", len(fills), orderID, retry))
			return fills, nil
		}

		if retry+1 >= maxRetries {
			return nil, &FillsUnavailableError{OrderID: orderID, Retries: retry + 1, MaxWait: maxWait}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, &FillsUnavailableError{OrderID: orderID, Retries: retry + 1, MaxWait: maxWait}
		case <-time.After(wait):
		}

		wait *= 2
		if wait > fillsBackoffCap {
			wait = fillsBackoffCap
		}
	}
}
