package usecasees

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"remesa/internal/controllers"
	"remesa/internal/usecasees/structs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// settleCurrencies are the currencies claims can settle in. The token
// currency is a withdrawal rail only, never a conversion endpoint.
var settleCurrencies = map[string]struct{}{
	ARS: {},
	MXN: {},
}

// tradeRoute describes the two legs bridging a conversion. Adding a
// currency is a table edit, not new branching.
type tradeRoute struct {
	FirstBook  string
	FirstSide  string
	SecondBook string
	SecondSide string
}

type tradeUseCase struct {
	exchange *exchangeUseCase

	tgmController controllers.TgmCtrl

	bridgeCurrency string

	orderMaxWait    time.Duration
	fillsMaxWait    time.Duration
	fillsMaxRetries int

	logger *logrus.Logger
}

func NewTradeUseCase(
	exchange *exchangeUseCase,
	tgmController controllers.TgmCtrl,
	bridgeCurrency string,
	orderMaxWait time.Duration,
	fillsMaxWait time.Duration,
	fillsMaxRetries int,
	logger *logrus.Logger,
) *tradeUseCase {
	return &tradeUseCase{
		exchange:        exchange,
		tgmController:   tgmController,
		bridgeCurrency:  strings.ToLower(bridgeCurrency),
		orderMaxWait:    orderMaxWait,
		fillsMaxWait:    fillsMaxWait,
		fillsMaxRetries: fillsMaxRetries,
		logger:          logger,
	}
}

// routeFor derives both legs from the configured bridge currency. Book
// names follow the venue's bridge_settle convention.
func (u *tradeUseCase) routeFor(from, to string) (tradeRoute, bool) {
	from = strings.ToLower(from)
	to = strings.ToLower(to)

	if from == to {
		return tradeRoute{}, false
	}

	if _, ok := settleCurrencies[from]; !ok {
		return tradeRoute{}, false
	}

	if _, ok := settleCurrencies[to]; !ok {
		return tradeRoute{}, false
	}

	return tradeRoute{
		FirstBook:  u.bridgeCurrency + "_" + from,
		FirstSide:  SideBuy,
		SecondBook: u.bridgeCurrency + "_" + to,
		SecondSide: SideSell,
	}, true
}

// Execute converts amount of the source currency into the destination
// currency through the bridge. Leg 2 is sized from leg 1's actual fill,
// never the requested amount, and is only placed once leg 1 completes.
// Order placement is not idempotent; the caller must not retry blindly.
func (u *tradeUseCase) Execute(ctx context.Context, from, to string, amount float64, kind string, limitPrice float64) (*structs.SettlementResult, error) {
	if amount <= 0 {
		return nil, errors.Errorf("trade amount must be positive, got %f", amount)
	}

	if kind == OrderTypeLimit && limitPrice <= 0 {
		return nil, errors.Errorf("limit orders require a positive limit price, got %f", limitPrice)
	}

	route, ok := u.routeFor(from, to)
	if !ok {
		return nil, &UnsupportedPairError{From: from, To: to}
	}

	available, err := u.exchange.AvailableBalance(from)
	if err != nil {
		return nil, errors.Wrap(err, "source balance check")
	}

	if available < amount {
		return nil, &InsufficientFundsError{Currency: from, Available: available, Requested: amount}
	}

	started := time.Now()

	// Leg 1: buy the bridge currency with the source currency. Minor
	// denomination keeps the requested source amount exact.
	firstOrder, err := u.exchange.PlaceOrder(route.FirstBook, route.FirstSide, kind, amount, DenomMinor, limitPrice)
	if err != nil {
		return nil, errors.Wrap(err, "place first leg")
	}

	u.logger.
		WithField("orderId", firstOrder.OID).
		WithField("book", route.FirstBook).
		Infof("first leg placed: %f %s", amount, from)

	msgID, err := u.tgmController.Send(fmt.Sprintf("[ Trade ]\n"+
		"pair:\t%s->%s\n"+
		"fromAmount:\t%s\n"+
		"status:\tfirst leg placed\n",
		strings.ToLower(from),
		strings.ToLower(to),
		strconv.FormatFloat(amount, 'f', 2, 64)))
	if err != nil {
		u.logger.WithError(err).Error("trade notification failed")
	}

	firstDone, err := u.exchange.AwaitOrderCompletion(ctx, firstOrder.OID, u.orderMaxWait)
	if err != nil {
		return nil, err
	}

	if firstDone.Status != OrderStatusCompleted {
		return nil, &LegFailedError{Leg: 1, Status: firstDone.Status}
	}

	firstFills, err := u.exchange.AwaitOrderFills(ctx, firstDone.OID, u.fillsMaxWait, u.fillsMaxRetries)
	if err != nil {
		return nil, err
	}

	bridgeAmount := AmountReceived(firstFills, u.bridgeCurrency)
	if bridgeAmount <= 0 {
		return nil, &LegFailedError{Leg: 1, Status: "no-bridge-amount"}
	}

	u.logger.Infof("first leg completed: sold %f %s, got %f %s", amount, from, bridgeAmount, u.bridgeCurrency)

	// Leg 2: sell the actual bridge fill for the destination currency.
	// Always a market order; a limit request only bounds leg 1.
	secondOrder, err := u.exchange.PlaceOrder(route.SecondBook, route.SecondSide, OrderTypeMarket, bridgeAmount, DenomMajor, 0)
	if err != nil {
		return nil, errors.Wrap(err, "place second leg")
	}

	secondDone, err := u.exchange.AwaitOrderCompletion(ctx, secondOrder.OID, u.orderMaxWait)
	if err != nil {
		return nil, err
	}

	if secondDone.Status != OrderStatusCompleted {
		return nil, &LegFailedError{Leg: 2, Status: secondDone.Status}
	}

	secondFills, err := u.exchange.AwaitOrderFills(ctx, secondDone.OID, u.fillsMaxWait, u.fillsMaxRetries)
	if err != nil {
		return nil, err
	}

	finalAmount := AmountReceived(secondFills, to)
	if finalAmount <= 0 {
		return nil, &LegFailedError{Leg: 2, Status: "no-destination-amount"}
	}

	firstFee := TotalFee(firstFills)
	secondFee := TotalFee(secondFills)

	result := structs.SettlementResult{
		TradeID:      uuid.NewString(),
		FromCurrency: strings.ToLower(from),
		ToCurrency:   strings.ToLower(to),
		FromAmount:   amount,
		ToAmount:     finalAmount,
		ExecutedRate: ExecutedRate(amount, finalAmount),
		FirstLeg: structs.LegReport{
			OrderID: firstDone.OID,
			Book:    firstDone.Book,
			Side:    firstDone.Side,
			Amount:  parseAmount(firstDone.OriginalAmount),
			Price:   parseAmount(firstDone.Price),
			Status:  firstDone.Status,
			Fee:     firstFee,
		},
		SecondLeg: structs.LegReport{
			OrderID: secondDone.OID,
			Book:    secondDone.Book,
			Side:    secondDone.Side,
			Amount:  parseAmount(secondDone.OriginalAmount),
			Price:   parseAmount(secondDone.Price),
			Status:  secondDone.Status,
			Fee:     secondFee,
		},
		TotalFee:      firstFee + secondFee,
		ExecutionTime: time.Since(started),
		Timestamp:     time.Now().UTC(),
	}

	summary := fmt.Sprintf("[ Trade ]\n"+
		"tradeId:\t%s\n"+
		"pair:\t%s->%s\n"+
		"fromAmount:\t%s\n"+
		"toAmount:\t%s\n"+
		"rate:\t%s\n"+
		"totalFee:\t%s\n",
		result.TradeID,
		result.FromCurrency,
		result.ToCurrency,
		strconv.FormatFloat(result.FromAmount, 'f', 2, 64),
		strconv.FormatFloat(result.ToAmount, 'f', 2, 64),
		strconv.FormatFloat(result.ExecutedRate, 'f', 6, 64),
		strconv.FormatFloat(result.TotalFee, 'f', 2, 64))

	if msgID != 0 {
		err = u.tgmController.Update(msgID, summary)
	} else {
		_, err = u.tgmController.Send(summary)
	}
	if err != nil {
		u.logger.WithError(err).Error("trade notification failed")
	}

	return &result, nil
}
