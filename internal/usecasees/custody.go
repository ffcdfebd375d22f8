package usecasees

import (
	"encoding/json"
	"net/http"
	"net/url"
	"path"

	"remesa/internal/controllers"
	"remesa/internal/usecasees/structs"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const redemptionsUrlPath = "/mint_platform/v1/redemptions"

// custodyUseCase burns custody tokens back into fiat before a payout.
// It talks to the mint platform with its own credentials; the auth
// scheme is the same as the exchange's.
type custodyUseCase struct {
	clientController controllers.ClientCtrl

	url string

	logger *logrus.Logger
}

func NewCustodyUseCase(
	client controllers.ClientCtrl,
	url string,
	logger *logrus.Logger,
) *custodyUseCase {
	return &custodyUseCase{
		clientController: client,
		url:              url,
		logger:           logger,
	}
}

func (u *custodyUseCase) RedeemTokens(amount float64) (*structs.Redemption, error) {
	baseURL, err := url.Parse(u.url)
	if err != nil {
		return nil, err
	}

	baseURL.Path = path.Join(redemptionsUrlPath)

	body := struct {
		Amount                   float64 `json:"amount"`
		DestinationBankAccountID *string `json:"destination_bank_account_id"`
		Asset                    string  `json:"asset"`
	}{
		Amount: amount,
		Asset:  MXN,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := u.clientController.Send(http.MethodPost, baseURL, payload, true)
	if err != nil {
		return nil, err
	}

	var out structs.RedemptionResponse

	if err := json.Unmarshal(req, &out); err != nil {
		return nil, err
	}

	if !out.Success {
		return nil, errors.New("token redemption returned unsuccessful response")
	}

	u.logger.
		WithField("redemptionId", out.Payload.ID).
		Infof("redeemed %f %s tokens", amount, MXNB)

	return &out.Payload, nil
}
