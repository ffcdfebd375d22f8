package controllers

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

type ClientController struct {
	client *http.Client
	crypto CryptoCtrl
	logger *logrus.Logger

	apiKey string
}

func NewClientController(
	client *http.Client,
	apiKey string,
	crypto CryptoCtrl,
	logger *logrus.Logger,
) *ClientController {
	return &ClientController{
		client: client,
		apiKey: apiKey,
		crypto: crypto,
		logger: logger,
	}
}

// UpstreamError carries the raw status and body of a non-2xx venue
// response so callers can wrap it into typed domain errors.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream api error: statusCode %d; resp %s;", e.StatusCode, e.Body)
}

// Send performs a request against the venue. With useAuth the request
// carries 'Authorization: Bitso KEY:NONCE:SIGNATURE', the signature
// covering nonce + method + request path (query included) + body.
func (c *ClientController) Send(method string, url *url.URL, body []byte, useAuth bool) ([]byte, error) {
	req, err := http.NewRequest(method, url.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Add("Content-Type", "application/json")
	if useAuth {
		nonce := time.Now().UnixMilli()
		sig := c.crypto.GetSignature(fmt.Sprintf("%d%s%s%s", nonce, method, url.RequestURI(), body))

		req.Header.Add("Authorization", fmt.Sprintf("Bitso %s:%d:%s", c.apiKey, nonce, sig))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	out, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       out,
		}
	}

	return out, nil
}
