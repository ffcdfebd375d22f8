package controllers

import (
	"net/url"
)

//go:generate mockery --case=snake --name=ClientCtrl
//go:generate mockery --case=snake --name=CryptoCtrl
//go:generate mockery --case=snake --name=TgmCtrl

type ClientCtrl interface {
	Send(method string, url *url.URL, body []byte, useAuth bool) ([]byte, error)
}

type CryptoCtrl interface {
	GetSignature(data string) string
}

type TgmCtrl interface {
	Send(text string) (int, error)
	Update(msgID int, text string) error
}
