package main

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ic2hrmk/promtail"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

const appName = "remesa"

type App struct {
	Name       string
	Config     *Config
	Logger     *logrus.Logger
	HTTPClient *http.Client
	TGM        *tgbotapi.BotAPI
	DB         *sqlx.DB
	Mongo      *mongo.Client
	PromTail   promtail.Client
	Metrics    *Metrics
}
