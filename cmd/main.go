package main

import (
	"context"
	"flag"
	"strconv"

	"remesa/internal/api/http"
	"remesa/internal/controllers"
	mongoRepo "remesa/internal/repository/mongo"
	"remesa/internal/repository/postgres"
	"remesa/internal/usecasees"

	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
)

func main() {
	var app App
	var confFileName string

	flag.StringVar(&confFileName, "config", ".env", "")
	flag.Parse()

	app.Name = appName

	if err := app.loadConfig(confFileName); err != nil {
		panic(err)
	}

	app.initLogger()

	if err := app.initTgBot(); err != nil {
		panic(err)
	}

	if err := app.initDB(); err != nil {
		panic(err)
	}

	if err := app.initMongo(); err != nil {
		panic(err)
	}

	if err := app.initPromTail(); err != nil {
		panic(err)
	}

	app.initHTTPClient()
	app.initMetrics()

	chatId, err := strconv.ParseInt(app.Config.TelegramChatID, 10, 64)
	if err != nil {
		panic(err)
	}

	claimRepo := postgres.NewClaimRepository(app.DB)
	withdrawalRepo := postgres.NewWithdrawalRepository(app.DB)
	settingsRepo := mongoRepo.NewSettingsRepository(app.Mongo)

	if err := settingsRepo.SetDefault(); err != nil {
		panic(err)
	}

	settings, err := settingsRepo.Load()
	if err != nil {
		panic(err)
	}

	exchangeClientController := controllers.NewClientController(
		app.HTTPClient,
		app.Config.ExchangeApiKey,
		controllers.NewCryptoController(app.Config.ExchangeSecretKey),
		app.Logger,
	)
	custodyClientController := controllers.NewClientController(
		app.HTTPClient,
		app.Config.CustodyApiKey,
		controllers.NewCryptoController(app.Config.CustodySecretKey),
		app.Logger,
	)
	tgmController := controllers.NewTgmController(
		app.TGM,
		chatId,
	)

	exchangeUseCase := usecasees.NewExchangeUseCase(
		exchangeClientController,
		app.Config.ExchangeUrl,
		app.Logger,
	)

	tradeUseCase := usecasees.NewTradeUseCase(
		exchangeUseCase,
		tgmController,
		settings.BridgeCurrency,
		time.Duration(settings.OrderMaxWaitSec)*time.Second,
		time.Duration(settings.FillsMaxWaitSec)*time.Second,
		settings.FillsMaxRetries,
		app.Logger,
	)

	custodyUseCase := usecasees.NewCustodyUseCase(
		custodyClientController,
		app.Config.CustodyUrl,
		app.Logger,
	)

	withdrawUseCase := usecasees.NewWithdrawUseCase(
		exchangeClientController,
		exchangeUseCase,
		withdrawalRepo,
		tgmController,
		app.Config.ExchangeUrl,
		app.Logger,
	)

	claimUseCase := usecasees.NewClaimUseCase(
		tradeUseCase,
		withdrawUseCase,
		custodyUseCase,
		claimRepo,
		settingsRepo,
		tgmController,
		app.PromTail,
		app.Metrics.Claim,
		settings.CustodyCurrency,
		app.Logger,
	)

	c := cron.New()
	if _, err := c.AddFunc("@every 1m", func() {
		if err := withdrawUseCase.ReconcilePending(); err != nil {
			app.Logger.Error(err)
		}
	}); err != nil {
		panic(err)
	}
	c.Start()

	go func() {
		if err := claimUseCase.Monitoring(context.Background()); err != nil {
			app.Logger.Error(err)
		}
	}()

	f := fiber.New()

	middleware := http.NewMiddleware(f, app.Name)
	middleware.UseMetrics()

	http.RegisterHTTPEndpoints(f, claimUseCase, app.Logger)

	if err := f.Listen(app.Config.ListenAddr); err != nil {
		panic(err)
	}
}
