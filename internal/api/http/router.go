package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func RegisterHTTPEndpoints(f *fiber.App, claimUC ClaimUC, l *logrus.Logger) {
	h := NewHandler(f, claimUC, l)
	router := f.Group("api")
	router.Get("/healthcheck", h.HealthCheck)
	router.Post("/claims", h.CreateClaim)
	router.Get("/claims/:id", h.GetClaim)
	router.Post("/claims/:id/deposit", h.ConfirmDeposit)
	router.Post("/claims/:id/claim", h.SubmitClaim)
	router.Put("/pipeline/status", h.SetPipelineStatus)
}
