package http

import (
	"remesa/internal/usecasees"
	"remesa/internal/usecasees/structs"
	"remesa/models"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const userRoleHeader = "X-User-Role"

type ClaimUC interface {
	CreateClaim(senderID, recipientID string, recipientRegistered bool, amount float64, currency string) (*models.Claim, error)
	GetClaim(claimID string) (*models.Claim, error)
	ConfirmDeposit(claimID, role string) error
	SubmitClaimDetails(claimID, role string, details *structs.BankDetails) error
	SetPipelineStatus(status string) error
}

type Handler struct {
	fiber   *fiber.App
	claimUC ClaimUC
	logger  *logrus.Logger
}

func NewHandler(f *fiber.App, claimUC ClaimUC, l *logrus.Logger) *Handler {
	return &Handler{
		fiber:   f,
		claimUC: claimUC,
		logger:  l,
	}
}

func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	body := struct {
		Status bool `json:"status"`
	}{
		Status: true,
	}

	if err := c.JSON(body); err != nil {
		return err
	}

	return nil
}

func (h *Handler) CreateClaim(c *fiber.Ctx) error {
	var body struct {
		SenderID            string  `json:"sender_id"`
		RecipientID         string  `json:"recipient_id"`
		RecipientRegistered bool    `json:"recipient_registered"`
		Amount              float64 `json:"amount"`
		Currency            string  `json:"currency"`
	}

	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	claim, err := h.claimUC.CreateClaim(body.SenderID, body.RecipientID, body.RecipientRegistered, body.Amount, body.Currency)
	if err != nil {
		return h.claimError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}{
		ID:     claim.ID,
		Status: claim.Status,
	})
}

func (h *Handler) GetClaim(c *fiber.Ctx) error {
	claim, err := h.claimUC.GetClaim(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(struct {
		ID       string          `json:"id"`
		Amount   float64         `json:"amount"`
		Currency string          `json:"currency"`
		Status   string          `json:"status"`
		Metadata models.Metadata `json:"metadata"`
	}{
		ID:       claim.ID,
		Amount:   claim.Amount,
		Currency: claim.Currency,
		Status:   claim.Status,
		Metadata: claim.Metadata,
	})
}

func (h *Handler) ConfirmDeposit(c *fiber.Ctx) error {
	if err := h.claimUC.ConfirmDeposit(c.Params("id"), c.Get(userRoleHeader)); err != nil {
		return h.claimError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) SubmitClaim(c *fiber.Ctx) error {
	var details structs.BankDetails

	if err := c.BodyParser(&details); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.claimUC.SubmitClaimDetails(c.Params("id"), c.Get(userRoleHeader), &details); err != nil {
		return h.claimError(c, err)
	}

	return c.SendStatus(fiber.StatusAccepted)
}

func (h *Handler) SetPipelineStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}

	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.claimUC.SetPipelineStatus(body.Status); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) claimError(c *fiber.Ctx, err error) error {
	var notAllowed *usecasees.ActionNotAllowedError
	if errors.As(err, &notAllowed) {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	var badAccount *usecasees.InvalidAccountFormatError
	if errors.As(err, &badAccount) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	var badCurrency *usecasees.UnsupportedCurrencyError
	if errors.As(err, &badCurrency) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	h.logger.WithError(err).Error("claim action failed")

	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
