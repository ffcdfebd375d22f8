package postgres

import (
	"remesa/models"
)

//go:generate mockery --case=snake --name=ClaimRepo
//go:generate mockery --case=snake --name=WithdrawalRepo

type ClaimRepo interface {
	Store(m *models.Claim) error
	GetByID(id string) (*models.Claim, error)
	GetByStatus(status string) ([]models.Claim, error)
	SetBankDetails(id string, details []byte) error
	UpdateStatus(id, status string, patch models.Metadata) error
}

type WithdrawalRepo interface {
	Store(m *models.Withdrawal) error
	GetByClaimID(claimID string) ([]models.Withdrawal, error)
	GetPending() ([]models.Withdrawal, error)
	SetStatus(id, status string) error
}
