package postgres

import (
	"remesa/models"

	"github.com/jmoiron/sqlx"
)

type WithdrawalRepository struct {
	conn *sqlx.DB
}

func NewWithdrawalRepository(conn *sqlx.DB) WithdrawalRepo {
	return &WithdrawalRepository{
		conn: conn,
	}
}

func (r *WithdrawalRepository) Store(m *models.Withdrawal) error {
	if _, err := r.conn.NamedExec("INSERT INTO withdrawals (id,wid,claim_id,currency,asset,amount,method,network,protocol,destination,origin_id,status) VALUES (:id,:wid,:claim_id,:currency,:asset,:amount,:method,:network,:protocol,:destination,:origin_id,:status)", m); err != nil {
		return err
	}

	return nil
}

func (r *WithdrawalRepository) GetByClaimID(claimID string) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal

	if err := r.conn.Select(&withdrawals, "SELECT * FROM withdrawals WHERE claim_id = $1 ORDER BY created_at DESC;", claimID); err != nil {
		return nil, err
	}

	return withdrawals, nil
}

func (r *WithdrawalRepository) GetPending() ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal

	if err := r.conn.Select(&withdrawals, "SELECT * FROM withdrawals WHERE status IN ($1, $2) ORDER BY created_at;", models.WithdrawalStatusPending, models.WithdrawalStatusProcessing); err != nil {
		return nil, err
	}

	return withdrawals, nil
}

func (r *WithdrawalRepository) SetStatus(id, status string) error {
	if _, err := r.conn.Exec("UPDATE withdrawals SET status = $1 WHERE id = $2;", status, id); err != nil {
		return err
	}

	return nil
}
