package postgres

import (
	"encoding/json"

	"remesa/models"

	"github.com/jmoiron/sqlx"
)

type ClaimRepository struct {
	conn *sqlx.DB
}

func NewClaimRepository(conn *sqlx.DB) ClaimRepo {
	return &ClaimRepository{
		conn: conn,
	}
}

func (r *ClaimRepository) Store(m *models.Claim) error {
	if _, err := r.conn.NamedExec("INSERT INTO claims (id,sender_id,recipient_id,amount,currency,status,metadata) VALUES (:id,:sender_id,:recipient_id,:amount,:currency,:status,:metadata)", m); err != nil {
		return err
	}

	return nil
}

func (r *ClaimRepository) GetByID(id string) (*models.Claim, error) {
	var claim models.Claim

	if err := r.conn.QueryRowx("SELECT * FROM claims WHERE id = $1 LIMIT 1", id).StructScan(&claim); err != nil {
		return nil, err
	}

	return &claim, nil
}

func (r *ClaimRepository) GetByStatus(status string) ([]models.Claim, error) {
	var claims []models.Claim

	if err := r.conn.Select(&claims, "SELECT * FROM claims WHERE status = $1 ORDER BY created_at;", status); err != nil {
		return nil, err
	}

	return claims, nil
}

func (r *ClaimRepository) SetBankDetails(id string, details []byte) error {
	if _, err := r.conn.Exec("UPDATE claims SET bank_details = $1, updated_at = now() WHERE id = $2;", details, id); err != nil {
		return err
	}

	return nil
}

// UpdateStatus merges the patch into the metadata document instead of
// replacing it, so concurrently written fields survive.
func (r *ClaimRepository) UpdateStatus(id, status string, patch models.Metadata) error {
	if patch == nil {
		patch = models.Metadata{}
	}

	raw, err := json.Marshal(patch)
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec("UPDATE claims SET status = $1, metadata = metadata || $2, updated_at = now() WHERE id = $3;", status, raw, id); err != nil {
		return err
	}

	return nil
}
