package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"freightdesk/models"
)

type PostgresReferenceRepo struct {
	DB *sql.DB
}

func NewPostgresReferenceRepo(db *sql.DB) *PostgresReferenceRepo {
	return &PostgresReferenceRepo{DB: db}
}

// Options reads one reference list. Party options come from the party
// table so newly onboarded parties show up without reseeding; everything
// else lives in reference_option.
func (r *PostgresReferenceRepo) Options(kind string) ([]models.Option, error) {
	if kind == models.RefParties {
		return r.partyOptions()
	}

	rows, err := r.DB.Query(`
		SELECT value, label, metadata
		FROM reference_option
		WHERE kind=$1
		ORDER BY label
	`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Option
	for rows.Next() {
		var o models.Option
		var metaJSON []byte
		if err := rows.Scan(&o.Value, &o.Label, &metaJSON); err != nil {
			return nil, err
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &o.Metadata); err != nil {
				return nil, err
			}
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *PostgresReferenceRepo) partyOptions() ([]models.Option, error) {
	rows, err := r.DB.Query(`SELECT id, name FROM party WHERE status='active' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Option
	for rows.Next() {
		var o models.Option
		if err := rows.Scan(&o.Value, &o.Label); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *PostgresReferenceRepo) SaveCompanyProfile(profile *models.CompanyProfile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	phonesJSON, err := json.Marshal(profile.Phones)
	if err != nil {
		return err
	}

	if profile.ID > 0 {
		_, err = r.DB.Exec(`
			UPDATE company_profile
			SET name=$1, address=$2, city=$3, country=$4, tax_id=$5, footnote=$6, phones=$7
			WHERE id=$8
		`, profile.CompanyName, profile.Address, profile.City, profile.Country,
			profile.TaxID, profile.Footnote, phonesJSON, profile.ID)
	} else {
		_, err = r.DB.Exec(`
			INSERT INTO company_profile(name, address, city, country, tax_id, footnote, phones, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, profile.CompanyName, profile.Address, profile.City, profile.Country,
			profile.TaxID, profile.Footnote, phonesJSON, profile.CreatedAt)
	}
	return err
}

func (r *PostgresReferenceRepo) GetCompanyProfile() (*models.CompanyProfile, error) {
	profile := &models.CompanyProfile{}
	var phonesJSON []byte

	err := r.DB.QueryRow(`
		SELECT id, name, address, city, country, tax_id, footnote, phones, created_at
		FROM company_profile
		ORDER BY id DESC LIMIT 1
	`).Scan(&profile.ID, &profile.CompanyName, &profile.Address, &profile.City, &profile.Country,
		&profile.TaxID, &profile.Footnote, &phonesJSON, &profile.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if len(phonesJSON) > 0 {
		if err := json.Unmarshal(phonesJSON, &profile.Phones); err != nil {
			return nil, err
		}
	}
	return profile, nil
}
