package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"freightdesk/models"
)

type PostgresPartyRepo struct {
	DB *sql.DB
}

func NewPostgresPartyRepo(db *sql.DB) *PostgresPartyRepo {
	return &PostgresPartyRepo{DB: db}
}

func (r *PostgresPartyRepo) CreateParty(party *models.Party) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if party.CreatedAt.IsZero() {
		party.CreatedAt = time.Now().UTC()
	}
	err = tx.QueryRow(`
		INSERT INTO party(name,party_type,tax_id,email,phone,bank_name,bank_account_no,bank_iban,status,created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`, party.Name, party.PartyType, party.TaxID, party.Email, party.Phone,
		party.BankName, party.BankAccountNo, party.BankIBAN, party.Status, party.CreatedAt,
	).Scan(&party.ID)
	if err != nil {
		return err
	}

	for i := range party.Addresses {
		a := &party.Addresses[i]
		a.PartyID = party.ID
		err := tx.QueryRow(`
			INSERT INTO party_address(party_id,address_line,city,country,postal_code,is_default)
			VALUES($1,$2,$3,$4,$5,$6)
			RETURNING id
		`, party.ID, a.AddressLine, a.City, a.Country, a.PostalCode, a.IsDefault).Scan(&a.ID)
		if err != nil {
			return err
		}
	}

	for i := range party.Contacts {
		c := &party.Contacts[i]
		c.PartyID = party.ID
		err := tx.QueryRow(`
			INSERT INTO party_contact(party_id,name,designation,email,phone)
			VALUES($1,$2,$3,$4,$5)
			RETURNING id
		`, party.ID, c.Name, c.Designation, c.Email, c.Phone).Scan(&c.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// partyFilterColumns limits filter keys to real columns; keys are used in
// identifier position.
var partyFilterColumns = map[string]struct{}{
	"id":         {},
	"name":       {},
	"party_type": {},
	"status":     {},
}

func (r *PostgresPartyRepo) GetParties(filters map[string]interface{}, single bool) ([]*models.Party, error) {
	for k := range filters {
		if _, ok := partyFilterColumns[k]; !ok {
			return nil, fmt.Errorf("unsupported filter: %s", k)
		}
	}

	query := `
		SELECT id, name, party_type, tax_id, email, phone,
			bank_name, bank_account_no, bank_iban, status, created_at
		FROM party
	`
	args := []interface{}{}
	where := []string{}
	i := 1
	for k, v := range filters {
		where = append(where, fmt.Sprintf("%s = $%d", k, i))
		args = append(args, v)
		i++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if !single {
		query += " ORDER BY name"
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Party
	byID := map[int64]*models.Party{}
	for rows.Next() {
		var p models.Party
		if err := rows.Scan(&p.ID, &p.Name, &p.PartyType, &p.TaxID, &p.Email, &p.Phone,
			&p.BankName, &p.BankAccountNo, &p.BankIBAN, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Addresses = []models.PartyAddress{}
		p.Contacts = []models.PartyContact{}
		result = append(result, &p)
		byID[p.ID] = result[len(result)-1]
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return result, nil
	}

	ids := make([]interface{}, len(result))
	ph := make([]string, len(result))
	for i, p := range result {
		ids[i] = p.ID
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	in := strings.Join(ph, ",")

	addrRows, err := r.DB.Query(fmt.Sprintf(`
		SELECT id, party_id, address_line, city, country, postal_code, is_default
		FROM party_address WHERE party_id IN (%s) ORDER BY id
	`, in), ids...)
	if err != nil {
		return nil, err
	}
	for addrRows.Next() {
		var a models.PartyAddress
		if err := addrRows.Scan(&a.ID, &a.PartyID, &a.AddressLine, &a.City, &a.Country, &a.PostalCode, &a.IsDefault); err != nil {
			addrRows.Close()
			return nil, err
		}
		if p, ok := byID[a.PartyID]; ok {
			p.Addresses = append(p.Addresses, a)
		}
	}
	addrRows.Close()
	if err := addrRows.Err(); err != nil {
		return nil, err
	}

	contactRows, err := r.DB.Query(fmt.Sprintf(`
		SELECT id, party_id, name, designation, email, phone
		FROM party_contact WHERE party_id IN (%s) ORDER BY id
	`, in), ids...)
	if err != nil {
		return nil, err
	}
	defer contactRows.Close()
	for contactRows.Next() {
		var c models.PartyContact
		if err := contactRows.Scan(&c.ID, &c.PartyID, &c.Name, &c.Designation, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		if p, ok := byID[c.PartyID]; ok {
			p.Contacts = append(p.Contacts, c)
		}
	}
	return result, contactRows.Err()
}
