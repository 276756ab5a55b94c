package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"freightdesk/models"
)

type PostgresJobRepo struct {
	DB *sql.DB
}

func NewPostgresJobRepo(db *sql.DB) *PostgresJobRepo {
	return &PostgresJobRepo{DB: db}
}

// ------------------------ Helper Functions ------------------------

func (r *PostgresJobRepo) insertJobMain(tx *sql.Tx, job *models.JobMaster) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	return tx.QueryRow(`
		INSERT INTO job_master(
			job_number,company_id,version,
			operation_type,operation_mode,job_sub_type,job_load_type,job_document_type,shipping_type,
			house_document_number,master_document_number,bl_status,
			shipper_party_id,consignee_party_id,carrier_party_id,process_owner_id,
			origin_agent_id,destination_agent_id,
			pol_id,pod_id,place_of_delivery_id,vessel_id,voyage_number,etd,eta,
			gross_weight,net_weight,
			freight_type,exchange_rate,freight_charges,other_charges,
			insurance,insurance_value,security_value,
			billing_parties_info,remarks,created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
			$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37)
		RETURNING id
	`,
		job.JobNumber, job.CompanyID, job.Version,
		job.OperationType, job.OperationMode, job.JobSubType, job.JobLoadType, job.JobDocumentType, job.ShippingType,
		job.HouseDocumentNumber, job.MasterDocumentNumber, job.BLStatus,
		job.ShipperPartyID, job.ConsigneePartyID, job.CarrierPartyID, job.ProcessOwnerID,
		job.OriginAgentID, job.DestinationAgentID,
		job.POLID, job.PODID, job.PlaceOfDeliveryID, job.VesselID, job.VoyageNumber, job.ETD, job.ETA,
		job.GrossWeight, job.NetWeight,
		job.FreightType, job.ExchangeRate, job.FreightCharges, job.OtherCharges,
		job.Insurance, job.InsuranceValue, job.SecurityValue,
		job.BillingPartiesInfo, job.Remarks, job.CreatedAt,
	).Scan(&job.JobID)
}

func (r *PostgresJobRepo) insertContainers(tx *sql.Tx, jobID int64, containers []models.Container) error {
	for i := range containers {
		c := &containers[i]
		c.JobID = jobID
		err := tx.QueryRow(`
			INSERT INTO container(
				job_id,container_no,container_size_id,container_type_id,weight,seal_no,
				gate_in_date,gate_out_date,eir_number,rent_amount,damage_amount,refund_amount
			)
			VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			RETURNING id
		`, jobID, c.ContainerNo, c.ContainerSizeID, c.ContainerTypeID, c.Weight, c.SealNo,
			c.GateInDate, c.GateOutDate, c.EIRNumber, c.RentAmount, c.DamageAmount, c.RefundAmount,
		).Scan(&c.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresJobRepo) insertInvoices(tx *sql.Tx, jobID int64, invoices []models.Invoice) error {
	for i := range invoices {
		inv := &invoices[i]
		inv.JobID = jobID
		err := tx.QueryRow(`
			INSERT INTO invoice(
				job_id,invoice_number,invoice_date,invoice_issued_by_party_id,shipping_term,
				lc_number,lc_value,lc_date,lc_issued_by_bank_id,lc_currency_id,
				fi_number,fi_date,fi_expiry_date
			)
			VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
			RETURNING id
		`, jobID, inv.InvoiceNumber, inv.InvoiceDate, inv.InvoiceIssuedByPartyID, inv.ShippingTerm,
			inv.LCNumber, inv.LCValue, inv.LCDate, inv.LCIssuedByBank, inv.LCCurrencyID,
			inv.FINumber, inv.FIDate, inv.FIExpiryDate,
		).Scan(&inv.ID)
		if err != nil {
			return err
		}

		for j := range inv.Items {
			it := &inv.Items[j]
			it.InvoiceID = inv.ID
			err := tx.QueryRow(`
				INSERT INTO invoice_item(
					invoice_id,hs_code_id,hs_code,description,origin_id,
					quantity,dutiable_value,assessable_value,total_value
				)
				VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
				RETURNING id
			`, inv.ID, it.HSCodeID, it.HSCode, it.Description, it.OriginID,
				it.Quantity, it.DutiableValue, it.AssessableValue, it.TotalValue,
			).Scan(&it.ID)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// ------------------------ Create / Update Job ------------------------

func (r *PostgresJobRepo) CreateJob(job *models.JobMaster) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	job.Version = 1
	if err := r.insertJobMain(tx, job); err != nil {
		return err
	}
	if err := r.insertContainers(tx, job.JobID, job.Containers); err != nil {
		return err
	}
	if err := r.insertInvoices(tx, job.JobID, job.Invoices); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateJob replaces the whole tree under an optimistic version check, then
// refreshes containers, invoices and items the way the submit works: whole
// tree in one transaction.
func (r *PostgresJobRepo) UpdateJob(job *models.JobMaster) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	res, err := tx.Exec(`
		UPDATE job_master SET
			job_number=$1,
			operation_type=$2, operation_mode=$3, job_sub_type=$4, job_load_type=$5,
			job_document_type=$6, shipping_type=$7,
			house_document_number=$8, master_document_number=$9, bl_status=$10,
			shipper_party_id=$11, consignee_party_id=$12, carrier_party_id=$13, process_owner_id=$14,
			origin_agent_id=$15, destination_agent_id=$16,
			pol_id=$17, pod_id=$18, place_of_delivery_id=$19, vessel_id=$20, voyage_number=$21,
			etd=$22, eta=$23,
			gross_weight=$24, net_weight=$25,
			freight_type=$26, exchange_rate=$27, freight_charges=$28, other_charges=$29,
			insurance=$30, insurance_value=$31, security_value=$32,
			billing_parties_info=$33, remarks=$34,
			version=version+1, updated_at=$35
		WHERE id=$36 AND version=$37
	`,
		job.JobNumber,
		job.OperationType, job.OperationMode, job.JobSubType, job.JobLoadType,
		job.JobDocumentType, job.ShippingType,
		job.HouseDocumentNumber, job.MasterDocumentNumber, job.BLStatus,
		job.ShipperPartyID, job.ConsigneePartyID, job.CarrierPartyID, job.ProcessOwnerID,
		job.OriginAgentID, job.DestinationAgentID,
		job.POLID, job.PODID, job.PlaceOfDeliveryID, job.VesselID, job.VoyageNumber,
		job.ETD, job.ETA,
		job.GrossWeight, job.NetWeight,
		job.FreightType, job.ExchangeRate, job.FreightCharges, job.OtherCharges,
		job.Insurance, job.InsuranceValue, job.SecurityValue,
		job.BillingPartiesInfo, job.Remarks,
		now, job.JobID, job.Version,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVersionConflict
	}

	// Refresh children
	if _, err := tx.Exec(`DELETE FROM invoice_item WHERE invoice_id IN (SELECT id FROM invoice WHERE job_id=$1)`, job.JobID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM invoice WHERE job_id=$1`, job.JobID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM container WHERE job_id=$1`, job.JobID); err != nil {
		return err
	}
	if err := r.insertContainers(tx, job.JobID, job.Containers); err != nil {
		return err
	}
	if err := r.insertInvoices(tx, job.JobID, job.Invoices); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	job.Version++
	job.UpdatedAt = &now
	return nil
}

// ------------------------ GetJobs ------------------------

// jobFilterColumns are the only columns a caller may filter on. Filter keys
// land in identifier position, so anything else is rejected up front.
var jobFilterColumns = map[string]struct{}{
	"id":                {},
	"job_number":        {},
	"company_id":        {},
	"operation_type":    {},
	"operation_mode":    {},
	"job_sub_type":      {},
	"job_document_type": {},
	"freight_type":      {},
	"bl_status":         {},
}

func (r *PostgresJobRepo) GetJobs(filters map[string]interface{}, single bool) ([]*models.JobMaster, error) {
	for k := range filters {
		if _, ok := jobFilterColumns[k]; !ok {
			return nil, fmt.Errorf("unsupported filter: %s", k)
		}
	}

	query := `
		SELECT
			j.id, j.job_number, j.company_id, j.version,
			j.operation_type, j.operation_mode, j.job_sub_type, j.job_load_type,
			j.job_document_type, j.shipping_type,
			j.house_document_number, j.master_document_number, j.bl_status,
			j.shipper_party_id, j.consignee_party_id, j.carrier_party_id, j.process_owner_id,
			j.origin_agent_id, j.destination_agent_id,
			j.pol_id, j.pod_id, j.place_of_delivery_id, j.vessel_id, j.voyage_number,
			j.etd, j.eta,
			j.gross_weight, j.net_weight,
			j.freight_type, j.exchange_rate, j.freight_charges, j.other_charges,
			j.insurance, j.insurance_value, j.security_value,
			j.billing_parties_info, j.remarks,
			j.created_at, j.updated_at, j.pdf_created_at, j.pdf_path
		FROM job_master j
	`

	args := []interface{}{}
	where := []string{}
	i := 1
	for k, v := range filters {
		where = append(where, fmt.Sprintf("j.%s = $%d", k, i))
		args = append(args, v)
		i++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if !single {
		query += " ORDER BY j.created_at DESC"
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.JobMaster
	for rows.Next() {
		var j models.JobMaster
		err := rows.Scan(
			&j.JobID, &j.JobNumber, &j.CompanyID, &j.Version,
			&j.OperationType, &j.OperationMode, &j.JobSubType, &j.JobLoadType,
			&j.JobDocumentType, &j.ShippingType,
			&j.HouseDocumentNumber, &j.MasterDocumentNumber, &j.BLStatus,
			&j.ShipperPartyID, &j.ConsigneePartyID, &j.CarrierPartyID, &j.ProcessOwnerID,
			&j.OriginAgentID, &j.DestinationAgentID,
			&j.POLID, &j.PODID, &j.PlaceOfDeliveryID, &j.VesselID, &j.VoyageNumber,
			&j.ETD, &j.ETA,
			&j.GrossWeight, &j.NetWeight,
			&j.FreightType, &j.ExchangeRate, &j.FreightCharges, &j.OtherCharges,
			&j.Insurance, &j.InsuranceValue, &j.SecurityValue,
			&j.BillingPartiesInfo, &j.Remarks,
			&j.CreatedAt, &j.UpdatedAt, &j.PdfCreatedAt, &j.PdfPath,
		)
		if err != nil {
			return nil, err
		}
		j.Containers = []models.Container{}
		j.Invoices = []models.Invoice{}
		result = append(result, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(result) > 0 {
		if err := r.loadChildren(result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// loadChildren loads containers, invoices and items for all jobs in one
// query each, avoiding N+1.
func (r *PostgresJobRepo) loadChildren(jobs []*models.JobMaster) error {
	byID := make(map[int64]*models.JobMaster, len(jobs))
	ids := make([]interface{}, len(jobs))
	placeholders := make([]string, len(jobs))
	for i, j := range jobs {
		byID[j.JobID] = j
		ids[i] = j.JobID
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	in := strings.Join(placeholders, ",")

	rows, err := r.DB.Query(fmt.Sprintf(`
		SELECT id, job_id, container_no, container_size_id, container_type_id, weight, seal_no,
			gate_in_date, gate_out_date, eir_number, rent_amount, damage_amount, refund_amount
		FROM container WHERE job_id IN (%s) ORDER BY id
	`, in), ids...)
	if err != nil {
		return err
	}
	for rows.Next() {
		var c models.Container
		if err := rows.Scan(&c.ID, &c.JobID, &c.ContainerNo, &c.ContainerSizeID, &c.ContainerTypeID,
			&c.Weight, &c.SealNo, &c.GateInDate, &c.GateOutDate, &c.EIRNumber,
			&c.RentAmount, &c.DamageAmount, &c.RefundAmount); err != nil {
			rows.Close()
			return err
		}
		if j, ok := byID[c.JobID]; ok {
			j.Containers = append(j.Containers, c)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	invByID := map[int64]*models.Invoice{}
	rows, err = r.DB.Query(fmt.Sprintf(`
		SELECT id, job_id, invoice_number, invoice_date, invoice_issued_by_party_id, shipping_term,
			lc_number, lc_value, lc_date, lc_issued_by_bank_id, lc_currency_id,
			fi_number, fi_date, fi_expiry_date
		FROM invoice WHERE job_id IN (%s) ORDER BY id
	`, in), ids...)
	if err != nil {
		return err
	}
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.JobID, &inv.InvoiceNumber, &inv.InvoiceDate,
			&inv.InvoiceIssuedByPartyID, &inv.ShippingTerm,
			&inv.LCNumber, &inv.LCValue, &inv.LCDate, &inv.LCIssuedByBank, &inv.LCCurrencyID,
			&inv.FINumber, &inv.FIDate, &inv.FIExpiryDate); err != nil {
			rows.Close()
			return err
		}
		inv.Items = []models.InvoiceItem{}
		if j, ok := byID[inv.JobID]; ok {
			j.Invoices = append(j.Invoices, inv)
			invByID[inv.ID] = &j.Invoices[len(j.Invoices)-1]
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if len(invByID) == 0 {
		return nil
	}
	invIDs := make([]interface{}, 0, len(invByID))
	invPh := make([]string, 0, len(invByID))
	for id := range invByID {
		invIDs = append(invIDs, id)
		invPh = append(invPh, fmt.Sprintf("$%d", len(invIDs)))
	}
	rows, err = r.DB.Query(fmt.Sprintf(`
		SELECT id, invoice_id, hs_code_id, hs_code, description, origin_id,
			quantity, dutiable_value, assessable_value, total_value
		FROM invoice_item WHERE invoice_id IN (%s) ORDER BY id
	`, strings.Join(invPh, ",")), invIDs...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var it models.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.HSCodeID, &it.HSCode, &it.Description,
			&it.OriginID, &it.Quantity, &it.DutiableValue, &it.AssessableValue, &it.TotalValue); err != nil {
			return err
		}
		if inv, ok := invByID[it.InvoiceID]; ok {
			inv.Items = append(inv.Items, it)
		}
	}
	return rows.Err()
}

// ------------------------ Delete / PDF ------------------------

func (r *PostgresJobRepo) DeleteJob(jobID int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM invoice_item WHERE invoice_id IN (SELECT id FROM invoice WHERE job_id=$1)`, jobID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM invoice WHERE job_id=$1`, jobID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM container WHERE job_id=$1`, jobID); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM job_master WHERE id=$1`, jobID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (r *PostgresJobRepo) UpdatePDFCreatedAt(jobID int64, t time.Time, path string) error {
	_, err := r.DB.Exec(`UPDATE job_master SET pdf_created_at=$1, pdf_path=$2 WHERE id=$3`, t, path, jobID)
	return err
}
