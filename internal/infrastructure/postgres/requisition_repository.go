package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

const requisitionColumns = `id, requester_name, department, lot_id, item_name,
	quantity_requested, status, request_date, approved_by, approval_date,
	delivered_by, received_by, fulfillment_date, digital_signature, fulfillment_batch`

// RequisitionRepo implementación de RequisitionRepository sobre PostgreSQL.
// Los registros de aprobación y entrega se aplanan en columnas nullable de la
// misma fila.
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

// Create persiste una requisición nueva.
func (r *RequisitionRepo) Create(req *entity.Requisition) error {
	query := `
		INSERT INTO requisitions (` + requisitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	args := flattenRequisition(req)
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert requisition: %w", err)
	}
	return nil
}

// GetByID obtiene una requisición por ID; nil si no existe.
func (r *RequisitionRepo) GetByID(id string) (*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE id = $1`
	req, err := scanRequisition(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	return req, nil
}

// Update persiste los cambios de una requisición.
func (r *RequisitionRepo) Update(req *entity.Requisition) error {
	query := `
		UPDATE requisitions SET requester_name = $2, department = $3, lot_id = $4,
			item_name = $5, quantity_requested = $6, status = $7, request_date = $8,
			approved_by = $9, approval_date = $10, delivered_by = $11,
			received_by = $12, fulfillment_date = $13, digital_signature = $14,
			fulfillment_batch = $15
		WHERE id = $1`
	args := flattenRequisition(req)
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("update requisition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista requisiciones paginadas, más recientes primero.
func (r *RequisitionRepo) List(limit, offset int) ([]*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions
		ORDER BY request_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	defer rows.Close()
	out := []*entity.Requisition{}
	for rows.Next() {
		req, err := scanRequisition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// CountByStatus cuenta requisiciones por estado.
func (r *RequisitionRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM requisitions WHERE status = $1`, status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count requisitions: %w", err)
	}
	return n, nil
}

func flattenRequisition(req *entity.Requisition) []any {
	var (
		approvedBy, deliveredBy, receivedBy, fulfillmentBatch *string
		approvalDate, fulfillmentDate                         *time.Time
		digitalSignature                                      *bool
	)
	if req.Approval != nil {
		approvedBy = &req.Approval.ApprovedBy
		approvalDate = &req.Approval.Date
	}
	if req.Fulfillment != nil {
		deliveredBy = &req.Fulfillment.DeliveredBy
		receivedBy = &req.Fulfillment.ReceivedBy
		fulfillmentDate = &req.Fulfillment.Date
		digitalSignature = &req.Fulfillment.DigitalSignature
		fulfillmentBatch = &req.Fulfillment.BatchNumber
	}
	return []any{
		req.ID, req.RequesterName, req.Department, req.LotID, req.ItemName,
		req.QuantityRequested, req.Status, req.RequestDate,
		approvedBy, approvalDate,
		deliveredBy, receivedBy, fulfillmentDate, digitalSignature, fulfillmentBatch,
	}
}

func scanRequisition(row pgx.Row) (*entity.Requisition, error) {
	var (
		req                                                   entity.Requisition
		approvedBy, deliveredBy, receivedBy, fulfillmentBatch *string
		approvalDate, fulfillmentDate                         *time.Time
		digitalSignature                                      *bool
	)
	err := row.Scan(
		&req.ID, &req.RequesterName, &req.Department, &req.LotID, &req.ItemName,
		&req.QuantityRequested, &req.Status, &req.RequestDate,
		&approvedBy, &approvalDate,
		&deliveredBy, &receivedBy, &fulfillmentDate, &digitalSignature, &fulfillmentBatch,
	)
	if err != nil {
		return nil, err
	}
	if approvedBy != nil && approvalDate != nil {
		req.Approval = &entity.Approval{ApprovedBy: *approvedBy, Date: *approvalDate}
	}
	if receivedBy != nil && fulfillmentDate != nil {
		req.Fulfillment = &entity.Fulfillment{
			ReceivedBy: *receivedBy,
			Date:       *fulfillmentDate,
		}
		if deliveredBy != nil {
			req.Fulfillment.DeliveredBy = *deliveredBy
		}
		if digitalSignature != nil {
			req.Fulfillment.DigitalSignature = *digitalSignature
		}
		if fulfillmentBatch != nil {
			req.Fulfillment.BatchNumber = *fulfillmentBatch
		}
	}
	return &req, nil
}
