package queries

import (
	"context"

	"tms/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetTransportOrderQueryHandler reads one order view.
type GetTransportOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetTransportOrderQueryHandler reads from db outside any unit of work.
func NewGetTransportOrderQueryHandler(db *gorm.DB) GetTransportOrderQueryHandler {
	return GetTransportOrderQueryHandler{db: db}
}

// Handle returns an errs.ObjectNotFoundError for unknown identities.
func (h GetTransportOrderQueryHandler) Handle(
	ctx context.Context,
	query GetTransportOrderQuery,
) (TransportOrderView, error) {
	if err := query.Validate(); err != nil {
		return TransportOrderView{}, err
	}

	var rows []transportOrderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT *
		FROM tms_transport_order
		WHERE id = ?
	`, query.ID().Bytes()).Scan(&rows).Error
	if err != nil {
		return TransportOrderView{}, err
	}

	if len(rows) == 0 {
		return TransportOrderView{}, errs.NewObjectNotFoundError("transport order", query.ID().String())
	}

	return rows[0].toView()
}
