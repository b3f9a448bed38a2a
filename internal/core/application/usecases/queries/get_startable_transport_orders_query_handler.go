package queries

import (
	"context"

	"tms/internal/core/domain/model/transportorder"

	"gorm.io/gorm"
)

// GetStartableTransportOrdersQueryHandler returns INITIALIZED and INTERRUPTED
// orders ordered by priority (highest first), then by creation date.
type GetStartableTransportOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStartableTransportOrdersQueryHandler reads from db outside any unit of work.
func NewGetStartableTransportOrdersQueryHandler(db *gorm.DB) GetStartableTransportOrdersQueryHandler {
	return GetStartableTransportOrdersQueryHandler{db: db}
}

// Handle lists INITIALIZED and INTERRUPTED orders, best candidate first.
func (h GetStartableTransportOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStartableTransportOrdersQuery,
) ([]TransportOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []transportOrderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT *
		FROM tms_transport_order
		WHERE transport_unit = ?
		  AND state IN (?, ?)
		ORDER BY priority DESC, creation_date ASC, id ASC
	`,
		query.TransportUnit().String(),
		transportorder.Initialized.String(),
		transportorder.Interrupted.String(),
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return toViews(rows)
}
