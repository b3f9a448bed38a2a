package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListTransportOrdersQueryHandler lists orders oldest first.
type ListTransportOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListTransportOrdersQueryHandler reads from db outside any unit of work.
func NewListTransportOrdersQueryHandler(db *gorm.DB) ListTransportOrdersQueryHandler {
	return ListTransportOrdersQueryHandler{db: db}
}

// Handle returns the matching orders by creation date.
func (h ListTransportOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListTransportOrdersQuery,
) ([]TransportOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table(transportOrderTable)
	if unit := query.TransportUnit(); unit != nil {
		tx = tx.Where("transport_unit = ?", unit.String())
	}
	if states := query.States(); len(states) > 0 {
		names := make([]string, 0, len(states))
		for _, s := range states {
			names = append(names, s.String())
		}
		tx = tx.Where("state IN ?", names)
	}

	var rows []transportOrderRow
	if err := tx.Order("creation_date ASC, id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return toViews(rows)
}
