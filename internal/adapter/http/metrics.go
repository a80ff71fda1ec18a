package http

import (
	"errors"

	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "delivery_orders_created_total",
		Help: "Orders accepted and stored",
	})

	orderRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_order_rejections_total",
			Help: "Order creations rejected, by reason",
		},
		[]string{"reason"},
	)
)

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, usecase.ErrIntegrity):
		return "integrity"
	case errors.Is(err, usecase.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, usecase.ErrInvalidInput):
		return "invalid"
	default:
		return "other"
	}
}
