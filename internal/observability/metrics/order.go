package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of placed orders",
		},
	)

	OrderStatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_updates_total",
			Help: "Total number of order status transitions",
		},
		[]string{"status"},
	)

	StoresCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stores_created_total",
			Help: "Total number of created stores",
		},
	)
)
