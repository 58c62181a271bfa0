package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_logins_total",
		Help: "Total number of successful logins.",
	})

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_token_verifications_total",
			Help: "Total number of token verification attempts by status.",
		},
		[]string{"status"},
	)

	productWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_product_writes_total",
			Help: "Total number of successful product writes by operation.",
		},
		[]string{"operation"},
	)

	presignRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_presign_requests_total",
			Help: "Total number of upload presign requests by status.",
		},
		[]string{"status"},
	)
)
