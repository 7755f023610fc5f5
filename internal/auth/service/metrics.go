package service

import (
	"github.com/AlibekovAA/stride/internal/observability/metrics"
)

func observeRegistration(result string) {
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()
}

func observeLogin(result string) {
	metrics.LoginsTotal.WithLabelValues(result).Inc()
}

func incrementAccessTokensIssued() {
	metrics.AccessTokensIssued.Inc()
}
