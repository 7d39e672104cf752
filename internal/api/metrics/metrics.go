// Package metrics defines the custom Prometheus metrics of the marketplace
// API. It is the single source of truth for metric names, labels and help
// strings.
//
// Call Register once per registry before the HTTP server starts.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "marketplace"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts accounts created through the API or at startup.
// Label:
//   - role: "user" or "admin"
var UsersRegisteredTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered accounts, by role.",
	},
	[]string{"role"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Advertisement metrics ─────────────────────────────────────────────────────

var AdvertisementsCreatedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advertisements_created_total",
		Help:      "Total number of advertisements created.",
	},
)

// ── Error metrics ─────────────────────────────────────────────────────────────

// RequestErrorsTotal counts error responses rendered by the central handler.
// Label:
//   - kind: the error kind sent to the client (e.g. "forbidden", "expired_token")
var RequestErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_errors_total",
		Help:      "Total number of error responses, by error kind.",
	},
	[]string{"kind"},
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		UsersRegisteredTotal,
		LoginAttemptsTotal,
		AdvertisementsCreatedTotal,
		RequestErrorsTotal,
	}
}

// Register adds every metric to reg. Registering on a registry that already
// holds them is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
