package service

import "github.com/prometheus/client_golang/prometheus"

var authEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "auth_events_total", Help: "Registration, login and authorization outcomes"},
	[]string{"event", "outcome"},
)

func init() { prometheus.MustRegister(authEvents) }

func observe(event string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "fail"
	}
	authEvents.WithLabelValues(event, outcome).Inc()
}
