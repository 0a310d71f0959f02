package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Inbound updates by kind (command name, callback, text).",
		},
		[]string{"kind"},
	)

	registrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_registrations_total",
			Help: "First-time user registrations.",
		},
	)

	referralCreditsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_referral_credits_total",
			Help: "Referral points credited to referrers.",
		},
	)

	invitesIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_invites_issued_total",
			Help: "One-time reward invites successfully issued.",
		},
	)

	broadcastSendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_broadcast_sends_total",
			Help: "Broadcast send attempts by outcome.",
		},
		[]string{"success"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			updatesTotal, registrationsTotal, referralCreditsTotal,
			invitesIssuedTotal, broadcastSendsTotal,
		)
	})
}

func IncUpdate(kind string) { updatesTotal.WithLabelValues(kind).Inc() }

func IncRegistration() { registrationsTotal.Inc() }

func IncReferralCredit() { referralCreditsTotal.Inc() }

func IncInviteIssued() { invitesIssuedTotal.Inc() }

func IncBroadcastSend(ok bool) {
	broadcastSendsTotal.WithLabelValues(strconv.FormatBool(ok)).Inc()
}
