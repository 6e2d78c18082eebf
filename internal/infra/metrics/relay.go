package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		updatesReceivedTotal,
		relayForwardsTotal,
		sendErrorsTotal,
		membershipJoinsTotal,
		snapshotSaveFailuresTotal,
	)
}

var (
	updatesReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_updates_received_total",
			Help: "Inbound webhook updates by classification.",
		},
		[]string{"kind"},
	)

	relayForwardsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_forwards_total",
			Help: "Messages forwarded into relay targets, by media kind.",
		},
		[]string{"media"},
	)

	sendErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_send_errors_total",
			Help: "Outbound platform calls that failed.",
		},
	)

	membershipJoinsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_membership_joins_total",
			Help: "Successful first-time joins recorded in the membership store.",
		},
	)

	snapshotSaveFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_snapshot_save_failures_total",
			Help: "Membership snapshot writes that failed.",
		},
	)
)

func IncUpdateReceived(kind string) {
	updatesReceivedTotal.WithLabelValues(kind).Inc()
}

func IncRelayForward(media string) {
	relayForwardsTotal.WithLabelValues(media).Inc()
}

func IncSendError() {
	sendErrorsTotal.Inc()
}

func IncMembershipJoin() {
	membershipJoinsTotal.Inc()
}

func IncSnapshotSaveFailure() {
	snapshotSaveFailuresTotal.Inc()
}
