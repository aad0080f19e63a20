package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	coinsAwardedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "echolearn_coins_awarded_total",
			Help: "Coins credited, by activity",
		},
		[]string{"activity"},
	)
	achievementsUnlockedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "echolearn_achievements_unlocked_total",
			Help: "Achievement unlocks, by achievement key",
		},
		[]string{"key"},
	)
	redemptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "echolearn_redemptions_total",
			Help: "Completed redemptions, by kind",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(coinsAwardedTotal)
	prometheus.MustRegister(achievementsUnlockedTotal)
	prometheus.MustRegister(redemptionsTotal)
}
