package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TokensMinted  prometheus.Counter
	MintFailures  *prometheus.CounterVec
	MintRollbacks prometheus.Counter
	Transfers     *prometheus.CounterVec
	TotalSupply   prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		TokensMinted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "originstamp_nft_tokens_minted_total",
			Help: "Total number of NFTs minted",
		}),
		MintFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "originstamp_nft_mint_failures_total",
			Help: "Total number of failed mint attempts by reason",
		}, []string{"reason"}),
		MintRollbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "originstamp_nft_mint_rollbacks_total",
			Help: "Total number of mints rolled back after a failed certificate link",
		}),
		Transfers: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "originstamp_nft_transfers_total",
			Help: "Total number of token transfers by result",
		}, []string{"result"}),
		TotalSupply: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "originstamp_nft_total_supply",
			Help: "Current number of live tokens",
		}),
	}
}

func (m *Metrics) IncrementMinted() {
	m.TokensMinted.Inc()
}

func (m *Metrics) IncrementMintFailures(reason string) {
	m.MintFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementRollbacks() {
	m.MintRollbacks.Inc()
}

func (m *Metrics) IncrementTransfers(result string) {
	m.Transfers.WithLabelValues(result).Inc()
}

func (m *Metrics) SetTotalSupply(supply uint64) {
	m.TotalSupply.Set(float64(supply))
}
