package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/malusev998/cryptoboard"
)

const namespace = "cryptoboard"

// Fetch results used as the "result" label.
const (
	ResultOK         = "ok"
	ResultInvalidURL = "invalid_url"
	ResultTransport  = "transport"
	ResultBadStatus  = "bad_status"
	ResultDecode     = "decode"
	ResultUnknown    = "unknown"
)

type Recorder struct {
	price   *prometheus.GaugeVec
	fetches *prometheus.CounterVec
	records prometheus.Gauge
}

func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		price: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "price",
			Help:      "Price of one unit of the asset in the currency, from the last successful fetch.",
		}, []string{"asset", "currency"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Fetches by result.",
		}, []string{"result"}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Records produced by the last successful fetch.",
		}),
	}

	reg.MustRegister(r.price, r.fetches, r.records)

	return r
}

func Classify(err error) string {
	var (
		transportErr *cryptoboard.TransportError
		badStatus    *cryptoboard.BadStatusError
		decodeErr    *cryptoboard.DecodeError
	)

	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, cryptoboard.ErrInvalidURL):
		return ResultInvalidURL
	case errors.As(err, &transportErr):
		return ResultTransport
	case errors.As(err, &badStatus):
		return ResultBadStatus
	case errors.As(err, &decodeErr):
		return ResultDecode
	}

	return ResultUnknown
}

// Observe counts the fetch and, on success, replaces the price gauges so
// currencies that dropped out of the response stop being reported.
func (r *Recorder) Observe(records []cryptoboard.PriceRecord, err error) {
	r.fetches.WithLabelValues(Classify(err)).Inc()

	if err != nil {
		return
	}

	r.price.Reset()

	for _, record := range records {
		r.price.WithLabelValues(cryptoboard.ETH, record.CurrencyCode).Set(record.ETHPrice)
		r.price.WithLabelValues(cryptoboard.BTC, record.CurrencyCode).Set(record.BTCPrice)
	}

	r.records.Set(float64(len(records)))
}
