package decoder

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/malusev998/cryptoboard"
)

type (
	Decoder struct {
		whitelist cryptoboard.Whitelist
	}

	priceTable map[string]json.RawMessage
)

var null = []byte("null")

// New returns a decoder matching the given whitelist. A nil whitelist
// selects cryptoboard.DefaultWhitelist.
func New(whitelist cryptoboard.Whitelist) Decoder {
	if whitelist == nil {
		whitelist = cryptoboard.DefaultWhitelist()
	}

	return Decoder{whitelist: cryptoboard.NewWhitelist(whitelist...)}
}

// Decode parses body with the default whitelist.
func Decode(body string) ([]cryptoboard.PriceRecord, error) {
	return New(nil).Decode(body)
}

func (d Decoder) Whitelist() cryptoboard.Whitelist {
	return append(cryptoboard.Whitelist(nil), d.whitelist...)
}

// Decode turns a pricemulti payload into one record per whitelist code
// priced in both the ETH and BTC tables, in whitelist order.
func (d Decoder) Decode(body string) ([]cryptoboard.PriceRecord, error) {
	records := make([]cryptoboard.PriceRecord, 0, len(d.whitelist))

	if strings.TrimSpace(body) == "" {
		return records, nil
	}

	var root map[string]json.RawMessage

	if err := json.Unmarshal([]byte(body), &root); err != nil {
		return records, &cryptoboard.DecodeError{Reason: cryptoboard.ErrMalformedJSON, Cause: err}
	}

	eth, err := table(root, cryptoboard.ETH)

	if err != nil {
		return records, err
	}

	btc, err := table(root, cryptoboard.BTC)

	if err != nil {
		return records, err
	}

	for _, code := range d.whitelist {
		ethPrice, ok := eth.price(code)

		if !ok {
			continue
		}

		btcPrice, ok := btc.price(code)

		if !ok {
			continue
		}

		records = append(records, cryptoboard.PriceRecord{
			CurrencyCode: code,
			ETHPrice:     ethPrice,
			BTCPrice:     btcPrice,
		})
	}

	return records, nil
}

func table(root map[string]json.RawMessage, asset string) (priceTable, error) {
	raw, ok := root[asset]

	if !ok || bytes.Equal(bytes.TrimSpace(raw), null) {
		return nil, &cryptoboard.DecodeError{Reason: cryptoboard.ErrMissingPriceTable, Asset: asset}
	}

	var t priceTable

	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, &cryptoboard.DecodeError{Reason: cryptoboard.ErrMissingPriceTable, Asset: asset, Cause: err}
	}

	return t, nil
}

// price reports false for absent, null, non-numeric and negative entries.
func (t priceTable) price(code string) (float64, bool) {
	raw, ok := t[code]

	if !ok {
		return 0, false
	}

	var value *float64

	if err := json.Unmarshal(raw, &value); err != nil || value == nil || *value < 0 {
		return 0, false
	}

	return *value, true
}
