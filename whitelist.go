package cryptoboard

import (
	"net/url"
	"strings"
)

const (
	ETH = "ETH"
	BTC = "BTC"

	CryptoCompareURL = "https://min-api.cryptocompare.com"
)

// Assets are the price tables every payload must carry, in display order.
var Assets = [...]string{ETH, BTC}

type Whitelist []string

// DefaultWhitelist returns a fresh copy of the twenty fiat codes shown on the board.
func DefaultWhitelist() Whitelist {
	return Whitelist{
		"NGN", "CAD", "CNY", "BND", "EUR",
		"USD", "AUD", "CHF", "DKK", "GHS",
		"HKD", "INR", "JPY", "KZT", "NAD",
		"NZD", "OMR", "RUB", "SAR", "SGD",
	}
}

// NewWhitelist upper-cases and trims the codes, dropping blanks and repeats.
// The first occurrence of a code decides its position.
func NewWhitelist(codes ...string) Whitelist {
	seen := make(map[string]struct{}, len(codes))
	whitelist := make(Whitelist, 0, len(codes))

	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))

		if code == "" {
			continue
		}

		if _, ok := seen[code]; ok {
			continue
		}

		seen[code] = struct{}{}
		whitelist = append(whitelist, code)
	}

	return whitelist
}

func (w Whitelist) String() string {
	return strings.Join(w, ",")
}

// PriceMultiURL builds the pricemulti query for assets priced in the whitelist codes.
func PriceMultiURL(base string, assets []string, whitelist Whitelist) string {
	if base == "" {
		base = CryptoCompareURL
	}

	q := url.Values{}
	q.Add("fsyms", strings.Join(assets, ","))
	q.Add("tsyms", whitelist.String())

	return strings.TrimRight(base, "/") + "/data/pricemulti?" + q.Encode()
}
