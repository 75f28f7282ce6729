package cryptoboard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/cryptoboard"
)

func TestDefaultWhitelist(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	whitelist := cryptoboard.DefaultWhitelist()
	asserts.Len(whitelist, 20)
	asserts.Equal("NGN", whitelist[0])
	asserts.Equal("SGD", whitelist[19])

	whitelist[0] = "XXX"
	asserts.Equal("NGN", cryptoboard.DefaultWhitelist()[0])
}

func TestNewWhitelist(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	whitelist := cryptoboard.NewWhitelist(" eur", "USD", "", "Eur", "gbp ")

	asserts.Equal(cryptoboard.Whitelist{"EUR", "USD", "GBP"}, whitelist)
	asserts.Equal("EUR,USD,GBP", whitelist.String())
	asserts.Empty(cryptoboard.NewWhitelist())
}

func TestPriceMultiURL(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	url := cryptoboard.PriceMultiURL("", cryptoboard.Assets[:], cryptoboard.Whitelist{"EUR", "USD"})
	asserts.Equal("https://min-api.cryptocompare.com/data/pricemulti?fsyms=ETH%2CBTC&tsyms=EUR%2CUSD", url)

	url = cryptoboard.PriceMultiURL("http://localhost:8080/", []string{"ETH"}, cryptoboard.Whitelist{"NGN"})
	asserts.Equal("http://localhost:8080/data/pricemulti?fsyms=ETH&tsyms=NGN", url)
}
