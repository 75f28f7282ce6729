package cryptoboard

import (
	"fmt"
	"strings"
)

// Provider names the price API a snapshot came from. Sinks persist it
// alongside every record.
type Provider string

const CryptoCompareProvider Provider = "CryptoCompare"

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "cryptocompare":
		return CryptoCompareProvider, nil
	}

	return "", fmt.Errorf("value %s is not valid Provider", str)
}
