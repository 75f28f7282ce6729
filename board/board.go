// Package board formats price records for display. Rounding happens
// here only; records coming out of the decoder are never rounded.
package board

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/malusev998/cryptoboard"
)

type (
	Format string

	Row struct {
		Currency string `json:"currency" yaml:"currency"`
		ETH      string `json:"eth" yaml:"eth"`
		BTC      string `json:"btc" yaml:"btc"`
	}
)

const (
	Table Format = "table"
	JSON  Format = "json"
	YAML  Format = "yaml"

	DefaultPlaces = 2
)

func ParseFormat(str string) (Format, error) {
	switch Format(strings.ToLower(str)) {
	case Table:
		return Table, nil
	case JSON:
		return JSON, nil
	case YAML:
		return YAML, nil
	}

	return "", fmt.Errorf("value %s is not valid Format", str)
}

// Round rounds half away from zero to the given number of decimal places.
func Round(price float64, places int32) string {
	return decimal.NewFromFloat(price).StringFixed(places)
}

func Rows(records []cryptoboard.PriceRecord, places int32) []Row {
	rows := make([]Row, 0, len(records))

	for _, record := range records {
		rows = append(rows, Row{
			Currency: record.CurrencyCode,
			ETH:      Round(record.ETHPrice, places),
			BTC:      Round(record.BTCPrice, places),
		})
	}

	return rows
}

func Render(w io.Writer, records []cryptoboard.PriceRecord, format Format, places int32) error {
	rows := Rows(records, places)

	switch format {
	case JSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(rows)
	case YAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(rows); err != nil {
			return err
		}

		return encoder.Close()
	case Table, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", "CODE", cryptoboard.ETH, cryptoboard.BTC)

		for _, row := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t\n", row.Currency, row.ETH, row.BTC)
		}

		return tw.Flush()
	}

	return fmt.Errorf("value %s is not valid Format", format)
}
