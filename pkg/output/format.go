// Package output provides utilities for formatting and displaying results.
package output

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/srahimian/huquq/internal/metal"
	"github.com/srahimian/huquq/pkg/constants"
	"github.com/srahimian/huquq/pkg/datetime"
	"github.com/srahimian/huquq/pkg/huquq"
)

// TerseFormat outputs the resolved price and the payable amount only.
func TerseFormat(obs metal.Observation, calc *huquq.Calculation) {
	p := message.NewPrinter(language.English)
	fmt.Println(obs)
	_, _ = p.Printf("Payable: $%.2f\n", huquq.Round(calc.Payable))
}

// DetailedFormat outputs the full breakdown: the search and observation
// times, the price with its source, and the calculation report. The time
// lines are omitted when the price came from the user rather than a lookup.
func DetailedFormat(target time.Time, obs metal.Observation, calc *huquq.Calculation) {
	p := message.NewPrinter(language.English)
	if obs.Source != metal.UserSource {
		fmt.Printf("Date & time for price search: %s\n", target.Format(constants.DateTimeDisplayLayout))
		fmt.Printf("Date & time for metal price: %s\n", datetime.FromEpochMillis(obs.Timestamp).Format(constants.DateTimeDisplayLayout))
	}
	fmt.Printf("Metal price (%s): %s\n", obs.Source, obs)
	fmt.Println(" ~ ~ ~ ")
	_, _ = p.Printf("Accrued wealth is %.0fx over the 19mq of gold.\n", calc.Units())
	_, _ = p.Printf("Amount of wealth that ḥuqúqu'lláh will be payable on: $%.2f.\n", huquq.Round(calc.Assessable()))
	_, _ = p.Printf("Basic: $%.2f (equivalent to 19mq of gold)\n", huquq.Round(calc.Basic))
	_, _ = p.Printf("Remainder of wealth: $%.2f (ḥuqúqu'lláh not paid)\n", huquq.Round(calc.Remainder))
	_, _ = p.Printf("Payable: $%.2f\n", huquq.Round(calc.Payable))
}
