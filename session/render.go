package session

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	providerTypes "otp-order-manager/types/provider"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders an amount the way id-ID locales do: Rp1.234.567,5
func FormatRupiah(amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	whole := amount.Truncate(0)
	digits := whole.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	frac := amount.Sub(whole)
	if !frac.IsZero() {
		fixed := frac.StringFixed(2) // "0.50"
		b.WriteString("," + strings.TrimRight(fixed[2:], "0"))
	}
	return sign + "Rp" + b.String()
}

// ServiceLabel is the display text of a service: name and price.
func ServiceLabel(s providerTypes.Service) string {
	return fmt.Sprintf("%s - %s", s.Name, FormatRupiah(s.Price))
}

// RenderActive writes the order panel.
func RenderActive(w io.Writer, a ActiveOrder) {
	fmt.Fprintf(w, "Order ID : %s\n", a.ID)
	fmt.Fprintf(w, "Number   : %s\n", a.Phone)
	fmt.Fprintf(w, "Service  : %s\n", a.Label)
	fmt.Fprintf(w, "Status   : %s\n", a.Status)
	if a.Actionable() {
		fmt.Fprintln(w, "Actions  : otp, cancel")
	}
}

// RenderHistory writes the history table, newest last.
func RenderHistory(w io.Writer, entries []HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No orders yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER ID\tNUMBER\tSERVICE\tSTATUS\tDETAIL")
	for _, e := range entries {
		detail := ""
		switch {
		case e.OTP != "":
			detail = "OTP " + e.OTP
		case e.Refunded.Valid:
			detail = "refunded " + FormatRupiah(e.Refunded.Decimal)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Phone, e.Label, e.Status, detail)
	}
	tw.Flush()
}

func RenderCountries(w io.Writer, countries []providerTypes.Country) {
	if len(countries) == 0 {
		fmt.Fprintln(w, "-- no countries loaded --")
		return
	}
	for _, c := range countries {
		fmt.Fprintf(w, "%6s  %s\n", c.ID, c.Name)
	}
}

func RenderOperators(w io.Writer, operators []string) {
	if len(operators) == 0 {
		fmt.Fprintln(w, "-- no operators --")
		return
	}
	fmt.Fprintln(w, strings.Join(operators, ", "))
}

func RenderServices(w io.Writer, services []providerTypes.Service) {
	if len(services) == 0 {
		fmt.Fprintln(w, "-- no services --")
		return
	}
	for _, s := range services {
		fmt.Fprintf(w, "%-10s %s\n", s.Code, ServiceLabel(s))
	}
}
