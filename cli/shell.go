package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"otp-order-manager/session"
)

const shellHelp = `Commands:
  key <api-key>              validate and store the provider API key
  balance                    refresh the balance
  countries                  load the country list
  country [id]               select a country (no id clears the selection)
  operators | services       show the loaded panels
  order <operator> <service> rent a number in the selected country
  otp                        fetch the OTP for the active order
  cancel                     cancel the active order
  status                     show the active order
  history                    show this session's orders
  view <order-id>            reopen an order from history
  help | quit`

// Shell is a line-oriented front end for a session.Tracker.
type Shell struct {
	tracker *session.Tracker
	in      *bufio.Scanner
	out     io.Writer
}

func NewShell(relay session.Relay, in io.Reader, out io.Writer) *Shell {
	s := &Shell{
		in:  bufio.NewScanner(in),
		out: out,
	}
	s.tracker = session.NewTracker(relay, s.confirm)
	return s
}

func (s *Shell) confirm(prompt string) bool {
	fmt.Fprintf(s.out, "%s [y/N] ", prompt)
	if !s.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return answer == "y" || answer == "yes"
}

// Run reads commands until quit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "OTP order shell. Type 'help' for commands.")
	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := s.dispatch(ctx, fields[0], fields[1:]); err != nil {
			fmt.Fprintln(s.out, "Error:", err)
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "help":
		fmt.Fprintln(s.out, shellHelp)

	case "key":
		key := ""
		if len(args) > 0 {
			key = args[0]
		}
		balance, err := s.tracker.SetKey(ctx, key)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, "API key saved.")
		if balance.Valid {
			fmt.Fprintln(s.out, "Balance:", session.FormatRupiah(balance.Decimal))
		}

	case "balance":
		balance, err := s.tracker.RefreshBalance(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Balance:", session.FormatRupiah(balance))

	case "countries":
		countries, err := s.tracker.ListCountries(ctx)
		session.RenderCountries(s.out, countries)
		return err

	case "country":
		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		res := s.tracker.SelectCountry(ctx, id)
		if id == "" {
			fmt.Fprintln(s.out, "Country selection cleared.")
			return nil
		}
		fmt.Fprintln(s.out, "Operators:")
		if res.OperatorsErr != nil {
			fmt.Fprintln(s.out, "  failed to load operators:", res.OperatorsErr)
		} else {
			session.RenderOperators(s.out, res.Operators)
		}
		fmt.Fprintln(s.out, "Services:")
		if res.ServicesErr != nil {
			fmt.Fprintln(s.out, "  failed to load services:", res.ServicesErr)
		} else {
			session.RenderServices(s.out, res.Services)
		}

	case "operators":
		session.RenderOperators(s.out, s.tracker.Operators())

	case "services":
		session.RenderServices(s.out, s.tracker.Services())

	case "order":
		if len(args) < 2 {
			return session.ErrIncompleteSelection
		}
		active, err := s.tracker.CreateOrder(ctx, s.tracker.SelectedCountry(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Order created.")
		session.RenderActive(s.out, active)

	case "otp":
		code, err := s.tracker.CheckOTP(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, "OTP:", code)

	case "cancel":
		refund, err := s.tracker.CancelOrder(ctx)
		if errors.Is(err, session.ErrCancelAborted) {
			fmt.Fprintln(s.out, "Order kept.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Order canceled. Refunded:", session.FormatRupiah(refund))

	case "status":
		active, ok := s.tracker.Active()
		if !ok {
			return session.ErrNoActiveOrder
		}
		session.RenderActive(s.out, active)

	case "history":
		session.RenderHistory(s.out, s.tracker.History())

	case "view":
		if len(args) == 0 {
			return fmt.Errorf("usage: view <order-id>")
		}
		active, err := s.tracker.ViewHistoryEntry(args[0])
		if err != nil {
			return err
		}
		session.RenderActive(s.out, active)

	default:
		return fmt.Errorf("unknown command %q, type 'help'", command)
	}
	return nil
}
