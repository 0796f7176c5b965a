package console

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/svcdesk/adminconsole/internal/rest"
)

// The screens render plain text tables of the same data the web dashboard
// charts and tables show. Validation errors from the backend surface here,
// field by field; everything else was already translated by the gateway.

func (s *Shell) renderLogin(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "-- Log in --")
	fmt.Fprintln(w, "Use: login <email> <password>")
	if sess := s.sessions.Current(); sess.LastError != "" {
		fmt.Fprintf(w, "Last attempt: %s\n", sess.LastError)
	}
	return nil
}

func (s *Shell) renderUnauthorized(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "403 - You do not have permission to view this page.")
	return nil
}

func (s *Shell) renderNotFound(ctx context.Context, w io.Writer) error {
	fmt.Fprintf(w, "404 - no screen at %s\n", s.nav.Current())
	return nil
}

func (s *Shell) renderDashboard(ctx context.Context, w io.Writer) error {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	rng := rest.DateRange{Start: start, End: end}

	fmt.Fprintln(w, "-- Admin dashboard (last 30 days) --")

	summary, err := s.clients.Analytics.Financial(ctx, rng)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Revenue: %.2f  Expenses: %.2f  Net: %.2f  Orders: %d\n",
		summary.TotalRevenue, summary.TotalExpenses, summary.NetIncome, summary.OrderCount)

	traffic, err := s.clients.Analytics.Traffic(ctx, rng)
	if err != nil {
		return err
	}
	for _, p := range traffic {
		fmt.Fprintf(w, "  %-12s %d\n", p.Label, p.Orders)
	}
	return nil
}

func (s *Shell) renderEmployees(ctx context.Context, w io.Writer) error {
	users, page, err := s.clients.Users.List(ctx, rest.ListOptions{Limit: 50})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "-- Employees (%d total) --\n", page.TotalItems)
	for _, u := range users {
		fmt.Fprintf(w, "  %-20s %-10s %-8s %s\n", u.Username, u.Role, u.Status, u.Email)
	}
	return nil
}

func (s *Shell) renderCustomers(ctx context.Context, w io.Writer) error {
	customers, page, err := s.clients.Customers.List(ctx, rest.ListOptions{Limit: 50})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "-- Customers (%d total) --\n", page.TotalItems)
	for _, c := range customers {
		fmt.Fprintf(w, "  %-25s %s\n", c.FirstName+" "+c.LastName, c.PhoneNumber)
	}
	return nil
}

func (s *Shell) renderFinancial(ctx context.Context, w io.Writer) error {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	rng := rest.DateRange{Start: start, End: end}

	revenue, _, err := s.clients.Orders.DailyRevenue(ctx, rng, rest.ListOptions{Limit: 31})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "-- Daily revenue --")
	for _, r := range revenue {
		fmt.Fprintf(w, "  %s  %8.2f  (%d orders)\n", r.Date.Format("2006-01-02"), r.Revenue, r.Orders)
	}

	expenses, _, err := s.clients.Expenses.List(ctx, rng, rest.ListOptions{Limit: 50})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "-- Expenses --")
	for _, e := range expenses {
		fmt.Fprintf(w, "  %s  %8.2f  %s\n", e.ExpenseDate.Format("2006-01-02"), e.Amount, e.Description)
	}
	return nil
}

func (s *Shell) renderOrders(ctx context.Context, w io.Writer) error {
	orders, page, err := s.clients.Orders.ListByDate(ctx, time.Now(), rest.ListOptions{Limit: 50})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "-- Orders today (%d total) --\n", page.TotalItems)
	for _, o := range orders {
		fmt.Fprintf(w, "  %-10s %-20s %-12s %8.2f (%d lines)\n",
			o.ID, o.CustomerInfo.FirstName+" "+o.CustomerInfo.LastName, o.Status, o.Total, len(o.Services))
	}
	return nil
}

func (s *Shell) renderEmployeeDashboard(ctx context.Context, w io.Writer) error {
	sess := s.sessions.Current()
	fmt.Fprintf(w, "-- Employee dashboard --\nWelcome, %s.\n", sess.User.FirstName)
	orders, _, err := s.clients.Orders.ListByDate(ctx, time.Now(), rest.ListOptions{Limit: 20})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Orders assigned today: %d\n", len(orders))
	return nil
}
