package report

import (
	"embed"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var htmlTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// Kind names an exportable collection.
type Kind string

// Exportable collections.
const (
	KindBookings  Kind = "bookings"
	KindCustomers Kind = "customers"
	KindPayments  Kind = "payments"
)

// SummaryItem is one line of the report summary box.
type SummaryItem struct {
	Label string
	Value string
}

// Report is a titled table ready to be written as CSV or HTML.
type Report struct {
	Title     string
	Generated time.Time
	Summary   []SummaryItem
	Headers   []string
	Rows      [][]string
}

// FileName returns the default export file name, e.g.
// bookings-2026-10-15.csv.
func FileName(kind Kind, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", kind, now.Format("2006-01-02"), strings.TrimPrefix(ext, "."))
}

// WriteCSV writes the header row followed by every row.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(r.Rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteHTML writes a printable HTML page.
func (r *Report) WriteHTML(w io.Writer) error {
	if err := htmlTemplate.Execute(w, r); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// Bookings builds the bookings export. The CSV carries every column; the
// printed report drops email and guide.
func Bookings(bookings []domain.Booking, now time.Time, printable bool) *Report {
	r := &Report{Title: "Bookings Report", Generated: now}
	if printable {
		r.Headers = []string{"Reference", "Customer", "Package", "People", "Amount", "Status", "Date"}
	} else {
		r.Headers = []string{"Reference", "Customer", "Email", "Package", "People", "Amount", "Guide", "Status", "Date"}
	}

	for _, b := range bookings {
		ref := b.Ref
		if ref == "" {
			ref = b.ID.String()
		}
		if printable {
			r.Rows = append(r.Rows, []string{
				ref, b.DisplayCustomer(), b.DisplayPackage(), strconv.Itoa(b.People),
				Currency(b.DisplayAmount()), string(b.Status), Date(b.Date),
			})
			continue
		}
		r.Rows = append(r.Rows, []string{
			ref, b.DisplayCustomer(), b.Email, b.DisplayPackage(), strconv.Itoa(b.People),
			strconv.FormatFloat(b.DisplayAmount(), 'f', -1, 64), b.Guide, string(b.Status), b.Date,
		})
	}
	return r
}

// Customers builds the customers export.
func Customers(customers []domain.Customer, now time.Time) *Report {
	r := &Report{
		Title:     "Customers Report",
		Generated: now,
		Headers:   []string{"Name", "Email", "Phone", "Country", "Bookings", "Total Spent", "Joined"},
	}
	for _, c := range customers {
		r.Rows = append(r.Rows, []string{
			c.Name, c.Email, c.Phone, c.Country, strconv.Itoa(c.TotalBookings),
			Currency(c.TotalSpent), c.JoinedDate,
		})
	}
	return r
}

// Payments builds the payments export with a revenue summary.
func Payments(payments []domain.Payment, now time.Time) *Report {
	var total float64
	var completed, pending int
	for _, p := range payments {
		total += p.Amount
		switch p.Status {
		case domain.PaymentCompleted:
			completed++
		case domain.PaymentPending:
			pending++
		}
	}

	r := &Report{
		Title:     "Payments Report",
		Generated: now,
		Summary: []SummaryItem{
			{Label: "Total Revenue", Value: Currency(total)},
			{Label: "Completed Payments", Value: strconv.Itoa(completed)},
			{Label: "Pending Payments", Value: strconv.Itoa(pending)},
		},
		Headers: []string{"Transaction ID", "Customer", "Amount", "Method", "Status", "Date"},
	}
	for _, p := range payments {
		r.Rows = append(r.Rows, []string{
			p.TransactionID, p.CustomerName, Currency(p.Amount), p.Method, p.Status, Date(p.Date),
		})
	}
	return r
}

// Currency formats an amount in US dollars with thousands separators.
func Currency(amount float64) string {
	neg := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, ch := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	if frac := cents % 100; frac != 0 {
		fmt.Fprintf(&b, ".%02d", frac)
	}
	return b.String()
}

// Date renders an ISO date as "Jan 2, 2006". Values that do not parse are
// returned unchanged.
func Date(s string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}
