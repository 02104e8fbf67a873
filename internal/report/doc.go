// Package report exports bookings, customers and payments as CSV files and
// as printable HTML reports.
package report
