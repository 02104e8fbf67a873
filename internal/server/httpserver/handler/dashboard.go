package handler

import (
	"cmp"
	"math"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

const (
	recentBookings = 5
	revenueMonths  = 6
)

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookings, err := h.store.Bookings.List(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	payments, err := h.store.Payments.List(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	customers, err := h.store.Customers.List(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, buildDashboard(h.now(), bookings, payments, customers))
}

// buildDashboard aggregates the dashboard at now. Cancelled bookings are
// counted but earn no revenue. Bookings dated after today only count
// toward the totals.
func buildDashboard(now time.Time, bookings []domain.Booking, payments []domain.Payment, customers []domain.Customer) domain.DashboardStats {
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -6)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	s := domain.DashboardStats{
		TotalBookings:  len(bookings),
		TotalCustomers: len(customers),
	}

	months := make([]domain.RevenuePoint, revenueMonths)
	firstMonth := monthStart.AddDate(0, 1-revenueMonths, 0)
	for i := range months {
		months[i].Month = firstMonth.AddDate(0, i, 0).Format("Jan")
	}

	var prevRevenue float64
	var prevBookings int
	for _, b := range bookings {
		var revenue float64
		if b.Status != domain.BookingCancelled {
			revenue = b.Amount
		}
		if b.Status == domain.BookingConfirmed {
			s.ActiveTours++
		}
		s.TotalRevenue += revenue

		created, ok := bookingDay(b, now.Location())
		if !ok || !created.Before(tomorrow) {
			continue
		}
		if !created.Before(today) {
			s.TodayBookings++
			s.TodayRevenue += revenue
		}
		if !created.Before(weekStart) {
			s.WeeklyBookings++
			s.WeeklyRevenue += revenue
		}
		switch {
		case !created.Before(monthStart):
			s.MonthlyBookings++
			s.MonthlyRevenue += revenue
		case !created.Before(prevMonthStart):
			prevBookings++
			prevRevenue += revenue
		}
		if !created.Before(firstMonth) {
			i := monthsBetween(firstMonth, created)
			if i < revenueMonths {
				months[i].Revenue += revenue
				months[i].Bookings++
			}
		}
	}
	s.RevenueGrowth = growth(s.MonthlyRevenue, prevRevenue)
	s.BookingGrowth = growth(float64(s.MonthlyBookings), float64(prevBookings))
	s.RevenueData = months

	for _, p := range payments {
		if p.Status == domain.PaymentPending {
			s.PendingPayments++
		}
	}

	s.RecentBookings = recentFeed(bookings)
	s.CountryData = countryShares(customers)
	return s
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func bookingDay(b domain.Booking, loc *time.Location) (time.Time, bool) {
	if len(b.CreatedAt) < 10 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", b.CreatedAt[:10], loc)
	return t, err == nil
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// growth is the percentage change from prev to cur, rounded to one
// decimal. It is zero when there is nothing to compare against.
func growth(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return round1((cur - prev) / prev * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// recentFeed returns the newest bookings in the database column form
// the dashboard reports.
func recentFeed(bookings []domain.Booking) []domain.Booking {
	sorted := slices.Clone(bookings)
	slices.SortStableFunc(sorted, func(a, b domain.Booking) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(numericID(b.ID), numericID(a.ID))
	})
	if len(sorted) > recentBookings {
		sorted = sorted[:recentBookings]
	}

	feed := make([]domain.Booking, 0, len(sorted))
	for _, b := range sorted {
		feed = append(feed, domain.Booking{
			ID:           b.ID,
			Ref:          b.Ref,
			CustomerName: b.Customer,
			Email:        b.Email,
			SafariType:   b.Package,
			People:       b.People,
			TotalPrice:   b.Amount,
			Guide:        b.Guide,
			Status:       b.Status,
			Date:         b.Date,
			CreatedAt:    b.CreatedAt,
		})
	}
	return feed
}

func numericID(id domain.ID) int64 {
	n, _ := strconv.ParseInt(id.String(), 10, 64)
	return n
}

// countryShares reports each country's share of customers in percent,
// largest first.
func countryShares(customers []domain.Customer) []domain.CountryShare {
	out := []domain.CountryShare{}
	if len(customers) == 0 {
		return out
	}
	counts := make(map[string]int)
	for _, c := range customers {
		country := c.Country
		if country == "" {
			country = "Other"
		}
		counts[country]++
	}
	for name, n := range counts {
		out = append(out, domain.CountryShare{
			Name:  name,
			Value: round1(float64(n) / float64(len(customers)) * 100),
		})
	}
	slices.SortFunc(out, func(a, b domain.CountryShare) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}
