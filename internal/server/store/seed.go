package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

const dateLayout = "2006-01-02"

// SeedOptions controls Seed.
type SeedOptions struct {
	AdminEmail   string
	AdminName    string
	PasswordHash string

	// Demo adds sample records to every empty collection. Demo admin
	// accounts share PasswordHash.
	Demo bool
	Now  time.Time
}

// Seed creates the administrator account when no account with
// AdminEmail exists, then adds demo data when requested. Collections
// that already hold records are left alone, so seeding a persistent
// store twice is harmless.
func (s *Store) Seed(ctx context.Context, opts SeedOptions) error {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	today := opts.Now.Format(dateLayout)

	_, err := s.FindUserByEmail(ctx, opts.AdminEmail)
	if errors.Is(err, ErrNotFound) {
		admin := UserRecord{
			AdminUser: domain.AdminUser{
				Name:      opts.AdminName,
				Email:     opts.AdminEmail,
				Role:      domain.RoleSuperAdmin,
				Status:    domain.AdminActive,
				CreatedAt: today,
			},
			PasswordHash: opts.PasswordHash,
		}
		if _, err := s.Users.Create(ctx, admin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	} else if err != nil {
		return err
	}

	if !opts.Demo {
		return nil
	}
	return s.seedDemo(ctx, opts)
}

func (s *Store) seedDemo(ctx context.Context, opts SeedOptions) error {
	day := func(offset int) string {
		return opts.Now.AddDate(0, 0, offset).Format(dateLayout)
	}

	users := []UserRecord{
		{AdminUser: domain.AdminUser{Name: "John Manager", Email: "john@wildwave.com", Role: domain.RoleAdmin, Status: domain.AdminActive, CreatedAt: "2025-06-15"}},
		{AdminUser: domain.AdminUser{Name: "Sarah Support", Email: "sarah@wildwave.com", Role: domain.RoleSubAdmin, Status: domain.AdminActive, CreatedAt: "2025-09-20"}},
		{AdminUser: domain.AdminUser{Name: "Mike Assistant", Email: "mike@wildwave.com", Role: domain.RoleSubAdmin, Status: domain.AdminSuspended, CreatedAt: "2025-11-10"}},
	}
	for i := range users {
		users[i].PasswordHash = opts.PasswordHash
		if _, err := s.FindUserByEmail(ctx, users[i].Email); err == nil {
			continue
		}
		if _, err := s.Users.Create(ctx, users[i]); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	if err := seedCollection(ctx, s.Guides, []domain.Guide{
		{Name: "Daniel Kiptoo", Specialization: "Big Five & Birding", Rating: 4.9, Tours: 186, Phone: "+254 700 111 222", Email: "daniel@wildwavesafaris.com", Languages: []string{"English", "Swahili"}, Status: "available"},
		{Name: "Amina Njoroge", Specialization: "Family Safaris", Rating: 4.8, Tours: 142, Phone: "+254 700 222 333", Email: "amina@wildwavesafaris.com", Languages: []string{"English", "French", "Swahili"}, Status: "on-tour"},
		{Name: "Peter Mutesi", Specialization: "Gorilla Trekking", Rating: 4.9, Tours: 121, Phone: "+254 700 333 444", Email: "peter@wildwavesafaris.com", Languages: []string{"English", "Kinyarwanda"}, Status: "available"},
	}); err != nil {
		return err
	}

	if err := seedCollection(ctx, s.Vehicles, []domain.Vehicle{
		{Model: "Toyota Land Cruiser", Type: "4x4 Safari Jeep", PlateNumber: "KDA 102A", Capacity: 6, Year: 2022, Mileage: 45600, Status: "available"},
		{Model: "Land Rover Defender", Type: "4x4 Safari Jeep", PlateNumber: "KDB 221F", Capacity: 6, Year: 2021, Mileage: 62400, Status: "in-use"},
		{Model: "Toyota Hiace", Type: "Safari Van", PlateNumber: "KDC 332H", Capacity: 9, Year: 2020, Mileage: 88200, Status: "maintenance"},
	}); err != nil {
		return err
	}

	if err := seedCollection(ctx, s.Destinations, []domain.Destination{
		{Name: "Maasai Mara", Duration: "3 Days", Price: 1800, Category: "Wildlife", Status: "active", Description: "Big cats and the great migration."},
		{Name: "Serengeti", Duration: "5 Days", Price: 2500, Category: "Wildlife", Status: "active", Description: "Endless plains of Tanzania."},
		{Name: "Zanzibar", Duration: "4 Days", Price: 1500, Category: "Beach", Status: "inactive", Description: "Spice island beaches."},
	}); err != nil {
		return err
	}

	if err := seedCollection(ctx, s.Packages, []domain.SafariPackage{
		{Name: "Maasai Mara", Duration: "3 Days", Price: 1800, Tag: "Best Seller", Type: "Wildlife", Published: true, ImageURL: "https://images.wildwavesafaris.com/maasai-mara.jpg", Itinerary: "Day 1: Nairobi to the Mara\nDay 2: Full day game drive\nDay 3: Return to Nairobi"},
		{Name: "Great Migration", Duration: "7 Days", Price: 4200, Tag: "Popular", Type: "Wildlife", Published: true, ImageURL: "https://images.wildwavesafaris.com/migration.jpg"},
		{Name: "Gorilla Trek", Duration: "4 Days", Price: 3000, Type: "Primates", Published: false},
	}); err != nil {
		return err
	}

	if err := seedCollection(ctx, s.Blogs, []domain.Blog{
		{Title: "When to See the Migration", Category: "Guides", Excerpt: "Month by month through the Mara.", Content: "The herds cross the Mara River between July and October.", ReadTime: "5 min read", Published: true, CreatedAt: day(-20)},
		{Title: "Packing for Your First Safari", Category: "Tips", Content: "Neutral colours, layers and a good pair of binoculars.", ReadTime: "3 min read", Published: false, CreatedAt: day(-2)},
	}); err != nil {
		return err
	}

	if err := seedCollection(ctx, s.Promotions, []domain.Promotion{
		{Title: "Early Bird", Description: "Book three months ahead.", DiscountText: "15% OFF", ButtonText: "Book Now", ButtonLink: "/packages", Active: true},
	}); err != nil {
		return err
	}

	if err := seedCollection(ctx, s.Customers, []domain.Customer{
		{Name: "Jane Doe", Email: "jane@example.com", Phone: "+1 555 0100", Country: "USA", TotalBookings: 2, TotalSpent: 6000, JoinedDate: day(-90)},
		{Name: "Hans Müller", Email: "hans@example.com", Country: "Germany", TotalBookings: 1, TotalSpent: 2500, JoinedDate: day(-40)},
		{Name: "Amina Yusuf", Email: "amina.yusuf@example.com", Country: "Kenya", TotalBookings: 1, TotalSpent: 1800, JoinedDate: day(-3)},
	}); err != nil {
		return err
	}

	if err := seedCollection(ctx, s.Bookings, []domain.Booking{
		{Ref: "WW-1001", Customer: "Jane Doe", Email: "jane@example.com", Package: "Great Migration", People: 2, Amount: 4200, Guide: "Daniel Kiptoo", Status: domain.BookingCompleted, Date: day(-60), CreatedAt: day(-75)},
		{Ref: "WW-1002", Customer: "Hans Müller", Email: "hans@example.com", Package: "Serengeti", People: 1, Amount: 2500, Status: domain.BookingConfirmed, Date: day(20), CreatedAt: day(-35)},
		{Ref: "WW-1003", Customer: "Jane Doe", Email: "jane@example.com", Package: "Maasai Mara", People: 1, Amount: 1800, Status: domain.BookingConfirmed, Date: day(30), CreatedAt: day(-5)},
		{Ref: "WW-1004", Customer: "Amina Yusuf", Email: "amina.yusuf@example.com", Package: "Maasai Mara", People: 1, Amount: 1800, Status: domain.BookingPending, Date: day(45), CreatedAt: day(0)},
	}); err != nil {
		return err
	}

	if err := seedCollection(ctx, s.Payments, []domain.Payment{
		{TransactionID: "TXN-1001", CustomerName: "Jane Doe", Amount: 4200, Method: "card", Status: domain.PaymentCompleted, Date: day(-74)},
		{TransactionID: "TXN-1002", CustomerName: "Hans Müller", Amount: 2500, Method: "bank transfer", Status: domain.PaymentCompleted, Date: day(-34)},
		{TransactionID: "TXN-1003", CustomerName: "Jane Doe", Amount: 1800, Method: "M-Pesa", Status: domain.PaymentCompleted, Date: day(-5)},
		{TransactionID: "TXN-1004", CustomerName: "Amina Yusuf", Amount: 1800, Method: "card", Status: domain.PaymentPending, Date: day(0)},
	}); err != nil {
		return err
	}

	if err := seedCollection(ctx, s.Enquiries, []domain.Enquiry{
		{Name: "Carlos Ruiz", Email: "carlos@example.com", Subject: "Honeymoon safari", Message: "Do you offer private tented camps?", Status: domain.EnquiryNew, CreatedAt: day(-1)},
		{Name: "Mei Lin", Email: "mei@example.com", Subject: "Group discount", Message: "We are eight people travelling in March.", Status: domain.EnquiryContacted, CreatedAt: day(-6)},
	}); err != nil {
		return err
	}

	current, err := s.Contact(ctx)
	if err != nil {
		return err
	}
	if current == (domain.ContactSettings{}) {
		return s.SetContact(ctx, domain.ContactSettings{
			Phone:       "+254 700 000 000",
			Email:       "info@wildwavesafaris.com",
			WhatsApp:    "+254 700 000 000",
			Address:     "Westlands, Nairobi, Kenya",
			OfficeHours: "Mon-Sat 8:00-18:00",
		})
	}
	return nil
}

// seedCollection inserts records into c when c is empty.
func seedCollection[T any](ctx context.Context, c *Collection[T], records []T) error {
	empty, err := c.Empty(ctx)
	if err != nil {
		return fmt.Errorf("seed %s: %w", c.Name(), err)
	}
	if !empty {
		return nil
	}
	for _, r := range records {
		if _, err := c.Create(ctx, r); err != nil {
			return fmt.Errorf("seed %s: %w", c.Name(), err)
		}
	}
	return nil
}
