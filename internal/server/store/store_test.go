package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kv := storage.NewMemoryEngine()
	t.Cleanup(func() { kv.Close() })
	return New(kv)
}

func TestCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.Destinations.Create(ctx, domain.Destination{Name: "Maasai Mara", Duration: "3 Days", Price: 1800})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != "1" {
		t.Errorf("first id = %q, want 1", created.ID)
	}
	second, _ := s.Destinations.Create(ctx, domain.Destination{Name: "Serengeti"})
	if second.ID != "2" {
		t.Errorf("second id = %q, want 2", second.ID)
	}

	got, err := s.Destinations.Get(ctx, "1")
	if err != nil || got.Name != "Maasai Mara" {
		t.Fatalf("Get() = %+v, %v", got, err)
	}

	updated, err := s.Destinations.Update(ctx, "1", func(d *domain.Destination) error {
		d.Price = 1950
		d.ID = "99"
		return nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Price != 1950 || updated.ID != "1" {
		t.Errorf("Update() = %+v", updated)
	}

	if err := s.Destinations.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Destinations.Get(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v", err)
	}
	if err := s.Destinations.Delete(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}

	third, _ := s.Destinations.Create(ctx, domain.Destination{Name: "Zanzibar"})
	if third.ID != "3" {
		t.Errorf("ids must not be reused: got %q", third.ID)
	}
}

func TestCollection_UpdateError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.Blogs.Create(ctx, domain.Blog{Title: "Draft"})

	boom := errors.New("boom")
	if _, err := s.Blogs.Update(ctx, "1", func(*domain.Blog) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := s.Blogs.Get(ctx, "1")
	if got.Title != "Draft" {
		t.Errorf("failed update was stored: %+v", got)
	}
}

func TestCollection_BadIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.Guides.Create(ctx, domain.Guide{Name: "Daniel"})

	for _, id := range []domain.ID{"", "0", "-1", "01", "abc", "1.5"} {
		if _, err := s.Guides.Get(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestCollection_ListOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for i := 0; i < 12; i++ {
		s.Vehicles.Create(ctx, domain.Vehicle{Capacity: i})
	}

	list, err := s.Vehicles.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 12 {
		t.Fatalf("len = %d", len(list))
	}
	for i, v := range list {
		if v.Capacity != i {
			t.Fatalf("list out of id order at %d: %+v", i, v)
		}
	}

	empty, err := s.Payments.List(ctx)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("empty List() = %#v, %v", empty, err)
	}
}

func TestCollection_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Enquiries.Create(ctx, domain.Enquiry{Name: "x"})
		}()
	}
	wg.Wait()

	list, _ := s.Enquiries.List(ctx)
	seen := map[domain.ID]bool{}
	for _, e := range list {
		if seen[e.ID] {
			t.Fatalf("duplicate id %s", e.ID)
		}
		seen[e.ID] = true
	}
	if len(list) != 20 {
		t.Errorf("records = %d, want 20", len(list))
	}
}

func TestContact(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c, err := s.Contact(ctx)
	if err != nil || c != (domain.ContactSettings{}) {
		t.Fatalf("Contact() on empty store = %+v, %v", c, err)
	}

	want := domain.ContactSettings{Phone: "+254 700 000 000", Email: "info@wildwavesafaris.com"}
	if err := s.SetContact(ctx, want); err != nil {
		t.Fatal(err)
	}
	if c, _ := s.Contact(ctx); c != want {
		t.Errorf("Contact() = %+v, want %+v", c, want)
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.Users.Create(ctx, UserRecord{
		AdminUser:    domain.AdminUser{Name: "Admin User", Email: "admin@wildwave.com"},
		PasswordHash: "hash",
	})

	u, err := s.FindUserByEmail(ctx, "ADMIN@wildwave.com")
	if err != nil || u.PasswordHash != "hash" || u.ID != "1" {
		t.Fatalf("FindUserByEmail() = %+v, %v", u, err)
	}
	if _, err := s.FindUserByEmail(ctx, "nobody@wildwave.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user error = %v", err)
	}

	admins, _ := s.Admins(ctx)
	if len(admins) != 1 || admins[0].Email != "admin@wildwave.com" {
		t.Errorf("Admins() = %+v", admins)
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	opts := SeedOptions{AdminEmail: "admin@wildwave.com", AdminName: "Admin User", PasswordHash: "h", Demo: true, Now: now}
	if err := s.Seed(ctx, opts); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	admin, err := s.FindUserByEmail(ctx, "admin@wildwave.com")
	if err != nil || admin.Role != domain.RoleSuperAdmin || admin.CreatedAt != "2026-10-15" {
		t.Errorf("seeded admin = %+v, %v", admin, err)
	}
	guides, _ := s.Guides.List(ctx)
	if len(guides) != 3 || guides[0].Name != "Daniel Kiptoo" {
		t.Errorf("guides = %+v", guides)
	}
	vehicles, _ := s.Vehicles.List(ctx)
	if len(vehicles) != 3 || vehicles[2].PlateNumber != "KDC 332H" {
		t.Errorf("vehicles = %+v", vehicles)
	}
	if c, _ := s.Contact(ctx); c.Email == "" {
		t.Error("contact settings not seeded")
	}

	before := s.RecordCounts()
	if err := s.Seed(ctx, opts); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	after := s.RecordCounts()
	for name, n := range before {
		if after[name] != n {
			t.Errorf("%s: %d records after reseed, want %d", name, after[name], n)
		}
	}
	if after[Users] != 4 {
		t.Errorf("users = %d, want 4", after[Users])
	}
}

func TestSeed_AdminOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Seed(ctx, SeedOptions{AdminEmail: "ops@wildwave.com", AdminName: "Ops", PasswordHash: "h"}); err != nil {
		t.Fatal(err)
	}
	counts := s.RecordCounts()
	if counts[Users] != 1 || counts[Guides] != 0 || counts[Bookings] != 0 {
		t.Errorf("counts = %v", counts)
	}
	if len(counts) != 11 {
		t.Errorf("collections reported = %d, want 11", len(counts))
	}
}
