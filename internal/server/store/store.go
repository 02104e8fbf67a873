package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/storage"
)

// ErrNotFound is returned for ids with no record.
var ErrNotFound = errors.New("record not found")

// Collection names.
const (
	Destinations = "destinations"
	Packages     = "packages"
	Blogs        = "blogs"
	Promotions   = "promotions"
	Enquiries    = "enquiries"
	Bookings     = "bookings"
	Customers    = "customers"
	Payments     = "payments"
	Guides       = "guides"
	Vehicles     = "vehicles"
	Users        = "users"
)

var contactKey = []byte("doc/contact")

// Store holds every collection of the mock backend.
type Store struct {
	kv storage.KV
	mu sync.Mutex

	Destinations *Collection[domain.Destination]
	Packages     *Collection[domain.SafariPackage]
	Blogs        *Collection[domain.Blog]
	Promotions   *Collection[domain.Promotion]
	Enquiries    *Collection[domain.Enquiry]
	Bookings     *Collection[domain.Booking]
	Customers    *Collection[domain.Customer]
	Payments     *Collection[domain.Payment]
	Guides       *Collection[domain.Guide]
	Vehicles     *Collection[domain.Vehicle]
	Users        *Collection[UserRecord]

	names []string
}

// New creates a store over kv. The caller owns kv and closes it.
func New(kv storage.KV) *Store {
	s := &Store{kv: kv}
	s.Destinations = newCollection(s, Destinations, func(v *domain.Destination) *domain.ID { return &v.ID })
	s.Packages = newCollection(s, Packages, func(v *domain.SafariPackage) *domain.ID { return &v.ID })
	s.Blogs = newCollection(s, Blogs, func(v *domain.Blog) *domain.ID { return &v.ID })
	s.Promotions = newCollection(s, Promotions, func(v *domain.Promotion) *domain.ID { return &v.ID })
	s.Enquiries = newCollection(s, Enquiries, func(v *domain.Enquiry) *domain.ID { return &v.ID })
	s.Bookings = newCollection(s, Bookings, func(v *domain.Booking) *domain.ID { return &v.ID })
	s.Customers = newCollection(s, Customers, func(v *domain.Customer) *domain.ID { return &v.ID })
	s.Payments = newCollection(s, Payments, func(v *domain.Payment) *domain.ID { return &v.ID })
	s.Guides = newCollection(s, Guides, func(v *domain.Guide) *domain.ID { return &v.ID })
	s.Vehicles = newCollection(s, Vehicles, func(v *domain.Vehicle) *domain.ID { return &v.ID })
	s.Users = newCollection(s, Users, func(v *UserRecord) *domain.ID { return &v.ID })
	return s
}

// Contact returns the contact settings document. A store that never
// saved one returns the zero value.
func (s *Store) Contact(ctx context.Context) (domain.ContactSettings, error) {
	var c domain.ContactSettings
	data, err := s.kv.Get(ctx, contactKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode contact settings: %w", err)
	}
	return c, nil
}

// SetContact replaces the contact settings document.
func (s *Store) SetContact(ctx context.Context, c domain.ContactSettings) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Set(ctx, contactKey, data)
}

// RecordCounts reports the number of records per collection. It feeds
// the wildwave_store_records gauge; collections that fail to scan are
// left out.
func (s *Store) RecordCounts() map[string]int {
	ctx := context.Background()
	counts := make(map[string]int, len(s.names))
	for _, name := range s.names {
		n := 0
		err := s.kv.Scan(ctx, recordPrefix(name), func(_, _ []byte) bool {
			n++
			return true
		})
		if err == nil {
			counts[name] = n
		}
	}
	return counts
}

// nextID allocates the next id of a collection. Callers hold s.mu.
func (s *Store) nextID(ctx context.Context, name string) (int64, error) {
	key := []byte("seq/" + name)
	var last int64
	data, err := s.kv.Get(ctx, key)
	switch {
	case err == nil:
		last, err = strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("corrupt sequence %s: %w", name, err)
		}
	case !errors.Is(err, storage.ErrKeyNotFound):
		return 0, err
	}

	next := last + 1
	if err := s.kv.Set(ctx, key, []byte(strconv.FormatInt(next, 10))); err != nil {
		return 0, err
	}
	return next, nil
}

func recordPrefix(name string) []byte {
	return []byte("rec/" + name + "/")
}

func recordKey(name string, id int64) []byte {
	return []byte(fmt.Sprintf("rec/%s/%012d", name, id))
}

// parseID accepts only canonical positive decimal ids.
func parseID(id domain.ID) (int64, bool) {
	n, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil || n <= 0 || strconv.FormatInt(n, 10) != id.String() {
		return 0, false
	}
	return n, true
}
