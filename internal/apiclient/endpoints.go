package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

func itemPath(collection string, id domain.ID) string {
	return collection + "/" + url.PathEscape(id.String())
}

func (c *Client) validated(v any) error {
	return domain.Validate(v)
}

// Login exchanges credentials for a token and holds it on success.
// A response without a token fails and leaves the held token unchanged.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	body := domain.LoginRequest{Email: email, Password: password}
	if err := c.validated(body); err != nil {
		return nil, err
	}

	var resp domain.LoginResponse
	if err := c.Request(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &RequestError{
			Status:   http.StatusOK,
			Message:  "login response missing token",
			Method:   http.MethodPost,
			Endpoint: "/auth/login",
		}
	}

	c.SetAuthToken(resp.Token)
	return &resp, nil
}

// GetDashboardStats returns the dashboard summary.
func (c *Client) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.Request(ctx, http.MethodGet, "/admin/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Bookings.

// GetBookings lists all bookings.
func (c *Client) GetBookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	err := c.Request(ctx, http.MethodGet, "/admin/bookings", nil, &out)
	return out, err
}

// UpdateBookingStatus sets the status of one booking.
func (c *Client) UpdateBookingStatus(ctx context.Context, id domain.ID, status domain.BookingStatus) (*domain.Booking, error) {
	body := domain.BookingStatusUpdate{Status: status}
	if err := c.validated(body); err != nil {
		return nil, err
	}
	var out domain.Booking
	if err := c.Request(ctx, http.MethodPut, itemPath("/admin/bookings", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignGuide assigns a guide to a booking.
func (c *Client) AssignGuide(ctx context.Context, id domain.ID, guide string) (*domain.Booking, error) {
	body := domain.GuideAssignment{Guide: guide}
	if err := c.validated(body); err != nil {
		return nil, err
	}
	var out domain.Booking
	if err := c.Request(ctx, http.MethodPut, itemPath("/admin/bookings", id)+"/guide", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Destinations.

// GetDestinations lists destinations.
func (c *Client) GetDestinations(ctx context.Context) ([]domain.Destination, error) {
	var out []domain.Destination
	err := c.Request(ctx, http.MethodGet, "/admin/destinations", nil, &out)
	return out, err
}

// CreateDestination adds a destination.
func (c *Client) CreateDestination(ctx context.Context, in domain.DestinationInput) (*domain.Destination, error) {
	if err := c.validated(in); err != nil {
		return nil, err
	}
	var out domain.Destination
	if err := c.Request(ctx, http.MethodPost, "/admin/destinations", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDestination replaces a destination.
func (c *Client) UpdateDestination(ctx context.Context, id domain.ID, in domain.DestinationInput) (*domain.Destination, error) {
	if err := c.validated(in); err != nil {
		return nil, err
	}
	var out domain.Destination
	if err := c.Request(ctx, http.MethodPut, itemPath("/admin/destinations", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDestination removes a destination.
func (c *Client) DeleteDestination(ctx context.Context, id domain.ID) error {
	return c.Request(ctx, http.MethodDelete, itemPath("/admin/destinations", id), nil, nil)
}

// SyncDestinationImages copies package images onto destinations of the
// same name.
func (c *Client) SyncDestinationImages(ctx context.Context) (*domain.SyncImagesResult, error) {
	var out domain.SyncImagesResult
	if err := c.Request(ctx, http.MethodPost, "/admin/destinations/sync-images", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Safari packages.

// GetPackages lists safari packages.
func (c *Client) GetPackages(ctx context.Context) ([]domain.SafariPackage, error) {
	var out []domain.SafariPackage
	err := c.Request(ctx, http.MethodGet, "/admin/packages", nil, &out)
	return out, err
}

// CreatePackage adds a safari package.
func (c *Client) CreatePackage(ctx context.Context, in domain.SafariPackageInput) (*domain.SafariPackage, error) {
	if err := c.validated(in); err != nil {
		return nil, err
	}
	var out domain.SafariPackage
	if err := c.Request(ctx, http.MethodPost, "/admin/packages", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePackage replaces a safari package.
func (c *Client) UpdatePackage(ctx context.Context, id domain.ID, in domain.SafariPackageInput) (*domain.SafariPackage, error) {
	if err := c.validated(in); err != nil {
		return nil, err
	}
	var out domain.SafariPackage
	if err := c.Request(ctx, http.MethodPut, itemPath("/admin/packages", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePackage removes a safari package.
func (c *Client) DeletePackage(ctx context.Context, id domain.ID) error {
	return c.Request(ctx, http.MethodDelete, itemPath("/admin/packages", id), nil, nil)
}

// Blogs.

// GetBlogs lists blog posts, drafts included.
func (c *Client) GetBlogs(ctx context.Context) ([]domain.Blog, error) {
	var out []domain.Blog
	err := c.Request(ctx, http.MethodGet, "/admin/blogs", nil, &out)
	return out, err
}

// CreateBlog adds a blog post.
func (c *Client) CreateBlog(ctx context.Context, in domain.BlogInput) (*domain.Blog, error) {
	if err := c.validated(in); err != nil {
		return nil, err
	}
	var out domain.Blog
	if err := c.Request(ctx, http.MethodPost, "/admin/blogs", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBlog replaces a blog post.
func (c *Client) UpdateBlog(ctx context.Context, id domain.ID, in domain.BlogInput) (*domain.Blog, error) {
	if err := c.validated(in); err != nil {
		return nil, err
	}
	var out domain.Blog
	if err := c.Request(ctx, http.MethodPut, itemPath("/admin/blogs", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBlog removes a blog post.
func (c *Client) DeleteBlog(ctx context.Context, id domain.ID) error {
	return c.Request(ctx, http.MethodDelete, itemPath("/admin/blogs", id), nil, nil)
}

// Enquiries.

// GetEnquiries lists enquiries.
func (c *Client) GetEnquiries(ctx context.Context) ([]domain.Enquiry, error) {
	var out []domain.Enquiry
	err := c.Request(ctx, http.MethodGet, "/admin/enquiries", nil, &out)
	return out, err
}

// UpdateEnquiryStatus moves an enquiry to new, contacted or resolved.
func (c *Client) UpdateEnquiryStatus(ctx context.Context, id domain.ID, status domain.EnquiryStatus) (*domain.Enquiry, error) {
	body := domain.EnquiryStatusUpdate{Status: status}
	if err := c.validated(body); err != nil {
		return nil, err
	}
	var out domain.Enquiry
	if err := c.Request(ctx, http.MethodPut, itemPath("/admin/enquiries", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Contact settings.

// GetContactSettings returns the contact details.
func (c *Client) GetContactSettings(ctx context.Context) (*domain.ContactSettings, error) {
	var out domain.ContactSettings
	if err := c.Request(ctx, http.MethodGet, "/admin/contact-settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContactSettings replaces the contact details.
func (c *Client) UpdateContactSettings(ctx context.Context, in domain.ContactSettings) (*domain.ContactSettings, error) {
	if err := c.validated(in); err != nil {
		return nil, err
	}
	var out domain.ContactSettings
	if err := c.Request(ctx, http.MethodPut, "/admin/contact-settings", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Promotions.

// GetPromotions lists promotions.
func (c *Client) GetPromotions(ctx context.Context) ([]domain.Promotion, error) {
	var out []domain.Promotion
	err := c.Request(ctx, http.MethodGet, "/admin/promotions", nil, &out)
	return out, err
}

// CreatePromotion adds a promotion.
func (c *Client) CreatePromotion(ctx context.Context, in domain.PromotionInput) (*domain.Promotion, error) {
	if err := c.validated(in); err != nil {
		return nil, err
	}
	var out domain.Promotion
	if err := c.Request(ctx, http.MethodPost, "/admin/promotions", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePromotion replaces a promotion.
func (c *Client) UpdatePromotion(ctx context.Context, id domain.ID, in domain.PromotionInput) (*domain.Promotion, error) {
	if err := c.validated(in); err != nil {
		return nil, err
	}
	var out domain.Promotion
	if err := c.Request(ctx, http.MethodPut, itemPath("/admin/promotions", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePromotion removes a promotion.
func (c *Client) DeletePromotion(ctx context.Context, id domain.ID) error {
	return c.Request(ctx, http.MethodDelete, itemPath("/admin/promotions", id), nil, nil)
}

// Operations screens.

// GetCustomers lists customers.
func (c *Client) GetCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	err := c.Request(ctx, http.MethodGet, "/admin/customers", nil, &out)
	return out, err
}

// GetPayments lists payment transactions.
func (c *Client) GetPayments(ctx context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	err := c.Request(ctx, http.MethodGet, "/admin/payments", nil, &out)
	return out, err
}

// GetGuides lists guides.
func (c *Client) GetGuides(ctx context.Context) ([]domain.Guide, error) {
	var out []domain.Guide
	err := c.Request(ctx, http.MethodGet, "/admin/guides", nil, &out)
	return out, err
}

// GetVehicles lists fleet vehicles.
func (c *Client) GetVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	err := c.Request(ctx, http.MethodGet, "/admin/vehicles", nil, &out)
	return out, err
}

// Admin users.

// GetAdmins lists back-office accounts.
func (c *Client) GetAdmins(ctx context.Context) ([]domain.AdminUser, error) {
	var out []domain.AdminUser
	err := c.Request(ctx, http.MethodGet, "/admin/users", nil, &out)
	return out, err
}

// CreateAdmin adds a back-office account.
func (c *Client) CreateAdmin(ctx context.Context, in domain.CreateAdminRequest) (*domain.AdminUser, error) {
	if err := c.validated(in); err != nil {
		return nil, err
	}
	var out domain.AdminUser
	if err := c.Request(ctx, http.MethodPost, "/admin/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAdminStatus activates, suspends or blocks an account.
func (c *Client) UpdateAdminStatus(ctx context.Context, id domain.ID, status string) (*domain.AdminUser, error) {
	body := domain.AdminStatusUpdate{Status: status}
	if err := c.validated(body); err != nil {
		return nil, err
	}
	var out domain.AdminUser
	if err := c.Request(ctx, http.MethodPut, itemPath("/admin/users", id)+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Public site.

// GetPublicDestinations lists destinations shown on the public site.
func (c *Client) GetPublicDestinations(ctx context.Context) ([]domain.Destination, error) {
	var out []domain.Destination
	err := c.Request(ctx, http.MethodGet, "/public/destinations", nil, &out)
	return out, err
}

// SubmitBooking submits a booking as a site visitor would.
func (c *Client) SubmitBooking(ctx context.Context, in domain.PublicBookingRequest) (*domain.Booking, error) {
	if err := c.validated(in); err != nil {
		return nil, err
	}
	var out domain.Booking
	if err := c.Request(ctx, http.MethodPost, "/public/bookings", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitEnquiry submits a contact-form enquiry.
func (c *Client) SubmitEnquiry(ctx context.Context, in domain.PublicEnquiryRequest) (*domain.Enquiry, error) {
	if err := c.validated(in); err != nil {
		return nil, err
	}
	var out domain.Enquiry
	if err := c.Request(ctx, http.MethodPost, "/public/enquiries", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPublicBlogs lists published blog posts.
func (c *Client) GetPublicBlogs(ctx context.Context) ([]domain.Blog, error) {
	var out []domain.Blog
	err := c.Request(ctx, http.MethodGet, "/public/blogs", nil, &out)
	return out, err
}

// GetPublicContactSettings returns the public contact details.
func (c *Client) GetPublicContactSettings(ctx context.Context) (*domain.ContactSettings, error) {
	var out domain.ContactSettings
	if err := c.Request(ctx, http.MethodGet, "/public/contact-settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetActivePromotion returns the promotion currently shown, or nil when
// none is active.
func (c *Client) GetActivePromotion(ctx context.Context) (*domain.Promotion, error) {
	var out *domain.Promotion
	if err := c.Request(ctx, http.MethodGet, "/public/promotions/active", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
