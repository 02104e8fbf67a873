package domain

// User is the identity of the logged-in administrator.
type User struct {
	Name  string `json:"name" table:"NAME"`
	Email string `json:"email" table:"EMAIL"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Admin roles.
const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
	RoleSubAdmin   = "sub-admin"
)

// Admin account statuses.
const (
	AdminActive    = "active"
	AdminSuspended = "suspended"
	AdminBlocked   = "blocked"
)

// AdminUser is a back-office account.
type AdminUser struct {
	ID        ID     `json:"id" table:"ID"`
	Name      string `json:"name" table:"NAME"`
	Email     string `json:"email" table:"EMAIL"`
	Role      string `json:"role" table:"ROLE"`
	Status    string `json:"status" table:"STATUS"`
	CreatedAt string `json:"createdAt,omitempty" table:"CREATED,wide"`
	LastLogin string `json:"lastLogin,omitempty" table:"LAST LOGIN,wide"`
}

// CreateAdminRequest is the body of POST /admin/users.
type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=super-admin admin sub-admin"`
}

// AdminStatusUpdate is the body of PUT /admin/users/{id}/status.
type AdminStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=active suspended blocked"`
}

// RevenuePoint is one month of the revenue chart.
type RevenuePoint struct {
	Month    string  `json:"month" table:"MONTH"`
	Revenue  float64 `json:"revenue" table:"REVENUE"`
	Bookings int     `json:"bookings" table:"BOOKINGS"`
}

// CountryShare is one slice of the visitors-by-country chart.
type CountryShare struct {
	Name  string  `json:"name" table:"COUNTRY"`
	Value float64 `json:"value" table:"SHARE"`
}

// DashboardStats is the payload of GET /admin/dashboard.
type DashboardStats struct {
	TotalBookings   int     `json:"totalBookings"`
	TodayBookings   int     `json:"todayBookings"`
	WeeklyBookings  int     `json:"weeklyBookings"`
	MonthlyBookings int     `json:"monthlyBookings"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TodayRevenue    float64 `json:"todayRevenue"`
	WeeklyRevenue   float64 `json:"weeklyRevenue"`
	MonthlyRevenue  float64 `json:"monthlyRevenue"`
	ActiveTours     int     `json:"activeTours"`
	PendingPayments int     `json:"pendingPayments"`
	TotalCustomers  int     `json:"totalCustomers"`
	RevenueGrowth   float64 `json:"revenueGrowth"`
	BookingGrowth   float64 `json:"bookingGrowth"`

	RecentBookings []Booking      `json:"recentBookings"`
	RevenueData    []RevenuePoint `json:"revenueData"`
	CountryData    []CountryShare `json:"countryData"`
}
