package domain

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

// Booking statuses.
const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking is a customer reservation.
//
// Admin listings use the short field names; the dashboard feed reports
// the database columns (customer_name, safari_type, total_price,
// created_at). Both are kept so either payload decodes.
type Booking struct {
	ID           ID            `json:"id" table:"ID"`
	Ref          string        `json:"ref,omitempty" table:"REF"`
	Customer     string        `json:"customer,omitempty" table:"CUSTOMER"`
	CustomerName string        `json:"customer_name,omitempty" table:"-"`
	Email        string        `json:"email,omitempty" table:"EMAIL,wide"`
	Package      string        `json:"package,omitempty" table:"PACKAGE"`
	SafariType   string        `json:"safari_type,omitempty" table:"-"`
	People       int           `json:"people,omitempty" table:"PEOPLE"`
	Amount       float64       `json:"amount,omitempty" table:"AMOUNT"`
	TotalPrice   float64       `json:"total_price,omitempty" table:"-"`
	Guide        string        `json:"guide,omitempty" table:"GUIDE,wide"`
	Status       BookingStatus `json:"status" table:"STATUS"`
	Date         string        `json:"date,omitempty" table:"DATE"`
	CreatedAt    string        `json:"created_at,omitempty" table:"CREATED,wide"`
}

// DisplayCustomer returns whichever customer name the payload carried.
func (b Booking) DisplayCustomer() string {
	if b.Customer != "" {
		return b.Customer
	}
	return b.CustomerName
}

// DisplayPackage returns whichever package label the payload carried.
func (b Booking) DisplayPackage() string {
	if b.Package != "" {
		return b.Package
	}
	return b.SafariType
}

// DisplayAmount returns whichever amount the payload carried.
func (b Booking) DisplayAmount() float64 {
	if b.Amount != 0 {
		return b.Amount
	}
	return b.TotalPrice
}

// Normalized returns b with the listing fields filled from the database
// columns, so tables show one set of columns for either payload.
func (b Booking) Normalized() Booking {
	b.Customer = b.DisplayCustomer()
	b.Package = b.DisplayPackage()
	b.Amount = b.DisplayAmount()
	return b
}

// BookingStatusUpdate is the body of PUT /admin/bookings/{id}.
type BookingStatusUpdate struct {
	Status BookingStatus `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

// GuideAssignment is the body of PUT /admin/bookings/{id}/guide.
type GuideAssignment struct {
	Guide string `json:"guide" validate:"required"`
}

// PublicBookingRequest is a booking submitted from the public site.
type PublicBookingRequest struct {
	CustomerName string  `json:"customer_name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        string  `json:"phone,omitempty"`
	SafariType   string  `json:"safari_type" validate:"required"`
	People       int     `json:"people" validate:"gte=1"`
	Date         string  `json:"date" validate:"required"`
	TotalPrice   float64 `json:"total_price,omitempty" validate:"gte=0"`
	Message      string  `json:"message,omitempty"`
}

// Customer is an aggregated customer record.
type Customer struct {
	ID            ID      `json:"id" table:"ID"`
	Name          string  `json:"name" table:"NAME"`
	Email         string  `json:"email" table:"EMAIL"`
	Phone         string  `json:"phone,omitempty" table:"PHONE,wide"`
	Country       string  `json:"country,omitempty" table:"COUNTRY"`
	TotalBookings int     `json:"totalBookings" table:"BOOKINGS"`
	TotalSpent    float64 `json:"totalSpent" table:"SPENT"`
	JoinedDate    string  `json:"joinedDate,omitempty" table:"JOINED,wide"`
}

// Payment statuses.
const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentFailed    = "failed"
)

// Payment is a single payment transaction.
type Payment struct {
	ID            ID      `json:"id" table:"ID"`
	TransactionID string  `json:"transactionId" table:"TRANSACTION"`
	CustomerName  string  `json:"customerName" table:"CUSTOMER"`
	Amount        float64 `json:"amount" table:"AMOUNT"`
	Method        string  `json:"method" table:"METHOD"`
	Status        string  `json:"status" table:"STATUS"`
	Date          string  `json:"date" table:"DATE"`
}

// Guide is a field guide available for assignment.
type Guide struct {
	ID             ID       `json:"id" table:"ID"`
	Name           string   `json:"name" table:"NAME"`
	Specialization string   `json:"specialization" table:"SPECIALIZATION"`
	Rating         float64  `json:"rating" table:"RATING"`
	Tours          int      `json:"tours" table:"TOURS"`
	Phone          string   `json:"phone,omitempty" table:"PHONE,wide"`
	Email          string   `json:"email,omitempty" table:"EMAIL,wide"`
	Languages      []string `json:"languages,omitempty" table:"LANGUAGES,wide"`
	Status         string   `json:"status" table:"STATUS"`
}

// Vehicle is a fleet vehicle.
type Vehicle struct {
	ID          ID     `json:"id" table:"ID"`
	Model       string `json:"model" table:"MODEL"`
	Type        string `json:"type" table:"TYPE"`
	PlateNumber string `json:"plateNumber" table:"PLATE"`
	Capacity    int    `json:"capacity" table:"CAPACITY"`
	Year        int    `json:"year,omitempty" table:"YEAR,wide"`
	Mileage     int    `json:"mileage,omitempty" table:"MILEAGE,wide"`
	Status      string `json:"status" table:"STATUS"`
}
