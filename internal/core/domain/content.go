package domain

// Blog is a blog post.
type Blog struct {
	ID        ID     `json:"id" table:"ID"`
	Title     string `json:"title" table:"TITLE"`
	Category  string `json:"category,omitempty" table:"CATEGORY"`
	Excerpt   string `json:"excerpt,omitempty" table:"EXCERPT,wide"`
	Content   string `json:"content,omitempty" table:"-"`
	ImageURL  string `json:"image_url,omitempty" table:"-"`
	ReadTime  string `json:"read_time,omitempty" table:"READ TIME,wide"`
	Published bool   `json:"published" table:"PUBLISHED"`
	CreatedAt string `json:"created_at,omitempty" table:"CREATED,wide"`
}

// BlogInput is the body of blog create and update calls.
type BlogInput struct {
	Title     string `json:"title" validate:"required"`
	Category  string `json:"category,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
	Content   string `json:"content" validate:"required"`
	ImageURL  string `json:"image_url,omitempty" validate:"omitempty,url"`
	ReadTime  string `json:"read_time,omitempty"`
	Published bool   `json:"published"`
}

// InputFrom returns the update body that reproduces b.
func (b Blog) InputFrom() BlogInput {
	return BlogInput{
		Title:     b.Title,
		Category:  b.Category,
		Excerpt:   b.Excerpt,
		Content:   b.Content,
		ImageURL:  b.ImageURL,
		ReadTime:  b.ReadTime,
		Published: b.Published,
	}
}

// Promotion is a site-wide promotional banner.
type Promotion struct {
	ID           ID     `json:"id" table:"ID"`
	Title        string `json:"title" table:"TITLE"`
	Description  string `json:"description,omitempty" table:"DESCRIPTION,wide"`
	DiscountText string `json:"discount_text,omitempty" table:"DISCOUNT"`
	ButtonText   string `json:"button_text,omitempty" table:"BUTTON,wide"`
	ButtonLink   string `json:"button_link,omitempty" table:"LINK,wide"`
	Active       bool   `json:"active" table:"ACTIVE"`
}

// PromotionInput is the body of promotion create and update calls.
type PromotionInput struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description,omitempty"`
	DiscountText string `json:"discount_text,omitempty"`
	ButtonText   string `json:"button_text,omitempty"`
	ButtonLink   string `json:"button_link,omitempty"`
	Active       bool   `json:"active"`
}

// InputFrom returns the update body that reproduces p.
func (p Promotion) InputFrom() PromotionInput {
	return PromotionInput{
		Title:        p.Title,
		Description:  p.Description,
		DiscountText: p.DiscountText,
		ButtonText:   p.ButtonText,
		ButtonLink:   p.ButtonLink,
		Active:       p.Active,
	}
}

// ContactSettings are the contact details shown on the public site.
type ContactSettings struct {
	Phone       string `json:"phone" yaml:"phone" validate:"required"`
	Email       string `json:"email" yaml:"email" validate:"required,email"`
	WhatsApp    string `json:"whatsapp,omitempty" yaml:"whatsapp,omitempty"`
	Address     string `json:"address,omitempty" yaml:"address,omitempty"`
	OfficeHours string `json:"office_hours,omitempty" yaml:"office_hours,omitempty"`
}

// EnquiryStatus is the triage state of an enquiry.
type EnquiryStatus string

// Enquiry statuses.
const (
	EnquiryNew       EnquiryStatus = "new"
	EnquiryContacted EnquiryStatus = "contacted"
	EnquiryResolved  EnquiryStatus = "resolved"
)

// Enquiry is a message sent through the public contact form.
type Enquiry struct {
	ID        ID            `json:"id" table:"ID"`
	Name      string        `json:"name" table:"NAME"`
	Email     string        `json:"email" table:"EMAIL"`
	Phone     string        `json:"phone,omitempty" table:"PHONE,wide"`
	Subject   string        `json:"subject,omitempty" table:"SUBJECT"`
	Message   string        `json:"message,omitempty" table:"-"`
	Status    EnquiryStatus `json:"status" table:"STATUS"`
	CreatedAt string        `json:"created_at,omitempty" table:"RECEIVED"`
}

// EnquiryStatusUpdate is the body of PUT /admin/enquiries/{id}.
type EnquiryStatusUpdate struct {
	Status EnquiryStatus `json:"status" validate:"required,oneof=new contacted resolved"`
}

// PublicEnquiryRequest is an enquiry submitted from the public site.
type PublicEnquiryRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message" validate:"required"`
}

// TicketSummary counts enquiries by support state.
// New enquiries are open tickets and contacted ones are pending.
type TicketSummary struct {
	Total    int `json:"total" table:"TOTAL"`
	Open     int `json:"open" table:"OPEN"`
	Pending  int `json:"pending" table:"PENDING"`
	Resolved int `json:"resolved" table:"RESOLVED"`
}

// SummarizeTickets counts enquiries by status.
func SummarizeTickets(enquiries []Enquiry) TicketSummary {
	s := TicketSummary{Total: len(enquiries)}
	for _, e := range enquiries {
		switch e.Status {
		case EnquiryNew:
			s.Open++
		case EnquiryContacted:
			s.Pending++
		case EnquiryResolved:
			s.Resolved++
		}
	}
	return s
}
