package dto

// Badge classes rendered by the templates
const (
	BadgeApproved = "approved"
	BadgePending  = "pending"
	BadgeRejected = "rejected"
	BadgeExpired  = "expired"
)

// QuickLink is a shortcut tile on the dashboard
type QuickLink struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// PaymentItem is one paid fee shown on the dashboard
type PaymentItem struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
}

// DeadlineItem is a dated obligation with its urgency
type DeadlineItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	DueDate     string `json:"dueDate"`
	DaysLeft    int    `json:"daysLeft"`
	Urgent      bool   `json:"urgent"`
	Completed   bool   `json:"completed"`
}

// DashboardView is the content of the dashboard page
type DashboardView struct {
	StudentName       string         `json:"studentName"`
	ApplicationNumber string         `json:"applicationNumber"`
	AdmissionStatus   string         `json:"admissionStatus"`
	StatusBadge       string         `json:"statusBadge"`
	Program           string         `json:"program"`
	University        string         `json:"university"`
	RecentPayments    []PaymentItem  `json:"recentPayments"`
	Deadlines         []DeadlineItem `json:"deadlines"`
	QuickLinks        []QuickLink    `json:"quickLinks"`
}

// FeeItem is one fee row on the finances page
type FeeItem struct {
	ID              int64   `json:"id"`
	Description     string  `json:"description"`
	FeeType         string  `json:"feeType"`
	AmountDue       float64 `json:"amountDue"`
	AmountPaid      float64 `json:"amountPaid"`
	Outstanding     float64 `json:"outstanding"`
	Status          string  `json:"status"`
	StatusBadge     string  `json:"statusBadge"`
	DueDate         string  `json:"dueDate"`
	LastPaymentDate string  `json:"lastPaymentDate"`
	PaymentMethod   string  `json:"paymentMethod,omitempty"`
	DaysLeft        *int    `json:"daysLeft,omitempty"`
}

// StructureItem is the total of one fee type
type StructureItem struct {
	FeeType string  `json:"feeType"`
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
}

// NextPayment is the earliest unpaid fee
type NextPayment struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"dueDate"`
	DaysLeft    int     `json:"daysLeft"`
}

// FinanceSummary totals the student's fees
type FinanceSummary struct {
	TotalDue   float64      `json:"totalDue"`
	TotalPaid  float64      `json:"totalPaid"`
	Pending    float64      `json:"pending"`
	Completion float64      `json:"completion"`
	Next       *NextPayment `json:"nextPayment,omitempty"`
}

// FinanceView is the content of the finances page
type FinanceView struct {
	Tab            string          `json:"tab"`
	Summary        FinanceSummary  `json:"summary"`
	History        []FeeItem       `json:"history"`
	Upcoming       []FeeItem       `json:"upcoming"`
	Structure      []StructureItem `json:"structure"`
	StructureTotal float64         `json:"structureTotal"`
}

// VisaCard summarises the visa record
type VisaCard struct {
	Type                string  `json:"type"`
	Status              string  `json:"status"`
	Badge               string  `json:"badge"`
	Number              string  `json:"number"`
	EntryType           string  `json:"entryType"`
	IssueDate           string  `json:"issueDate"`
	ExpirationDate      string  `json:"expirationDate"`
	HasExpiration       bool    `json:"hasExpiration"`
	DaysUntilExpiration int     `json:"daysUntilExpiration"`
	ValidityWidth       float64 `json:"validityWidth"`
	NeedsRenewal        bool    `json:"needsRenewal"`
}

// ResidencyCard summarises the residency record
type ResidencyCard struct {
	Status            string `json:"status"`
	Badge             string `json:"badge"`
	Registered        bool   `json:"registered"`
	Deadline          string `json:"deadline"`
	DaysUntilDeadline int    `json:"daysUntilDeadline"`
	DeadlineNear      bool   `json:"deadlineNear"`
	CurrentAddress    string `json:"currentAddress"`
	LocalIDNumber     string `json:"localIdNumber"`
	RegistrationDate  string `json:"registrationDate"`
}

// ProcessStep is one flag of the visa progress tracker
type ProcessStep struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// TimelineEvent is a dated step of the visa lifecycle
type TimelineEvent struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Status      string `json:"status"` // completed or upcoming
	Description string `json:"description"`
}

// VisaDocumentItem is a document availability flag
type VisaDocumentItem struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	URL       string `json:"url,omitempty"`
}

// VisaView is the content of the visa and residency page
type VisaView struct {
	Tab                string             `json:"tab"`
	Visa               *VisaCard          `json:"visa"`
	Residency          *ResidencyCard     `json:"residency"`
	Process            []ProcessStep      `json:"process"`
	Timeline           []TimelineEvent    `json:"timeline"`
	Deadlines          []DeadlineItem     `json:"deadlines"`
	AvailableDocuments []VisaDocumentItem `json:"availableDocuments"`
	MissingDocuments   []VisaDocumentItem `json:"missingDocuments"`
}

// DocumentItem is a stored file of the student
type DocumentItem struct {
	Name       string `json:"name"`
	FileName   string `json:"fileName"`
	Type       string `json:"type"`
	Size       string `json:"size"`
	Bytes      int64  `json:"bytes"`
	UploadedAt string `json:"uploadedAt"`
}

// DocumentsView is the content of the documents page
type DocumentsView struct {
	Query     string         `json:"query"`
	Documents []DocumentItem `json:"documents"`
	Total     int            `json:"total"`
}

// ProfileView is the content of the profile page
type ProfileView struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	ApplicationNumber string `json:"applicationNumber"`
	ProfileImage      string `json:"profileImage,omitempty"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	City              string `json:"city"`
	Country           string `json:"country"`
	DateOfBirth       string `json:"dateOfBirth"`
	Program           string `json:"program"`
	University        string `json:"university"`
	Status            string `json:"status"`
	HasRecord         bool   `json:"hasRecord"`
}

// TicketItem is a previous support ticket
type TicketItem struct {
	ID            int64  `json:"id"`
	TicketNumber  string `json:"ticketNumber"`
	Subject       string `json:"subject"`
	Category      string `json:"category"`
	Message       string `json:"message"`
	Status        string `json:"status"`
	StatusBadge   string `json:"statusBadge"`
	HasAttachment bool   `json:"hasAttachment"`
	CreatedAt     string `json:"createdAt"`
}

// FAQItem is a static question and answer
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CategoryOption is one entry of the support category select
type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SupportView is the content of the support page
type SupportView struct {
	Tab        string           `json:"tab"`
	Categories []CategoryOption `json:"categories"`
	Tickets    []TicketItem     `json:"tickets"`
	FAQ        []FAQItem        `json:"faq"`
}

// TicketRequest is the support query form
type TicketRequest struct {
	Subject  string `json:"subject" form:"subject" validate:"required"`
	Category string `json:"category" form:"category" validate:"required,oneof=academic financial visa technical housing other"`
	Message  string `json:"message" form:"message" validate:"required,min=20"`
}

// TicketResponse is returned after a ticket is created
type TicketResponse struct {
	ID           int64  `json:"id"`
	TicketNumber string `json:"ticketNumber"`
	Status       string `json:"status"`
}

// HostelItem is an accommodation option
type HostelItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Capacity    int     `json:"capacity"`
	Available   int     `json:"available"`
	MonthlyRent float64 `json:"monthlyRent"`
	Facilities  string  `json:"facilities"`
}

// RegistrationItem is the student's hostel application
type RegistrationItem struct {
	ID          int64  `json:"id"`
	HostelID    int64  `json:"hostelId"`
	HostelName  string `json:"hostelName"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	Badge       string `json:"badge"`
	RequestedAt string `json:"requestedAt"`
	Notes       string `json:"notes,omitempty"`
}

// ServicesView is the content of the services page
type ServicesView struct {
	Hostels      []HostelItem      `json:"hostels"`
	Registration *RegistrationItem `json:"registration"`
}

// HostelApplicationRequest is the hostel application form
type HostelApplicationRequest struct {
	HostelID int64  `json:"hostel_id" form:"hostel_id" binding:"required,min=1"`
	Notes    string `json:"notes" form:"notes"`
}
