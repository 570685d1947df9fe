package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// ErrNotFound is returned when a scoped read matches no row
var ErrNotFound = apperrors.ErrResourceNotFound

// ApplicationStore writes admission applications
type ApplicationStore interface {
	CreateApplication(ctx context.Context, application *models.ApplyStudent) (int64, error)
}

// StudentStore reads student records and verifies credentials
type StudentStore interface {
	VerifyLogin(ctx context.Context, username, password string) ([]models.LoginRow, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
}

// CatalogStore reads the dropdown catalogs of the application form
type CatalogStore interface {
	ListUniversities(ctx context.Context) ([]*models.University, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	ListActiveSessions(ctx context.Context) ([]*models.AcademicSession, error)
}

// FeeStore reads fee payments
type FeeStore interface {
	ListFeePayments(ctx context.Context, studentID int64) ([]*models.FeePayment, error)
}

// VisaStore reads the visa and residency records
type VisaStore interface {
	GetVisa(ctx context.Context, studentID int64) (*models.VisaRecord, error)
	GetResidency(ctx context.Context, studentID int64) (*models.ResidencyRecord, error)
	ListDeadlines(ctx context.Context, studentID int64) ([]*models.VisaDeadline, error)
	ListVisaDocuments(ctx context.Context, studentID int64) ([]*models.VisaDocument, error)
}

// HostelStore reads hostels and reads/writes hostel registrations
type HostelStore interface {
	ListActiveHostels(ctx context.Context) ([]*models.Hostel, error)
	GetHostelByID(ctx context.Context, id int64) (*models.Hostel, error)
	GetActiveRegistration(ctx context.Context, studentID int64) (*models.HostelRegistration, error)
	CreateRegistration(ctx context.Context, registration *models.HostelRegistration) (int64, error)
}

// TicketStore reads and writes support tickets
type TicketStore interface {
	ListTickets(ctx context.Context, studentID int64) ([]*models.SupportTicket, error)
	CreateTicket(ctx context.Context, ticket *models.SupportTicket) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Applications ApplicationStore
	Students     StudentStore
	Catalog      CatalogStore
	Fees         FeeStore
	Visa         VisaStore
	Hostels      HostelStore
	Tickets      TicketStore
}

// NewRepositories initializes all repositories against the backend pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Applications: NewApplicationRepository(db),
		Students:     NewStudentRepository(db),
		Catalog:      NewCatalogRepository(db),
		Fees:         NewFeeRepository(db),
		Visa:         NewVisaRepository(db),
		Hostels:      NewHostelRepository(db),
		Tickets:      NewTicketRepository(db),
	}
}
