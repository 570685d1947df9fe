package services

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/auth"
	"github.com/yigit/studentportal/internal/pkg/email"
	"github.com/yigit/studentportal/internal/pkg/filestorage"
	"github.com/yigit/studentportal/internal/pkg/validation"
)

// Clock returns the current time; tests pin it
type Clock func() time.Time

// Options holds the settings services read from configuration
type Options struct {
	DefaultAvatar string
}

// Services holds all the service instances
type Services struct {
	Auth        *AuthService
	Application *ApplicationService
	Dashboard   *DashboardService
	Finance     *FinanceService
	Visa        *VisaService
	Document    *DocumentService
	Hostel      *HostelService
	Support     *SupportService
	Profile     *ProfileService
}

// NewServices wires every service to its repositories
func NewServices(
	repos *repositories.Repositories,
	storage filestorage.ObjectStore,
	mailer email.EmailService,
	sessions *auth.SessionCodec,
	options Options,
	clock Clock,
	logger zerolog.Logger,
) *Services {
	if clock == nil {
		clock = time.Now
	}
	validator := validation.New()

	return &Services{
		Auth:        NewAuthService(repos.Students, sessions, options.DefaultAvatar, logger),
		Application: NewApplicationService(repos.Applications, repos.Catalog, validator, mailer, logger),
		Dashboard:   NewDashboardService(repos.Students, repos.Fees, repos.Visa, clock, logger),
		Finance:     NewFinanceService(repos.Fees, clock, logger),
		Visa:        NewVisaService(repos.Visa, clock, logger),
		Document:    NewDocumentService(storage, logger),
		Hostel:      NewHostelService(repos.Hostels, logger),
		Support:     NewSupportService(repos.Tickets, storage, mailer, validator, clock, logger),
		Profile:     NewProfileService(repos.Students, logger),
	}
}
