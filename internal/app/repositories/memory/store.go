// Package memory is the in-process stand-in for the hosted backend used in
// development when no backend endpoint is configured.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

type credential struct {
	studentID int64
	hash      string
}

// Store keeps every table of the portal in memory
type Store struct {
	mu sync.RWMutex

	credentials   map[string]credential
	students      map[int64]*models.Student
	applications  []*models.ApplyStudent
	universities  []*models.University
	courses       []*models.Course
	sessions      []*models.AcademicSession
	fees          []*models.FeePayment
	visas         map[int64]*models.VisaRecord
	residencies   map[int64]*models.ResidencyRecord
	deadlines     []*models.VisaDeadline
	visaDocuments []*models.VisaDocument
	hostels       []*models.Hostel
	registrations []*models.HostelRegistration
	tickets       []*models.SupportTicket

	// rejectUnknownLogins makes VerifyLogin fail like an unconfigured backend
	rejectUnknownLogins bool

	nextID int64
	now    func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		credentials: make(map[string]credential),
		students:    make(map[int64]*models.Student),
		visas:       make(map[int64]*models.VisaRecord),
		residencies: make(map[int64]*models.ResidencyRecord),
		now:         time.Now,
	}
}

// Repositories exposes the store through the repository container
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Applications: s,
		Students:     s,
		Catalog:      s,
		Fees:         s,
		Visa:         s,
		Hostels:      s,
		Tickets:      s,
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// AddCredential registers a username/password pair for a student
func (s *Store) AddCredential(username, password string, studentID int64) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[username] = credential{studentID: studentID, hash: string(hash)}
	return nil
}

// AddStudent stores a student row
func (s *Store) AddStudent(student *models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[student.ID] = student
}

// AddFeePayment stores a fee instance
func (s *Store) AddFeePayment(p *models.FeePayment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	s.fees = append(s.fees, p)
}

// SetVisa stores the visa record of a student
func (s *Store) SetVisa(v *models.VisaRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visas[v.StudentID] = v
}

// SetResidency stores the residency record of a student
func (s *Store) SetResidency(r *models.ResidencyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.residencies[r.StudentID] = r
}

// AddDeadline stores a visa deadline
func (s *Store) AddDeadline(d *models.VisaDeadline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadlines = append(s.deadlines, d)
}

// AddVisaDocument stores a visa document flag
func (s *Store) AddVisaDocument(d *models.VisaDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visaDocuments = append(s.visaDocuments, d)
}

// AddHostel stores a hostel
func (s *Store) AddHostel(h *models.Hostel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID == 0 {
		h.ID = s.id()
	}
	s.hostels = append(s.hostels, h)
}

// AddCatalog stores dropdown catalog entries
func (s *Store) AddCatalog(universities []*models.University, courses []*models.Course, sessions []*models.AcademicSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.universities = append(s.universities, universities...)
	s.courses = append(s.courses, courses...)
	s.sessions = append(s.sessions, sessions...)
}

// Applications returns a copy of the stored applications
func (s *Store) Applications() []models.ApplyStudent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ApplyStudent, 0, len(s.applications))
	for _, a := range s.applications {
		out = append(out, *a)
	}
	return out
}

// CreateApplication stores a new admission application
func (s *Store) CreateApplication(ctx context.Context, a *models.ApplyStudent) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *a
	row.ID = s.id()
	created := s.now()
	row.CreatedAt = &created
	s.applications = append(s.applications, &row)
	a.ID = row.ID
	return row.ID, nil
}

// VerifyLogin checks the credentials against the stored bcrypt hashes
func (s *Store) VerifyLogin(ctx context.Context, username, password string) ([]models.LoginRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.credentials[username]
	if !ok || !auth.CheckPassword(cred.hash, password) {
		if s.rejectUnknownLogins {
			return nil, apperrors.ErrBackendNotConfigured
		}
		return []models.LoginRow{}, nil
	}

	row := models.LoginRow{StudentID: cred.studentID, Username: username}
	if st, ok := s.students[cred.studentID]; ok {
		row.FirstName = st.FirstName
		row.LastName = st.LastName
		row.Email = st.Email
		row.AdmissionNumber = st.AdmissionNumber
	}
	return []models.LoginRow{row}, nil
}

// GetStudentByID returns a student with the catalog names filled in
func (s *Store) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *st
	if out.UniversityID != nil {
		for _, u := range s.universities {
			if u.ID == *out.UniversityID {
				out.UniversityName = u.Name
			}
		}
	}
	if out.CourseID != nil {
		for _, c := range s.courses {
			if c.ID == *out.CourseID {
				out.CourseName = c.Name
			}
		}
	}
	return &out, nil
}

// ListUniversities returns universities ordered by name
func (s *Store) ListUniversities(ctx context.Context) ([]*models.University, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]*models.University{}, s.universities...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListCourses returns courses ordered by name
func (s *Store) ListCourses(ctx context.Context) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]*models.Course{}, s.courses...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListActiveSessions returns active sessions ordered by name
func (s *Store) ListActiveSessions(ctx context.Context) ([]*models.AcademicSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.AcademicSession{}
	for _, sess := range s.sessions {
		if sess.IsActive {
			out = append(out, sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionName < out[j].SessionName })
	return out, nil
}

// ListFeePayments returns a student's fees ordered by due date
func (s *Store) ListFeePayments(ctx context.Context, studentID int64) ([]*models.FeePayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.FeePayment{}
	for _, p := range s.fees {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		if a == nil || b == nil {
			return a != nil
		}
		return a.Before(*b)
	})
	return out, nil
}

// GetVisa returns the visa record of a student
func (s *Store) GetVisa(ctx context.Context, studentID int64) (*models.VisaRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.visas[studentID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return v, nil
}

// GetResidency returns the residency record of a student
func (s *Store) GetResidency(ctx context.Context, studentID int64) (*models.ResidencyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.residencies[studentID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r, nil
}

// ListDeadlines returns a student's deadlines ordered by due date
func (s *Store) ListDeadlines(ctx context.Context, studentID int64) ([]*models.VisaDeadline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.VisaDeadline{}
	for _, d := range s.deadlines {
		if d.StudentID == studentID {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

// ListVisaDocuments returns a student's visa documents
func (s *Store) ListVisaDocuments(ctx context.Context, studentID int64) ([]*models.VisaDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.VisaDocument{}
	for _, d := range s.visaDocuments {
		if d.StudentID == studentID {
			out = append(out, d)
		}
	}
	return out, nil
}

// ListActiveHostels returns active hostels ordered by name
func (s *Store) ListActiveHostels(ctx context.Context) ([]*models.Hostel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Hostel{}
	for _, h := range s.hostels {
		if h.Status == models.HostelStatusActive {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

// GetHostelByID returns a hostel
func (s *Store) GetHostelByID(ctx context.Context, id int64) (*models.Hostel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.hostels {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *Store) activeRegistration(studentID int64) *models.HostelRegistration {
	var latest *models.HostelRegistration
	for _, r := range s.registrations {
		if r.StudentID != studentID {
			continue
		}
		if r.Status != models.RegistrationPending && r.Status != models.RegistrationApproved {
			continue
		}
		if latest == nil || r.RequestedAt.After(latest.RequestedAt) {
			latest = r
		}
	}
	return latest
}

// GetActiveRegistration returns the latest pending or approved registration
func (s *Store) GetActiveRegistration(ctx context.Context, studentID int64) (*models.HostelRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r := s.activeRegistration(studentID); r != nil {
		return r, nil
	}
	return nil, repositories.ErrNotFound
}

// CreateRegistration stores a hostel application, one active per student
func (s *Store) CreateRegistration(ctx context.Context, reg *models.HostelRegistration) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeRegistration(reg.StudentID) != nil {
		return 0, repositories.ErrRegistrationExists
	}
	row := *reg
	row.ID = s.id()
	row.RequestedAt = s.now()
	s.registrations = append(s.registrations, &row)
	reg.ID, reg.RequestedAt = row.ID, row.RequestedAt
	return row.ID, nil
}

// ListTickets returns a student's tickets, newest first
func (s *Store) ListTickets(ctx context.Context, studentID int64) ([]*models.SupportTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.SupportTicket{}
	for _, t := range s.tickets {
		if t.StudentID == studentID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// CreateTicket stores a support ticket
func (s *Store) CreateTicket(ctx context.Context, t *models.SupportTicket) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *t
	row.ID = s.id()
	row.CreatedAt = s.now()
	row.UpdatedAt = row.CreatedAt
	s.tickets = append(s.tickets, &row)
	t.ID, t.CreatedAt, t.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	return row.ID, nil
}
