package services

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/repositories/memory"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/auth"
	"github.com/yigit/studentportal/internal/pkg/filestorage"
	"github.com/yigit/studentportal/internal/pkg/validation"
)

type fakeMailer struct {
	applications []string
	tickets      []string
}

func (m *fakeMailer) SendApplicationReceived(toEmail, toName string) error {
	m.applications = append(m.applications, toEmail)
	return nil
}

func (m *fakeMailer) SendTicketAcknowledgement(toEmail, toName, ticketNumber, subject string) error {
	m.tickets = append(m.tickets, ticketNumber)
	return nil
}

var fixedNow = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func str(s string) *string { return &s }

func newCodec() *auth.SessionCodec {
	return auth.NewSessionCodec(auth.SessionConfig{SecretKey: "test-secret", TTL: time.Hour, Issuer: "test"})
}

func validForm() *dto.ApplicationForm {
	return &dto.ApplicationForm{
		PersonalStep: dto.PersonalStep{
			FirstName: "Asha", LastName: "Rao", FatherName: "Ravi", MotherName: "Mala",
			DateOfBirth: "2004-02-11", PhoneNumber: "+91 98450 00000", Email: "asha@example.com",
		},
		AddressStep: dto.AddressStep{Address: "12 Lake Road", City: "Pune", Country: "India"},
		AcademicStep: dto.AcademicStep{
			UniversityID: "1", CourseID: "2", AcademicSessionID: "3", TwelfthMarks: "88.5",
		},
		AccountStep: dto.AccountStep{Password: "secret1", ConfirmPassword: "secret1"},
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	mock, err := memory.NewMockStore()
	if err != nil {
		t.Fatalf("NewMockStore: %v", err)
	}
	codec := newCodec()
	svc := NewAuthService(mock, codec, "avatar.jpg", zerolog.Nop())

	user, cookie, err := svc.Login(ctx, memory.DemoUsername, memory.DemoPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != "1" || user.Name != "Demo Student" || user.ApplicationNumber != "ADM-2024-0001" || user.ProfileImage != "avatar.jpg" {
		t.Fatalf("unexpected user %+v", user)
	}
	restored, err := svc.Restore(cookie)
	if err != nil || *restored != *user {
		t.Fatalf("Restore = %+v, %v", restored, err)
	}

	_, _, err = svc.Login(ctx, memory.DemoUsername, "wrong")
	if !errors.Is(err, apperrors.ErrLoginFailed) || err.Error() != apperrors.ErrBackendNotConfigured.Error() {
		t.Fatalf("expected backend message, got %v", err)
	}

	empty := memory.NewStore()
	svc = NewAuthService(empty, codec, "", zerolog.Nop())
	if _, _, err := svc.Login(ctx, "nobody", "pw"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	if err := svc.Register(ctx); err.Error() != "Please use the application form to register" {
		t.Fatalf("Register = %v", err)
	}
}

func TestSubmitApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("password mismatch issues no write", func(t *testing.T) {
		store := memory.NewStore()
		mailer := &fakeMailer{}
		svc := NewApplicationService(store, store, validation.New(), mailer, zerolog.Nop())

		form := validForm()
		form.ConfirmPassword = "secret2"
		_, err := svc.Submit(ctx, form)
		fields := apperrors.FieldErrors(err)
		if fields["confirmPassword"] != "Passwords do not match" {
			t.Fatalf("expected confirmPassword error, got %v", err)
		}
		if n := len(store.Applications()); n != 0 {
			t.Fatalf("expected no application rows, got %d", n)
		}
		if len(mailer.applications) != 0 {
			t.Fatal("no email expected")
		}
	})

	t.Run("invalid earlier step", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewApplicationService(store, store, validation.New(), &fakeMailer{}, zerolog.Nop())

		form := validForm()
		form.Email = "not-an-email"
		_, err := svc.Submit(ctx, form)
		var formErr *FormError
		if !errors.As(err, &formErr) || formErr.Step != dto.StepPersonal || formErr.Fields["email"] == "" {
			t.Fatalf("expected step 1 email error, got %v", err)
		}
		if len(store.Applications()) != 0 {
			t.Fatal("expected no write")
		}
	})

	t.Run("success", func(t *testing.T) {
		store := memory.NewStore()
		mailer := &fakeMailer{}
		svc := NewApplicationService(store, store, validation.New(), mailer, zerolog.Nop())

		id, err := svc.Submit(ctx, validForm())
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		rows := store.Applications()
		if len(rows) != 1 || rows[0].ID != id {
			t.Fatalf("unexpected rows %+v", rows)
		}
		row := rows[0]
		if row.Status != "pending" || row.ApplicationStatus != "pending" {
			t.Fatalf("unexpected statuses %q/%q", row.Status, row.ApplicationStatus)
		}
		if row.AadhaarNumber != nil || row.SeatNumber != nil {
			t.Fatal("blank optional fields must be stored as null")
		}
		if *row.UniversityID != 1 || *row.TwelfthMarks != 88.5 {
			t.Fatalf("unexpected academic fields %+v", row)
		}
		if len(mailer.applications) != 1 || mailer.applications[0] != "asha@example.com" {
			t.Fatalf("expected confirmation email, got %v", mailer.applications)
		}
	})
}

func TestValidateStepOnlyChecksOwnFields(t *testing.T) {
	store := memory.NewStore()
	svc := NewApplicationService(store, store, validation.New(), &fakeMailer{}, zerolog.Nop())

	form := &dto.ApplicationForm{PersonalStep: validForm().PersonalStep}
	if errs := svc.ValidateStep(form, dto.StepPersonal); errs != nil {
		t.Fatalf("step 1 should pass, got %v", errs)
	}
	if errs := svc.ValidateStep(form, dto.StepAddress); errs["city"] == "" {
		t.Fatalf("step 2 should report city, got %v", errs)
	}
}

func TestBuildFinanceView(t *testing.T) {
	fees := []*models.FeePayment{
		{ID: 1, Description: "Tuition Fee - Semester 1", FeeType: "tuition", AmountDue: 4500, AmountPaid: 4500,
			Status: models.FeeStatusPaid, DueDate: day("2025-02-01"), LastPaymentDate: day("2025-02-01")},
		{ID: 2, Description: "Application Fee", FeeType: "application", AmountDue: 150, AmountPaid: 150,
			Status: models.FeeStatusPaid, LastPaymentDate: day("2024-12-15")},
		{ID: 3, Description: "Tuition Fee - Semester 2", FeeType: "tuition", AmountDue: 5000, AmountPaid: 1000,
			Status: models.FeeStatusPartial, DueDate: day("2025-09-05")},
		{ID: 4, Description: "Technology Fee", FeeType: "technology", AmountDue: 350,
			Status: models.FeeStatusPending, DueDate: day("2025-09-15")},
	}

	view := BuildFinanceView(fees, "overview", fixedNow)

	if view.Summary.TotalDue != 10000 || view.Summary.TotalPaid != 5650 || view.Summary.Pending != 4350 {
		t.Fatalf("unexpected summary %+v", view.Summary)
	}
	if math.Abs(view.Summary.Completion-56.5) > 1e-9 {
		t.Fatalf("completion = %v", view.Summary.Completion)
	}
	if next := view.Summary.Next; next == nil || next.Description != "Tuition Fee - Semester 2" || next.Amount != 4000 || next.DaysLeft != 4 {
		t.Fatalf("unexpected next payment %+v", view.Summary.Next)
	}
	if len(view.History) != 3 || view.History[0].ID != 1 || view.History[1].ID != 2 || view.History[2].ID != 3 {
		t.Fatalf("history must be ordered by last payment desc, got %+v", view.History)
	}
	if len(view.Upcoming) != 2 || view.Upcoming[0].ID != 3 {
		t.Fatalf("unexpected upcoming %+v", view.Upcoming)
	}
	if len(view.Structure) != 3 || view.Structure[0].Label != "Tuition" || view.Structure[0].Amount != 9500 {
		t.Fatalf("unexpected structure %+v", view.Structure)
	}
	if view.StructureTotal != 10000 {
		t.Fatalf("structure total = %v", view.StructureTotal)
	}

	empty := BuildFinanceView(nil, "overview", fixedNow)
	if empty.Summary.Completion != 0 || empty.Summary.Next != nil || len(empty.History) != 0 {
		t.Fatalf("unexpected empty view %+v", empty)
	}
}

func TestBuildVisaView(t *testing.T) {
	data := VisaData{
		Visa: &models.VisaRecord{
			VisaType: "F-1 Student Visa", VisaStatus: "Approved", VisaNumber: "F1",
			ExpirationDate:  day("2025-10-31"),
			ApplicationDate: day("2024-03-01"), ApprovalDate: day("2024-06-01"),
			ApplicationSubmitted: true, VisaApproved: true,
		},
		Residency: &models.ResidencyRecord{
			RegistrationStatus:   models.ResidencyPending,
			RegistrationDeadline: day("2025-09-15"),
		},
		Deadlines: []*models.VisaDeadline{
			{ID: 2, Title: "Visa Renewal", DueDate: *day("2025-12-01")},
			{ID: 1, Title: "Complete Residency Registration", DueDate: *day("2025-09-10")},
		},
		Documents: []*models.VisaDocument{
			{DocumentName: "Passport Copy", IsAvailable: true},
			{DocumentName: "Health Insurance", IsAvailable: false},
		},
	}

	view := BuildVisaView(data, "overview", fixedNow)

	if view.Visa.Badge != dto.BadgeApproved || view.Visa.DaysUntilExpiration != 60 || !view.Visa.NeedsRenewal {
		t.Fatalf("unexpected visa card %+v", view.Visa)
	}
	if view.Residency.Badge != dto.BadgePending || view.Residency.DaysUntilDeadline != 14 || !view.Residency.DeadlineNear {
		t.Fatalf("unexpected residency card %+v", view.Residency)
	}

	// interview has no date and is left out
	if len(view.Timeline) != 3 {
		t.Fatalf("expected 3 timeline events, got %+v", view.Timeline)
	}
	last := view.Timeline[len(view.Timeline)-1]
	if last.Title != "Residency Registration" || last.Status != EventUpcoming {
		t.Fatalf("unexpected residency event %+v", last)
	}

	if view.Deadlines[0].ID != 1 || !view.Deadlines[0].Urgent || view.Deadlines[1].Urgent {
		t.Fatalf("unexpected deadlines %+v", view.Deadlines)
	}
	if len(view.AvailableDocuments) != 1 || len(view.MissingDocuments) != 1 {
		t.Fatalf("unexpected documents %+v / %+v", view.AvailableDocuments, view.MissingDocuments)
	}

	empty := BuildVisaView(VisaData{}, "overview", fixedNow)
	if empty.Visa != nil || empty.Residency != nil || len(empty.Timeline) != 0 {
		t.Fatalf("expected empty view, got %+v", empty)
	}
}

func TestBadges(t *testing.T) {
	tests := []struct {
		status string
		visa   string
		res    string
	}{
		{"Approved", dto.BadgeApproved, dto.BadgeExpired},
		{"Pending", dto.BadgePending, dto.BadgeExpired},
		{"Registered", dto.BadgeRejected, dto.BadgeApproved},
		{"Pending Registration", dto.BadgeRejected, dto.BadgePending},
		{"Denied", dto.BadgeRejected, dto.BadgeExpired},
	}
	for _, tt := range tests {
		if got := VisaBadge(tt.status); got != tt.visa {
			t.Errorf("VisaBadge(%q) = %q, want %q", tt.status, got, tt.visa)
		}
		if got := ResidencyBadge(tt.status); got != tt.res {
			t.Errorf("ResidencyBadge(%q) = %q, want %q", tt.status, got, tt.res)
		}
	}
}

func TestDashboardDeadlines(t *testing.T) {
	mock, _ := memory.NewMockStore()
	mock.AddFeePayment(&models.FeePayment{
		StudentID: memory.DemoStudentID, Description: "Technology Fee", FeeType: "technology",
		AmountDue: 350, Status: models.FeeStatusPending, DueDate: day("2025-09-03"),
	})
	mock.AddFeePayment(&models.FeePayment{
		StudentID: memory.DemoStudentID, Description: "Application Fee", FeeType: "application",
		AmountDue: 150, AmountPaid: 150, Status: models.FeeStatusPaid, LastPaymentDate: day("2024-12-15"),
	})
	svc := NewDashboardService(mock, mock, mock, fixedClock, zerolog.Nop())

	user := &auth.User{ID: "1", Name: "Demo Student"}
	view := svc.GetDashboard(context.Background(), user)

	if view.AdmissionStatus != "Active" || view.ApplicationNumber != "ADM-2024-0001" {
		t.Fatalf("unexpected admission data %+v", view)
	}
	if len(view.RecentPayments) != 1 || view.RecentPayments[0].Amount != 150 {
		t.Fatalf("unexpected payments %+v", view.RecentPayments)
	}
	if len(view.Deadlines) == 0 || len(view.Deadlines) > UpcomingLimit {
		t.Fatalf("unexpected deadline count %d", len(view.Deadlines))
	}
	first := view.Deadlines[0]
	if first.Type != DeadlineTypePayment || first.DaysLeft != 2 || !first.Urgent {
		t.Fatalf("expected the technology fee first, got %+v", first)
	}
	if len(view.QuickLinks) != 4 {
		t.Fatalf("expected 4 quick links, got %d", len(view.QuickLinks))
	}
}

func TestHostelApply(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.AddHostel(&models.Hostel{ID: 7, Name: "North Hall", Capacity: 10, CurrentOccupancy: 4, Status: models.HostelStatusActive})
	svc := NewHostelService(store, zerolog.Nop())

	view := svc.GetServices(ctx, 1)
	if len(view.Hostels) != 1 || view.Hostels[0].Available != 6 || view.Registration != nil {
		t.Fatalf("unexpected view %+v", view)
	}

	if _, err := svc.Apply(ctx, 1, &dto.HostelApplicationRequest{HostelID: 7}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	view = svc.GetServices(ctx, 1)
	if view.Registration == nil || view.Registration.StatusLabel != "Under Review" || view.Registration.HostelName != "North Hall" {
		t.Fatalf("unexpected registration %+v", view.Registration)
	}

	if _, err := svc.Apply(ctx, 1, &dto.HostelApplicationRequest{HostelID: 7}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := svc.Apply(ctx, 2, &dto.HostelApplicationRequest{HostelID: 99}); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSubmitTicket(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	storage, err := filestorage.NewLocalStorage(t.TempDir(), "documents")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	mailer := &fakeMailer{}
	svc := NewSupportService(store, storage, mailer, validation.New(), fixedClock, zerolog.Nop())
	user := &auth.User{ID: "5", Name: "Asha Rao", Email: "asha@example.com"}

	_, err = svc.SubmitTicket(ctx, user, &dto.TicketRequest{Subject: "Fees", Category: "financial", Message: "too short"}, nil)
	var formErr *FormError
	if !errors.As(err, &formErr) || formErr.Fields["message"] != "Message should be at least 20 characters" {
		t.Fatalf("expected message length error, got %v", err)
	}

	resp, err := svc.SubmitTicket(ctx, user, &dto.TicketRequest{
		Subject:  "Fee receipt",
		Category: "financial",
		Message:  "I need a receipt for my last tuition payment.",
	}, nil)
	if err != nil {
		t.Fatalf("SubmitTicket: %v", err)
	}
	if !regexp.MustCompile(`^TKT-2025-[0-9A-F]{8}$`).MatchString(resp.TicketNumber) || resp.Status != "Pending" {
		t.Fatalf("unexpected ticket %+v", resp)
	}
	if len(mailer.tickets) != 1 || mailer.tickets[0] != resp.TicketNumber {
		t.Fatalf("expected acknowledgement, got %v", mailer.tickets)
	}

	view := svc.GetSupport(ctx, 5, "previous-tickets")
	if view.Tab != "previous-tickets" || len(view.Tickets) != 1 || view.Tickets[0].Category != "Financial" {
		t.Fatalf("unexpected support view %+v", view)
	}
	if svc.GetSupport(ctx, 5, "bogus").Tab != "submit-query" {
		t.Fatal("unknown tab must fall back to submit-query")
	}
}

func TestDocuments(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	storage, err := filestorage.NewLocalStorage(base, "documents")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	folder := filepath.Join(base, "documents", "3")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(folder, "Admission Letter.pdf"), bytes.Repeat([]byte("a"), 2048), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(folder, "transcript.docx"), []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}
	svc := NewDocumentService(storage, zerolog.Nop())

	view, err := svc.ListDocuments(ctx, 3, "")
	if err != nil || view.Total != 2 {
		t.Fatalf("ListDocuments = %+v, %v", view, err)
	}
	if d := view.Documents[0]; d.Name != "Admission Letter" || d.Type != "PDF" || d.Size != "2.0 KB" {
		t.Fatalf("unexpected document %+v", d)
	}

	filtered, _ := svc.ListDocuments(ctx, 3, "ADMISSION")
	if filtered.Total != 1 {
		t.Fatalf("expected one match, got %d", filtered.Total)
	}

	other, err := svc.ListDocuments(ctx, 4, "")
	if err != nil || other.Total != 0 {
		t.Fatalf("missing folder must list empty, got %+v, %v", other, err)
	}

	data, err := svc.Download(ctx, 3, "transcript.docx")
	if err != nil || string(data) != "doc" {
		t.Fatalf("Download = %q, %v", data, err)
	}
	if _, err := svc.Download(ctx, 4, "../3/transcript.docx"); !errors.Is(err, apperrors.ErrDocumentNotFound) {
		t.Fatalf("expected not found for another folder, got %v", err)
	}
}

func TestDigitalID(t *testing.T) {
	svc := NewProfileService(memory.NewStore(), zerolog.Nop())
	png, err := svc.DigitalID(&auth.User{ID: "1", ApplicationNumber: "ADM-2024-0001"})
	if err != nil {
		t.Fatalf("DigitalID: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("expected PNG output")
	}
}

func TestProfileWithoutRecord(t *testing.T) {
	svc := NewProfileService(memory.NewStore(), zerolog.Nop())
	view := svc.GetProfile(context.Background(), &auth.User{ID: "42", Name: "No Record"})
	if view.HasRecord || view.Name != "No Record" {
		t.Fatalf("unexpected profile %+v", view)
	}
}

func TestResolveTab(t *testing.T) {
	if got := ResolveTab("", VisaTabs); got != "overview" {
		t.Fatalf("got %q", got)
	}
	if got := ResolveTab("documents", VisaTabs); got != "documents" {
		t.Fatalf("got %q", got)
	}
}
