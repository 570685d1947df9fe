package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/pkg/auth"
)

func render(t *testing.T, name string, page Page) string {
	t.Helper()
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, page); err != nil {
		t.Fatalf("execute %s: %v", name, err)
	}
	return buf.String()
}

func TestEmptyStatesRenderPlaceholders(t *testing.T) {
	user := &auth.User{ID: "1", Name: "Demo Student"}

	tests := []struct {
		template string
		tabs     []Tab
		data     interface{}
		want     string
	}{
		{TemplateDashboard, nil, &dto.DashboardView{StudentName: "Demo Student"}, "No upcoming deadlines"},
		{TemplateDocuments, nil, &dto.DocumentsView{}, "No documents found"},
		{TemplateFinances, FinanceTabs, &dto.FinanceView{Tab: "history"}, "Your payment history will appear here"},
		{TemplateVisa, VisaTabs, &dto.VisaView{Tab: "overview"}, "No visa information available"},
		{TemplateVisa, VisaTabs, &dto.VisaView{Tab: "residency"}, "No residency information available"},
		{TemplateSupport, SupportTabs, SupportData{SupportView: &dto.SupportView{Tab: "previous-tickets"}}, "submitted any support tickets yet."},
		{TemplateServices, nil, &dto.ServicesView{}, "No hostels are currently available"},
		{TemplateProfile, nil, &dto.ProfileView{Name: "Demo Student"}, "No student record available"},
	}

	for _, tt := range tests {
		t.Run(tt.template+" "+tt.want, func(t *testing.T) {
			out := render(t, tt.template, Page{Title: "Test", Path: "/dashboard", User: user, Tabs: tt.tabs, Data: tt.data})
			if !strings.Contains(out, tt.want) {
				t.Fatalf("expected %q in output", tt.want)
			}
			if strings.Contains(out, "<tbody></tbody>") {
				t.Fatal("empty table rendered")
			}
		})
	}
}

func TestVisaRenewalWarning(t *testing.T) {
	view := &dto.VisaView{Tab: "overview", Visa: &dto.VisaCard{
		Status: "Approved", Badge: dto.BadgeApproved, HasExpiration: true,
		DaysUntilExpiration: 45, NeedsRenewal: true, ValidityWidth: 87.7,
	}}
	out := render(t, TemplateVisa, Page{User: &auth.User{ID: "1"}, Tabs: VisaTabs, Data: view})
	if !strings.Contains(out, "Your visa will expire in 45 days. Please start the renewal process at least 60 days before expiration.") {
		t.Fatal("missing renewal warning")
	}
}

func TestRegisterCarriesOtherSteps(t *testing.T) {
	form := &dto.ApplicationForm{}
	form.FirstName = "Asha"
	form.City = "Pune"
	data := RegisterData{Form: form, Step: dto.StepAcademic, Errors: map[string]string{"twelfth_marks": "Marks must be between 0 and 100"}}

	out := render(t, TemplateRegister, Page{Title: "Apply", Data: data})
	if !strings.Contains(out, `type="hidden" name="first_name" value="Asha"`) {
		t.Fatal("step 1 value not carried")
	}
	if !strings.Contains(out, `type="hidden" name="city" value="Pune"`) {
		t.Fatal("step 2 value not carried")
	}
	if !strings.Contains(out, "Marks must be between 0 and 100") {
		t.Fatal("field error not rendered")
	}
	if strings.Contains(out, `name="password"`) {
		t.Fatal("password must only render on the last step")
	}
}

func TestLoginRendersWithoutLayout(t *testing.T) {
	out := render(t, TemplateLogin, Page{Title: "Sign in", Error: "Invalid username or password", Data: LoginData{Username: "demo"}})
	if !strings.Contains(out, "Invalid username or password") || !strings.Contains(out, `value="demo"`) {
		t.Fatal("missing banner or username")
	}
	if strings.Contains(out, `class="sidebar"`) {
		t.Fatal("guest pages render without navigation")
	}
}

func TestPageHelpers(t *testing.T) {
	p := Page{Path: "/visa", User: &auth.User{Name: "asha rao kumar"}}
	if p.Initials() != "AR" {
		t.Fatalf("Initials = %q", p.Initials())
	}
	if !p.IsActive(NavItem{Path: "/visa"}) || p.IsActive(NavItem{Path: "/dashboard"}) {
		t.Fatal("unexpected active state")
	}
	if len(p.Nav()) != 7 {
		t.Fatalf("expected 7 nav items, got %d", len(p.Nav()))
	}
}
