package services

// Page tabs; an unknown value falls back to the first tab of the page
var (
	FinanceTabs = []string{"overview", "history", "upcoming", "structure"}
	VisaTabs    = []string{"overview", "residency", "deadlines", "documents"}
	SupportTabs = []string{"submit-query", "previous-tickets", "faq"}
)

// ResolveTab returns tab when it belongs to tabs, otherwise the default
func ResolveTab(tab string, tabs []string) string {
	for _, t := range tabs {
		if t == tab {
			return tab
		}
	}
	if len(tabs) == 0 {
		return ""
	}
	return tabs[0]
}
