package dto

// BirthdayClient is the trimmed client projection listed on the dashboard
type BirthdayClient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"` // YYYY-MM-DD
}

// DashboardResponse aggregates per-user totals for the current month
type DashboardResponse struct {
	TotalClients       int              `json:"totalClients"`
	TotalSales         int              `json:"totalSales"`
	TotalNotes         int              `json:"totalNotes"`
	TotalReminders     int              `json:"totalReminders"`
	SalesThisMonth     float64          `json:"salesThisMonth"`
	BirthdaysThisMonth []BirthdayClient `json:"birthdaysThisMonth"`
}
