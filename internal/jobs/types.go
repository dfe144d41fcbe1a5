package jobs

const (
	// TaskRefreshNews re-fetches and caches the latest headlines for a sport.
	TaskRefreshNews = "news:refresh"
	// TaskWeeklyReport renders a user's progress summary and emails it.
	TaskWeeklyReport = "report:weekly"
)

type RefreshNewsPayload struct {
	Sport string `json:"sport"`
	Count int    `json:"count,omitempty"`
}

type WeeklyReportPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
