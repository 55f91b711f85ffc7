package models

// DashboardSummary is the aggregate response for the admin dashboard page.
type DashboardSummary struct {
	TotalMembers      int                `json:"total_members"`
	ActiveSchedules   int                `json:"active_schedules"`
	PendingCareEvents int                `json:"pending_care_events"`
	TotalAidGiven     float64            `json:"total_aid_given"`
	UpcomingBirthdays []UpcomingBirthday `json:"upcoming_birthdays"`
}

// UpcomingBirthday is one roster entry whose birthday falls in the window.
type UpcomingBirthday struct {
	MemberID  string `json:"member_id"`
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
	NextDate  string `json:"next_date"`
	DaysAway  int    `json:"days_away"`
}
