package leave

type LeaveType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	IsPaid      bool   `json:"is_paid"`
	DefaultDays int    `json:"default_days"`
}
