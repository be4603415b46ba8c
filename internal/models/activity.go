package models

type ActivityStatus string

const (
	ActivitySuccess ActivityStatus = "success"
	ActivityInfo    ActivityStatus = "info"
	ActivityWarning ActivityStatus = "warning"
)

// ActivityLogEntry is one line of the audit trail. The log is kept
// newest-first and is never read by any computation.
type ActivityLogEntry struct {
	ID     string         `json:"id"`
	Text   string         `json:"text"`
	Time   string         `json:"time"`
	Date   string         `json:"date"`
	Status ActivityStatus `json:"status"`
}
