package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AhmadXRAUF940/attendance--tracker/core"
)

// Status is a single-letter daily attendance status.
type Status string

const (
	StatusPresent Status = "P"
	StatusAbsent  Status = "A"
	StatusLate    Status = "L"
	StatusExcused Status = "E"
)

// Record is one student's attendance for one calendar date.
// At most one Record exists per (StudentID, Date) pair; re-marking overwrites
// Status, MarkedBy and MarkedAt in place.
type Record struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Date      string    `json:"date"` // YYYY-MM-DD, opaque date-only string
	Status    Status    `json:"status"`
	MarkedBy  *int      `json:"marked_by"` // teacher user ID
	MarkedAt  time.Time `json:"marked_at"` // UTC
}

// Stats are the aggregate counts for a set of records.
// Late arrivals count toward the effective-attendance percentage.
type Stats struct {
	Present    int `json:"present"`
	Absent     int `json:"absent"`
	Late       int `json:"late"`
	Excused    int `json:"excused"`
	Percentage int `json:"percentage"`
	TotalDays  int `json:"total_days"`
}

// Mark is one student's submitted status within a MarkSheet.
type Mark struct {
	StudentID int    `json:"student_id" validate:"required,min=1"`
	Status    Status `json:"status" validate:"required,oneof=P A L E"`
}

// MarkSheet is a teacher's attendance submission for one section and date.
type MarkSheet struct {
	Date    string `json:"date" validate:"required,attdate"`
	Records []Mark `json:"records" validate:"required,min=1,dive"`
}

func (ms *MarkSheet) Validate(validate *validator.Validate) error {
	ms.Date = core.CleanString(ms.Date)
	return validate.Struct(ms)
}

// MonthQuery is an optional YYYY-MM restriction on attendance queries.
type MonthQuery struct {
	Month string `json:"month" query:"month" validate:"omitempty,attmonth"`
}

func (mq *MonthQuery) Validate(validate *validator.Validate) error {
	mq.Month = core.CleanString(mq.Month)
	return validate.Struct(mq)
}
