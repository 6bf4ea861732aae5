package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AhmadXRAUF940/attendance--tracker/core/attendance"
)

type attendanceRow struct {
	ID        int           `db:"id"`
	StudentID int           `db:"student_id"`
	Date      string        `db:"date"`
	Status    string        `db:"status"`
	MarkedBy  sql.NullInt64 `db:"marked_by"`
	MarkedAt  time.Time     `db:"marked_at"`
}

func (row attendanceRow) toRecord() attendance.Record {
	rec := attendance.Record{
		ID:        row.ID,
		StudentID: row.StudentID,
		Date:      row.Date,
		Status:    attendance.Status(row.Status),
		MarkedAt:  row.MarkedAt,
	}
	if row.MarkedBy.Valid {
		markedBy := int(row.MarkedBy.Int64)
		rec.MarkedBy = &markedBy
	}
	return rec
}

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

// UpsertRecord is a single conditional write: the (student_id, date) unique
// key resolves concurrent marks of the same pair to last-write-wins without
// ever producing duplicate rows.
func (repo attendanceRepository) UpsertRecord(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	var markedBy sql.NullInt64
	if rec.MarkedBy != nil {
		markedBy = sql.NullInt64{Int64: int64(*rec.MarkedBy), Valid: true}
	}
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO attendance (student_id, date, status, marked_by, marked_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (student_id, date)
		 DO UPDATE SET status = EXCLUDED.status, marked_by = EXCLUDED.marked_by, marked_at = EXCLUDED.marked_at
		 RETURNING id`,
		rec.StudentID, rec.Date, string(rec.Status), markedBy, rec.MarkedAt.UTC(),
	).Scan(&rec.ID)
	if err != nil {
		return attendance.Record{}, errors.Wrap(err, "upserting attendance record")
	}
	return rec, nil
}

func (repo attendanceRepository) QueryByStudent(ctx context.Context, studentID int, month string) ([]attendance.Record, error) {
	query := `SELECT id, student_id, date, status, marked_by, marked_at
	          FROM attendance WHERE student_id = $1`
	args := []interface{}{studentID}
	if month != "" {
		query += ` AND date LIKE $2 || '%'`
		args = append(args, month)
	}
	query += ` ORDER BY date`

	var rows []attendanceRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying student attendance")
	}
	return toRecords(rows), nil
}

func (repo attendanceRepository) QueryBySection(ctx context.Context, sectionID int, month string) ([]attendance.Record, error) {
	query := `SELECT a.id, a.student_id, a.date, a.status, a.marked_by, a.marked_at
	          FROM attendance a
	          JOIN students st ON st.id = a.student_id
	          WHERE st.section_id = $1`
	args := []interface{}{sectionID}
	if month != "" {
		query += ` AND a.date LIKE $2 || '%'`
		args = append(args, month)
	}
	query += ` ORDER BY a.date`

	var rows []attendanceRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying section attendance")
	}
	return toRecords(rows), nil
}

func toRecords(rows []attendanceRow) []attendance.Record {
	records := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records
}
