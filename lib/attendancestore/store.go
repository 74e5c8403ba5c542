package attendancestore

import (
	"context"
	"database/sql"
	"time"

	"bunkmate-backend/lib/projection"
	"bunkmate-backend/lib/timezone"

	_ "embed"
)

//go:embed schema.sql
var Schema string

// Store keeps one attendance snapshot per user, subject and IST day so
// students can see how their percentage moved over the term. Re-scrapes
// on the same day replace that day's row.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

func (s Store) Push(ctx context.Context, user string, at time.Time, records map[string]projection.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	day := timezone.StartOfDay(at).Unix()
	for subject, r := range records {
		_, err := tx.ExecContext(
			ctx,
			`INSERT OR REPLACE INTO attendance_snapshot
				(user, subject, day, attended, total)
				VALUES (?, ?, ?, ?, ?)`,
			user, subject, day, r.Attended, r.Total,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

type Snapshot struct {
	Day      time.Time
	Attended int
	Total    int
}

type SubjectSeries struct {
	Subject   string
	Snapshots []Snapshot
}

func (s Store) History(ctx context.Context, user string) ([]SubjectSeries, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT subject, day, attended, total
			FROM attendance_snapshot
			WHERE user = ?
			ORDER BY subject, day`,
		user,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []SubjectSeries
	for rows.Next() {
		var subject string
		var day int64
		var snap Snapshot
		if err := rows.Scan(&subject, &day, &snap.Attended, &snap.Total); err != nil {
			return nil, err
		}
		snap.Day = time.Unix(day, 0).In(timezone.Location)

		if len(series) == 0 || series[len(series)-1].Subject != subject {
			series = append(series, SubjectSeries{Subject: subject})
		}
		last := &series[len(series)-1]
		last.Snapshots = append(last.Snapshots, snap)
	}
	return series, rows.Err()
}
