package etlab

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"bunkmate-backend/lib/htmlutil"
	"bunkmate-backend/lib/projection"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

var ErrNoAttendanceData = fmt.Errorf("No attendance data could be extracted.")

func headerIndex(header []string, names ...string) int {
	for i, cell := range header {
		lowered := strings.ToLower(cell)
		for _, name := range names {
			if strings.Contains(lowered, name) {
				return i
			}
		}
	}
	return -1
}

// FetchAttendance extracts the per-subject attendance table. Column
// positions vary across portal deployments so columns are located by
// header text rather than index.
func (c *Client) FetchAttendance(ctx context.Context) (map[string]projection.Record, error) {
	ctx, span := tracer.Start(ctx, "client:FetchAttendance")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/ktuacademics/student/attendance")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch attendance page")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse attendance html")
		return nil, err
	}

	rows := htmlutil.TableRows(doc.Find("table.items"))
	if len(rows) < 2 {
		span.SetStatus(codes.Error, ErrNoAttendanceData.Error())
		return nil, ErrNoAttendanceData
	}

	header := rows[0]
	subjectIdx := headerIndex(header, "subject", "course")
	attendedIdx := headerIndex(header, "attended", "present")
	totalIdx := headerIndex(header, "total", "held")
	if subjectIdx < 0 || attendedIdx < 0 || totalIdx < 0 {
		span.SetStatus(codes.Error, "attendance table layout changed")
		return nil, fmt.Errorf("attendance table layout changed: header %v", header)
	}

	records := map[string]projection.Record{}
	for _, row := range rows[1:] {
		if len(row) <= subjectIdx || len(row) <= attendedIdx || len(row) <= totalIdx {
			continue
		}
		subject := row[subjectIdx]
		if subject == "" {
			continue
		}

		attended, ok := htmlutil.CellInt(row[attendedIdx])
		if !ok {
			continue
		}
		total, ok := htmlutil.CellInt(row[totalIdx])
		if !ok {
			continue
		}

		record := projection.Record{Attended: attended, Total: total}
		if err := record.Validate(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "malformed attendance record")
			return nil, fmt.Errorf("malformed attendance row for %q: %w", subject, err)
		}
		records[subject] = record
	}

	if len(records) == 0 {
		span.SetStatus(codes.Error, ErrNoAttendanceData.Error())
		return nil, ErrNoAttendanceData
	}
	return records, nil
}

// FetchSubjectNames returns the subject code to full name mapping from
// the subjects page. Best effort: attendance reports fall back to raw
// codes when this page is unavailable.
func (c *Client) FetchSubjectNames(ctx context.Context) (map[string]string, error) {
	ctx, span := tracer.Start(ctx, "client:FetchSubjectNames")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/ktuacademics/student/subjects")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch subjects page")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse subjects html")
		return nil, err
	}

	rows := htmlutil.TableRows(doc.Find("table.items"))
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	codeIdx := headerIndex(header, "code")
	nameIdx := headerIndex(header, "name", "subject")
	if codeIdx < 0 || nameIdx < 0 || codeIdx == nameIdx {
		return nil, nil
	}

	names := map[string]string{}
	for _, row := range rows[1:] {
		if len(row) <= codeIdx || len(row) <= nameIdx {
			continue
		}
		if row[codeIdx] == "" || row[nameIdx] == "" {
			continue
		}
		names[row[codeIdx]] = row[nameIdx]
	}
	return names, nil
}
