package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bunkmate-backend/lib/alerting"
	"bunkmate-backend/lib/attendancestore"
	"bunkmate-backend/lib/projection"
	"bunkmate-backend/lib/scrapers/etlab"
	"bunkmate-backend/lib/serviceutil"
	"bunkmate-backend/lib/timezone"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/attendance")

type ServiceOptions struct {
	// base url of the college portal to log into
	BaseUrl string
	// optional, snapshot history is skipped when nil
	Store *attendancestore.Store
	// optional, operator alerting is skipped when nil
	Mailer *alerting.Mailer
}

type Service struct {
	baseUrl string
	store   *attendancestore.Store
	mailer  *alerting.Mailer
}

func NewService(opts ServiceOptions) Service {
	return Service{
		baseUrl: opts.BaseUrl,
		store:   opts.Store,
		mailer:  opts.Mailer,
	}
}

// Check runs one full scrape-and-project cycle for a student. Every
// call opens a fresh portal session, nothing is shared across users.
func (s Service) Check(ctx context.Context, username, password string, target float64) (Report, error) {
	ctx, span := tracer.Start(ctx, "service:Check")
	defer span.End()

	client, err := etlab.NewClient(ctx, etlab.ClientOptions{
		BaseUrl: s.baseUrl,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to initialize portal client")
		return Report{}, err
	}

	if err := client.Login(ctx, username, password); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		return Report{}, err
	}

	records, err := client.FetchAttendance(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch attendance")
		s.mailer.ScrapeFailure(ctx, s.baseUrl, err)
		return Report{}, err
	}

	report, err := BuildReport(records, target)
	if err != nil {
		return Report{}, err
	}

	names, err := client.FetchSubjectNames(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch subject names", "err", err)
	}
	AttachSubjectNames(report, names)

	s.pushSnapshot(ctx, username, records)
	return report, nil
}

func (s Service) pushSnapshot(ctx context.Context, username string, records map[string]projection.Record) {
	if s.store == nil {
		return
	}
	err := s.store.Push(ctx, username, timezone.Now(), records)
	if err != nil {
		// history is a nicety, the report the student asked for
		// still goes out
		slog.WarnContext(ctx, "failed to push attendance snapshot", "err", err)
	}
}

type checkRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Target   any    `json:"target"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (s Service) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "username and password are required"})
		return
	}

	target := EffectiveTarget(req.Target)

	report, err := s.Check(ctx, req.Username, req.Password, target)
	if err != nil {
		slog.ErrorContext(
			ctx, "attendance check failed",
			"request_id", serviceutil.GetRequestId(ctx),
			"err", err,
		)
		status := http.StatusInternalServerError
		if errors.Is(err, etlab.ErrLoginFailed) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Register mounts the service on the mux.
func (s Service) Register(mux *http.ServeMux) {
	mux.Handle(
		"/api/attendance",
		serviceutil.Cors(serviceutil.RequestId(http.HandlerFunc(s.handleCheck))),
	)
}
