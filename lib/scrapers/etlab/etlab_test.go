package etlab

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bunkmate-backend/lib/projection"
	"bunkmate-backend/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const loginPage = `<html><body>
<form id="login-form" action="/user/login" method="post">
	<input type="hidden" name="_csrf" value="tok-123">
	<input name="LoginForm[username]">
	<input name="LoginForm[password]">
</form>
</body></html>`

const dashboardPage = `<html><body><div class="profile">Welcome back</div></body></html>`

const attendancePage = `<html><body>
<table class="items">
	<tr><th>Sl No</th><th>Subject</th><th>Attended</th><th>Total Held</th><th>%</th></tr>
	<tr><td>1</td><td>CS301</td><td>20</td><td>30</td><td>66</td></tr>
	<tr><td>2</td><td>MA201</td><td>30</td><td>35</td><td>85</td></tr>
	<tr><td>3</td><td>HS210</td><td>N/A</td><td>N/A</td><td>-</td></tr>
</table>
</body></html>`

const subjectsPage = `<html><body>
<table class="items">
	<tr><th>Course Code</th><th>Course Name</th></tr>
	<tr><td>CS301</td><td>Theory of Computation</td></tr>
	<tr><td>MA201</td><td>Linear Algebra</td></tr>
</table>
</body></html>`

const malformedAttendancePage = `<html><body>
<table class="items">
	<tr><th>Subject</th><th>Attended</th><th>Total Held</th></tr>
	<tr><td>CS301</td><td>31</td><td>30</td></tr>
</table>
</body></html>`

func fakePortal(t testing.TB, attendance string) *httptest.Server {
	mux := http.NewServeMux()

	authenticated := func(r *http.Request) bool {
		c, err := r.Cookie("PORTALSESSID")
		return err == nil && c.Value == "session-ok"
	}

	mux.HandleFunc("GET /user/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, loginPage)
	})
	mux.HandleFunc("POST /user/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("_csrf") != "tok-123" {
			http.Error(w, "bad csrf", http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("LoginForm[username]") == "alice" &&
			r.PostForm.Get("LoginForm[password]") == "hunter2" {
			http.SetCookie(w, &http.Cookie{Name: "PORTALSESSID", Value: "session-ok", Path: "/"})
		}
		http.Redirect(w, r, "/", http.StatusFound)
	})
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if authenticated(r) {
			fmt.Fprint(w, dashboardPage)
			return
		}
		fmt.Fprint(w, loginPage)
	})
	mux.HandleFunc("GET /ktuacademics/student/attendance", func(w http.ResponseWriter, r *http.Request) {
		if authenticated(r) {
			fmt.Fprint(w, attendance)
			return
		}
		fmt.Fprint(w, loginPage)
	})
	mux.HandleFunc("GET /ktuacademics/student/subjects", func(w http.ResponseWriter, r *http.Request) {
		if authenticated(r) {
			fmt.Fprint(w, subjectsPage)
			return
		}
		fmt.Fprint(w, loginPage)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func setup(t testing.TB) (*Client, func()) {
	return setupWithAttendance(t, attendancePage)
}

func setupWithAttendance(t testing.TB, attendance string) (*Client, func()) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/etlab")
	server := fakePortal(t, attendance)

	client, err := NewClient(context.Background(), ClientOptions{
		BaseUrl: server.URL,
	})
	require.NoError(t, err)
	return client, cleanup
}

func TestLoginAndFetchAttendance(t *testing.T) {
	client, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	err := client.Login(ctx, "alice", "hunter2")
	require.NoError(t, err)

	records, err := client.FetchAttendance(ctx)
	require.NoError(t, err)

	expected := map[string]projection.Record{
		"CS301": {Attended: 20, Total: 30},
		"MA201": {Attended: 30, Total: 35},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestLoginFailed(t *testing.T) {
	client, cleanup := setup(t)
	defer cleanup()

	err := client.Login(context.Background(), "alice", "wrong-password")
	require.ErrorIs(t, err, ErrLoginFailed)
}

func TestFetchAttendanceWithoutLogin(t *testing.T) {
	client, cleanup := setup(t)
	defer cleanup()

	_, err := client.FetchAttendance(context.Background())
	require.ErrorIs(t, err, ErrNoAttendanceData)
}

func TestFetchAttendanceMalformedRow(t *testing.T) {
	client, cleanup := setupWithAttendance(t, malformedAttendancePage)
	defer cleanup()
	ctx := context.Background()

	err := client.Login(ctx, "alice", "hunter2")
	require.NoError(t, err)

	// a row claiming more classes attended than held means the page
	// layout changed, the whole fetch fails instead of dropping the row
	_, err = client.FetchAttendance(ctx)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoAttendanceData)
	require.Contains(t, err.Error(), "CS301")
}

func TestFetchSubjectNames(t *testing.T) {
	client, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	err := client.Login(ctx, "alice", "hunter2")
	require.NoError(t, err)

	names, err := client.FetchSubjectNames(ctx)
	require.NoError(t, err)
	require.Equal(t, "Theory of Computation", names["CS301"])
	require.Equal(t, "Linear Algebra", names["MA201"])
}
