package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/mock"

	"github.com/RyShoe8/fantasyfootball/controller"
	"github.com/RyShoe8/fantasyfootball/db/mockdb"
	"github.com/RyShoe8/fantasyfootball/localcache"
	"github.com/RyShoe8/fantasyfootball/model"
	"github.com/RyShoe8/fantasyfootball/sleeper"
	"github.com/RyShoe8/fantasyfootball/testutils"
)

type testServer struct {
	url    string
	fake   *testutils.FakeSleeperServer
	client *http.Client
}

// newTestServer stands up the full handler stack over a fake Sleeper server,
// a mock store that always misses, and an in-memory local cache.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	clk := clock.NewMock()
	clk.Set(time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC))

	fake := testutils.NewFakeSleeperServer()
	t.Cleanup(fake.Close)

	local, err := localcache.NewInMemory(clk)
	if err != nil {
		t.Fatalf("error creating local cache: %v", err)
	}
	t.Cleanup(func() { local.Close() })

	store := new(mockdb.Store)
	store.On("SaveUser", mock.Anything, mock.Anything).Return(nil)
	store.On("SaveLeague", mock.Anything, mock.Anything).Return(nil)
	store.On("SaveRoster", mock.Anything, mock.Anything).Return(nil)
	store.On("SaveLeagueUser", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	store.On("SaveDraftPick", mock.Anything, mock.Anything).Return(nil)
	store.On("GetRosters", mock.Anything, mock.Anything).Return([]model.Roster{}, nil)
	store.On("GetLeagueUsers", mock.Anything, mock.Anything).Return([]model.User{}, nil)
	store.On("GetDraftPicks", mock.Anything, mock.Anything).Return([]model.DraftPick{}, nil)

	ctrl, err := controller.New(clk, sleeper.NewForTest(fake.URL()), store, local)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}

	s := httptest.NewServer(getRouter(ctrl, newRender()))
	t.Cleanup(s.Close)

	return &testServer{
		url:  s.URL,
		fake: fake,
		client: &http.Client{
			// Don't follow redirects so the tests can assert on them.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := ts.client.PostForm(ts.url+path, form)
	if err != nil {
		t.Fatalf("error posting to %s: %v", path, err)
	}
	return resp
}

func (ts *testServer) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := ts.client.Get(ts.url + path)
	if err != nil {
		t.Fatalf("error getting %s: %v", path, err)
	}
	return resp
}

func (ts *testServer) login(t *testing.T) {
	t.Helper()
	resp := ts.postForm(t, "/login", url.Values{"username": {"sleeperuser"}})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("unexpected login status code. Got: %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("unexpected login redirect: %s", loc)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("error reading response body: %v", err)
	}
	return string(b)
}

func TestDashboardRedirectsWhenLoggedOut(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.get(t, "/")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("unexpected redirect location: %s", loc)
	}
}

func TestLoginAndDashboard(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	body := readBody(t, ts.get(t, "/"))

	for _, want := range []string{
		"Footclan",       // selected league name
		"The Megalabowl", // other league in the switcher
		"SleeperUser",    // logged-in user
		"The Rival",      // standings row
		"11-2",           // the rival's record
		"1540.25",        // points for
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard does not contain %q", want)
		}
	}
}

func TestLoginUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.postForm(t, "/login", url.Values{"username": {"ghost"}})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "no Sleeper account found") {
		t.Errorf("response body does not contain expected string")
	}
}

func TestLoginMissingUsername(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.postForm(t, "/login", url.Values{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
}

func TestRosterPage(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	body := readBody(t, ts.get(t, "/rosters/1"))

	for _, want := range []string{
		"Jalen Hurts",
		"Philadelphia Eagles",
		"24.30",         // week points for Hurts
		"Kyle Juszczyk", // on IR
	} {
		if !strings.Contains(body, want) {
			t.Errorf("roster page does not contain %q", want)
		}
	}
}

func TestRosterPageNotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp := ts.get(t, "/rosters/99")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
}

func TestTradeEvaluator(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp := ts.postForm(t, "/trade", url.Values{
		"side_a": {"6904"},
		"side_b": {"2374"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}

	body := readBody(t, resp)
	if !strings.Contains(body, "Side A wins this trade.") {
		t.Errorf("trade result not rendered as expected")
	}
}

func TestDraftPage(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	body := readBody(t, ts.get(t, "/draft"))

	for _, want := range []string{
		"Bijan Robinson",
		"Breece Hall",
		"(on the clock)", // unmade picks
	} {
		if !strings.Contains(body, want) {
			t.Errorf("draft page does not contain %q", want)
		}
	}
}

func TestSelectWeekValidation(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	for _, week := range []string{"0", "19", "abc"} {
		resp := ts.postForm(t, "/select/week", url.Values{"week": {week}})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("week %s: unexpected status code. Got: %d", week, resp.StatusCode)
		}
	}

	resp := ts.postForm(t, "/select/week", url.Values{"week": {"4"}})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
}

func TestSelectSeason(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp := ts.postForm(t, "/select/season", url.Values{"year": {"2024"}})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}

	body := readBody(t, ts.get(t, "/"))
	if !strings.Contains(body, "Footclan") {
		t.Errorf("season switch should keep following the league by name")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp := ts.postForm(t, "/logout", url.Values{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}

	after := ts.get(t, "/")
	defer after.Body.Close()
	if after.StatusCode != http.StatusSeeOther {
		t.Errorf("dashboard should redirect after logout, got: %d", after.StatusCode)
	}
}
