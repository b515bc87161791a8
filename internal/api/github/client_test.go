package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, "test-token", 5*time.Second, zap.NewNop())
}

func TestSearchUsers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/users" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "language:go type:user" {
			t.Errorf("q = %q", got)
		}

		w.Header().Set("X-RateLimit-Remaining", "27")
		w.Write([]byte(`{"total_count":2,"items":[{"login":"alice"},{"login":"bob"}]}`))
	})

	usernames, err := client.SearchUsers(context.Background(), "language:go type:user")
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}

	if len(usernames) != 2 || usernames[0] != "alice" || usernames[1] != "bob" {
		t.Errorf("usernames = %v", usernames)
	}

	if got := client.RemainingRequests(); got != 27 {
		t.Errorf("RemainingRequests = %d, want 27", got)
	}
}

func TestSearchUsers_EmptyIsSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"total_count":0,"items":[]}`))
	})

	usernames, err := client.SearchUsers(context.Background(), "language:cobol")
	if err != nil {
		t.Fatalf("zero results must not be an error: %v", err)
	}
	if len(usernames) != 0 {
		t.Errorf("usernames = %v, want empty", usernames)
	}
}

func TestGetProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/alice" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"login":"alice","bio":"gopher","location":"Berlin","followers":12,"public_repos":4,"created_at":"2019-05-01T00:00:00Z"}`))
	})

	profile, err := client.GetProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile == nil || profile.Login != "alice" || profile.Location != "Berlin" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestGetProfile_NotFoundIsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	})

	profile, err := client.GetProfile(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("not-found must not be an error: %v", err)
	}
	if profile != nil {
		t.Errorf("profile = %+v, want nil", profile)
	}
}

func TestGetProfile_TransportFailureIsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // force connection errors

	client := New(server.URL, "", 200*time.Millisecond, zap.NewNop())

	profile, err := client.GetProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("transport failure must normalize to nil: %v", err)
	}
	if profile != nil {
		t.Errorf("profile = %+v, want nil", profile)
	}
}

func TestGetRepos_FiltersNothingClientSide(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/alice/repos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"name":"svc","language":"Go","stargazers_count":7,"fork":false},{"name":"fork","fork":true}]`))
	})

	repos, err := client.GetRepos(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetRepos: %v", err)
	}
	if len(repos) != 2 {
		t.Errorf("repos = %+v, client must return forks too", repos)
	}
}

func TestGetRecentContributions_CountsPushLikeEvents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"type":"PushEvent"},{"type":"WatchEvent"},{"type":"PullRequestEvent"},{"type":"PushEvent"}]`))
	})

	count, err := client.GetRecentContributions(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetRecentContributions: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestRetry_EventuallySucceeds(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"total_count":0,"items":[]}`))
	})

	if _, err := client.SearchUsers(context.Background(), "q"); err != nil {
		t.Fatalf("SearchUsers after retry: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}
