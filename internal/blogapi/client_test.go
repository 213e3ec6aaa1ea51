package blogapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "localhost:3003" {
		t.Fatalf("default url = %q, want http://localhost:3003", u.String())
	}

	u, err = parseBaseURL("localhost:3001")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != "http://localhost:3001" {
		t.Fatalf("url = %q, want http://localhost:3001", u.String())
	}

	u, err = parseBaseURL("https://blogs.example.com/app?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.Scheme != "https" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

type recordedRequest struct {
	Method    string
	Path      string
	Auth      string
	RequestID string
	UserAgent string
	Body      string
}

func newRecordingServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Auth:      r.Header.Get("Authorization"),
			RequestID: r.Header.Get("X-Request-ID"),
			UserAgent: r.Header.Get("User-Agent"),
			Body:      string(body),
		})
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func TestClient_ReadsAreAnonymous(t *testing.T) {
	t.Parallel()

	server, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/blogs":
			_ = json.NewEncoder(w).Encode([]Post{{
				ID: "p1", Title: "Go", Author: "Rob", URL: "https://go.dev", Likes: 3,
				Comments: []string{"nice"},
				User:     &PostOwner{ID: "u1", Username: "rob", Name: "Rob Pike"},
			}})
		case "/api/users":
			_ = json.NewEncoder(w).Encode([]Author{{
				ID: "u1", Username: "rob", Name: "Rob Pike",
				Posts: []PostRef{{ID: "p1", Title: "Go"}},
			}})
		default:
			http.NotFound(w, r)
		}
	})

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetToken("secret")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	posts, err := c.FetchPosts(ctx)
	if err != nil {
		t.Fatalf("FetchPosts returned error: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "p1" || posts[0].Likes != 3 || posts[0].OwnerName() != "Rob Pike" {
		t.Fatalf("FetchPosts = %#v, want one post p1", posts)
	}

	authors, err := c.FetchAuthors(ctx)
	if err != nil {
		t.Fatalf("FetchAuthors returned error: %v", err)
	}
	if len(authors) != 1 || len(authors[0].Posts) != 1 || authors[0].Posts[0].Title != "Go" {
		t.Fatalf("FetchAuthors = %#v, want rob with one post", authors)
	}

	for _, req := range requests() {
		if req.Auth != "" {
			t.Fatalf("%s %s sent Authorization %q, want none", req.Method, req.Path, req.Auth)
		}
		if req.RequestID == "" {
			t.Fatalf("%s %s missing X-Request-ID", req.Method, req.Path)
		}
		if !strings.HasPrefix(req.UserAgent, "bloglist/") {
			t.Fatalf("User-Agent = %q, want bloglist/*", req.UserAgent)
		}
	}
}

func TestClient_MutationsCarryBearerToken(t *testing.T) {
	t.Parallel()

	server, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/blogs":
			_ = json.NewEncoder(w).Encode(Post{ID: "new", Title: "T", Author: "A", URL: "u"})
		case r.Method == http.MethodPut && r.URL.Path == "/api/blogs/new":
			_ = json.NewEncoder(w).Encode(Post{ID: "new", Likes: 1})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/blogs/new":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/api/blogs/new/comments":
			w.WriteHeader(http.StatusCreated)
		default:
			http.NotFound(w, r)
		}
	})

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetToken("  tok123 ")
	ctx := context.Background()

	created, err := c.CreatePost(ctx, NewPost{Title: "T", Author: "A", URL: "u"})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if created.ID != "new" {
		t.Fatalf("CreatePost ID = %q, want new", created.ID)
	}
	if _, err := c.UpdatePost(ctx, "new", nil); err != nil {
		t.Fatalf("UpdatePost returned error: %v", err)
	}
	if err := c.AddComment(ctx, "new", "first!"); err != nil {
		t.Fatalf("AddComment returned error: %v", err)
	}
	if err := c.DeletePost(ctx, "new"); err != nil {
		t.Fatalf("DeletePost returned error: %v", err)
	}

	reqs := requests()
	if len(reqs) != 4 {
		t.Fatalf("recorded %d requests, want 4", len(reqs))
	}
	wantAuth := map[string]string{
		"POST /api/blogs":              "Bearer tok123",
		"PUT /api/blogs/new":           "Bearer tok123",
		"POST /api/blogs/new/comments": "",
		"DELETE /api/blogs/new":        "Bearer tok123",
	}
	for _, req := range reqs {
		key := req.Method + " " + req.Path
		want, ok := wantAuth[key]
		if !ok {
			t.Fatalf("unexpected request %s", key)
		}
		if req.Auth != want {
			t.Fatalf("%s Authorization = %q, want %q", key, req.Auth, want)
		}
	}
	if reqs[0].Body != `{"title":"T","author":"A","url":"u"}` {
		t.Fatalf("create body = %s", reqs[0].Body)
	}
	if reqs[1].Body != "" {
		t.Fatalf("like update sent body %q, want none", reqs[1].Body)
	}
	if reqs[2].Body != `{"comment":"first!"}` {
		t.Fatalf("comment body = %s", reqs[2].Body)
	}
}

func TestClient_NoTokenSendsNoHeader(t *testing.T) {
	server, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"token missing"}`, http.StatusUnauthorized)
	})

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetToken("tok")
	c.SetToken("")

	_, err = c.CreatePost(context.Background(), NewPost{Title: "x", URL: "y"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("CreatePost error = %v, want ErrUnauthorized", err)
	}
	if got := requests()[0].Auth; got != "" {
		t.Fatalf("Authorization = %q, want none", got)
	}
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	server, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(LoginResponse{Token: "tok", Username: "mluukkai", Name: "Matti Luukkainen"})
	})

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	resp, err := c.Login(context.Background(), Credentials{Username: "mluukkai", Password: "salainen"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Token != "tok" || resp.Name != "Matti Luukkainen" {
		t.Fatalf("Login = %#v", resp)
	}
	if body := requests()[0].Body; body != `{"username":"mluukkai","password":"salainen"}` {
		t.Fatalf("login body = %s", body)
	}
}

func TestClient_LoginWithoutTokenFails(t *testing.T) {
	server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"username":"x"}`))
	})
	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Login(context.Background(), Credentials{Username: "x", Password: "y"}); err == nil {
		t.Fatalf("Login returned nil error, want missing token error")
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/blogs":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/api/users":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	})

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchPosts(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchPosts error = %v, want decode response error", err)
	}

	_, err = c.FetchAuthors(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchAuthors error = %v, want status 500 error", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("FetchAuthors error = %#v, want *StatusError 500", err)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatalf("500 must not match ErrUnauthorized")
	}
}

func TestClient_RequiresPostID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()
	if _, err := c.UpdatePost(ctx, " ", nil); err == nil {
		t.Fatalf("UpdatePost returned nil error, want id required")
	}
	if err := c.DeletePost(ctx, ""); err == nil {
		t.Fatalf("DeletePost returned nil error, want id required")
	}
	if err := c.AddComment(ctx, "", "hi"); err == nil {
		t.Fatalf("AddComment returned nil error, want id required")
	}
}
