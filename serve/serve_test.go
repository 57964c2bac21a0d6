package serve

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ardnew/slab/lang"
	"github.com/ardnew/slab/scope"
)

func staticSource(t *testing.T, tmpl, data string) Source {
	t.Helper()

	v, err := scope.DecodeJSON([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	return SourceFunc(func(context.Context) (string, scope.Value, error) {
		return tmpl, v, nil
	})
}

func get(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	return rec
}

func TestServer_Index(t *testing.T) {
	lang.ClearCache()

	s := New(staticSource(t, `<h1>!{title}!</h1>`, `{"title":"Hi & bye"}`))
	rec := get(t, s.Handler(), http.MethodGet, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	if rec.Header().Get("Cache-Control") == "" {
		t.Error("missing Cache-Control")
	}

	if got := rec.Body.String(); got != "<h1>Hi &amp; bye</h1>" {
		t.Errorf("body = %q", got)
	}
}

func TestServer_Tree(t *testing.T) {
	s := New(staticSource(t, `<ul><slk-each data="xs" as="x"><li>!{x}!</li></slk-each></ul>`, `{"xs":[1,2]}`))
	rec := get(t, s.Handler(), http.MethodGet, "/tree")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	var tree map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &tree); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if tree["tag"] != "ul" {
		t.Errorf("root tag = %v", tree["tag"])
	}
}

func TestServer_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want string
	}{
		{
			name: "parse error with snippet",
			src:  staticSource(t, "<div>x</span>", `{}`),
			want: "expected div, found span",
		},
		{
			name: "directive error",
			src:  staticSource(t, `<slk-each data="x" as="y"><a>1</a><b>2</b></slk-each>`, `{"x":[1]}`),
			want: "more than one child",
		},
		{
			name: "load error",
			src: SourceFunc(func(context.Context) (string, scope.Value, error) {
				return "", scope.Value{}, errors.New("template missing")
			}),
			want: "template missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, New(tt.src).Handler(), http.MethodGet, "/")

			if rec.Code != http.StatusInternalServerError {
				t.Errorf("status = %d", rec.Code)
			}

			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body %q missing %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestServer_Routes(t *testing.T) {
	h := New(staticSource(t, "x", `{}`)).Handler()

	if rec := get(t, h, http.MethodPost, "/"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST / status = %d", rec.Code)
	}

	if rec := get(t, h, http.MethodGet, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope status = %d", rec.Code)
	}
}

func TestServer_ReloadsEachRequest(t *testing.T) {
	var n atomic.Int64

	src := SourceFunc(func(context.Context) (string, scope.Value, error) {
		return "<p>!{n}!</p>", scope.ObjectOf(scope.Member{Key: "n", Value: scope.NumberOf(float64(n.Add(1)))}), nil
	})

	h := New(src).Handler()

	for _, want := range []string{"<p>1</p>", "<p>2</p>"} {
		if body := get(t, h, http.MethodGet, "/").Body.String(); body != want {
			t.Errorf("body = %q, want %q", body, want)
		}
	}
}

func TestServer_EditsDoNotGrowCache(t *testing.T) {
	lang.ClearCache()

	var n atomic.Int64

	// Each load returns a different source, as if the file were edited.
	src := SourceFunc(func(context.Context) (string, scope.Value, error) {
		return "<p>edit " + strconv.FormatInt(n.Add(1), 10) + "</p>", scope.ObjectOf(), nil
	})

	h := New(src).Handler()

	for range 5 {
		if rec := get(t, h, http.MethodGet, "/"); rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body)
		}
	}

	if got := lang.CacheSize(); got != 0 {
		t.Errorf("CacheSize() = %d after edits, want 0", got)
	}
}

func TestServer_Serve_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- New(staticSource(t, "<b>up</b>", `{}`)).Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		cancel()
		t.Fatal(err)
	}

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if string(body) != "<b>up</b>" {
		t.Errorf("body = %q", body)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v after cancel", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
