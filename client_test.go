package casdoor

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casdoor/casdoor-go-client/config"
)

const (
	testEndpoint   = "https://id.example.com"
	testCredential = "Basic Y2xpZW50OnNlY3JldA==" // client:secret
)

type fakeCall struct {
	method     string
	url        string
	credential string
	form       map[string]string
	body       string
	filePath   string
}

// fakeTransport answers every call with reply/err and records what it saw.
type fakeTransport struct {
	reply string
	err   error

	mu    sync.Mutex
	calls []fakeCall
}

func (f *fakeTransport) record(call fakeCall) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.reply), nil
}

func (f *fakeTransport) Get(_ context.Context, url, credential string) ([]byte, error) {
	return f.record(fakeCall{method: http.MethodGet, url: url, credential: credential})
}

func (f *fakeTransport) PostForm(_ context.Context, url string, form map[string]string, credential string) ([]byte, error) {
	return f.record(fakeCall{method: "POST form", url: url, credential: credential, form: form})
}

func (f *fakeTransport) PostString(_ context.Context, url, body, credential string) ([]byte, error) {
	return f.record(fakeCall{method: "POST raw", url: url, credential: credential, body: body})
}

func (f *fakeTransport) PostFile(_ context.Context, url, filePath, credential string) ([]byte, error) {
	return f.record(fakeCall{method: "POST file", url: url, credential: credential, filePath: filePath})
}

func (f *fakeTransport) lastCall(t *testing.T) fakeCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls, "transport was not called")
	return f.calls[len(f.calls)-1]
}

type testUser struct {
	Name string `json:"name"`
}

func newTestClient(t *testing.T, endpoint string, opts ...Option) *Client {
	t.Helper()

	cfg, err := config.New(endpoint, "client", "secret")
	require.NoError(t, err)

	c, err := New(cfg, opts...)
	require.NoError(t, err)
	return c
}

func TestClient_URL(t *testing.T) {
	c := newTestClient(t, testEndpoint)

	testCases := []struct {
		name     string
		action   string
		query    map[string]string
		expected string
	}{
		{
			name:     "it appends the encoded query",
			action:   "get-user",
			query:    map[string]string{"id": "123"},
			expected: "https://id.example.com/api/get-user?id=123",
		},
		{
			name:     "it keeps a trailing question mark for an empty query",
			action:   "get-users",
			query:    map[string]string{},
			expected: "https://id.example.com/api/get-users?",
		},
		{
			name:     "it keeps a trailing question mark for a nil query",
			action:   "get-users",
			expected: "https://id.example.com/api/get-users?",
		},
		{
			name:     "it escapes keys and values",
			action:   "get-user",
			query:    map[string]string{"id": "built-in/alice", "e mail": "a+b@example.com"},
			expected: "https://id.example.com/api/get-user?e+mail=a%2Bb%40example.com&id=built-in%2Falice",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, c.URL(testCase.action, testCase.query))
		})
	}
}

func TestGet(t *testing.T) {
	t.Run("it returns the decoded payload on success", func(t *testing.T) {
		ft := &fakeTransport{reply: `{"status":"ok","msg":"","data":{"name":"alice"}}`}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		resp, err := Get[testUser, any](context.Background(), c, "get-user", map[string]string{"id": "123"})
		require.NoError(t, err)

		assert.Equal(t, "alice", resp.Data.Name)
		assert.Nil(t, resp.Data2)

		call := ft.lastCall(t)
		assert.Equal(t, http.MethodGet, call.method)
		assert.Equal(t, "https://id.example.com/api/get-user?id=123", call.url)
		assert.Equal(t, testCredential, call.credential)
	})

	t.Run("it ignores fields it does not know", func(t *testing.T) {
		ft := &fakeTransport{reply: `{"status":"ok","msg":"","data":{"name":"alice","karma":9000},"data2":[1,2],"extra":{"nested":true}}`}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		resp, err := Get[testUser, []int](context.Background(), c, "get-user", nil)
		require.NoError(t, err)

		if diff := cmp.Diff(&Response[testUser, []int]{Data: testUser{Name: "alice"}, Data2: []int{1, 2}}, resp); diff != "" {
			t.Errorf("unexpected response (-want +got):\n%s", diff)
		}
	})

	t.Run("it leaves absent payloads at their zero value", func(t *testing.T) {
		ft := &fakeTransport{reply: `{"status":"ok","msg":"done","data":null}`}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		resp, err := Get[testUser, string](context.Background(), c, "get-user", nil)
		require.NoError(t, err)

		assert.Equal(t, "done", resp.Msg)
		assert.Equal(t, testUser{}, resp.Data)
		assert.Equal(t, "", resp.Data2)
	})

	t.Run("it fails with an api call error when status is not ok", func(t *testing.T) {
		ft := &fakeTransport{reply: `{"status":"error","msg":"user not found"}`}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		resp, err := Get[testUser, any](context.Background(), c, "get-user", map[string]string{"id": "123"})
		require.Error(t, err)
		assert.Nil(t, resp)

		assert.ErrorIs(t, err, ErrAPICall)
		assert.NotErrorIs(t, err, ErrTransport)
		assert.EqualError(t, err, "Failed fetching https://id.example.com/api/get-user?id=123 : user not found")

		var apiErr *APICallError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "error", apiErr.Status)
		assert.Equal(t, "user not found", apiErr.Msg)
		assert.Equal(t, "https://id.example.com/api/get-user?id=123", apiErr.URL)
	})

	t.Run("it reports the api error even when data does not fit the success shape", func(t *testing.T) {
		ft := &fakeTransport{reply: `{"status":"error","msg":"Unauthorized operation","data":"","data2":false}`}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		_, err := Get[testUser, []string](context.Background(), c, "get-user", nil)
		assert.ErrorIs(t, err, ErrAPICall)
		assert.Contains(t, err.Error(), "Unauthorized operation")
	})

	t.Run("it treats a missing status as a failure", func(t *testing.T) {
		ft := &fakeTransport{reply: `{"data":{"name":"alice"}}`}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		_, err := Get[testUser, any](context.Background(), c, "get-user", nil)
		assert.ErrorIs(t, err, ErrAPICall)
	})

	t.Run("it fails with a transport error on malformed json", func(t *testing.T) {
		ft := &fakeTransport{reply: `<html>502 Bad Gateway</html>`}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		_, err := Get[testUser, any](context.Background(), c, "get-user", nil)
		assert.ErrorIs(t, err, ErrTransport)
		assert.NotErrorIs(t, err, ErrAPICall)
	})

	t.Run("it fails with a transport error when data does not decode", func(t *testing.T) {
		ft := &fakeTransport{reply: `{"status":"ok","data":"not an object"}`}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		_, err := Get[testUser, any](context.Background(), c, "get-user", nil)
		assert.ErrorIs(t, err, ErrTransport)
		assert.Contains(t, err.Error(), "could not decode data")
	})

	t.Run("it wraps transport failures unchanged", func(t *testing.T) {
		ioErr := errors.New("connection reset by peer")
		ft := &fakeTransport{err: ioErr}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		_, err := Get[testUser, any](context.Background(), c, "get-user", nil)
		assert.ErrorIs(t, err, ErrTransport)
		assert.ErrorIs(t, err, ioErr)

		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.Equal(t, "https://id.example.com/api/get-user?", transportErr.URL)
	})

	t.Run("it reports cancellation", func(t *testing.T) {
		ft := &fakeTransport{err: context.Canceled}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		_, err := Get[testUser, any](context.Background(), c, "get-user", nil)
		assert.True(t, IsCanceled(err))
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("it rejects an empty action without calling the transport", func(t *testing.T) {
		ft := &fakeTransport{reply: `{"status":"ok"}`}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		_, err := Get[testUser, any](context.Background(), c, "", nil)
		assert.ErrorIs(t, err, ErrActionRequired)
		assert.Empty(t, ft.calls)
	})
}

func TestPostVariants(t *testing.T) {
	const reply = `{"status":"ok","msg":"","data":"Affected"}`

	t.Run("PostForm passes the form fields", func(t *testing.T) {
		ft := &fakeTransport{reply: reply}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		resp, err := PostForm[string, any](context.Background(), c, "set-password", nil, map[string]string{"name": "bob"})
		require.NoError(t, err)
		assert.Equal(t, "Affected", resp.Data)

		call := ft.lastCall(t)
		assert.Equal(t, "POST form", call.method)
		assert.Equal(t, "https://id.example.com/api/set-password?", call.url)
		assert.Equal(t, map[string]string{"name": "bob"}, call.form)
		assert.Equal(t, testCredential, call.credential)
	})

	t.Run("PostRawBody passes the body verbatim", func(t *testing.T) {
		ft := &fakeTransport{reply: reply}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		_, err := PostRawBody[string, any](context.Background(), c, "add-user", map[string]string{"id": "built-in/bob"}, `{"name":"bob"}`)
		require.NoError(t, err)

		call := ft.lastCall(t)
		assert.Equal(t, "POST raw", call.method)
		assert.Equal(t, "https://id.example.com/api/add-user?id=built-in%2Fbob", call.url)
		assert.Equal(t, `{"name":"bob"}`, call.body)
	})

	t.Run("PostFile passes the file path", func(t *testing.T) {
		ft := &fakeTransport{reply: `{"status":"ok","data":"https://cdn.example.com/a.png","data2":"a.png"}`}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		resp, err := PostFile[string, string](context.Background(), c, "upload-resource", nil, "/tmp/a.png")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/a.png", resp.Data)
		assert.Equal(t, "a.png", resp.Data2)

		call := ft.lastCall(t)
		assert.Equal(t, "POST file", call.method)
		assert.Equal(t, "/tmp/a.png", call.filePath)
	})

	t.Run("post variants report api errors", func(t *testing.T) {
		ft := &fakeTransport{reply: `{"status":"error","msg":"Please login first"}`}
		c := newTestClient(t, testEndpoint, WithTransport(ft))

		_, err := PostForm[string, any](context.Background(), c, "set-password", nil, nil)
		assert.ErrorIs(t, err, ErrAPICall)
		_, err = PostRawBody[string, any](context.Background(), c, "add-user", nil, "{}")
		assert.ErrorIs(t, err, ErrAPICall)
		_, err = PostFile[string, any](context.Background(), c, "upload-resource", nil, "/tmp/a.png")
		assert.ErrorIs(t, err, ErrAPICall)
	})
}

// TestClient_OverHTTP runs every request shape against a real server through
// the default transport.
func TestClient_OverHTTP(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []*http.Request
		body []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		seen = append(seen, r)
		body = append(body, string(b))
		mu.Unlock()
		_, _ = w.Write([]byte(`{"status":"ok","msg":"","data":{"name":"alice"}}`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	ctx := context.Background()

	_, err := Get[testUser, any](ctx, c, "get-user", map[string]string{"id": "123"})
	require.NoError(t, err)

	_, err = PostForm[testUser, any](ctx, c, "update-user", nil, map[string]string{"name": "bob"})
	require.NoError(t, err)

	_, err = PostRawBody[testUser, any](ctx, c, "add-user", nil, `{"name":"carol"}`)
	require.NoError(t, err)

	filePath := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("hello"), 0o600))
	_, err = PostFile[testUser, any](ctx, c, "upload-resource", nil, filePath)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 4)

	for _, r := range seen {
		assert.Equal(t, testCredential, r.Header.Get("Authorization"))
	}

	assert.Equal(t, http.MethodGet, seen[0].Method)
	assert.Equal(t, "/api/get-user?id=123", seen[0].URL.RequestURI())

	assert.Equal(t, http.MethodPost, seen[1].Method)
	assert.Equal(t, "/api/update-user", seen[1].URL.Path)
	assert.Equal(t, "application/x-www-form-urlencoded", seen[1].Header.Get("Content-Type"))
	assert.Equal(t, "name=bob", body[1])

	assert.Equal(t, `{"name":"carol"}`, body[2])

	assert.Contains(t, seen[3].Header.Get("Content-Type"), "multipart/form-data")
	assert.Contains(t, body[3], `filename="notes.txt"`)
	assert.Contains(t, body[3], "hello")
}

func TestClient_ConcurrentCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","data":{"name":"` + r.URL.Query().Get("id") + `"}}`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)

	names := []string{"alice", "bob", "carol", "dave", "erin", "frank", "grace", "heidi"}
	var wg sync.WaitGroup
	errs := make([]error, len(names))
	got := make([]string, len(names))
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			resp, err := Get[testUser, any](context.Background(), c, "get-user", map[string]string{"id": name})
			errs[i] = err
			if err == nil {
				got[i] = resp.Data.Name
			}
		}(i, name)
	}
	wg.Wait()

	for i := range names {
		assert.NoError(t, errs[i])
	}
	assert.Equal(t, names, got)
}

func TestClient_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(reg)

	ft := &fakeTransport{reply: `{"status":"ok"}`}
	c := newTestClient(t, testEndpoint, WithTransport(ft), WithMetrics(metrics))

	_, err := Get[any, any](context.Background(), c, "get-user", nil)
	require.NoError(t, err)
	_, err = Get[any, any](context.Background(), c, "get-user", nil)
	require.NoError(t, err)

	ft.reply = `{"status":"error","msg":"nope"}`
	_, err = Get[any, any](context.Background(), c, "get-user", nil)
	require.Error(t, err)

	counter := metrics.counters[MetricRequestsTotal]
	require.NotNil(t, counter)
	assert.Equal(t, float64(2), testutil.ToFloat64(counter.With(prometheus.Labels{
		"action": "get-user", "method": http.MethodGet, "outcome": outcomeOK,
	})))
	assert.Equal(t, float64(1), testutil.ToFloat64(counter.With(prometheus.Labels{
		"action": "get-user", "method": http.MethodGet, "outcome": outcomeAPIError,
	})))
	assert.NotNil(t, metrics.histograms[MetricRequestDuration])
}

func TestNew(t *testing.T) {
	cfg, err := config.New(testEndpoint, "client", "secret")
	require.NoError(t, err)

	t.Run("it derives the basic credential once", func(t *testing.T) {
		c, err := New(cfg)
		require.NoError(t, err)
		assert.Equal(t, testCredential, c.credential)
		assert.Equal(t, cfg, c.Config())
	})

	t.Run("it rejects an invalid config", func(t *testing.T) {
		_, err := New(config.Config{Endpoint: testEndpoint})
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("it builds a debug transport", func(t *testing.T) {
		c, err := New(cfg, WithDebug(true), WithLogger(NoopLogger{}))
		require.NoError(t, err)
		assert.NotNil(t, c.transport)
	})
}

func TestBasicCredential(t *testing.T) {
	assert.Equal(t, "Basic dXNlcjpwYXNz", BasicCredential("user", "pass"))
	assert.Equal(t, "Basic OmNvbG9uOnNlY3JldA==", BasicCredential(":colon", "secret"))
}
