package exapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpstream struct {
	mu       sync.Mutex
	requests []map[string]string
	handler  func(pageNo int) string
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f.mu.Lock()
	f.requests = append(f.requests, map[string]string{
		"path":      r.URL.Path,
		"key":       q.Get("key"),
		"type":      q.Get("type"),
		"numOfRows": q.Get("numOfRows"),
		"pageNo":    q.Get("pageNo"),
	})
	f.mu.Unlock()

	pageNo, _ := strconv.Atoi(q.Get("pageNo"))
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(f.handler(pageNo)))
}

func (f *fakeUpstream) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func page(t *testing.T, code string, count any, rows int, offset int) string {
	t.Helper()
	list := make([]map[string]any, rows)
	for i := range list {
		list[i] = map[string]any{"stdRestCd": fmt.Sprintf("%06d", offset+i), "unitName": "휴게소"}
	}
	body := map[string]any{"code": code, "message": "인증키가 유효합니다.", "list": list}
	if count != nil {
		body["count"] = count
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return string(data)
}

func newTestClient(t *testing.T, up *fakeUpstream, pageSize int, sleeps *[]time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)
	return NewClient("test-key",
		WithBaseURL(srv.URL),
		WithPageSize(pageSize),
		WithSleeper(func(_ context.Context, d time.Duration) error {
			if sleeps != nil {
				*sleeps = append(*sleeps, d)
			}
			return nil
		}),
	)
}

func TestFetchAll_ShortPageStops(t *testing.T) {
	up := &fakeUpstream{}
	up.handler = func(pageNo int) string {
		switch pageNo {
		case 1:
			return page(t, "SUCCESS", nil, 3, 0)
		case 2:
			return page(t, "SUCCESS", nil, 1, 3)
		default:
			t.Errorf("unexpected page %d", pageNo)
			return page(t, "SUCCESS", nil, 0, 0)
		}
	}
	var sleeps []time.Duration
	c := newTestClient(t, up, 3, &sleeps)

	got, err := c.Locations(context.Background())
	require.NoError(t, err)

	assert.Len(t, got, 4)
	assert.Equal(t, "000003", got[3].StdRestCd.String())
	assert.Equal(t, 2, up.count())
	assert.Equal(t, []time.Duration{DefaultPageDelay}, sleeps, "one delay between the two pages, none after the last")
}

func TestFetchAll_QueryParameters(t *testing.T) {
	up := &fakeUpstream{handler: func(int) string { return page(t, "SUCCESS", nil, 1, 0) }}
	c := newTestClient(t, up, 99, nil)

	_, err := c.Brands(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, up.count())
	req := up.requests[0]
	assert.Equal(t, "/"+EndpointBrands, req["path"])
	assert.Equal(t, "test-key", req["key"])
	assert.Equal(t, "json", req["type"])
	assert.Equal(t, "99", req["numOfRows"])
	assert.Equal(t, "1", req["pageNo"])
}

func TestFetchAll_CountReached(t *testing.T) {
	up := &fakeUpstream{handler: func(pageNo int) string {
		return page(t, "SUCCESS", "4", 2, (pageNo-1)*2)
	}}
	c := newTestClient(t, up, 2, nil)

	got, err := c.BestFoods(context.Background())
	require.NoError(t, err)

	assert.Len(t, got, 4)
	assert.Equal(t, 2, up.count())
}

func TestFetchAll_EmptyPageStops(t *testing.T) {
	up := &fakeUpstream{handler: func(pageNo int) string {
		if pageNo == 1 {
			return page(t, "SUCCESS", nil, 2, 0)
		}
		return `{"code":"SUCCESS","list":null}`
	}}
	c := newTestClient(t, up, 2, nil)

	got, err := c.Conveniences(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, up.count())
}

func TestFetchAll_HTMLBodyReturnsPriorPages(t *testing.T) {
	up := &fakeUpstream{handler: func(pageNo int) string {
		if pageNo == 1 {
			return page(t, "SUCCESS", nil, 2, 0)
		}
		return "<html><body>Service Unavailable</body></html>"
	}}
	c := newTestClient(t, up, 2, nil)

	got, err := c.Locations(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, up.count())
}

func TestFetchAll_NonSuccessCode(t *testing.T) {
	up := &fakeUpstream{handler: func(int) string {
		return `{"code":"ERROR","message":"인증키가 유효하지 않습니다."}`
	}}
	c := newTestClient(t, up, 2, nil)

	got, err := c.Locations(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamStatus)
	assert.Contains(t, err.Error(), "인증키가 유효하지 않습니다.")
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFetchAll_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient("k", WithBaseURL(url), WithTimeout(time.Second))
	got, err := c.Locations(context.Background())
	require.Error(t, err)
	assert.Empty(t, got)
}

func TestFetchAll_SleepCancelled(t *testing.T) {
	up := &fakeUpstream{handler: func(pageNo int) string { return page(t, "SUCCESS", nil, 2, (pageNo-1)*2) }}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient("k",
		WithBaseURL(srv.URL),
		WithPageSize(2),
		WithSleeper(func(context.Context, time.Duration) error {
			cancel()
			return context.Canceled
		}),
	)

	got, err := c.Locations(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, got, 2)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), 0))
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}

func TestNewClient_PacingBounds(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		pageDelay time.Duration
		timeout   time.Duration
	}{
		{"defaults", nil, DefaultPageDelay, DefaultTimeout},
		{"zero delay raised", []Option{WithPageDelay(0)}, MinPageDelay, DefaultTimeout},
		{"short delay raised", []Option{WithPageDelay(100 * time.Millisecond)}, MinPageDelay, DefaultTimeout},
		{"longer delay kept", []Option{WithPageDelay(2 * time.Second)}, 2 * time.Second, DefaultTimeout},
		{"zero timeout ignored", []Option{WithTimeout(0)}, DefaultPageDelay, DefaultTimeout},
		{"negative timeout ignored", []Option{WithTimeout(-time.Second)}, DefaultPageDelay, DefaultTimeout},
		{"timeout set", []Option{WithTimeout(5 * time.Second)}, DefaultPageDelay, 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient("k", tt.opts...)
			assert.Equal(t, tt.pageDelay, c.PageDelay())
			assert.Equal(t, tt.timeout, c.Timeout())
			assert.Equal(t, tt.timeout, c.http.GetClient().Timeout)
		})
	}
}

func TestFetchAll_ZeroDelayStillPauses(t *testing.T) {
	up := &fakeUpstream{}
	up.handler = func(pageNo int) string {
		if pageNo == 1 {
			return page(t, "SUCCESS", nil, 2, 0)
		}
		return page(t, "SUCCESS", nil, 0, 2)
	}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	var sleeps []time.Duration
	c := NewClient("k",
		WithBaseURL(srv.URL),
		WithPageSize(2),
		WithPageDelay(0),
		WithSleeper(func(_ context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return nil
		}),
	)

	_, err := c.Locations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{MinPageDelay}, sleeps)
}
