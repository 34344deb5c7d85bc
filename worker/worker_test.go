package worker

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"garim-lab/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingRefresher struct {
	mu   sync.Mutex
	seen map[model.Category]int
	fail model.Category
}

func (r *countingRefresher) Refresh(_ context.Context, cat model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen == nil {
		r.seen = map[model.Category]int{}
	}
	r.seen[cat]++
	if cat == r.fail {
		return errors.New("upstream down")
	}
	return nil
}

func (r *countingRefresher) count(cat model.Category) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seen[cat]
}

func run(t *testing.T, w Worker) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	t.Cleanup(cancel)
	return cancel, done
}

func TestFeedWarmerRefreshesEveryCategory(t *testing.T) {
	r := &countingRefresher{fail: model.CategorySociety}
	cancel, done := run(t, &FeedWarmer{Feed: r, Interval: 10 * time.Millisecond})

	require.Eventually(t, func() bool {
		return r.count(model.CategoryPolitics) >= 2 && r.count(model.CategoryEconomy) >= 2
	}, time.Second, 5*time.Millisecond)
	// a failing category does not stop the loop
	assert.GreaterOrEqual(t, r.count(model.CategorySociety), 1)

	cancel()
	assert.NoError(t, <-done)
}

type countingEvicter struct {
	calls atomic.Int32
	idle  atomic.Int64
}

func (e *countingEvicter) Evict(idle time.Duration) int {
	e.calls.Add(1)
	e.idle.Store(int64(idle))
	return 1
}

func TestSessionJanitorEvictsOnInterval(t *testing.T) {
	e := &countingEvicter{}
	cancel, done := run(t, &SessionJanitor{Sessions: e, IdleTTL: time.Hour, Interval: 5 * time.Millisecond})

	require.Eventually(t, func() bool { return e.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(time.Hour), e.idle.Load())

	cancel()
	assert.NoError(t, <-done)
}

type workerFunc func(ctx context.Context) error

func (f workerFunc) Start(ctx context.Context) error { return f(ctx) }

func TestManagerStopsOnWorkerError(t *testing.T) {
	boom := errors.New("bind failed")
	var stopped atomic.Bool
	mgr := NewManager(
		workerFunc(func(context.Context) error { return boom }),
		workerFunc(func(ctx context.Context) error {
			<-ctx.Done()
			stopped.Store(true)
			return nil
		}),
	)
	err := mgr.Start(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.True(t, stopped.Load())
}

func TestManagerReturnsNilOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mgr := NewManager(workerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}))
	cancel()
	assert.NoError(t, mgr.Start(ctx))
}

func TestHTTPServerServesUntilCancelled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	cancel, done := run(t, &HTTPServer{Handler: h, Listener: ln})

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	assert.NoError(t, <-done)
}

func TestHTTPServerReportsBindError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	w := &HTTPServer{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	assert.Error(t, w.Start(context.Background()))
}
