package harness

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lainio/err2/assert"
)

type handle string

func (h handle) IssuerDID() string { return string(h) }
func (h handle) Close() error      { return nil }

func TestAgent_Status(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	ctx := context.Background()
	a := New(0)
	data, err := a.StatusJSON(ctx)
	assert.NoError(err)
	assert.Equal(string(data), `{"status":"not started"}`)

	assert.NoError(a.SetStatus(ctx, Initializing))
	data, err = a.StatusJSON(ctx)
	assert.NoError(err)
	assert.Equal(string(data), `{"status":"initializing"}`)
}

func TestAgent_PublicDID(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	ctx := context.Background()
	a := New(0)
	_, err := a.PublicDIDJSON(ctx)
	assert.That(errors.Is(err, ErrNotReady))

	assert.NoError(a.Attach(ctx, handle("Th7MpTaRZVRYnPiabds81Y")))
	data, err := a.PublicDIDJSON(ctx)
	assert.NoError(err)
	assert.Equal(string(data), `{"did":"Th7MpTaRZVRYnPiabds81Y"}`)

	data, err = a.StatusJSON(ctx)
	assert.NoError(err)
	assert.Equal(string(data), `{"status":"ready"}`)

	h, err := a.Detach(ctx)
	assert.NoError(err)
	assert.Equal(h.IssuerDID(), "Th7MpTaRZVRYnPiabds81Y")
	_, err = a.PublicDIDJSON(ctx)
	assert.That(errors.Is(err, ErrNotReady))
}

func TestAgent_Busy(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	ctx := context.Background()
	a := New(20 * time.Millisecond)

	holding := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = a.With(ctx, func(*State) error {
			close(holding)
			<-done
			return nil
		})
	}()
	<-holding

	_, err := a.StatusJSON(ctx)
	assert.That(errors.Is(err, ErrBusy))
	close(done)
}

func TestAgent_ContextCancelled(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := New(time.Minute)
	a.access <- struct{}{} // hold

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.StatusJSON(ctx)
	assert.That(errors.Is(err, context.Canceled))
}

func TestAgent_Exclusive(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	ctx := context.Background()
	a := New(time.Minute)

	var (
		wg     sync.WaitGroup
		inside int
		max    int
		mu     sync.Mutex
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = a.With(ctx, func(*State) error {
				mu.Lock()
				inside++
				if inside > max {
					max = inside
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(max, 1)
}
