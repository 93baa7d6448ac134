/*
Package harness keeps the state the backchannel commands read: the lifecycle
status and the running agent. Every access is exclusive and the waiting for
it is bounded, a request which can't get access in time fails with ErrBusy.
*/
package harness

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/findy-network/findy-backchannel/agent/runtime"
	"github.com/golang/glog"
)

// Status is the lifecycle phase of the harness, it's shown as is.
type Status string

const (
	NotStarted   Status = "not started"
	Initializing Status = "initializing"
	Ready        Status = "ready"
	Failed       Status = "failed"
	ShutDown     Status = "shut down"
)

const DefaultLockTimeout = 5 * time.Second

var (
	ErrBusy     = errors.New("harness busy")
	ErrNotReady = errors.New("agent not ready")
)

type Agent struct {
	access      chan struct{}
	lockTimeout time.Duration

	status Status
	handle runtime.Handle
}

// New returns a harness in NotStarted status. Zero lockTimeout means
// DefaultLockTimeout.
func New(lockTimeout time.Duration) *Agent {
	if lockTimeout == 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &Agent{
		access:      make(chan struct{}, 1),
		lockTimeout: lockTimeout,
		status:      NotStarted,
	}
}

// State is what a holder of the exclusive access sees.
type State struct {
	Status Status
	Handle runtime.Handle
}

// With runs f with exclusive access to the harness state. Changes f makes to
// the State are stored.
func (a *Agent) With(ctx context.Context, f func(s *State) error) error {
	if err := a.acquire(ctx); err != nil {
		return err
	}
	defer a.release()

	s := State{Status: a.status, Handle: a.handle}
	err := f(&s)
	a.status, a.handle = s.Status, s.Handle
	return err
}

func (a *Agent) acquire(ctx context.Context) error {
	timer := time.NewTimer(a.lockTimeout)
	defer timer.Stop()

	select {
	case a.access <- struct{}{}:
		return nil
	case <-timer.C:
		glog.Warningln("harness access timeout after", a.lockTimeout)
		return ErrBusy
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Agent) release() {
	<-a.access
}

// SetStatus moves the harness to status s.
func (a *Agent) SetStatus(ctx context.Context, s Status) error {
	return a.With(ctx, func(st *State) error {
		glog.V(1).Infof("harness status: %s -> %s", st.Status, s)
		st.Status = s
		return nil
	})
}

// Attach stores the running agent and marks the harness Ready.
func (a *Agent) Attach(ctx context.Context, h runtime.Handle) error {
	return a.With(ctx, func(st *State) error {
		st.Handle = h
		st.Status = Ready
		return nil
	})
}

// Detach drops the agent and marks the harness ShutDown. It returns the
// dropped handle, nil if there was none.
func (a *Agent) Detach(ctx context.Context) (h runtime.Handle, err error) {
	err = a.With(ctx, func(st *State) error {
		h = st.Handle
		st.Handle = nil
		st.Status = ShutDown
		return nil
	})
	return h, err
}

// StatusJSON returns {"status": <status>}.
func (a *Agent) StatusJSON(ctx context.Context) (data []byte, err error) {
	err = a.With(ctx, func(st *State) (err error) {
		data, err = json.Marshal(struct {
			Status Status `json:"status"`
		}{st.Status})
		return err
	})
	return data, err
}

// PublicDIDJSON returns {"did": <issuer DID>} of the running agent.
func (a *Agent) PublicDIDJSON(ctx context.Context) (data []byte, err error) {
	err = a.With(ctx, func(st *State) (err error) {
		if st.Handle == nil {
			return ErrNotReady
		}
		data, err = json.Marshal(struct {
			DID string `json:"did"`
		}{st.Handle.IssuerDID()})
		return err
	})
	return data, err
}
