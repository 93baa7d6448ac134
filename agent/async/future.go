/*
Package async reads the findy.Channel results of the ledger, wallet and DID
calls. A Future blocks on the first read and keeps the result for later ones.
*/
package async

import (
	"sync"

	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/dto"
)

type Future struct {
	mu      sync.Mutex
	ch      findy.Channel
	pending bool // ch has a result nobody has read yet
	result  *dto.Result
}

func NewFuture(ch findy.Channel) *Future {
	f := &Future{}
	f.SetChan(ch)
	return f
}

// SetChan points the Future to a new call. An unread result of the previous
// call is read off and dropped first.
func (f *Future) SetChan(ch findy.Channel) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pending {
		<-f.ch
	}
	f.ch, f.pending, f.result = ch, true, nil
}

// IsEmpty tells if the Future has never been given a call.
func (f *Future) IsEmpty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.pending && f.result == nil
}

func (f *Future) read() (dto.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pending {
		r := <-f.ch
		f.pending, f.result = false, &r
	}
	if f.result == nil {
		return dto.Result{}, nil
	}
	return *f.result, f.result.Err()
}

// Int returns the handle the call produced.
func (f *Future) Int() (int, error) {
	r, err := f.read()
	if err != nil {
		return 0, err
	}
	return r.Handle(), nil
}

// Str1 returns the first string result, e.g. the DID of did.CreateAndStore.
func (f *Future) Str1() (string, error) {
	r, err := f.read()
	if err != nil {
		return "", err
	}
	return r.Str1(), nil
}
