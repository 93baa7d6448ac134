/*
Package pool keeps the process wide ledger pool connection of the agent. The
pool config is created from a genesis transaction file and opened once.
*/
package pool

import (
	"github.com/findy-network/findy-backchannel/agent/async"
	indypool "github.com/findy-network/findy-wrapper-go/pool"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// ConfigAlreadyExistsError is the ledger error code for an existing pool
// config. Bootstrap runs on every process start, so it isn't a failure.
const ConfigAlreadyExistsError = 306

var pool async.Future

// CreateConfig creates a pool config by name from the genesis transaction
// file. An existing config with the same name is reused.
func CreateConfig(name, genesisPath string) (err error) {
	defer err2.Handle(&err, "create pool config %s", name)

	r := <-indypool.CreateConfig(name, indypool.Config{GenesisTxn: genesisPath})
	if r.Err() != nil {
		if r.ErrCode() != ConfigAlreadyExistsError {
			try.To(r.Err())
		}
		glog.V(1).Infoln("pool config exists already:", name)
	}
	return nil
}

// Open opens ledger connection first time called and returns its handle.
// After that returns previous handle without checking the pool name. If caller
// wants to reopen new pool it must call Close() first.
func Open(name string) (h int, err error) {
	defer err2.Handle(&err, "open pool %s", name)

	if h = Handle(); h > 0 {
		return h, nil
	}
	pool.SetChan(indypool.OpenLedger(name))
	return pool.Int()
}

// Close closes the opened pool. It's a no-op when there is none.
func Close() (err error) {
	defer err2.Handle(&err, "close pool")

	oldPool := Handle()
	if oldPool != 0 {
		pool.SetChan(indypool.CloseLedger(oldPool))
		try.To1(pool.Int())
	}
	return nil
}

// Handle returns the handle of the opened pool, 0 when there is none.
func Handle() int {
	if pool.IsEmpty() {
		return 0
	}
	h, err := pool.Int()
	if err != nil {
		return 0
	}
	return h
}
