package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/findy-network/findy-backchannel/agent/ledger"
	"github.com/golang/glog"
)

const (
	ResourceDir       = "resource"
	DownloadedGenesis = "genesis_file.txn"
	DefaultGenesis    = "indypool.txn"
)

// GenesisResolver finds the genesis transaction file for the ledger pool.
type GenesisResolver struct {
	// File is an explicitly configured genesis file. When set it must exist.
	File string

	// Ledger downloads the genesis when no File is given. Nil means no
	// ledger service is configured.
	Ledger *ledger.Client

	// WorkDir is the base of the resource directory, the current working
	// directory when empty.
	WorkDir string
}

// genesisStrategy returns done == false when it doesn't apply and the next
// one should be tried.
type genesisStrategy struct {
	name    string
	resolve func(ctx context.Context) (path string, done bool, err error)
}

func (r *GenesisResolver) strategies() []genesisStrategy {
	return []genesisStrategy{
		{"configured file", r.configuredFile},
		{"ledger download", r.download},
		{"bundled default", r.bundledDefault},
	}
}

// ResolveGenesisPath runs the strategies in priority order and stops at the
// first one which either gives a path or fails.
func (r *GenesisResolver) ResolveGenesisPath(ctx context.Context) (string, error) {
	for _, s := range r.strategies() {
		path, done, err := s.resolve(ctx)
		if err != nil {
			return "", err
		}
		if !done {
			continue
		}
		if !utf8.ValidString(path) {
			return "", fmt.Errorf("%w: %q", ErrPathEncoding, path)
		}
		glog.V(1).Infof("genesis (%s): %s", s.name, path)
		return path, nil
	}
	return "", errors.New("no genesis strategy applied")
}

func (r *GenesisResolver) configuredFile(_ context.Context) (string, bool, error) {
	if r.File == "" {
		return "", false, nil
	}
	_, err := os.Stat(r.File)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", false, fmt.Errorf("%w: %s", ErrMissingConfiguredFile, r.File)
	case err != nil:
		return "", false, fmt.Errorf("configured genesis file: %w", err)
	}
	return r.File, true, nil
}

func (r *GenesisResolver) download(ctx context.Context) (string, bool, error) {
	if r.Ledger == nil {
		return "", false, nil
	}
	glog.V(1).Infoln("downloading genesis file from", r.Ledger.BaseURL())
	data, err := r.Ledger.Genesis(ctx)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrGenesisDownload, err)
	}
	dir, err := r.resourceDir()
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrGenesisDownload, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrGenesisDownload, err)
	}
	path := filepath.Join(dir, DownloadedGenesis)
	glog.V(2).Infoln("storing genesis file to", path)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrGenesisDownload, err)
	}
	return path, true, nil
}

// bundledDefault doesn't check the existence, the runtime does that when it
// loads the pool config.
func (r *GenesisResolver) bundledDefault(_ context.Context) (string, bool, error) {
	dir, err := r.resourceDir()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(dir, DefaultGenesis), true, nil
}

func (r *GenesisResolver) resourceDir() (string, error) {
	wd := r.WorkDir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("working directory: %w", err)
		}
	}
	return filepath.Join(wd, ResourceDir), nil
}
