package bootstrap

import "errors"

// Bootstrap failures. All of them are fatal: the backchannel must not serve
// commands without a fully initialized agent.
var (
	ErrLedgerRegistration    = errors.New("ledger seed registration failed")
	ErrGenesisDownload       = errors.New("genesis download failed")
	ErrMissingConfiguredFile = errors.New("configured genesis file does not exist")
	ErrPathEncoding          = errors.New("path is not valid text")
	ErrAgentInitialization   = errors.New("agent initialization failed")
	ErrAlreadyInitialized    = errors.New("agent is already initialized")
)

// Stage names used as prefixes of the bootstrap errors.
const (
	StageSeed      = "seed"
	StageGenesis   = "genesis"
	StageAgentInit = "agent init"
)
