package utils

import (
	"time"
)

// Version is the version the backchannel reports in the command API.
const Version = "1.0.0"

var Settings = &Hub{}

type Hub struct {
	versionInfo string        // Version number etc. in free format as a string
	timeout     time.Duration // timeout of the ledger service requests
	lockTimeout time.Duration // max wait for the exclusive harness access
	serverPort  uint          // port of the command API
	workDir     string        // base of the resource directory
}

// SetVersionInfo sets the version info shown in the startup logs.
func (h *Hub) SetVersionInfo(info string) {
	h.versionInfo = info
}

func (h *Hub) VersionInfo() string {
	if h.versionInfo == "" {
		return "findy-backchannel v. " + Version
	}
	return h.versionInfo
}

// SetTimeout sets the timeout for the ledger service requests.
func (h *Hub) SetTimeout(to time.Duration) {
	h.timeout = to
}

// Timeout returns the ledger request timeout, 0 means the ledger client's
// default.
func (h *Hub) Timeout() time.Duration {
	return h.timeout
}

func (h *Hub) SetLockTimeout(to time.Duration) {
	h.lockTimeout = to
}

// LockTimeout returns the max wait for the harness access, 0 means the
// harness default.
func (h *Hub) LockTimeout() time.Duration {
	return h.lockTimeout
}

func (h *Hub) SetServerPort(port uint) {
	h.serverPort = port
}

func (h *Hub) ServerPort() uint {
	return h.serverPort
}

func (h *Hub) SetWorkDir(dir string) {
	h.workDir = dir
}

// WorkDir is empty when the current working directory is used.
func (h *Hub) WorkDir() string {
	return h.workDir
}

// HTTPReadHeaderTimeout bounds reading of the command API request headers.
const HTTPReadHeaderTimeout = 10 * time.Second
