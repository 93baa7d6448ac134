// Package ssi holds the wallet configuration of the agent runtime.
package ssi
