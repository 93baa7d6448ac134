/*
Package main is an application package for the Findy test harness backchannel.
The backchannel is the control plane an interoperability test harness uses to
drive a Findy agent. It's not meant for production use.

The start command does a one-time bootstrap and then serves the command API:

1. Enterprise seed. If LEDGER_URL is set, a fresh seed is registered as a
TRUST_ANCHOR to the ledger bootstrap service, and the returned seed is used.
Otherwise the well-known local seed is used.

2. Genesis file. GENESIS_FILE if set, and it must exist. Otherwise the genesis
is downloaded from the ledger service to resource/genesis_file.txn. Without
either, the bundled resource/indypool.txn is used.

3. Agent. The pool config, pool, wallet and the issuer DID are created with
the results of the previous steps. The agency endpoint is CLOUD_AGENCY_URL or
http://localhost:8080.

Any failure stops the bootstrap, and the command exits with an error naming
the failing stage. There are no retries or fallbacks.

# Command API

When the agent is ready, the HTTP server is started under /command:

	GET /command/status   {"status": "ready"}
	GET /command/did      {"did": "<issuer DID>"}
	GET /command/version  1.0.0

# Logging

Logging uses glog. The startup arguments are given in one flag:

	findy-backchannel start --logging "-logtostderr=true -v=3"

V(1) shows the lifecycle and V(3) every command request.
*/
package main
