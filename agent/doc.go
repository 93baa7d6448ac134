/*
Package agent holds the packages of the backchannel's agent side. The agent
package is empty itself, all the functionality is inside sub-packages:

	async      futures over the findy-wrapper-go result channels
	bootstrap  seed provisioning, genesis resolution and the agent start
	harness    harness status and the running agent behind exclusive access
	ledger     client of the ledger bootstrap service
	pool       ledger pool config and the process wide pool handle
	runtime    the agent runtime boundary and its Indy implementation
	ssi        wallet configuration
	utils      process wide settings
*/
package agent
