// Package cli implements the "vault" command line client.
//
// Every command runs one short session: prompt for the master secret, log
// in, load and decrypt the vault, apply the change, flush pending saves and
// log out.
package cli
