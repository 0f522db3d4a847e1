// Package identity decides, before any scanning, whether the robot's last
// known address is still valid.
//
// Resolver.Resolve walks the known sources in order and stops at the first
// one whose live hardware address matches the stored one:
//
//  1. the configured address (device record, else the SDK config)
//  2. the SDK config address, when it differs
//  3. addresses advertised over mDNS, when a HintSource is set
//
// If the identity is incomplete the decision is ActionRegister; if nothing
// matches it is ActionScan with the target hardware address fixed. Resolve
// performs no writes and no prompting; acting on the Decision is left to the
// caller.
package identity
