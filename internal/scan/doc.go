// Package scan sweeps IPv4 prefixes for a device with a known hardware
// address.
//
// Each prefix is swept by a fixed pool of workers pulling host numbers
// 1..MaxHost from a shared queue. Prefixes are swept one after another, all
// sharing one StopSignal: the first worker whose probe reports the target
// hardware address fires it, drains the queue and wakes the coordinator.
// Results arriving after the signal has fired are discarded, so a run
// reports at most one match.
//
// # Usage Example
//
//	coord := scan.NewCoordinator(prober, scan.Options{Workers: 30, MaxHost: 254}, logger)
//	outcome, err := coord.Run(ctx, targetMAC, prefixes)
//	if err != nil {
//	    return err
//	}
//	if outcome.Found {
//	    fmt.Println(outcome.Address)
//	}
package scan
