// Package netprobe checks whether a candidate address is alive and resolves
// its hardware (MAC) address.
//
// Probing a host is two steps:
//  1. A single liveness probe (one ICMP echo via the OS ping binary) with a
//     bounded timeout. No reply is a normal "down" result, not an error.
//  2. For live hosts, hardware address resolution: the kernel neighbour table
//     is consulted first, then an ARP request is sent on the given interface.
//
// Resolution right after a host answers a ping is flaky, so Resolver retries
// a fixed number of times with a fixed delay and then reports "not found"
// instead of failing the caller.
//
// # Usage Example
//
//	prober := netprobe.NewProber(
//	    netprobe.NewExecPinger(time.Second),
//	    netprobe.NewResolver(netprobe.NewARPLookup(time.Second), 10, 500*time.Millisecond, logger),
//	    logger,
//	)
//
//	res := prober.Probe(ctx, netprobe.Target{Address: "192.168.1.37", Interface: "wlan0"})
//	if res.State == netprobe.StateAlive && res.HardwareAddr != nil {
//	    fmt.Println(res.HardwareAddr)
//	}
//
// # Privileges
//
// Sending raw ARP requests requires CAP_NET_RAW (or root). Without it the
// neighbour table lookup still works on Linux because the ping that precedes
// it populates the table.
package netprobe
