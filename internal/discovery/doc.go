// Package discovery browses mDNS for Vector robots.
//
// Vector advertises itself as an "_ankivector._tcp" service with an instance
// and host name of the form "Vector-XXXX" (the four characters shown on its
// face). Discovery is only ever used as a hint: an advertised address still
// has to answer with the robot's hardware address before it is trusted.
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	scanner.Timeout = 3 * time.Second
//	scanner.Name = "Vector-A1B2"
//
//	addrs, err := scanner.Hints(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, addr := range addrs {
//	    fmt.Println(addr)
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - The robot must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
