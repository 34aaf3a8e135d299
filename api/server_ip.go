package api

import (
	"net"

	"go.uber.org/zap"

	"github.com/saeidalz13/battleship-backend/internal/logs"
)

var loopbackIpNet = net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)}

// ServerIpNet finds the first IPv4 address of an interface that is up
// and not a loopback. Analytics rows are keyed by it. Machines without
// one fall back to 127.0.0.1/32.
func ServerIpNet() net.IPNet {
	ifaces, err := net.Interfaces()
	if err != nil {
		logs.Warn("failed to list network interfaces", zap.Error(err))
		return loopbackIpNet
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	logs.Warn("no external ipv4 address found, using loopback")
	return loopbackIpNet
}
