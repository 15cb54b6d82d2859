package config

import (
	"encoding/binary"
	"fmt"
	"net"
)

// CIDRSubnet calculates a subnet address given a network prefix, a netmask
// size increase, and a subnet number, mirroring Terraform's cidrsubnet.
// Only IPv4 prefixes are supported.
func CIDRSubnet(prefix string, newbits, netnum int) (string, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return "", fmt.Errorf("invalid CIDR prefix: %w", err)
	}

	if network.IP.To4() == nil {
		return "", fmt.Errorf("only IPv4 addresses are supported, got %s", prefix)
	}

	maskSize, totalBits := network.Mask.Size()
	newMaskSize := maskSize + newbits
	if newMaskSize > totalBits {
		return "", fmt.Errorf("prefix extension of %d bits is too large for %s", newbits, prefix)
	}

	maxSubnets := 1 << newbits
	if netnum >= maxSubnets {
		return "", fmt.Errorf("subnet number %d exceeds max subnets %d", netnum, maxSubnets)
	}

	ip := network.IP.To4()
	ipInt := uint64(binary.BigEndian.Uint32(ip))

	subnetSize := 1 << (totalBits - newMaskSize)
	// #nosec G115
	ipInt += uint64(netnum * subnetSize)

	out := make(net.IP, 4)
	// #nosec G115
	binary.BigEndian.PutUint32(out, uint32(ipInt))

	return fmt.Sprintf("%s/%d", out.String(), newMaskSize), nil
}
