// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import "net"

// ipNet is a parsed address with its mask; 4 bytes for IPv4, 16 for
// IPv6. The address is pre-masked at construction.
type ipNet struct {
	ip   []byte
	mask []byte
}

func parseIPAddr(s string) (ipNet, bool) {
	ip := net.ParseIP(s)
	if ip == nil {
		return ipNet{}, false
	}
	b := []byte(ip.To16())
	if v4 := ip.To4(); v4 != nil {
		b = []byte(v4)
	}
	mask := make([]byte, len(b))
	for i := range mask {
		mask[i] = 0xff
	}
	return ipNet{ip: b, mask: mask}, true
}

func parseCIDRAddr(s string) (ipNet, bool) {
	_, n, err := net.ParseCIDR(s)
	if err != nil {
		return ipNet{}, false
	}
	// n.IP comes back already masked.
	return ipNet{ip: []byte(n.IP), mask: []byte(n.Mask)}, true
}

// ipNetContains reports whether a contains b, byte-wise:
// a cannot contain b when b's mask is shorter, and the b bits beyond
// a's mask are ignored since both addresses are pre-masked.
func ipNetContains(a, b ipNet) bool {
	if len(a.ip) != len(b.ip) {
		return false
	}
	for i := range a.ip {
		if a.mask[i]&^b.mask[i] != 0 {
			return false
		}
		if a.ip[i] != b.ip[i]&a.mask[i] {
			return false
		}
	}
	return true
}

// CIDRContains reports whether CIDR a contains b, an address or CIDR.
func CIDRContains(a, b Value) Value {
	as, ok := a.(*String)
	if !ok {
		return nil
	}
	bs, ok := b.(*String)
	if !ok {
		return nil
	}

	ipA, ok := parseCIDRAddr(as.v)
	if !ok {
		return nil
	}
	ipB, ok := parseIPAddr(bs.v)
	if !ok {
		ipB, ok = parseCIDRAddr(bs.v)
		if !ok {
			return nil
		}
	}
	return NewBoolean(ipNetContains(ipA, ipB))
}

// CIDRIntersects reports whether two CIDRs overlap.
func CIDRIntersects(a, b Value) Value {
	as, ok := a.(*String)
	if !ok {
		return nil
	}
	bs, ok := b.(*String)
	if !ok {
		return nil
	}

	ipA, ok := parseCIDRAddr(as.v)
	if !ok {
		return nil
	}
	ipB, ok := parseCIDRAddr(bs.v)
	if !ok {
		return nil
	}
	return NewBoolean(ipNetContains(ipA, ipB) || ipNetContains(ipB, ipA))
}
