// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import "testing"

func TestCIDRContains(t *testing.T) {
	tests := []struct {
		cidr, addr string
		want       bool
	}{
		{"10.0.0.0/8", "10.1.2.3", true},
		{"10.0.0.0/8", "11.0.0.0/8", false},
		{"10.0.0.0/16", "10.0.0.0/8", false}, // b's mask is shorter
		{"10.0.0.0/8", "10.1.0.0/16", true},
		{"10.0.0.0/8", "11.1.2.3", false},
		{"0.0.0.0/0", "192.168.1.1", true},
		{"192.168.1.64/26", "192.168.1.100", true},
		{"192.168.1.64/26", "192.168.1.30", false},
		{"2001:db8::/32", "2001:db8::1", true},
		{"2001:db8::/32", "2001:db9::1", false},
		{"2001:db8::/32", "2001:db8::/48", true},
	}
	for _, tt := range tests {
		got := CIDRContains(str(tt.cidr), str(tt.addr))
		if got == nil {
			t.Errorf("cidr.contains(%q, %q) undefined", tt.cidr, tt.addr)
			continue
		}
		if got.(*Boolean).Bool() != tt.want {
			t.Errorf("cidr.contains(%q, %q) = %v, want %v", tt.cidr, tt.addr, got.(*Boolean).Bool(), tt.want)
		}
	}
}

func TestCIDRContainsMixedFamilies(t *testing.T) {
	got := CIDRContains(str("10.0.0.0/8"), str("2001:db8::1"))
	wantBool(t, got, false)
}

func TestCIDRContainsInvalid(t *testing.T) {
	if v := CIDRContains(str("not-a-cidr"), str("10.0.0.1")); v != nil {
		t.Errorf("invalid cidr = %v", v)
	}
	if v := CIDRContains(str("10.0.0.0/8"), str("not-an-ip")); v != nil {
		t.Errorf("invalid address = %v", v)
	}
	if v := CIDRContains(NewInt(1), str("10.0.0.1")); v != nil {
		t.Errorf("non-string = %v", v)
	}
	// A bare address is not a valid first argument.
	if v := CIDRIntersects(str("10.0.0.1"), str("10.0.0.0/8")); v != nil {
		t.Errorf("bare address as cidr = %v", v)
	}
}

func TestCIDRIntersects(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"10.0.0.0/8", "10.1.0.0/16", true},
		{"10.1.0.0/16", "10.0.0.0/8", true},
		{"10.0.0.0/8", "11.0.0.0/8", false},
		{"192.168.0.0/24", "192.168.0.128/25", true},
		{"2001:db8::/32", "2001:db8:1::/48", true},
	}
	for _, tt := range tests {
		got := CIDRIntersects(str(tt.a), str(tt.b))
		if got == nil {
			t.Errorf("cidr.intersects(%q, %q) undefined", tt.a, tt.b)
			continue
		}
		if got.(*Boolean).Bool() != tt.want {
			t.Errorf("cidr.intersects(%q, %q) = %v, want %v", tt.a, tt.b, got.(*Boolean).Bool(), tt.want)
		}
	}
}
