package ipaddr

import (
	"fmt"
	"math"
)

// UsableUnbounded is the saturated usable count reported for ranges whose
// true size does not fit in 64 bits.
const UsableUnbounded = math.MaxUint64

// Range is the usable slice of a subnet. For ranges wider than 2^64 the
// count saturates to UsableUnbounded and Unbounded is set; First and Last
// remain exact.
type Range struct {
	First     Addr
	Last      Addr
	Usable    uint64
	Unbounded bool
}

// Mask returns the network address of a with the given prefix applied.
func Mask(a Addr, prefix int) Addr {
	if a.family == FamilyIPv4 {
		return AddrFrom(FamilyIPv4, a.value.And(mask32(prefix)))
	}
	return AddrFrom(FamilyIPv6, a.value.And(mask128(prefix)))
}

// Compute derives the usable range of a subnet. IPv4 excludes the network
// and broadcast addresses except for /31 (point-to-point, both usable) and
// /32 (the single address). IPv6 starts at network+1 with no broadcast
// exclusion; /128 is the single address.
func Compute(network Addr, prefix int) (Range, error) {
	if !network.IsValid() {
		return Range{}, fmt.Errorf("%w: zero network address", ErrInvalidAddress)
	}
	bits := network.Family().Bits()
	if prefix < 0 || prefix > bits {
		return Range{}, fmt.Errorf("%w: /%d for %s", ErrInvalidPrefix, prefix, network.Family())
	}

	base := Mask(network, prefix)
	if network.Family() == FamilyIPv4 {
		return computeV4(base, prefix), nil
	}
	return computeV6(base, prefix), nil
}

func computeV4(base Addr, prefix int) Range {
	switch prefix {
	case 32:
		return Range{First: base, Last: base, Usable: 1}
	case 31:
		return Range{First: base, Last: base.Next(), Usable: 2}
	}
	block := uint64(1) << (32 - prefix)
	return Range{
		First:  base.Next(),
		Last:   AddrFrom(FamilyIPv4, base.value.Add64(block - 2)),
		Usable: block - 2,
	}
}

func computeV6(base Addr, prefix int) Range {
	if prefix == 128 {
		return Range{First: base, Last: base, Usable: 1}
	}
	hostMask := mask128(prefix).Not()
	last := AddrFrom(FamilyIPv6, base.value.Or(hostMask))
	r := Range{First: base.Next(), Last: last}
	hostBits := 128 - prefix
	if hostBits > 64 {
		r.Usable = UsableUnbounded
		r.Unbounded = true
		return r
	}
	if hostBits == 64 {
		r.Usable = math.MaxUint64
		return r
	}
	r.Usable = (uint64(1) << hostBits) - 1
	return r
}

// Contains reports whether addr falls inside network/prefix. Addresses of a
// different family are never contained.
func Contains(addr, network Addr, prefix int) bool {
	if !addr.IsValid() || !network.IsValid() || addr.Family() != network.Family() {
		return false
	}
	if prefix < 0 || prefix > network.Family().Bits() {
		return false
	}
	var m Uint128
	if network.Family() == FamilyIPv4 {
		m = mask32(prefix)
	} else {
		m = mask128(prefix)
	}
	return addr.value.And(m).Cmp(network.value.And(m)) == 0
}

// InRange reports whether addr lies in [start, end] inclusive. Families must
// match across all three.
func InRange(addr, start, end Addr) bool {
	if addr.Family() != start.Family() || addr.Family() != end.Family() {
		return false
	}
	return addr.Cmp(start) >= 0 && addr.Cmp(end) <= 0
}
