// Package ipaddr converts textual IPv4 and IPv6 addresses to and from
// fixed-width integers and derives usable subnet ranges from them. Every
// address the engine touches goes through this package so that all spellings
// of one address collapse to a single canonical key.
package ipaddr

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

var (
	ErrInvalidAddress = errors.New("ipaddr: invalid address")
	ErrInvalidPrefix  = errors.New("ipaddr: invalid prefix length")
)

type Family uint8

const (
	FamilyIPv4 Family = 4
	FamilyIPv6 Family = 6
)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	default:
		return "unknown"
	}
}

// Bits returns the address width of the family.
func (f Family) Bits() int {
	if f == FamilyIPv4 {
		return 32
	}
	return 128
}

func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(s) {
	case "ipv4", "v4", "4":
		return FamilyIPv4, nil
	case "ipv6", "v6", "6":
		return FamilyIPv6, nil
	default:
		return 0, fmt.Errorf("%w: unknown family %q", ErrInvalidAddress, s)
	}
}

// DetectFamily guesses the family of a textual address. The presence of a
// colon implies IPv6; everything else is treated as IPv4 until parsed.
func DetectFamily(s string) Family {
	if strings.Contains(s, ":") {
		return FamilyIPv6
	}
	return FamilyIPv4
}

// ParseV4 parses exactly four dot-separated decimal octets.
func ParseV4(s string) (uint32, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	var n uint32
	for _, part := range parts {
		if len(part) == 0 || len(part) > 3 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
			}
		}
		octet, err := strconv.Atoi(part)
		if err != nil || octet > 255 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		n = n<<8 | uint32(octet)
	}
	return n, nil
}

func FormatV4(n uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
}

// ParseV6 parses a textual IPv6 address into a 128-bit integer. It expands a
// single "::" zero compression and requires 1-4 hex digits per group, eight
// groups total after expansion.
func ParseV6(s string) (Uint128, error) {
	if s == "" {
		return Uint128{}, fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}

	var head, tail string
	compressed := false
	if i := strings.Index(s, "::"); i >= 0 {
		if strings.Contains(s[i+2:], "::") {
			return Uint128{}, fmt.Errorf("%w: %q has more than one \"::\"", ErrInvalidAddress, s)
		}
		head, tail = s[:i], s[i+2:]
		compressed = true
	} else {
		head = s
	}

	headGroups, err := splitGroups(head, s)
	if err != nil {
		return Uint128{}, err
	}
	tailGroups, err := splitGroups(tail, s)
	if err != nil {
		return Uint128{}, err
	}

	var groups []uint16
	if compressed {
		if len(headGroups)+len(tailGroups) > 7 {
			return Uint128{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		groups = make([]uint16, 0, 8)
		groups = append(groups, headGroups...)
		for i := len(headGroups) + len(tailGroups); i < 8; i++ {
			groups = append(groups, 0)
		}
		groups = append(groups, tailGroups...)
	} else {
		if len(headGroups) != 8 {
			return Uint128{}, fmt.Errorf("%w: %q has %d groups, want 8", ErrInvalidAddress, s, len(headGroups))
		}
		groups = headGroups
	}

	var v Uint128
	for _, g := range groups[:4] {
		v.Hi = v.Hi<<16 | uint64(g)
	}
	for _, g := range groups[4:] {
		v.Lo = v.Lo<<16 | uint64(g)
	}
	return v, nil
}

func splitGroups(s, whole string) ([]uint16, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ":")
	groups := make([]uint16, 0, len(parts))
	for _, part := range parts {
		if len(part) == 0 || len(part) > 4 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, whole)
		}
		g, err := strconv.ParseUint(part, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, whole)
		}
		groups = append(groups, uint16(g))
	}
	return groups, nil
}

// FormatV6 renders the canonical compressed form: lowercase hex groups with
// the single longest run of zero groups (length >= 2, leftmost on ties)
// collapsed to "::".
func FormatV6(v Uint128) string {
	var groups [8]uint16
	for i := 0; i < 4; i++ {
		groups[i] = uint16(v.Hi >> (16 * (3 - i)))
		groups[i+4] = uint16(v.Lo >> (16 * (3 - i)))
	}

	// longest run of zero groups, leftmost wins ties
	bestStart, bestLen := -1, 1
	runStart, runLen := -1, 0
	for i := 0; i <= 8; i++ {
		if i < 8 && groups[i] == 0 {
			if runStart < 0 {
				runStart = i
			}
			runLen++
			continue
		}
		if runLen > bestLen {
			bestStart, bestLen = runStart, runLen
		}
		runStart, runLen = -1, 0
	}

	var b strings.Builder
	if bestStart < 0 {
		for i, g := range groups {
			if i > 0 {
				b.WriteByte(':')
			}
			b.WriteString(strconv.FormatUint(uint64(g), 16))
		}
		return b.String()
	}

	for i := 0; i < bestStart; i++ {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(strconv.FormatUint(uint64(groups[i]), 16))
	}
	b.WriteString("::")
	for i := bestStart + bestLen; i < 8; i++ {
		if i > bestStart+bestLen {
			b.WriteByte(':')
		}
		b.WriteString(strconv.FormatUint(uint64(groups[i]), 16))
	}
	return b.String()
}

// Addr is a single address of either family, held as a 128-bit integer.
// IPv4 addresses occupy the low 32 bits. The zero Addr is not valid.
type Addr struct {
	family Family
	value  Uint128
}

func AddrFrom(family Family, v Uint128) Addr {
	return Addr{family: family, value: v}
}

func AddrFromV4(n uint32) Addr {
	return Addr{family: FamilyIPv4, value: Uint128{Lo: uint64(n)}}
}

// ParseAddr parses a textual address of either family into its canonical
// integer form.
func ParseAddr(s string) (Addr, error) {
	if DetectFamily(s) == FamilyIPv6 {
		v, err := ParseV6(s)
		if err != nil {
			return Addr{}, err
		}
		return Addr{family: FamilyIPv6, value: v}, nil
	}
	n, err := ParseV4(s)
	if err != nil {
		return Addr{}, err
	}
	return AddrFromV4(n), nil
}

func (a Addr) IsValid() bool   { return a.family != 0 }
func (a Addr) Family() Family  { return a.family }
func (a Addr) Value() Uint128  { return a.value }
func (a Addr) V4() uint32      { return uint32(a.value.Lo) }
func (a Addr) Cmp(b Addr) int  { return a.value.Cmp(b.value) }
func (a Addr) Next() Addr      { return Addr{family: a.family, value: a.value.Add64(1)} }

// String returns the canonical textual form, suitable as a unique key.
func (a Addr) String() string {
	if a.family == FamilyIPv4 {
		return FormatV4(a.V4())
	}
	return FormatV6(a.value)
}

// NetIP converts to a net/netip address for the storage and HTTP layers.
func (a Addr) NetIP() netip.Addr {
	if a.family == FamilyIPv4 {
		n := a.V4()
		return netip.AddrFrom4([4]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	}
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(a.value.Hi >> (8 * (7 - i)))
		b[i+8] = byte(a.value.Lo >> (8 * (7 - i)))
	}
	return netip.AddrFrom16(b)
}

// FromNetIP converts a net/netip address. IPv4-mapped IPv6 addresses are
// unmapped so both representations key identically.
func FromNetIP(ip netip.Addr) Addr {
	ip = ip.Unmap()
	if ip.Is4() {
		b := ip.As4()
		return AddrFromV4(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
	}
	b := ip.As16()
	var v Uint128
	for i := 0; i < 8; i++ {
		v.Hi = v.Hi<<8 | uint64(b[i])
		v.Lo = v.Lo<<8 | uint64(b[i+8])
	}
	return Addr{family: FamilyIPv6, value: v}
}

// IsValid reports whether s is a well-formed address of either family.
func IsValid(s string) bool {
	_, err := ParseAddr(s)
	return err == nil
}

// ParseCIDR parses "address/prefix" notation. The returned address is not
// masked; use Mask to derive the network address.
func ParseCIDR(s string) (Addr, int, error) {
	i := strings.LastIndexByte(s, '/')
	if i < 0 {
		return Addr{}, 0, fmt.Errorf("%w: %q missing prefix", ErrInvalidAddress, s)
	}
	addr, err := ParseAddr(s[:i])
	if err != nil {
		return Addr{}, 0, err
	}
	prefix, err := strconv.Atoi(s[i+1:])
	if err != nil || prefix < 0 || prefix > addr.Family().Bits() {
		return Addr{}, 0, fmt.Errorf("%w: %q", ErrInvalidPrefix, s)
	}
	return addr, prefix, nil
}

// IsValidCIDR reports whether s is well-formed CIDR notation with a prefix
// length legal for the address family.
func IsValidCIDR(s string) bool {
	_, _, err := ParseCIDR(s)
	return err == nil
}
