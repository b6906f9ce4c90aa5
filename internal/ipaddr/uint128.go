package ipaddr

import "math/bits"

// Uint128 is an unsigned 128-bit integer stored as big-endian halves.
// Arithmetic wraps modulo 2^128; callers bound their own iteration.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

func (u Uint128) Add64(n uint64) Uint128 {
	lo, carry := bits.Add64(u.Lo, n, 0)
	hi, _ := bits.Add64(u.Hi, 0, carry)
	return Uint128{Hi: hi, Lo: lo}
}

func (u Uint128) Sub(v Uint128) Uint128 {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, _ := bits.Sub64(u.Hi, v.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	default:
		return 0
	}
}

func (u Uint128) And(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi & v.Hi, Lo: u.Lo & v.Lo}
}

func (u Uint128) Or(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi | v.Hi, Lo: u.Lo | v.Lo}
}

func (u Uint128) Not() Uint128 {
	return Uint128{Hi: ^u.Hi, Lo: ^u.Lo}
}

// mask128 returns the 128-bit wide mask with prefix leading one-bits.
func mask128(prefix int) Uint128 {
	if prefix <= 0 {
		return Uint128{}
	}
	if prefix >= 128 {
		return Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}
	}
	if prefix <= 64 {
		return Uint128{Hi: ^uint64(0) << (64 - prefix)}
	}
	return Uint128{Hi: ^uint64(0), Lo: ^uint64(0) << (128 - prefix)}
}

// mask32 returns the 32-bit wide mask with prefix leading one-bits,
// widened into the low half of a Uint128.
func mask32(prefix int) Uint128 {
	if prefix <= 0 {
		return Uint128{}
	}
	if prefix >= 32 {
		return Uint128{Lo: uint64(^uint32(0))}
	}
	return Uint128{Lo: uint64(^uint32(0) << (32 - prefix))}
}
