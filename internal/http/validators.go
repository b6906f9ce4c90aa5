package http

import (
	"fmt"
	"net/netip"

	"go4.org/netipx"
)

// validateRange rejects malformed, mixed-family or inverted ranges at the
// edge, before the request reaches the service.
func validateRange(start, end string) error {
	from, err := netip.ParseAddr(start)
	if err != nil {
		return fmt.Errorf("invalid start address")
	}
	to, err := netip.ParseAddr(end)
	if err != nil {
		return fmt.Errorf("invalid end address")
	}
	if !netipx.IPRangeFrom(from, to).IsValid() {
		return fmt.Errorf("invalid range")
	}
	return nil
}
