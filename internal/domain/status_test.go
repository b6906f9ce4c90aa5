package domain

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"available", "assigned", "reserved", "dhcp_managed", "static_managed"} {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("ParseStatus(%q): %v", s, err)
		}
	}
	if _, err := ParseStatus("leased"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatusOccupied(t *testing.T) {
	occupied := []Status{StatusAssigned, StatusReserved, StatusDhcpManaged, StatusStaticManaged}
	for _, s := range occupied {
		if !s.Occupied() {
			t.Fatalf("%s must be occupied", s)
		}
	}
	if StatusAvailable.Occupied() || Status("").Occupied() {
		t.Fatal("available and missing records are not occupied")
	}
}

func TestTransitionRules(t *testing.T) {
	// allocation claims only available addresses
	if !OpAllocate.Allowed(StatusAvailable, StatusAssigned) || !OpAllocate.Allowed("", StatusDhcpManaged) {
		t.Fatal("allocation from available must be allowed")
	}
	if OpAllocate.Allowed(StatusReserved, StatusAssigned) {
		t.Fatal("allocation must not steal a reserved address")
	}
	if OpAllocate.Allowed(StatusAvailable, StatusAvailable) {
		t.Fatal("allocation target must be an occupied status")
	}

	if !OpReserve.Allowed(StatusAvailable, StatusReserved) {
		t.Fatal("reservation from available must be allowed")
	}
	if OpReserve.Allowed(StatusAssigned, StatusReserved) {
		t.Fatal("reservation must not take an assigned address")
	}

	// release always lands on available, from any state
	for _, from := range []Status{StatusAvailable, StatusAssigned, StatusReserved, StatusDhcpManaged, StatusStaticManaged} {
		if !OpRelease.Allowed(from, StatusAvailable) {
			t.Fatalf("release from %s must be allowed", from)
		}
	}
	if OpRelease.Allowed(StatusAssigned, StatusReserved) {
		t.Fatal("release must not land on an occupied status")
	}

	// occupied-to-occupied moves need the explicit metadata operation
	if !OpUpdateMetadata.Allowed(StatusAssigned, StatusDhcpManaged) {
		t.Fatal("metadata update between occupied states must be allowed")
	}
	if !OpUpdateMetadata.Allowed(StatusReserved, StatusAssigned) {
		t.Fatal("promotion of a reserved address must be allowed")
	}
}

func TestReleasedClearsEverything(t *testing.T) {
	rec := AddressRecord{
		Status: StatusStaticManaged,
		Metadata: Metadata{
			Hostname:   "h",
			MACAddress: "m",
			DeviceName: "d",
			Assignee:   "a",
			Note:       "n",
		},
	}
	got := released(rec)
	if got.Status != StatusAvailable {
		t.Fatalf("status = %s", got.Status)
	}
	if !got.Metadata.IsZero() {
		t.Fatalf("metadata survived release: %+v", got.Metadata)
	}
}
