package domain

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
)

func mustParse(t *testing.T, s string) ipaddr.Addr {
	t.Helper()
	addr, err := ipaddr.ParseAddr(s)
	if err != nil {
		t.Fatalf("ParseAddr(%q): %v", s, err)
	}
	return addr
}

// memStore backs engine tests. Every method takes the lock for its whole
// body, so a single store call is atomic and the address-uniqueness check in
// insertRecord behaves like a database constraint. The interface views below
// expose it as the engine's four collaborators.
type memStore struct {
	mu           sync.Mutex
	subnets      map[int64]Subnet
	records      map[AddressRecordID]AddressRecord
	byAddr       map[int64]map[ipaddr.Addr]AddressRecordID
	reservations map[int64]Reservation
	audit        []AuditEntry
	nextSubnetID int64
	nextResID    int64
	nextRecordID int64
}

func newMemStore() *memStore {
	return &memStore{
		subnets:      make(map[int64]Subnet),
		records:      make(map[AddressRecordID]AddressRecord),
		byAddr:       make(map[int64]map[ipaddr.Addr]AddressRecordID),
		reservations: make(map[int64]Reservation),
	}
}

// newTestService wires an engine over a fresh memStore.
func newTestService() (Service, *memStore) {
	store := newMemStore()
	svc := NewService(memSubnets{store}, memRecords{store}, memReservations{store}, memAudit{store})
	return svc, store
}

type memSubnets struct{ *memStore }

func (m memSubnets) List(ctx context.Context) ([]Subnet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Subnet, 0, len(m.subnets))
	for _, s := range m.subnets {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memSubnets) FindByID(ctx context.Context, id int64) (Subnet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subnets[id]
	if !ok {
		return Subnet{}, ErrNotFound
	}
	return s, nil
}

func (m memSubnets) Create(ctx context.Context, input CreateSubnetRecord) (Subnet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSubnetID++
	s := Subnet{
		ID:          m.nextSubnetID,
		Network:     input.Network,
		Prefix:      input.Prefix,
		Description: input.Description,
		ParentID:    input.ParentID,
		CreatedAt:   time.Now(),
	}
	m.subnets[s.ID] = s
	m.byAddr[s.ID] = make(map[ipaddr.Addr]AddressRecordID)
	return s, nil
}

func (m memSubnets) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subnets[id]; !ok {
		return false, nil
	}
	delete(m.subnets, id)
	return true, nil
}

type memRecords struct{ *memStore }

func (m memRecords) ListBySubnet(ctx context.Context, subnetID int64) ([]AddressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordsInRangeLocked(subnetID, ipaddr.Addr{}, ipaddr.Addr{}, nil), nil
}

func (m memRecords) FindByID(ctx context.Context, id AddressRecordID) (AddressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return AddressRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m memRecords) FindByAddress(ctx context.Context, subnetID int64, addr ipaddr.Addr) (AddressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byAddr[subnetID][addr]
	if !ok {
		return AddressRecord{}, ErrNotFound
	}
	return m.records[id], nil
}

func (m memRecords) FindInRange(ctx context.Context, subnetID int64, start, end ipaddr.Addr, statuses []Status) ([]AddressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordsInRangeLocked(subnetID, start, end, statuses), nil
}

func (m memRecords) Insert(ctx context.Context, rec AddressRecord) (AddressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byAddr[rec.SubnetID][rec.Address]; taken {
		return AddressRecord{}, fmt.Errorf("%w: duplicate address %s", ErrConflict, rec.Address)
	}
	m.nextRecordID++
	rec.ID = AddressRecordID(fmt.Sprintf("rec-%d", m.nextRecordID))
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	m.records[rec.ID] = rec
	if m.byAddr[rec.SubnetID] == nil {
		m.byAddr[rec.SubnetID] = make(map[ipaddr.Addr]AddressRecordID)
	}
	m.byAddr[rec.SubnetID][rec.Address] = rec.ID
	return rec, nil
}

func (m memRecords) Update(ctx context.Context, rec AddressRecord) (AddressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.records[rec.ID]
	if !ok {
		return AddressRecord{}, ErrNotFound
	}
	rec.Address = existing.Address
	rec.SubnetID = existing.SubnetID
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now()
	m.records[rec.ID] = rec
	return rec, nil
}

func (m memRecords) BulkTransition(ctx context.Context, subnetID int64, start, end ipaddr.Addr, from, to Status) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for id, rec := range m.records {
		if rec.SubnetID != subnetID || rec.Status != from || !ipaddr.InRange(rec.Address, start, end) {
			continue
		}
		rec.Status = to
		if to == StatusAvailable {
			rec.Metadata = Metadata{}
		}
		rec.UpdatedAt = time.Now()
		m.records[id] = rec
		count++
	}
	return count, nil
}

type memReservations struct{ *memStore }

func (m memReservations) ListBySubnet(ctx context.Context, subnetID int64) ([]Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Reservation
	for _, res := range m.reservations {
		if res.SubnetID == subnetID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memReservations) FindByID(ctx context.Context, id int64) (Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.reservations[id]
	if !ok {
		return Reservation{}, ErrNotFound
	}
	return res, nil
}

func (m memReservations) Create(ctx context.Context, res Reservation) (Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextResID++
	res.ID = m.nextResID
	res.CreatedAt = time.Now()
	m.reservations[res.ID] = res
	return res, nil
}

func (m memReservations) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[id]; !ok {
		return false, nil
	}
	delete(m.reservations, id)
	return true, nil
}

type memAudit struct{ *memStore }

func (m memAudit) Record(ctx context.Context, entry AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audit = append(m.audit, entry)
	return nil
}

// recordsInRangeLocked filters by subnet, optional inclusive range (zero
// start means no range filter) and optional status set, sorted by address.
func (m *memStore) recordsInRangeLocked(subnetID int64, start, end ipaddr.Addr, statuses []Status) []AddressRecord {
	var out []AddressRecord
	for _, rec := range m.records {
		if rec.SubnetID != subnetID {
			continue
		}
		if start.IsValid() && !ipaddr.InRange(rec.Address, start, end) {
			continue
		}
		if statuses != nil && !statusIn(rec.Status, statuses) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address.Cmp(out[j].Address) < 0 })
	return out
}

func statusIn(s Status, set []Status) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

func (m *memStore) auditEntries() []AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]AuditEntry, len(m.audit))
	copy(out, m.audit)
	return out
}

func (m *memStore) reservedRecordCount(subnetID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, rec := range m.records {
		if rec.SubnetID == subnetID && rec.Status == StatusReserved {
			count++
		}
	}
	return count
}

func (m *memStore) recordByAddress(subnetID int64, addr ipaddr.Addr) (AddressRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byAddr[subnetID][addr]
	if !ok {
		return AddressRecord{}, false
	}
	return m.records[id], true
}
