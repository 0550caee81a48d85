// Package warehouse provides the capacity ledger for the freight system.
// It implements the Warehouse aggregate root, which owns per-warehouse bin
// occupancy, and the append-only CapacityChange audit record.
//
// The package includes:
//   - Warehouse: The aggregate root holding {totalCapacity, binsUsed} with
//     reserve, release, and administrative adjust operations
//   - CapacityChange: An append-only audit record of every occupancy change
//   - CapacitySnapshot: The read-only occupancy view
//
// Key business rules:
//   - 0 <= binsUsed <= totalCapacity after every committed operation
//   - A reservation that would overflow fails with ErrCapacityExceeded and
//     performs no mutation
//   - A release that would underflow fails with ErrCapacityUnderflow rather
//     than silently clamping, to catch double-release bugs
//   - Every mutation produces an audit record; the sum of deltas always
//     equals the current occupancy
//
// Concurrent access to one warehouse is serialized by a row lock at the
// persistence layer; the aggregate itself holds no locks.
package warehouse
