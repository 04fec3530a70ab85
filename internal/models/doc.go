// Package models defines the core domain models for cuesplit.
//
// The domain is a billiards venue where one person pays the table bill
// and the cost is split evenly among everyone who played:
//   - Member: a registered player, identified by a unique phone number
//   - Table: a physical billiards table with an hourly rate
//   - Bill: one session at a table with a total amount to split
//   - Participant: links a member to a bill with a payment flag
//   - Payment: append-only log of settled shares
//
// Relationships are expressed with ID strings rather than pointers to
// avoid circular references. All monetary amounts are integer currency
// units (e.g. VND); the per-person share is derived, never stored as
// ground truth.
package models
