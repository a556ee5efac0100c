// Package models defines the core domain models for TripSplit.
//
// # State Model
//
// All application data hangs off a single State value:
//   - Trip: a shared expense-tracking session among a set of members
//   - Expense: a single payment event (who paid, how much, who shares it)
//   - Friend: a member profile in the flat, global friend list
//
// Trips reference friends by id only; a Friend can belong to any number of
// trips. Expenses live inside their trip as an ordered, id-keyed collection.
//
// # Design Principles
//
// 1. **Explicit state**: State is passed into operations, never held as a
// package global, so callers control locking and persistence.
// 2. **IDs over pointers**: Relationships use UUID strings instead of
// pointers, which keeps the object graph acyclic and serialization trivial.
// 3. **Tolerant references**: A trip may reference friend ids that no longer
// exist (the friend was deleted, or the trip arrived from another device).
// Dangling ids are never an error; display layers substitute a placeholder.
// 4. **Opaque images**: Photos and payment QR images are stored and shipped
// as encoded string payloads. Nothing in this module decodes them.
package models
