// Package models defines the core domain models for billsplit.
//
// # Models
//
//   - Participant: a person splitting the bill, identified by ID
//   - LineItem: an entry on the bill, shared equally among its assignees
//
// Settlement results are not models; they are derived by the calculator
// package on every change and never stored.
//
// # Design Principles
//
// 1. **Identity by ID**: names are display-only and need not be unique
// 2. **Avoid circular references**: items reference participants by ID string
// 3. **Value semantics**: callers hand out copies; nothing here is shared mutable state
package models
