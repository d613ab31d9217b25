// Package models defines the core domain models for weekgoal.
//
// # Models
//
//   - WeekAllocation: one week's goal and its seven Day entries (Monday first)
//   - Day: a weekday's coefficient, computed target and recorded actual
//   - Coefficient: a day's weight, in tenths, clamped to [0, 3.0]
//   - WeekRecord: what the persistence layer returns for a stored week
//   - User: a registered account; its ID keys every stored week
//
// # Design Principles
//
// 1. **Value semantics**: WeekAllocation holds a fixed array of days, so copying
//    a week copies its days. Allocation functions take a week and return a new one.
// 2. **Fixed point**: coefficients are tenths and money is cents; no float state.
// 3. **Avoid circular references**: relationships use ID strings.
package models
