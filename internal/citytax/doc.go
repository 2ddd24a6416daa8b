// Package citytax computes the Italian municipal tourist tax (Imposta di
// Soggiorno) for bookings.
//
// The package is pure: callers hand in fully loaded rules, bookings and
// guests and get results or an error back. Nothing here touches storage,
// holds state or blocks, so calculations for different bookings or tenants
// can run in parallel without coordination.
//
// Data flows one way:
//
//	SelectRule -> EvaluateExemptions -> CalculateBooking -> GenerateReport
//
// Money is shopspring/decimal throughout. No rounding happens here; rounding
// to cents is a presentation concern of the report package.
package citytax
