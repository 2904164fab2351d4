// Package networth reconstructs account balances at any point in time from a
// sparse ledger and aggregates them into valued reports.
//
// The ledger model is append-only: each Entry carries both the delta it
// applied and the resulting running value, so the state of an account at a
// date is simply the last entry posted at or before it. The engine reads
// bounded Windows of that ledger through a LedgerReader; boundary entries
// just outside the window let it resolve balances at the window's start
// without replaying history.
//
// On top of resolution, a Reporter answers cross-account questions: net
// worth, assets and liabilities per account or category, daily value series
// over a range, and income or spending flows. Every amount is converted into
// a single reporting currency through a RateProvider; missing rates fall
// back per a configurable policy instead of failing the whole report.
package networth
