// Package amortera models the cost of a Swedish residential mortgage over
// time against an alternative strategy: investing the same cash flow in an
// index fund and settling the loan later as a lump sum.
//
// The package has two moving parts, in dependency order:
//   - Time-Series Normalizer: HistoricTable joins four independent macro
//     series (equity index, government borrowing rate, consumer price index,
//     policy rate) of differing granularity and units into one immutable
//     daily-resolution table of change multipliers and tax rates.
//   - Amortization Simulator: Mortgage advances loan state one calendar day
//     per step against that table, compounding interest, investing surplus
//     cash, applying the notional-yield tax rules with their date-dependent
//     thresholds, and appending each day to an append-only Ledger suitable
//     for break-even analysis.
//
// Raw series come from the collaborator packages (riksgalden, riksbank, scb,
// nasdaq), which download and adapt upstream data into the canonical record
// shapes of this package. The core itself performs no I/O: it is a pure,
// deterministic calculation engine that fails loudly on contract violations.
//
// This package is the foundational logic for the `amr` command-line tool.
package amortera
