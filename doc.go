// Package fmstats extracts statistics from a ledger of funding manifests.
//
// A funding manifest describes an organisation (its entity type and role), the
// projects it maintains with their licenses, the funding plans it requests and,
// optionally, a yearly financial history in any currency. The ledger is a CSV
// file with one manifest per row, the manifest itself being a JSON document.
//
// The package is organised as a single pass pipeline:
//   - Parser decodes a RawRecord into a Manifest, normalizing license tags.
//   - MaxRequested reduces the funding plans into one annualized figure.
//   - Rates normalizes financial history amounts into a reference currency.
//   - Stats folds every manifest into the global breakdowns.
//   - Assemble ranks manifests by requested funding for presentation.
//
// Process ties them together and returns a Report, that the renderer package
// turns into markdown for the `fmstats` command-line tool.
package fmstats
