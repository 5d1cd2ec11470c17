// Package ledger loads revision ledger workbooks into row tables.
//
// A ledger is an Excel workbook whose sheet carries one row per
// parent-child relation between drawing numbers. The loader validates that
// the literal Child and Parent columns are present, coerces every cell to
// a trimmed string (missing cells become empty strings), reorders columns
// to Child, Parent, then the remaining columns in source order, and
// normalizes the date-like columns to fixed string patterns.
//
// All schema violations are reported here as coded errors; the graph
// construction engine downstream never sees a malformed table.
package ledger
