// Package report persists run history in SQLite.
//
// Every completed run inserts one row into runs plus one row per file whose
// outcome deserves later review (updates and errors); skip outcomes appear
// only in the run's counters. The store backs "backdate report" listings and
// keeps enough detail to answer what the last run actually touched.
package report
