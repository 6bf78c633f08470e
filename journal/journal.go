// Package journal is the durable store behind the ledger: a keyed trade
// store that is the system of record for trade content, and a portfolio
// store that keeps each owner's ordered trade-id list plus derived holdings.
// Quantities and prices are persisted as decimal strings so nothing is lost
// to float rounding.
package journal
