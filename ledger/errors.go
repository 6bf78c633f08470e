package ledger

import "errors"

// Every operation fails with one of these kinds, or with a wrapped storage
// error from the underlying store. None is fatal; all leave holdings, the
// trade list and the store exactly as before the call.
var (
	// ErrInsufficientPosition: a sell or revision would drive a holding's
	// quantity below zero.
	ErrInsufficientPosition = errors.New("insufficient position")

	// ErrTradeNotFound: the revise/retract target does not exist in the
	// portfolio.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrInvalidTrade: non-positive quantity or price, empty instrument, or
	// an unknown side.
	ErrInvalidTrade = errors.New("invalid trade")

	// ErrUndefinedReturn: the cumulative return has a zero invested base.
	ErrUndefinedReturn = errors.New("return undefined: nothing invested")

	// ErrNoPortfolio: no portfolio exists for the owner.
	ErrNoPortfolio = errors.New("portfolio not found")
)

func isNoPortfolio(err error) bool { return errors.Is(err, ErrNoPortfolio) }
