// Package pricing computes effective listing prices from CX quotes and seller offsets.
//
// Arithmetic runs on shopspring/decimal so percentage offsets land on exact
// values (an ask of 100 at -10% is exactly 90).
package pricing
