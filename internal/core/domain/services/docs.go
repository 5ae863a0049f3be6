// Package services provides domain rules that do not belong to a single
// aggregate.
//
// The package includes:
//   - DistanceFeeCalculator: prices the distance part of a delivery
package services
