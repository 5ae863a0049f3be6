// Package kernel holds the value objects shared by every aggregate of the
// delivery tracking domain: identities (UUID) and monetary amounts (Money).
//
// Both are immutable and their zero values are invalid; use the
// constructors.
package kernel
