// Package abi provides small arithmetic helpers shared by the layout code.
//
// # Contents
//
//   - helpers.go: alignment rounding and overflow-checked addition
//
// This package is internal to structlayout.
package abi
