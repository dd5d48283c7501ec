// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of the store and catalog
// interfaces used throughout the application, so test packages share one
// set of fakes instead of defining inline mocks per file.
//
// Each mock follows the same pattern: function fields override individual
// methods, and an in-memory map provides a working default implementation
// for tests that only need plausible storage behavior.
package mocks
