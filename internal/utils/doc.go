// Package utils provides general-purpose helper utilities used across
// different parts of the application: the shared HTTP client wrapper and the
// run identifier generator.
package utils
