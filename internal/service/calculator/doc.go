// Package calculator is the get-version entry point: it loads settings,
// takes either the manual version override or the resolver path, formats
// the result for the requested packaging variant and writes it out.
package calculator
