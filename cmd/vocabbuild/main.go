// Package main provides the entry point for the vocabbuild CLI.
//
// vocabbuild fetches the most-observed taxa per configured group from the
// iNaturalist API and writes one vocabulary JSON artifact per group.
//
// Usage:
//
//	vocabbuild build
//	vocabbuild build -c vocabbuild.yml -o data
//
// See --help for all available options.
package main

// main is the entry point for vocabbuild.
func main() {
	Execute()
}
