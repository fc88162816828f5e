// Package cli implements the especies command line.
//
// Every command resolves the layered configuration (defaults, config files,
// ESPECIES_* environment, flags) before it runs and drives the same
// controller as the interactive and web surfaces.
package cli
