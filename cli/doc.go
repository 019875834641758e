// Package cli implements the postboard command line client.
package cli
