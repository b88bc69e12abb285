// Package history stores accepted translations in a local sqlite database
// so they can be listed from the command line.
package history
