// Package processor contains the command line modes of translatebar. It
// translates single texts and batch files, lists languages and models,
// prints the translation history, and launches the GUI when no other mode
// was requested.
package processor
