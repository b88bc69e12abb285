// Package gui is the fyne front end of translatebar. It renders the
// orchestrator's state as a translation window and forwards user input back
// to it.
package gui
