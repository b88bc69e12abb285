// Package anki exports the translation history as a CSV file that Anki can
// import as flashcards.
package anki
