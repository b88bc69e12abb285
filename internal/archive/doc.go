// Package archive moves the translation history aside so a new one can
// start.
package archive
