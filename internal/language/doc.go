// Package language defines the two languages autolingo works with and
// detects which of them a piece of text is written in. Detection is
// restricted to an allow-list, so callers never see an unknown language.
package language
