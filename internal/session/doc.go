// Package session drives the exercise flow in a browser page. It logs in,
// discovers lessons and, per lesson, loops classify, scrape, solve, execute
// and advance until the page leaves the lesson. Several sessions can share
// one translation cache and work through the lessons in parallel.
package session
