// Package solver turns scraped exercise text into an action plan: which
// choice to click, which cards to pair, or which text to type. Solvers never
// touch the page themselves; the session package executes their plans.
package solver
