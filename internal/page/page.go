// Package page defines the UI automation boundary: the capabilities the
// session needs from a browser page and its elements, independent of the
// automation backend.
package page

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no element matches a selector
var ErrNotFound = errors.New("element not found")

// Element is a located element on the page
type Element interface {
	Text(ctx context.Context) (string, error)

	// Attribute returns the attribute value and whether it is present
	Attribute(ctx context.Context, name string) (string, bool, error)

	Click(ctx context.Context) error

	// SendKeys types text into the element
	SendKeys(ctx context.Context, text string) error

	// WaitClickable blocks until the element is displayed and enabled
	WaitClickable(ctx context.Context) error
}

// Page is a browser tab
type Page interface {
	Navigate(ctx context.Context, url string) error
	CurrentURL(ctx context.Context) (string, error)

	// Find returns the first element matching a CSS selector or ErrNotFound
	Find(ctx context.Context, selector string) (Element, error)

	// FindAll returns all matching elements, possibly none
	FindAll(ctx context.Context, selector string) ([]Element, error)
}
