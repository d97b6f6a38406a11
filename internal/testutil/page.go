package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/autolingo/internal/page"
)

// MockElement is a scripted page element
type MockElement struct {
	TextValue string
	Attrs     map[string]string
	OnClick   func()

	mu     sync.Mutex
	clicks int
	typed  strings.Builder
}

// NewMockElement returns an element with text
func NewMockElement(text string) *MockElement {
	return &MockElement{TextValue: text, Attrs: make(map[string]string)}
}

// Text returns the element text
func (e *MockElement) Text(ctx context.Context) (string, error) {
	return e.TextValue, nil
}

// Attribute returns a scripted attribute
func (e *MockElement) Attribute(ctx context.Context, name string) (string, bool, error) {
	value, ok := e.Attrs[name]
	return value, ok, nil
}

// Click records the click and runs OnClick
func (e *MockElement) Click(ctx context.Context) error {
	e.mu.Lock()
	e.clicks++
	onClick := e.OnClick
	e.mu.Unlock()

	if onClick != nil {
		onClick()
	}
	return nil
}

// SendKeys records typed text
func (e *MockElement) SendKeys(ctx context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.typed.WriteString(text)
	return nil
}

// WaitClickable returns immediately
func (e *MockElement) WaitClickable(ctx context.Context) error {
	return ctx.Err()
}

// Clicks returns the number of clicks
func (e *MockElement) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

// Typed returns everything typed into the element
func (e *MockElement) Typed() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.typed.String()
}

// MockPage is a scripted page keyed by selector
type MockPage struct {
	mu          sync.Mutex
	url         string
	elements    map[string][]*MockElement
	navigations []string
}

// NewMockPage returns an empty page at url
func NewMockPage(url string) *MockPage {
	return &MockPage{url: url, elements: make(map[string][]*MockElement)}
}

// Set replaces the elements matching selector
func (p *MockPage) Set(selector string, elements ...*MockElement) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(elements) == 0 {
		delete(p.elements, selector)
		return
	}
	p.elements[selector] = elements
}

// SetURL moves the page to url without recording a navigation
func (p *MockPage) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

// Navigate records the navigation
func (p *MockPage) Navigate(ctx context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
	p.navigations = append(p.navigations, url)
	return nil
}

// CurrentURL returns the page location
func (p *MockPage) CurrentURL(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url, nil
}

// Find returns the first element for selector
func (p *MockPage) Find(ctx context.Context, selector string) (page.Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	elements := p.elements[selector]
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: %s", page.ErrNotFound, selector)
	}
	return elements[0], nil
}

// FindAll returns all elements for selector
func (p *MockPage) FindAll(ctx context.Context, selector string) ([]page.Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []page.Element
	for _, el := range p.elements[selector] {
		out = append(out, el)
	}
	return out, nil
}

// Navigations returns the recorded navigations
func (p *MockPage) Navigations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.navigations...)
}
