package webdriver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/firefox"

	"codeberg.org/snonux/autolingo/internal/page"
)

const (
	// W3C error code of a failed element lookup
	noSuchElement = "no such element"
	// selenium reports a null string result, such as an unset attribute,
	// with this error text
	nilValue = "nil return value"
)

// SessionOptions configures the browser
type SessionOptions struct {
	Headless     bool
	PollInterval time.Duration // WaitClickable polling, defaults to 100ms
}

func capabilities(opts SessionOptions) selenium.Capabilities {
	var args []string
	if opts.Headless {
		args = append(args, "-headless")
	}

	caps := selenium.Capabilities{"browserName": "firefox"}
	caps.AddFirefox(firefox.Capabilities{Args: args})
	return caps
}

// NewSession starts a Firefox session on the WebDriver server at urlPrefix
func NewSession(ctx context.Context, urlPrefix string, opts SessionOptions) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wd, err := selenium.NewRemote(capabilities(opts), urlPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return wrap(wd, opts.PollInterval), nil
}

func wrap(wd selenium.WebDriver, poll time.Duration) *Session {
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}
	return &Session{wd: wd, poll: poll}
}

// mapError turns a failed lookup into page.ErrNotFound
func mapError(err error) error {
	var serr *selenium.Error
	if errors.As(err, &serr) && serr.Err == noSuchElement {
		return fmt.Errorf("%w: %s", page.ErrNotFound, serr.Message)
	}
	return err
}

// Session is a browser session; it implements page.Page
type Session struct {
	wd   selenium.WebDriver
	poll time.Duration
}

// ID returns the WebDriver session id
func (s *Session) ID() string {
	return s.wd.SessionID()
}

// Close ends the session and closes the browser
func (s *Session) Close(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.wd.Quit()
}

// Navigate loads location
func (s *Session) Navigate(ctx context.Context, location string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.wd.Get(location)
}

// CurrentURL returns the location of the page
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.wd.CurrentURL()
}

// Find returns the first element matching selector
func (s *Session) Find(ctx context.Context, selector string) (page.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	we, err := s.wd.FindElement(selenium.ByCSSSelector, selector)
	if err != nil {
		return nil, mapError(err)
	}
	return &Element{we: we, poll: s.poll}, nil
}

// FindAll returns all elements matching selector
func (s *Session) FindAll(ctx context.Context, selector string) ([]page.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	found, err := s.wd.FindElements(selenium.ByCSSSelector, selector)
	if err != nil {
		return nil, mapError(err)
	}

	elements := make([]page.Element, 0, len(found))
	for _, we := range found {
		elements = append(elements, &Element{we: we, poll: s.poll})
	}
	return elements, nil
}

// Element is a remote element reference
type Element struct {
	we   selenium.WebElement
	poll time.Duration
}

// Text returns the rendered text
func (e *Element) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := e.we.Text()
	return text, mapError(err)
}

// Attribute returns the attribute value and whether it is set
func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	value, err := e.we.GetAttribute(name)
	if err != nil {
		if err.Error() == nilValue {
			return "", false, nil
		}
		return "", false, mapError(err)
	}
	return value, true, nil
}

// Click clicks the element
func (e *Element) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapError(e.we.Click())
}

// SendKeys types text into the element
func (e *Element) SendKeys(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapError(e.we.SendKeys(text))
}

// WaitClickable polls until the element is displayed and enabled
func (e *Element) WaitClickable(ctx context.Context) error {
	ticker := time.NewTicker(e.poll)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		displayed, err := e.we.IsDisplayed()
		if err != nil {
			return mapError(err)
		}
		if displayed {
			enabled, err := e.we.IsEnabled()
			if err != nil {
				return mapError(err)
			}
			if enabled {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
