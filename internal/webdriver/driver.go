package webdriver

import (
	"context"
	"fmt"
	"os"

	"github.com/tebeka/selenium"
)

// Driver is a running geckodriver process
type Driver struct {
	service *selenium.Service
	url     string
}

// StartDriver launches the geckodriver executable at path on port and
// waits until it accepts sessions or ctx is done
func StartDriver(ctx context.Context, path string, port int) (*Driver, error) {
	if path == "" {
		return nil, fmt.Errorf("geckodriver path is not configured")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to start geckodriver: %w", err)
	}

	type started struct {
		service *selenium.Service
		err     error
	}
	ch := make(chan started, 1)
	go func() {
		service, err := selenium.NewGeckoDriverService(path, port)
		ch <- started{service, err}
	}()

	select {
	case <-ctx.Done():
		// Reap the process once it is up
		go func() {
			if s := <-ch; s.err == nil {
				_ = s.service.Stop()
			}
		}()
		return nil, fmt.Errorf("geckodriver did not become ready: %w", ctx.Err())
	case s := <-ch:
		if s.err != nil {
			return nil, fmt.Errorf("failed to start geckodriver: %w", s.err)
		}
		return &Driver{service: s.service, url: fmt.Sprintf("http://127.0.0.1:%d", port)}, nil
	}
}

// NewSession starts a browser session served by this driver
func (d *Driver) NewSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	return NewSession(ctx, d.url, opts)
}

// URL returns the driver endpoint
func (d *Driver) URL() string {
	return d.url
}

// Stop kills the process
func (d *Driver) Stop() error {
	if err := d.service.Stop(); err != nil {
		return fmt.Errorf("failed to stop geckodriver: %w", err)
	}
	return nil
}
