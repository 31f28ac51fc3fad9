// Package browser owns everything that touches Chrome: lifecycle
// management, the DOM scanner that snapshots exercises into
// challenge.Context values, and the polling runner that drives the
// solve loop.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/bitdittowit/autoduo/internal/config"
)

// Manager owns the Chrome connection: attach to a running instance over
// its DevTools websocket, or launch a local one.
type Manager struct {
	cfg    config.BrowserConfig
	logger *slog.Logger

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	page    *rod.Page
	closed  bool
}

// NewManager creates a Manager. Call Start to connect.
func NewManager(cfg config.BrowserConfig, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{cfg: cfg, logger: logger}
}

// Start connects to Chrome and returns the page the loop will work on:
// the browser's current page when attaching, a fresh stealth page when
// launching. With cfg.URL set, the page is navigated there first.
func (m *Manager) Start(ctx context.Context) (*rod.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("browser: manager is closed")
	}

	b, err := m.connect()
	if err != nil {
		return nil, err
	}
	m.browser = b

	page, err := m.acquirePage(b)
	if err != nil {
		m.cleanup()
		return nil, err
	}
	m.page = page

	if m.cfg.URL != "" {
		navCtx, cancel := context.WithTimeout(ctx, m.cfg.NavigateTimeout)
		defer cancel()
		if err := page.Context(navCtx).Navigate(m.cfg.URL); err != nil {
			m.cleanup()
			return nil, fmt.Errorf("browser: navigate %s: %w", m.cfg.URL, err)
		}
		if err := page.Context(navCtx).WaitLoad(); err != nil {
			m.logger.Warn("wait load timeout", "url", m.cfg.URL, "error", err)
		}
	}

	return page, nil
}

func (m *Manager) connect() (*rod.Browser, error) {
	wsURL := m.cfg.Attach
	if wsURL == "" {
		l := launcher.New().
			Headless(m.cfg.Headless).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		m.lnch = l
		wsURL = u
		m.logger.Info("launched local chrome", "url", wsURL, "headless", m.cfg.Headless)
	} else {
		m.logger.Info("attaching to chrome", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	return b, nil
}

// acquirePage reuses the browser's active page when attaching, so the
// loop picks up whatever exercise is already on screen. A launched
// browser gets a stealth page instead.
func (m *Manager) acquirePage(b *rod.Browser) (*rod.Page, error) {
	if m.cfg.Attach != "" {
		pages, err := b.Pages()
		if err == nil && len(pages) > 0 {
			return pages[0], nil
		}
	}
	if m.lnch != nil {
		page, err := stealth.Page(b)
		if err != nil {
			return nil, fmt.Errorf("browser: stealth page: %w", err)
		}
		return page, nil
	}
	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("browser: create page: %w", err)
	}
	return page, nil
}

// Page returns the working page, nil before Start.
func (m *Manager) Page() *rod.Page {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.page
}

// Close disconnects. A launched Chrome is shut down; an attached one is
// left running.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return m.cleanup()
}

func (m *Manager) cleanup() error {
	if m.browser != nil {
		// Closing an attached browser would kill the user's session.
		if m.lnch != nil {
			m.browser.Close()
		}
		m.browser = nil
	}
	if m.lnch != nil {
		m.lnch.Cleanup()
		m.lnch = nil
	}
	m.page = nil
	return nil
}
