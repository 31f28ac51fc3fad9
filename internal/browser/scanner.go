package browser

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-rod/rod"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/config"
)

// ErrNoExercise means the page currently shows no exercise container.
// The loop treats it as "wait and look again", not a failure.
var ErrNoExercise = errors.New("browser: no exercise container found")

// Scanner builds challenge.Context snapshots from the live page. Every
// selector is a fallback list from the config, tried in order, so vendor
// markup drift is a config change rather than a code change.
type Scanner struct {
	page   *rod.Page
	cfg    config.ScannerConfig
	logger *slog.Logger
	dryRun bool
}

// NewScanner creates a Scanner for a page. With dryRun set, the produced
// elements log their actions instead of performing them.
func NewScanner(page *rod.Page, cfg config.ScannerConfig, logger *slog.Logger, dryRun bool) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{page: page, cfg: cfg, logger: logger, dryRun: dryRun}
}

// Snapshot reads the current exercise into an immutable context. Returns
// ErrNoExercise when no container selector matches.
func (s *Scanner) Snapshot(ctx context.Context) (*challenge.Context, error) {
	page := s.page.Context(ctx)

	container, ok := s.firstMatch(page, s.cfg.Container)
	if !ok {
		return nil, ErrNoExercise
	}

	c := &challenge.Context{
		Container: newPageElement(container, s.logger, s.dryRun),
	}

	if header, ok := s.firstChildMatch(container, s.cfg.Header); ok {
		h := newPageElement(header, s.logger, s.dryRun)
		c.Header = h
		c.HeaderText = strings.ToLower(h.Text())
	}

	if eq, ok := s.firstChildMatch(container, s.cfg.Equation); ok {
		e := newPageElement(eq, s.logger, s.dryRun)
		c.Equation = e
		c.EquationMarkup = e.Markup()
	}

	if input, ok := s.firstChildMatch(container, s.cfg.TextInput); ok {
		c.TextInput = newPageElement(input, s.logger, s.dryRun)
	}

	for _, sel := range s.cfg.Choices {
		els, err := container.Elements(sel)
		if err != nil || len(els) == 0 {
			continue
		}
		for _, el := range els {
			c.Choices = append(c.Choices, newPageElement(el, s.logger, s.dryRun))
		}
		break
	}

	frames, err := container.Elements("iframe")
	if err == nil {
		for _, f := range frames {
			w, err := newFrameWidget(f, s.logger, s.dryRun)
			if err != nil {
				s.logger.Debug("skipping unreachable iframe", "error", err)
				continue
			}
			c.Widgets = append(c.Widgets, w)
		}
	}

	return c, nil
}

// Advance clicks the continue button to move to the next exercise.
// Missing button is not an error: some exercises auto-advance.
func (s *Scanner) Advance(ctx context.Context) error {
	if s.dryRun {
		s.logger.Info("dry-run: would click continue")
		return nil
	}
	page := s.page.Context(ctx)
	btn, ok := s.firstMatch(page, s.cfg.Continue)
	if !ok {
		s.logger.Debug("no continue button found")
		return nil
	}
	return newPageElement(btn, s.logger, false).Click()
}

// firstMatch returns the first element matching any selector, without
// waiting for absent ones.
func (s *Scanner) firstMatch(page *rod.Page, selectors []string) (*rod.Element, bool) {
	for _, sel := range selectors {
		el, err := page.Sleeper(rod.NotFoundSleeper).Element(sel)
		if err == nil && el != nil {
			return el, true
		}
	}
	return nil, false
}

func (s *Scanner) firstChildMatch(parent *rod.Element, selectors []string) (*rod.Element, bool) {
	for _, sel := range selectors {
		el, err := parent.Sleeper(rod.NotFoundSleeper).Element(sel)
		if err == nil && el != nil {
			return el, true
		}
	}
	return nil, false
}
