package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-vagas-automation/internal/browser"

	"github.com/playwright-community/playwright-go"
)

// AdvanceMode selects how a source loads more content.
type AdvanceMode string

const (
	AdvanceScroll AdvanceMode = "scroll"
	AdvanceNext   AdvanceMode = "next"
)

// PageFeed implements Feed on top of a live playwright page.
type PageFeed struct {
	page         playwright.Page
	mode         AdvanceMode
	nextSelector string
	settle       time.Duration
	shots        *browser.ScreenshotDebugger
}

func NewPageFeed(page playwright.Page, mode AdvanceMode, nextSelector string) *PageFeed {
	return &PageFeed{
		page:         page,
		mode:         mode,
		nextSelector: nextSelector,
		settle:       1500 * time.Millisecond,
		shots:        browser.NewScreenshotDebugger(),
	}
}

// Open navigates to the feed URL and verifies the session is usable.
// A redirect to a login wall means the saved cookies expired; that is
// reported, never worked around.
func (f *PageFeed) Open(ctx context.Context, url string) error {
	if _, err := f.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("failed to open feed: %w", err)
	}
	browser.RandomDelay(3000, 5000)

	current := f.page.URL()
	if strings.Contains(current, "/login") || strings.Contains(current, "authwall") {
		f.shots.CaptureAndLog(f.page, "login-wall", "🚨 Feed redirected to login wall")
		return ErrNotAuthenticated
	}

	//focus the body so keyboard scrolling works
	f.page.Locator("body").Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(2000),
	})
	browser.MouseJiggle(f.page)

	return nil
}

func (f *PageFeed) Snapshot(ctx context.Context) (*Snapshot, error) {
	text, err := f.page.Locator("body").InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(10000),
	})
	if err != nil {
		f.shots.CaptureAndLog(f.page, "snapshot-failed", "🚨 Could not read page text")
		return nil, fmt.Errorf("page snapshot failed: %w", err)
	}

	snap := &Snapshot{Text: text}

	//link elements are best effort; a snapshot without them is still usable
	anchors, err := f.page.Locator("a[href]").All()
	if err != nil {
		return snap, nil
	}
	for _, a := range anchors {
		href, err := a.GetAttribute("href")
		if err != nil || href == "" {
			continue
		}
		label, _ := a.InnerText(playwright.LocatorInnerTextOptions{
			Timeout: playwright.Float(200),
		})
		snap.Links = append(snap.Links, Link{Text: strings.TrimSpace(label), Href: href})
	}

	return snap, nil
}

// Advance scrolls (or clicks the pagination control) and sleeps a fixed
// settle delay. The wait is bounded on purpose: the loop must always
// make forward progress or hit its iteration cap.
func (f *PageFeed) Advance(ctx context.Context) error {
	switch f.mode {
	case AdvanceNext:
		if err := f.page.Locator(f.nextSelector).First().Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(5000),
		}); err != nil {
			return fmt.Errorf("pagination control click failed: %w", err)
		}
	default:
		for i := 0; i < 5; i++ {
			if err := f.page.Keyboard().Press("PageDown"); err != nil {
				//keyboard scroll can fail on focus loss, fall back to JS
				if _, err := f.page.Evaluate("window.scrollBy(0, 1000)"); err != nil {
					return fmt.Errorf("scroll failed: %w", err)
				}
				break
			}
			browser.RandomDelay(150, 300)
		}
	}

	time.Sleep(f.settle)
	return nil
}
