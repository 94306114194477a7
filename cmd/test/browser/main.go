package main

import (
	"fmt"
	"log"

	"go-vagas-automation/internal/browser"

	"github.com/playwright-community/playwright-go"
)

// Manual smoke check: launch the browser, apply saved cookies, open the
// feed and grab a screenshot.
func main() {
	fmt.Println("🌐 Testing browser manager...")

	mgr, err := browser.NewManager(true)
	if err != nil {
		log.Fatalf("Failed to start browser: %v", err)
	}
	defer mgr.Close()

	fmt.Println("✅ Playwright started")

	cookies, err := browser.LoadCookies(".cookies/cookies-linkedin.json")
	if err != nil {
		log.Printf("⚠️ No cookies loaded: %v", err)
	} else {
		fmt.Printf("✅ Loaded %d cookies\n", len(cookies))
	}

	browserCtx, err := mgr.NewContext(cookies)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer browserCtx.Close()

	fmt.Println("✅ Browser context created")

	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("Failed to create page: %v", err)
	}

	fmt.Println("🔍 Navigating to the feed...")
	if _, err := page.Goto("https://www.linkedin.com/feed/"); err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	title, _ := page.Title()
	fmt.Printf("✅ Page title: %s\n", title)
	fmt.Printf("   Landed on: %s\n", page.URL())

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String("feed-test.png"),
	}); err != nil {
		log.Printf("Failed to take screenshot: %v", err)
	} else {
		fmt.Println("📸 Screenshot saved: feed-test.png")
	}
	fmt.Println("✨ Test complete!")
}
