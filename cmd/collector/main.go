package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"go-vagas-automation/internal/ai"
	"go-vagas-automation/internal/browser"
	"go-vagas-automation/internal/classify"
	"go-vagas-automation/internal/collector"
	"go-vagas-automation/internal/config"
	"go-vagas-automation/internal/database"
	"go-vagas-automation/internal/dedup"
	"go-vagas-automation/internal/extract"
	"go-vagas-automation/internal/feed"
	"go-vagas-automation/internal/models"
	"go-vagas-automation/internal/normalize"
	"go-vagas-automation/internal/reporter"

	"github.com/playwright-community/playwright-go"
)

func main() {
	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Sources: %d, include terms: %d", len(cfg.Sources), len(cfg.Vocabulary.Include))

	log.Println("🚀 Starting vagas collector...")

	for {
		runOnce(cfg)

		if cfg.CollectIntervalHours <= 0 {
			return
		}
		log.Printf("💤 Next collection in %d hours", cfg.CollectIntervalHours)
		time.Sleep(time.Duration(cfg.CollectIntervalHours) * time.Hour)
	}
}

func runOnce(cfg *config.Config) {
	//one full pass over every configured source
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	//init telegram reporter (optional)
	var rep *reporter.TelegramReporter
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		var err error
		rep, err = reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Failed to init Telegram reporter: %v. Continuing without it.", err)
		} else {
			log.Println("🤖 Telegram reporter initialized.")
		}
	}

	//connect database (optional)
	var repo *database.Repository
	if cfg.DatabaseURL != "" {
		var err error
		repo, err = database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("⚠️ Database unavailable: %v. Continuing without persistence.", err)
		} else {
			defer repo.Close()
			if err := repo.EnsureSchema(ctx); err != nil {
				log.Printf("⚠️ Schema check failed: %v", err)
			}
		}
	}

	//init playwright manager
	mgr, err := browser.NewManager(!cfg.ShowBrowser)
	if err != nil {
		log.Fatalf("❌ Failed to init browser: %v", err)
	}
	defer mgr.Close()

	//load cookies (best effort; sources that need a session will report
	//a login wall on their own)
	var cookies []playwright.OptionalCookie
	cookieFile := filepath.Join(cfg.CookiesPath, "cookies-linkedin.json")
	if loaded, err := browser.LoadCookies(cookieFile); err != nil {
		log.Printf("⚠️ Could not load cookies: %v. Continuing.", err)
	} else {
		log.Printf("🍪 Loaded cookies (%d)", len(loaded))
		cookies = loaded
	}

	browserCtx, err := mgr.NewContext(cookies)
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create new page: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	//sources run strictly one after another on the shared page
	for _, src := range cfg.Sources {
		log.Printf("\n▶️ Collecting source: %s", src.Name)
		runSource(ctx, cfg, src, page, repo, rep)
	}

	if repo != nil {
		stats, err := repo.Stats(ctx)
		if err != nil {
			log.Printf("⚠️ Could not read stats: %v", err)
			return
		}
		log.Printf("\n📦 Stored listings: %d total, %d in the last 24h", stats.Total, stats.Last24h)
	}
}

func runSource(ctx context.Context, cfg *config.Config, src config.SourceConfig, page playwright.Page, repo *database.Repository, rep *reporter.TelegramReporter) {
	source := models.Source(src.Name)

	mode := feed.AdvanceScroll
	if src.Advance == "next" {
		mode = feed.AdvanceNext
	}

	pf := feed.NewPageFeed(page, mode, src.NextSelector)
	if err := pf.Open(ctx, src.URL); err != nil {
		log.Printf("❌ Could not open %s: %v", src.Name, err)
		rep.SendError(err)
		return
	}

	//session-scoped state: nothing carries over between runs
	ledger := dedup.NewLedger()

	var ext collector.Extractor
	if src.UseModel && cfg.ModelAPIKey != "" {
		analyzer := ai.NewChatClient(cfg.ModelAPIKey, cfg.ModelName, cfg.ModelBaseURL)
		ext = ai.NewModelAssisted(analyzer, ledger, source, 0)
		log.Println("🧠 Using model-assisted extraction")
	} else {
		cls := classify.New(cfg.Vocabulary.Include, cfg.Vocabulary.Exclude)
		fields := extract.NewFields(source, src.PlatformDomain, cfg.Vocabulary.ContactPhrases, cfg.Vocabulary.BoilerplateTitles)
		ext = extract.NewHeuristic(cls, ledger, fields)
	}

	session := collector.NewSession(collector.Config{
		Source:          source,
		Delimiters:      normalize.Delimiters{Start: src.StartMarker, End: src.EndMarker},
		PlatformDomain:  src.PlatformDomain,
		MaxIterations:   src.MaxIterations,
		Warmup:          src.Warmup,
		StagnationLimit: src.StagnationLimit,
	}, pf, ledger, ext)

	res := session.Run(ctx)
	if res.Err != nil {
		log.Printf("❌ Session failed for %s: %v", src.Name, res.Err)
		rep.SendError(res.Err)
		return
	}
	log.Printf("✅ %s finished: %s after %d iterations, %d records", src.Name, res.State, res.Iterations, len(res.Records))

	saved := 0
	if repo != nil {
		var err error
		saved, err = repo.SaveAll(ctx, res.Records)
		if err != nil {
			log.Printf("⚠️ Persistence incomplete: %v", err)
		}
		log.Printf("💾 Saved %d new listings", saved)
	}

	for _, rec := range res.Records {
		if err := rep.SendRecord(rec); err != nil {
			log.Printf("⚠️ Failed to send record: %v", err)
		}
	}
	if err := rep.SendSummary(source, res, saved); err != nil {
		log.Printf("⚠️ Failed to send summary: %v", err)
	}
}
