package main

import (
	"fmt"

	"go-vagas-automation/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Sources: %d\n", len(cfg.Sources))
	for _, src := range cfg.Sources {
		fmt.Printf("     - %s (%s, model=%t)\n", src.Name, src.Advance, src.UseModel)
	}
	fmt.Printf("   Include terms: %d, exclude terms: %d\n", len(cfg.Vocabulary.Include), len(cfg.Vocabulary.Exclude))
	fmt.Printf("   Cookies path: %s\n", cfg.CookiesPath)
	fmt.Printf("   Collect interval: %dh\n", cfg.CollectIntervalHours)
	fmt.Printf("   Telegram configured: %t\n", cfg.TelegramToken != "" && cfg.TelegramChatID != 0)
	fmt.Printf("   Database configured: %t\n", cfg.DatabaseURL != "")
}
