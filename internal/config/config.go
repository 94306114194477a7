// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Vocabulary is the data-driven keyword configuration for the relevance
// classifier and the field extractor. Empty lists fall back to the
// compiled-in defaults below.
type Vocabulary struct {
	Include           []string `yaml:"include"`
	Exclude           []string `yaml:"exclude"`
	ContactPhrases    []string `yaml:"contact_phrases"`
	BoilerplateTitles []string `yaml:"boilerplate_titles"`
}

// SourceConfig configures one collection target.
type SourceConfig struct {
	Name            string `yaml:"name"` //indeed | linkedin_jobs | linkedin_posts
	URL             string `yaml:"url"`
	StartMarker     string `yaml:"start_marker"`
	EndMarker       string `yaml:"end_marker"`
	Advance         string `yaml:"advance"` //scroll | next
	NextSelector    string `yaml:"next_selector"`
	PlatformDomain  string `yaml:"platform_domain"`
	MaxIterations   int    `yaml:"max_iterations"`
	Warmup          int    `yaml:"warmup"`
	StagnationLimit int    `yaml:"stagnation_limit"`
	UseModel        bool   `yaml:"use_model"`
}

type Config struct {
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
	ModelAPIKey    string `yaml:"model_api_key" env:"GROQ_API_KEY"`
	ModelName      string `yaml:"model_name"`
	ModelBaseURL   string `yaml:"model_base_url"`
	//Paths
	CookiesPath string `yaml:"cookies_path"`
	//Browser
	ShowBrowser bool `yaml:"show_browser"`
	//Scheduling; 0 means run once and exit
	CollectIntervalHours int `yaml:"collect_interval_hours"`

	Vocabulary Vocabulary     `yaml:"vocabulary"`
	Sources    []SourceConfig `yaml:"sources"`
}

var defaultInclude = []string{
	"product designer", "product design", "product manager", "ux designer", "ui designer",
	"ux/ui", "ui/ux", "service designer", "head de produto", "product owner",
	"product operations", "design de produto", "designer de produto", "vaga de ux",
	"vaga ux", "vaga product", "vaga designer", "oportunidade ux", "oportunidade product",
	"ux research", "ux researcher", "design ops", "designops",
}

var defaultExclude = []string{
	"developer", "desenvolvedor", "engineer", "engenheiro", "qa", "tester",
	"analista de dados", "data analyst", "designer gráfico", "graphic designer",
	"marketing", "growth", "devops", "backend", "frontend", "fullstack",
}

var defaultContactPhrases = []string{
	"entre em contato", "entrar em contato", "mande mensagem", "envie mensagem",
	"fale com", "falar com", "dm", "inbox", "chama no", "me chama",
	"entre em contacto", "manda msg", "manda mensagem",
}

var defaultBoilerplate = []string{
	"link do instagram", "vale a pena", "passando na sua", "ajudaria muito",
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	if apiKey := os.Getenv("GROQ_API_KEY"); apiKey != "" {
		cfg.ModelAPIKey = apiKey
	}

	//Set default values if not set
	if cfg.CookiesPath == "" {
		cfg.CookiesPath = ".cookies"
	}

	if len(cfg.Vocabulary.Include) == 0 {
		cfg.Vocabulary.Include = defaultInclude
	}
	if len(cfg.Vocabulary.Exclude) == 0 {
		cfg.Vocabulary.Exclude = defaultExclude
	}
	if len(cfg.Vocabulary.ContactPhrases) == 0 {
		cfg.Vocabulary.ContactPhrases = defaultContactPhrases
	}
	if len(cfg.Vocabulary.BoilerplateTitles) == 0 {
		cfg.Vocabulary.BoilerplateTitles = defaultBoilerplate
	}

	if len(cfg.Sources) == 0 {
		cfg.Sources = []SourceConfig{{
			Name:           "linkedin_posts",
			URL:            "https://www.linkedin.com/feed/",
			StartMarker:    "Publicação no feed",
			EndMarker:      "Gostar",
			Advance:        "scroll",
			PlatformDomain: "linkedin.com",
		}}
	}

	//Telegram and database are optional surfaces; the pipeline itself
	//only needs a browser
	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		log.Println("Warning: Telegram not configured, reporting disabled")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, persistence disabled")
	}

	return cfg
}
