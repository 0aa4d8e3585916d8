// Command draftpress runs the blog admin panel with the default views.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/allset/draftpress"
	"github.com/allset/draftpress/views"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("draftpress: load .env: %v", err)
	}

	cfg := draftpress.SiteConfig{
		Name:           draftpress.EnvOr("SITE_NAME", "Blog"),
		URL:            draftpress.EnvOr("SITE_URL", "http://localhost:3000"),
		Addr:           draftpress.EnvOr("ADDR", ":3000"),
		DatabasePath:   draftpress.EnvOr("DATABASE_PATH", "data/blog.db"),
		RelayPath:      os.Getenv("RELAY_PATH"),
		AdminPassword:  draftpress.MustEnv("ADMIN_PASSWORD"),
		SessionSecret:  draftpress.MustEnv("SESSION_SECRET"),
		APIToken:       os.Getenv("API_TOKEN"),
		CookieSecure:   os.Getenv("COOKIE_SECURE") == "true",
		CreateEndpoint: os.Getenv("CREATE_ENDPOINT"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
	}

	app := draftpress.New(cfg, views.Default())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		app.Close()
		time.Sleep(100 * time.Millisecond)
		os.Exit(0)
	}()

	if err := app.Start(); err != nil {
		log.Fatalf("draftpress: %v", err)
	}
}
