package main

import (
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/advisor"
	"github.com/taskzen/taskzen/internal/config"
	"github.com/taskzen/taskzen/internal/web"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Setup session storage with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})

	loc := cfg.Location()
	opts := []web.Option{
		web.WithClock(func() time.Time { return time.Now().In(loc) }),
	}

	// Assignee suggestions are optional
	if cfg.OpenAIAPIKey != "" {
		a, err := advisor.NewOpenAIAdvisor(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		if err != nil {
			log.Fatalf("Failed to create advisor: %v", err)
		}
		opts = append(opts, web.WithAdvisor(a))
	} else {
		log.Println("OPENAI_API_KEY not set, assignee suggestions disabled")
	}

	r := web.NewServer(cfg.APIURL, opts...).Router(store)

	log.Printf("Dashboard starting on %s (task API at %s)", cfg.ServerAddr, cfg.APIURL)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
