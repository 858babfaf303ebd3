package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug        bool
	TestMode     bool
	Env          string // DEV (local; default), TEST, QA, PROD
	AppName      string
	Build        string
	SecretKey    string
	RollbarToken string

	// StateDir holds client-side state (selection persistence). Empty means
	// the OS user config dir.
	StateDir string

	API struct {
		BaseURL string
	}

	Server struct {
		Host               string
		Address            string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Ubao")
	conf.SetDefault("build", "dev")
	conf.SetDefault("secretKey", "kx3@wq7-board$+91=ab&melw5(d!u)#*f8(#tn2p^$qzhk4vy")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("stateDir", "")
	conf.SetDefault("apiBaseURL", "http://localhost:8080")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddress", ":8080")
	conf.SetDefault("shutdownTimeout", 5*time.Second)
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := &Config{
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Env:          env,
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		SecretKey:    conf.GetString("secretKey"),
		RollbarToken: conf.GetString("rollbarToken"),
		StateDir:     conf.GetString("stateDir"),
	}
	c.API.BaseURL = strings.TrimRight(conf.GetString("apiBaseURL"), "/")
	c.Server.Host = conf.GetString("serverHost")
	c.Server.Address = conf.GetString("serverAddress")
	c.Server.ShutdownTimeout = conf.GetDuration("shutdownTimeout")
	c.Server.JWTExpirationDelta = conf.GetDuration("jwtExpirationDelta")
	return c
}
