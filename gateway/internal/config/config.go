package config

import (
	"log"
	"os"
)

type Config struct {
	ListenAddr  string
	UsersURL    string
	ProductsURL string
	OrdersURL   string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(v string, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func Load() *Config {
	return &Config{
		ListenAddr:  getenv("GATEWAY_ADDR", ":8080"),
		UsersURL:    must(os.Getenv("USERS_URL"), "USERS_URL"),
		ProductsURL: must(os.Getenv("PRODUCTS_URL"), "PRODUCTS_URL"),
		OrdersURL:   must(os.Getenv("ORDERS_URL"), "ORDERS_URL"),
	}
}
