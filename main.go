package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"invdesk/internal/api"
	"invdesk/internal/config"
	"invdesk/internal/session"
)

func main() {
	cfgPath := flag.String("config", defaultConfigPath(), "Path to invdesk.yaml")
	backend := flag.String("backend", "", "Backend base URL (overrides config)")
	token := flag.String("token", "", "Session token (overrides token file)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal("config load failed:", err)
	}
	if *backend != "" {
		cfg.BackendURL = *backend
	}

	store := session.NewStore()
	if *token != "" {
		store.SetToken(*token)
	} else {
		store.SetToken(cfg.ReadToken())
	}

	client, err := api.NewClient(cfg.BackendURL, store, api.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		log.Fatal("client init failed:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := &Console{
		Client:  client,
		Store:   store,
		RefData: session.NewRefData(client),
		Config:  cfg,
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if err := console.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home + "/.invdesk.yaml"
	}
	return "invdesk.yaml"
}

func usage() {
	fmt.Fprintln(os.Stderr, strings.TrimSpace(`
usage: invdesk [flags] <command> [args]

commands:
  login                      authenticate and print the session token
  products  [list flags]     list products
  transfers [list flags]     list stock transfers
  pos       [list flags]     list purchase orders
  po-wizard                  create a purchase order interactively
  proforma-wizard            create a proforma invoice interactively
  upload <file.csv|.xlsx>    bulk-upload products from a spreadsheet

list flags: -search -brand -category -status -min-price -max-price
            -sort -desc -export <file> -watch
`))
}
