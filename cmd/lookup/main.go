package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ariefcatur/go-order-lookup/internal/config"
	"github.com/ariefcatur/go-order-lookup/internal/logx"
	"github.com/ariefcatur/go-order-lookup/internal/lookup"
	"github.com/joho/godotenv"
)

// lookup [order_uid...]
//
// With arguments, looks each id up in turn. Without, reads ids from stdin;
// every line is a lookup and lines do not wait for the previous answer.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	flag.StringVar(&cfg.LookupAPIURL, "api", cfg.LookupAPIURL, "order API base URL")
	flag.DurationVar(&cfg.LookupTimeout, "timeout", cfg.LookupTimeout, "lookup timeout (0 = none)")
	flag.StringVar(&cfg.LogLevel, "log", "error", "log level")
	flag.Parse()

	log := logx.New("order-lookup", cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	term := lookup.NewTerminal(os.Stdout)
	w, err := lookup.NewWidget(term, lookup.NewClient(cfg.LookupAPIURL, cfg.LookupTimeout), cfg.Location(), log)
	if err != nil {
		log.Fatalf("widget: %v", err)
	}

	if flag.NArg() > 0 {
		for _, id := range flag.Args() {
			w.Lookup(ctx, id)
		}
		if w.State() == lookup.StateError {
			os.Exit(1)
		}
		return
	}

	fmt.Fprintln(os.Stderr, "Enter an Order ID and press Enter (Ctrl-D to quit)")
	var wg sync.WaitGroup
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Text()
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Lookup(ctx, line)
		}()
	}
	wg.Wait()
	if err := sc.Err(); err != nil {
		log.Errorw("read stdin", "error", err)
	}
}
