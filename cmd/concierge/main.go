// Command concierge runs the hotel assistant as a stdin/stdout chat loop.
// Configuration comes from the environment; see internal/config.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hotelkit/concierge"
	"github.com/hotelkit/concierge/booking"
	"github.com/hotelkit/concierge/booking/sqlite"
	"github.com/hotelkit/concierge/internal/config"
	"github.com/hotelkit/concierge/internal/util"
	"github.com/hotelkit/concierge/logging"
	"github.com/hotelkit/concierge/model"
	"github.com/hotelkit/concierge/model/anthropic"
	"github.com/hotelkit/concierge/model/openai"
	"github.com/hotelkit/concierge/notify"
	"github.com/hotelkit/concierge/retrieval/memory"
	"github.com/hotelkit/concierge/retrieval/openaiembed"
	"github.com/hotelkit/concierge/seed"
	"github.com/hotelkit/concierge/tool"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	logger := logging.NewSlogLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	transport, err := buildTransport(cfg)
	if err != nil {
		return err
	}

	store, closeStore, err := buildBookingStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required for embeddings")
	}
	index := memory.NewIndex(openaiembed.NewEmbedder())
	if _, err := seed.FromFile(ctx, index, cfg.SourcesPath, func(o *seed.Options) { o.Logger = logger }); err != nil {
		return fmt.Errorf("seeding index: %w", err)
	}

	tools := []tool.Tool{
		tool.NewDateTimeTool(),
		tool.NewBookingStatusTool(store),
		tool.NewSendEmailTool(notify.NewLogNotifier(logger)),
	}

	svc, err := concierge.New(transport, index, tools, func(o *concierge.Options) {
		o.RetrievalK = cfg.RetrievalK
		o.Logger = logger
	})
	if err != nil {
		return err
	}

	return chatLoop(ctx, svc)
}

func buildTransport(cfg *config.Config) (model.Transport, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for provider openai")
		}
		return openai.NewTransport(func(o *openai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		}), nil
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for provider anthropic")
		}
		opts := []func(o *anthropic.Options){}
		if cfg.Model != "" {
			opts = append(opts, anthropic.WithModel(cfg.Model))
		}
		return anthropic.NewTransport(opts...), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func buildBookingStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (booking.Store, func(), error) {
	if cfg.BookingDBPath == "" {
		logger.Warn("booking.store.volatile", "reason", "CONCIERGE_BOOKING_DB not set")
		return booking.NewInMemoryStore(), func() {}, nil
	}
	store, err := sqlite.Open(ctx, cfg.BookingDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening booking db: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

func chatLoop(ctx context.Context, svc *concierge.Service) error {
	sessionID := util.NewID()
	fmt.Println("Hotel concierge ready. Type a question, or \"exit\" to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		answer, err := svc.HandleTurn(ctx, sessionID, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintln(os.Stderr, "turn failed:", err)
			continue
		}
		fmt.Println(answer)
	}
}
