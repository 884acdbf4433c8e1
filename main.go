package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cardropbot/cardrop/cardrop"
	"github.com/cardropbot/cardrop/cardrop/catalog"
	"github.com/cardropbot/cardrop/cardrop/commands"
	"github.com/cardropbot/cardrop/cardrop/gacha"
	"github.com/cardropbot/cardrop/cardrop/handlers"
	"github.com/cardropbot/cardrop/cardrop/logger"
	"github.com/cardropbot/cardrop/cardrop/scheduler"
	"github.com/cardropbot/cardrop/cardrop/userstore"
	"github.com/cardropbot/cardrop/cardrop/web"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/joho/godotenv"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler("Cardrop")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Cardrop",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	// Optional .env for the bot token; a missing file is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env", slog.Any("error", err))
	}

	cfg, err := cardrop.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	b := cardrop.New(*cfg, version, commit)

	b.Catalog = catalog.NewLoader(cfg.Game.CardsDir, cfg.Game.CardPrefix)
	b.Images = catalog.NewImageCache(cfg.Game.ImageCacheSize)
	b.Store = userstore.NewJSONStore(cfg.Game.DataFile)
	drawer := gacha.NewDrawer(rand.NewSource(time.Now().UnixNano()))
	b.Game = gacha.NewGame(b.Catalog, b.Store, drawer, cfg.Game.Cooldown())

	cards, err := b.Catalog.Load()
	if err != nil {
		slog.Error("Failed to load card catalog",
			slog.String("type", "sys"),
			slog.String("dir", cfg.Game.CardsDir),
			slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Card catalog ready",
		slog.String("dir", cfg.Game.CardsDir),
		slog.Int("cards", len(cards)))

	h := handler.New()

	// Player commands
	h.Command("/help", handlers.WrapWithLogging("help", commands.HelpHandler(b)))
	h.Command("/drop", handlers.WrapWithLogging("drop", commands.DropHandler(b)))
	h.Command("/balance", handlers.WrapWithLogging("balance", commands.BalanceHandler(b)))
	h.Command("/collection", handlers.WrapWithLogging("collection", commands.CollectionHandler(b)))
	h.Command("/cases", handlers.WrapWithLogging("cases", commands.CasesHandler(b)))
	h.Component("/case/", handlers.WrapComponentWithLogging("case", commands.CaseButtonHandler(b)))
	h.Command("/transfer", handlers.WrapWithLogging("transfer", commands.TransferHandler(b)))
	h.Command("/search", handlers.WrapWithLogging("search", commands.SearchHandler(b)))

	// Admin commands
	h.Command("/admin", handlers.WrapWithLogging("admin", commands.AdminHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err))
		}
	}

	if cfg.Health.Enabled {
		healthServer := web.NewHealthServer(cfg.Health.Addr)
		healthServer.Start()
		defer healthServer.Shutdown()
	}

	maintenance, err := scheduler.New(b.Game, cfg.Game.DataFile)
	if err != nil {
		slog.Error("Failed to set up maintenance jobs",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}
	maintenance.Start()
	defer maintenance.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...")
}
