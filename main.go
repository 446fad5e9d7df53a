package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"postview/app/config"
	"postview/app/logger"
	"postview/service"
)

// CliVersion is reported by the version command
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args to a command and exits with its status
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	args := os.Args[2:]
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("postview version %s\n", CliVersion)
	case "serve":
		exit(serve())
	case "render":
		exit(render(args, os.Stdout))
	case "seed":
		exit(dbCommand([]string{"seed"}))
	case "db":
		exit(dbCommand(args))
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: postview <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Serve the post page and the post API.
  render [--post <id>]           Load a post once and print the page.
  seed                           Load the sample posts into the local store.
  db <command>                   Manage the local store:
       init                      Initialize a new empty store
       clean                     Delete the store
       seed                      Load the sample posts and comments
       backup                    Create a backup of the store
       restore <file>            Restore the store from a backup

Settings are read from the environment and an optional .env file:
  POSTVIEW_ADDR, POSTVIEW_SERVICE_URL, POSTVIEW_DB_PATH, POSTVIEW_POST_ID,
  POSTVIEW_REQUEST_TIMEOUT, LOG_LEVEL, LOG_FORMAT
`
	fmt.Println(helpText)
}

func loadConfig() (*config.Config, bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil, false
	}
	return cfg, true
}

func serve() int {
	cfg, ok := loadConfig()
	if !ok {
		return 1
	}
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	logger.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := service.RunAppServer(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		return 1
	}
	return 0
}

func render(args []string, out io.Writer) int {
	cfg, ok := loadConfig()
	if !ok {
		return 1
	}

	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	postID := fs.Int("post", cfg.PostID, "id of the post to render")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if *postID < 1 {
		fmt.Printf("Error: invalid post id %d\n", *postID)
		return 1
	}

	// Logs go to stderr so the page on stdout stays clean.
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err := service.RenderPage(context.Background(), cfg, log, *postID, out); err != nil {
		log.Error("failed to load post", "post_id", *postID, "error", err)
		return 1
	}
	return 0
}

func dbCommand(args []string) int {
	cfg, ok := loadConfig()
	if !ok {
		return 1
	}
	return service.NewDBCommands(cfg.DBPath).Handle(args)
}
