package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/hoanghonghuy/aicommit/internal/app"
	flags "github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// command line opts
type opts struct {
	Message string `short:"m" long:"message" required:"true" description:"Short title describing the change." value-name:"TEXT"`
	API     string `long:"api" choice:"ollama" choice:"zhipu" description:"Model backend (default: ollama)."`

	Repo   string `long:"repo" description:"Path inside the git repository (default: current directory)." value-name:"PATH"`
	Config string `long:"config" description:"Config file (default: ~/.aicommit.yml)." value-name:"FILE"`

	Model     string        `long:"model" description:"Model name for the selected backend."`
	OllamaURL string        `long:"ollama-url" description:"Ollama server address." value-name:"URL"`
	ZhipuKey  string        `long:"zhipu-key" description:"Zhipu API key." value-name:"KEY"`
	Timeout   time.Duration `long:"timeout" description:"Ollama request timeout (default: 2m)."`

	DumpPrompt bool `long:"dump-prompt" description:"Print the prompt for the staged diff and exit."`
	Debug      bool `short:"d" long:"debug" description:"Show runtime debug info."`
	Version    bool `short:"v" long:"version" description:"Show version info."`
}

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func parseArgs(args []string) (opts, error) {
	var o opts
	parser := flags.NewParser(&o, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "aicommit"
	_, err := parser.ParseArgs(args)
	return o, err
}

func realMain(args []string) int {
	o, err := parseArgs(args)
	if err != nil {
		var ferr *flags.Error
		errors.As(err, &ferr)
		switch {
		case ferr != nil && ferr.Type == flags.ErrHelp:
			fmt.Println(err)
			return 0
		case ferr != nil && ferr.Type == flags.ErrRequired && o.Version:
			// --version does not need a title
		default:
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if o.Version {
		fmt.Printf("aicommit version : %s : %s : %s\n", version, date, commit)
		return 0
	}
	if o.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.With().Caller().Logger()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	releaseOnDone(ctx, stop)

	err = app.Run(ctx, app.Config{
		Title:      o.Message,
		API:        o.API,
		RepoArg:    o.Repo,
		ConfigPath: o.Config,
		Model:      o.Model,
		OllamaURL:  o.OllamaURL,
		ZhipuKey:   o.ZhipuKey,
		Timeout:    o.Timeout,
		DumpPrompt: o.DumpPrompt,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// releaseOnDone restores default signal handling once ctx is done, so a
// second interrupt kills the process even while it is blocked reading stdin.
func releaseOnDone(ctx context.Context, stop func()) {
	go func() {
		<-ctx.Done()
		stop()
	}()
}
