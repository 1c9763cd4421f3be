package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hoanghonghuy/aicommit/internal/ai"
	"github.com/hoanghonghuy/aicommit/internal/config"
	"github.com/hoanghonghuy/aicommit/internal/gitx"
	"github.com/hoanghonghuy/aicommit/internal/ollama"
	"github.com/hoanghonghuy/aicommit/internal/prompt"
	"github.com/hoanghonghuy/aicommit/internal/zhipu"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

type Config struct {
	// Title is the short description of the change given with -m.
	Title string
	API   string

	RepoArg    string
	ConfigPath string

	Model     string
	OllamaURL string
	ZhipuKey  string
	Timeout   time.Duration // ollama only

	DumpPrompt bool
}

type repository interface {
	StagedDiff(ctx context.Context) (string, error)
	Committer
}

type deps struct {
	repo        repository
	newProvider func() (ai.Provider, error)
	prompter    Prompter
	out         io.Writer
	busy        func() func()
}

func Run(ctx context.Context, cfg Config) error {
	fileCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	backend, err := ai.ParseBackend(config.ResolveString(cfg.API, os.Getenv("AICOMMIT_API"), fileCfg.API, ai.Ollama.String()))
	if err != nil {
		return err
	}

	repoRoot, err := gitx.ResolveRepoRoot(cfg.RepoArg)
	if err != nil {
		return err
	}
	log.Debug().Str("repo", repoRoot).Stringer("api", backend).Msg("starting")

	d := deps{
		repo: gitx.NewRepo(repoRoot),
		newProvider: func() (ai.Provider, error) {
			return newProvider(backend, cfg, fileCfg)
		},
		out: os.Stdout,
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		d.prompter = &formPrompter{in: os.Stdin, out: os.Stdout}
		d.busy = newSpinner(os.Stderr)
	} else {
		d.prompter = newLinePrompter(os.Stdin, os.Stdout)
	}

	return run(ctx, cfg, d)
}

func run(ctx context.Context, cfg Config, d deps) error {
	diff, err := d.repo.StagedDiff(ctx)
	if err != nil {
		return err
	}
	if diff == "" {
		fmt.Fprintln(d.out, "No changes to commit.")
		return nil
	}

	if cfg.DumpPrompt {
		fmt.Fprint(d.out, prompt.Build(cfg.Title, diff))
		return nil
	}

	provider, err := d.newProvider()
	if err != nil {
		return err
	}

	loop := &Loop{
		Generator: ai.NewGenerator(provider),
		Committer: d.repo,
		Prompter:  d.prompter,
		Out:       d.out,
		Busy:      d.busy,
	}
	return loop.Run(ctx, cfg.Title, diff)
}

// newProvider builds the single client used for the whole run.
func newProvider(b ai.Backend, cfg Config, fileCfg config.FileConfig) (ai.Provider, error) {
	switch b {
	case ai.Ollama:
		return ollama.New(ollama.Config{
			BaseURL: config.ResolveString(cfg.OllamaURL, os.Getenv("OLLAMA_HOST"), fileCfg.Ollama.BaseURL, ollama.DefaultBaseURL),
			Model:   config.ResolveString(cfg.Model, os.Getenv("AICOMMIT_OLLAMA_MODEL"), fileCfg.Ollama.Model, ollama.DefaultModel),
			Timeout: config.ResolveDuration(cfg.Timeout, fileCfg.Timeout, ollama.DefaultTimeout),
		}), nil
	case ai.Zhipu:
		c, err := zhipu.New(zhipu.Config{
			BaseURL: fileCfg.Zhipu.BaseURL,
			APIKey:  config.ResolveString(cfg.ZhipuKey, os.Getenv("ZHIPUAI_API_KEY"), fileCfg.Zhipu.APIKey, ""),
			Model:   config.ResolveString(cfg.Model, os.Getenv("AICOMMIT_ZHIPU_MODEL"), fileCfg.Zhipu.Model, zhipu.DefaultModel),
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown api: %s", b)
	}
}
