package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/bs2tutor/internal/app"
	"github.com/abhisek/bs2tutor/internal/config"
	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/llm"
	"github.com/abhisek/bs2tutor/internal/logger"
	"github.com/abhisek/bs2tutor/internal/questiongen"
	"github.com/abhisek/bs2tutor/internal/retrieval"
	"github.com/abhisek/bs2tutor/internal/session"
	"github.com/abhisek/bs2tutor/internal/store"
	"github.com/abhisek/bs2tutor/internal/tutor"
	"github.com/spf13/cobra"
)

// services bundles what the commands run on. tutor and session are nil
// when aiErr is set.
type services struct {
	cfg     config.Config
	lang    i18n.Lang
	log     *logger.Logger
	store   *store.Store
	tutor   *tutor.Tutor
	session *session.Session
	aiErr   error
}

// openServices loads config, opens the store and builds the model-backed
// services. Provider or retriever failures are kept in aiErr so that
// callers can decide whether to continue without them.
func openServices(cmd *cobra.Command) (*services, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	log, err := newLogger(cfg.Log, dbPath)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	svc := &services{
		cfg:   cfg,
		lang:  i18n.ParseLang(cfg.Trainer.Language),
		log:   log,
		store: st,
	}

	lcfg := llmConfig(cfg.LLM)
	provider, err := llm.NewProvider(ctx, lcfg, st.EventRepo(), log)
	if err != nil {
		svc.aiErr = fmt.Errorf("LLM provider not configured: %w", err)
		return svc, nil
	}
	retriever, err := newRetriever(ctx, cfg.Retrieval, log)
	if err != nil {
		svc.aiErr = fmt.Errorf("retriever unavailable: %w", err)
		return svc, nil
	}

	completer := llm.NewCompleter(provider, lcfg)

	genCfg := questiongen.DefaultConfig()
	genCfg.PrimarySource = cfg.Retrieval.PrimarySource
	generator := questiongen.New(completer, retriever, genCfg, log)

	svc.session = session.New(generator, session.Config{
		MaxAttempts:   cfg.Trainer.MaxAttempts,
		QuestionCount: cfg.Trainer.QuestionCount,
		Language:      svc.lang,
	}, log)

	tcfg := tutor.DefaultConfig()
	tcfg.PrimarySource = cfg.Retrieval.PrimarySource
	svc.tutor = tutor.New(completer, retriever, tcfg, log)

	return svc, nil
}

func (s *services) Close() {
	s.store.Close()
	s.log.Sync()
}

// requireAI returns aiErr for commands that cannot run without a model.
func (s *services) requireAI() error {
	return s.aiErr
}

// runApp opens the services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	opts := app.Options{
		EventRepo: svc.store.EventRepo(),
		Language:  svc.lang,
	}
	if svc.aiErr != nil {
		fmt.Fprintln(os.Stderr, svc.aiErr)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	} else {
		opts.Tutor = svc.tutor
		opts.Session = svc.session
	}

	return app.Run(opts)
}

// newLogger writes to the configured log file, or next to the database so
// that log lines never land on the TUI.
func newLogger(cfg config.Log, dbPath string) (*logger.Logger, error) {
	path := cfg.File
	if path == "" {
		path = filepath.Join(filepath.Dir(dbPath), "bs2tutor.log")
	}
	return logger.New(cfg.Mode, path)
}

// llmConfig layers the config file over the environment.
func llmConfig(cfg config.LLM) llm.Config {
	lc := llm.ConfigFromEnv()
	lc.Override(cfg.Provider, cfg.Model, cfg.APIKey, cfg.BaseURL)
	lc.Timeout = config.Duration(cfg.Timeout, lc.Timeout)
	if cfg.MaxRetries > 0 {
		lc.Retry.MaxAttempts = cfg.MaxRetries
	}
	return lc
}

func newRetriever(ctx context.Context, cfg config.Retrieval, log *logger.Logger) (retrieval.Retriever, error) {
	if cfg.Backend != "qdrant" {
		r, err := retrieval.LoadMemoryRetriever(cfg.ChunksFile)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	key := cfg.EmbeddingKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	embed, err := retrieval.NewOpenAIEmbedder(key, cfg.EmbeddingURL, cfg.EmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	r, err := retrieval.NewQdrantRetriever(ctx, log, retrieval.QdrantConfig{
		URL:        cfg.QdrantURL,
		APIKey:     cfg.QdrantAPIKey,
		Collection: cfg.Collection,
		VectorDim:  cfg.VectorDim,
		Timeout:    config.Duration(cfg.Timeout, 10*time.Second),
	}, embed)
	if err != nil {
		return nil, err
	}
	return r, nil
}
