package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/ai"
	"github.com/amishk599/tailor/internal/config"
	"github.com/amishk599/tailor/internal/content"
	"github.com/amishk599/tailor/internal/jobs"
	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/pdf"
	"github.com/amishk599/tailor/internal/pipeline"
	"github.com/amishk599/tailor/internal/profile"
	"github.com/amishk599/tailor/internal/render"
	"github.com/amishk599/tailor/internal/tone"
)

var (
	dataDirFlag string
	profileFlag string
	debug       bool
	dryRun      bool
)

var rootCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailored resumes from your background and real job postings",
	Long: `Tailor keeps your career background, archives job postings, and generates
resumes tailored to each posting with LLM assistance. Everything lives in
plain files under a data directory; every generated resume is kept, versioned
per job posting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default: TAILOR_DATA_DIR env var or ./data)")
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "profile to operate on (default: current profile)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "skip LLM calls, produce placeholder output")
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// app bundles everything a command needs for one profile. Built fresh per
// invocation; nothing is cached across commands.
type app struct {
	dataDir string
	cfg     *config.Config
	store   *profile.Store
	profile model.Profile
	paths   profile.Paths
	library *content.Library
	jobs    *jobs.Archive
	renders *render.Archive
	tones   *tone.Library
	logger  *slog.Logger
}

// newApp loads configuration and resolves the working profile.
func newApp() (*app, error) {
	config.LoadEnv()
	logger := setupLogger(debug)
	dataDir := config.DataDir(dataDirFlag)

	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	store := profile.NewStore(dataDir, cfg)

	var prof model.Profile
	if profileFlag != "" {
		prof, err = store.Get(profileFlag)
	} else {
		prof, err = store.Current()
	}
	if err != nil {
		return nil, fmt.Errorf("no usable profile (run `tailor init` first): %w", err)
	}

	paths := store.Paths(prof.Name)
	jobArchive := jobs.NewArchive(paths, logger)

	return &app{
		dataDir: dataDir,
		cfg:     cfg,
		store:   store,
		profile: prof,
		paths:   paths,
		library: content.NewLibrary(paths),
		jobs:    jobArchive,
		renders: render.NewArchive(paths, jobArchive, logger),
		tones:   tone.NewLibrary(paths, logger),
		logger:  logger,
	}, nil
}

// pipeline builds the generation pipeline over the app's stores.
func (a *app) pipeline() *pipeline.Pipeline {
	factory := func(mc model.ModelConfig) (model.Collaborators, error) {
		if dryRun {
			return ai.NewNopCollaborators(), nil
		}
		return ai.NewSuite(mc)
	}
	return pipeline.New(
		a.profile,
		a.cfg.DefaultModel,
		a.library,
		a.jobs,
		a.renders,
		a.tones,
		factory,
		pdf.NewRenderer(),
		a.logger,
	)
}
