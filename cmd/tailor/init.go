package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/config"
	"github.com/amishk599/tailor/internal/profile"
)

var initDisplayName string

var initCmd = &cobra.Command{
	Use:   "init [profile-name]",
	Short: "Create the data directory and a first profile",
	Long: `Creates the data directory, a profile with seeded background, template and
tone files, and makes it the current profile. Re-running completes a partial
init without touching existing content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initDisplayName, "display-name", "", "human-readable profile name")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	config.LoadEnv()
	dataDir := config.DataDir(dataDirFlag)

	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}
	store := profile.NewStore(dataDir, cfg)

	name := "default"
	if len(args) == 1 {
		name = args[0]
	}

	if _, exists := cfg.Profiles[name]; exists {
		// Idempotent completion: rebuild anything missing, change nothing else.
		if err := store.EnsureSkeleton(name); err != nil {
			return err
		}
		fmt.Printf("Profile %q already exists; completed any missing files.\n", name)
		return nil
	}

	prof, err := store.Create(name, initDisplayName)
	if err != nil {
		return err
	}

	fmt.Printf("Initialized profile %q under %s\n", prof.Name, store.Paths(prof.Name).Root())
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the background files under background/ (or `tailor content edit`)")
	fmt.Println("  2. Set OPENAI_API_KEY or ANTHROPIC_API_KEY in the environment or a .env file")
	fmt.Println("  3. `tailor job add` a posting, then `tailor generate`")
	return nil
}
