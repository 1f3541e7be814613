package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	profileCreateDisplayName string
	profileDeleteCascade     bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage isolated profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE:  runProfileList,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileCreate,
}

var profileSwitchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Make a profile current",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSwitch,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile and all its data",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDelete,
}

func init() {
	profileCreateCmd.Flags().StringVar(&profileCreateDisplayName, "display-name", "", "human-readable profile name")
	profileDeleteCmd.Flags().BoolVar(&profileDeleteCascade, "yes", false, "confirm deletion without prompting")
	profileCmd.AddCommand(profileListCmd, profileCreateCmd, profileSwitchCmd, profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	for _, p := range a.store.List() {
		marker := " "
		if p.Name == a.cfg.CurrentProfile {
			marker = "*"
		}
		fmt.Printf("%s %s  (%s, created %s)\n", marker, p.Name, p.DisplayName, p.CreatedAt.Local().Format("2006-01-02"))
	}
	return nil
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	prof, err := a.store.Create(args[0], profileCreateDisplayName)
	if err != nil {
		return err
	}
	fmt.Printf("Created profile %q. Switch to it with `tailor profile switch %s`.\n", prof.Name, prof.Name)
	return nil
}

func runProfileSwitch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.store.Switch(args[0]); err != nil {
		return err
	}
	fmt.Printf("Current profile is now %q.\n", args[0])
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	name := args[0]
	if !profileDeleteCascade {
		return fmt.Errorf("deleting %q removes its background, postings and renders; re-run with --yes to confirm", name)
	}
	if err := a.store.Delete(name); err != nil {
		return err
	}
	fmt.Printf("Deleted profile %q.\n", name)
	return nil
}
