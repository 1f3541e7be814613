package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/picker"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage the profile's background sections",
}

var contentShowCmd = &cobra.Command{
	Use:   "show [section]",
	Short: "Print background sections",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runContentShow,
}

var contentSetCmd = &cobra.Command{
	Use:   "set <section>",
	Short: "Replace a section with text from stdin",
	Args:  cobra.ExactArgs(1),
	RunE:  runContentSet,
}

var contentEditCmd = &cobra.Command{
	Use:   "edit <section> <instruction>",
	Short: "Apply an LLM-guided edit to a section",
	Long: `Sends the section and your instruction to the LLM and commits the result.
The original is only replaced when the model returns non-empty content.`,
	Args: cobra.ExactArgs(2),
	RunE: runContentEdit,
}

func init() {
	contentCmd.AddCommand(contentShowCmd, contentSetCmd, contentEditCmd)
	rootCmd.AddCommand(contentCmd)
}

func parseSection(name string) (model.Section, error) {
	sec := model.Section(name)
	if !model.ValidSection(sec) {
		names := make([]string, 0, len(model.Sections()))
		for _, s := range model.Sections() {
			names = append(names, string(s))
		}
		return "", fmt.Errorf("unknown section %q (have: %s)", name, strings.Join(names, ", "))
	}
	return sec, nil
}

func runContentShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		sec, err := parseSection(args[0])
		if err != nil {
			return err
		}
		cs, err := a.library.Section(sec)
		if err != nil {
			return err
		}
		fmt.Print(cs.Content)
		return nil
	}

	background, err := a.library.LoadBackground()
	if err != nil {
		return err
	}
	for _, sec := range model.Sections() {
		cs := background[sec]
		fmt.Printf("=== %s ===\n", sec)
		if strings.TrimSpace(cs.Content) == "" {
			fmt.Println("(empty)")
		} else {
			fmt.Println(cs.Content)
		}
		fmt.Println()
	}
	return nil
}

func runContentSet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	sec, err := parseSection(args[0])
	if err != nil {
		return err
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if err := a.library.Write(sec, string(data)); err != nil {
		return err
	}
	fmt.Printf("Updated %s.\n", sec)
	return nil
}

func runContentEdit(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	sec, err := parseSection(args[0])
	if err != nil {
		return err
	}

	p := a.pipeline()
	cs, err := picker.RunLoader("Applying edit", func(ctx context.Context) (model.ContentSection, error) {
		return p.UpdateSection(ctx, sec, args[1])
	})
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s:\n\n%s\n", sec, cs.Content)
	return nil
}
