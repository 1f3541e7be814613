package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/picker"
)

var (
	jobAddFile       string
	jobAddStdin      bool
	jobDeleteCascade bool
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Archive and inspect job postings",
}

var jobAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Parse and archive a job posting",
	Long: `Parses raw job posting text with the LLM and stores the structured result.
The raw text is kept verbatim alongside. Adding identical text again reuses
the existing record instead of duplicating it.`,
	RunE: runJobAdd,
}

var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived postings, newest first",
	RunE:  runJobList,
}

var jobShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one posting in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobShow,
}

var jobSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search postings by title, company or keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobSearch,
}

var jobDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a posting",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobDelete,
}

var jobNotesCmd = &cobra.Command{
	Use:   "notes <id> <text>",
	Short: "Attach free-text notes to a posting",
	Args:  cobra.ExactArgs(2),
	RunE:  runJobNotes,
}

func init() {
	jobAddCmd.Flags().StringVarP(&jobAddFile, "file", "f", "", "read the posting from a file")
	jobAddCmd.Flags().BoolVar(&jobAddStdin, "stdin", false, "read the posting from stdin")
	jobDeleteCmd.Flags().BoolVar(&jobDeleteCascade, "cascade", false, "also delete the posting's renders")
	jobCmd.AddCommand(jobAddCmd, jobListCmd, jobShowCmd, jobSearchCmd, jobDeleteCmd, jobNotesCmd)
	rootCmd.AddCommand(jobCmd)
}

func readJobInput(args []string) (string, error) {
	switch {
	case jobAddFile != "":
		data, err := os.ReadFile(jobAddFile)
		if err != nil {
			return "", fmt.Errorf("read posting file: %w", err)
		}
		return string(data), nil
	case jobAddStdin:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		return "", fmt.Errorf("no posting given: pass text, --file, or --stdin")
	}
}

func runJobAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	raw, err := readJobInput(args)
	if err != nil {
		return err
	}

	p := a.pipeline()
	type ingestResult struct {
		posting  model.JobPosting
		existing bool
	}
	res, err := picker.RunLoader("Parsing job posting", func(ctx context.Context) (ingestResult, error) {
		posting, existing, err := p.Ingest(ctx, raw)
		return ingestResult{posting: posting, existing: existing}, err
	})
	if err != nil {
		return err
	}

	if res.existing {
		fmt.Printf("Already archived as %s (%s at %s).\n", res.posting.ID, res.posting.Title, res.posting.Company)
		return nil
	}
	fmt.Printf("Archived %s: %s at %s\n", res.posting.ID, res.posting.Title, res.posting.Company)
	if res.posting.Industry != "" {
		fmt.Printf("Industry: %s\n", res.posting.Industry)
	}
	return nil
}

func runJobList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	postings, err := a.jobs.List()
	if err != nil {
		return err
	}
	if len(postings) == 0 {
		fmt.Println("No postings archived yet. Add one with `tailor job add`.")
		return nil
	}

	for _, p := range postings {
		fmt.Printf("%s  %-30s %-20s renders:%d  %s\n",
			p.ID, truncate(p.Title, 30), truncate(p.Company, 20), p.RenderCount,
			p.CreatedAt.Local().Format("2006-01-02"))
	}
	return nil
}

func runJobShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	p, err := a.jobs.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s at %s\n", p.Title, p.Company)
	fmt.Printf("ID:        %s\n", p.ID)
	if p.Location != "" {
		fmt.Printf("Location:  %s\n", p.Location)
	}
	fmt.Printf("Industry:  %s\n", p.Industry)
	if p.Pay != "" {
		fmt.Printf("Pay:       %s\n", p.Pay)
	}
	fmt.Printf("Added:     %s (%s:%s)\n", p.CreatedAt.Local().Format("2006-01-02 15:04"), p.ModelProvider, p.ModelName)
	fmt.Printf("Renders:   %d\n", p.RenderCount)

	printSection := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Printf("\n%s:\n", label)
		for _, it := range items {
			fmt.Printf("  - %s\n", it)
		}
	}
	printSection("Requirements", p.Requirements)
	printSection("Responsibilities", p.Responsibilities)
	if len(p.Keywords) > 0 {
		fmt.Printf("\nKeywords: %s\n", strings.Join(p.Keywords, ", "))
	}
	if p.ToneReasoning != "" {
		fmt.Printf("\nTone analysis: %s\n", p.ToneReasoning)
	}
	if p.PracticalDescription != "" {
		fmt.Printf("\nWhat the work actually is:\n%s\n", p.PracticalDescription)
	}
	if p.Notes != "" {
		fmt.Printf("\nNotes: %s\n", p.Notes)
	}
	return nil
}

func runJobSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	matches, err := a.jobs.Search(args[0])
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Printf("No postings match %q.\n", args[0])
		return nil
	}
	for _, p := range matches {
		fmt.Printf("%s  %s at %s\n", p.ID, p.Title, p.Company)
	}
	return nil
}

func runJobDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.jobs.Delete(args[0], jobDeleteCascade); err != nil {
		return deleteJobError(err)
	}
	fmt.Printf("Deleted %s.\n", args[0])
	return nil
}

// deleteJobError adds the cascade hint only when renders block the delete.
func deleteJobError(err error) error {
	if errors.Is(err, model.ErrHasDependents) {
		return fmt.Errorf("%w (use --cascade to delete the renders too)", err)
	}
	return err
}

func runJobNotes(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.jobs.SetNotes(args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("Notes saved.")
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
