package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/config"
	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/picker"
	"github.com/amishk599/tailor/internal/pipeline"
)

var (
	genTone        string
	genProvider    string
	genModel       string
	genTemperature float64
	genFeedback    string
	genTemplate    string
	genPDF         string
)

var generateCmd = &cobra.Command{
	Use:   "generate [job-id]",
	Short: "Generate a tailored resume for a posting",
	Long: `Generates a resume tailored to the posting from your background and the
profile's template. Without a job id an interactive picker opens. With
--feedback and an existing render, the latest render is revised instead of
generating from scratch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genTone, "tone", "t", "", "named tone to use (default: posting's own tone analysis)")
	generateCmd.Flags().StringVar(&genProvider, "provider", "", "override model provider (openai, anthropic)")
	generateCmd.Flags().StringVarP(&genModel, "model", "m", "", "override model name")
	generateCmd.Flags().Float64Var(&genTemperature, "temperature", 0, "override sampling temperature")
	generateCmd.Flags().StringVar(&genFeedback, "feedback", "", "feedback to apply to the latest render")
	generateCmd.Flags().StringVar(&genTemplate, "template", "", "resume template name (default: profile's default)")
	generateCmd.Flags().StringVar(&genPDF, "pdf", "", "also render a PDF in the given style (modern, professional)")
	rootCmd.AddCommand(generateCmd)
}

func pickJobPosting(a *app) (string, error) {
	postings, err := a.jobs.List()
	if err != nil {
		return "", err
	}
	if len(postings) == 0 {
		return "", fmt.Errorf("no postings archived; add one with `tailor job add`")
	}

	items := make([]picker.Item, 0, len(postings))
	for _, p := range postings {
		items = append(items, picker.Item{
			Label: fmt.Sprintf("%s at %s", p.Title, p.Company),
			Desc:  fmt.Sprintf("%s  renders:%d  %s", p.ID, p.RenderCount, p.CreatedAt.Local().Format("2006-01-02")),
		})
	}
	choice, err := picker.RunPicker("Generate — select a job posting", items)
	if err != nil {
		return "", err
	}
	if choice < 0 {
		return "", fmt.Errorf("no posting selected")
	}
	return postings[choice].ID, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	jobID := ""
	if len(args) == 1 {
		jobID = args[0]
	} else {
		jobID, err = pickJobPosting(a)
		if err != nil {
			return err
		}
	}

	tempSet := cmd.Flags().Changed("temperature")
	var override *config.ModelOverride
	if genProvider != "" || genModel != "" || tempSet {
		override = &config.ModelOverride{
			Provider:  genProvider,
			ModelName: genModel,
		}
		if tempSet {
			override.Temperature = &genTemperature
		}
	}

	req := pipeline.Request{
		JobPostingID:  jobID,
		Tone:          genTone,
		ModelOverride: override,
		Feedback:      genFeedback,
		Template:      genTemplate,
		PDFStyle:      genPDF,
	}

	p := a.pipeline()
	label := "Generating resume"
	if genFeedback != "" {
		label = "Revising resume"
	}
	rec, err := picker.RunLoader(label, func(ctx context.Context) (model.RenderRecord, error) {
		return p.Generate(ctx, req)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Committed render %04d for %s.\n", rec.Seq, jobID)
	if rec.Summary != "" {
		fmt.Printf("\n%s\n", rec.Summary)
	}
	fmt.Printf("\nMarkdown: %s\n", a.paths.RenderResume(jobID, rec.Seq))
	if rec.PDFPath != "" {
		fmt.Printf("PDF:      %s\n", rec.PDFPath)
	}
	return nil
}
