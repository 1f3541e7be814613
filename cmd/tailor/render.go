package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/fsutil"
	"github.com/amishk599/tailor/internal/picker"
)

var (
	renderSeq    int
	renderOut    string
	renderExpPDF bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Inspect and export generated resumes",
}

var renderListCmd = &cobra.Command{
	Use:   "list <job-id>",
	Short: "List a posting's renders, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runRenderList,
}

var renderShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Print a render's markdown (latest by default)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRenderShow,
}

var renderExportCmd = &cobra.Command{
	Use:   "export <job-id>",
	Short: "Copy a render's files out of the archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runRenderExport,
}

var renderBrowseCmd = &cobra.Command{
	Use:   "browse <job-id>",
	Short: "Browse a posting's render history interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runRenderBrowse,
}

func init() {
	renderShowCmd.Flags().IntVar(&renderSeq, "seq", 0, "render sequence number (default: latest)")
	renderExportCmd.Flags().IntVar(&renderSeq, "seq", 0, "render sequence number (default: latest)")
	renderExportCmd.Flags().StringVarP(&renderOut, "out", "o", ".", "destination directory")
	renderExportCmd.Flags().BoolVar(&renderExpPDF, "pdf", false, "also export the PDF if present")
	renderCmd.AddCommand(renderListCmd, renderShowCmd, renderExportCmd, renderBrowseCmd)
	rootCmd.AddCommand(renderCmd)
}

func runRenderList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	jobID := args[0]
	recs, err := a.renders.List(jobID)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Printf("No renders for %s yet. Run `tailor generate %s`.\n", jobID, jobID)
		return nil
	}

	latestSeq := 0
	if latest, err := a.renders.Latest(jobID); err == nil {
		latestSeq = latest.Seq
	}

	for _, r := range recs {
		marker := " "
		if r.Seq == latestSeq {
			marker = "*"
		}
		toneName := "auto"
		if r.ToneUsed != nil {
			toneName = r.ToneUsed.Name
		}
		pdfMark := ""
		if r.PDFPath != "" {
			pdfMark = "  pdf"
		}
		fmt.Printf("%s %04d  %s  %s:%s  tone:%s  feedback:%d%s\n",
			marker, r.Seq, r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Model.Provider, r.Model.ModelName, toneName, len(r.FeedbackApplied), pdfMark)
	}
	return nil
}

func loadRender(a *app, jobID string) (seq int, err error) {
	if renderSeq > 0 {
		return renderSeq, nil
	}
	latest, err := a.renders.Latest(jobID)
	if err != nil {
		return 0, err
	}
	return latest.Seq, nil
}

func runRenderShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	seq, err := loadRender(a, args[0])
	if err != nil {
		return err
	}
	rec, err := a.renders.Get(args[0], seq)
	if err != nil {
		return err
	}
	fmt.Print(rec.ResumeMarkdown)
	return nil
}

func runRenderExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	jobID := args[0]
	posting, err := a.jobs.Get(jobID)
	if err != nil {
		return err
	}
	seq, err := loadRender(a, jobID)
	if err != nil {
		return err
	}
	rec, err := a.renders.Get(jobID, seq)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(renderOut, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	base := fmt.Sprintf("resume_%s_%04d", fsutil.Slugify(posting.Company+" "+posting.Title), seq)
	mdPath := filepath.Join(renderOut, base+".md")
	if err := os.WriteFile(mdPath, []byte(rec.ResumeMarkdown), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	fmt.Printf("Wrote %s\n", mdPath)

	if renderExpPDF {
		if rec.PDFPath == "" {
			return fmt.Errorf("render %04d has no PDF; regenerate with --pdf", seq)
		}
		data, err := os.ReadFile(rec.PDFPath)
		if err != nil {
			return fmt.Errorf("read pdf: %w", err)
		}
		pdfPath := filepath.Join(renderOut, base+".pdf")
		if err := os.WriteFile(pdfPath, data, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		fmt.Printf("Wrote %s\n", pdfPath)
	}
	return nil
}

func runRenderBrowse(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	jobID := args[0]
	posting, err := a.jobs.Get(jobID)
	if err != nil {
		return err
	}
	recs, err := a.renders.List(jobID)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Printf("No renders for %s yet.\n", jobID)
		return nil
	}

	latestSeq := 0
	if latest, err := a.renders.Latest(jobID); err == nil {
		latestSeq = latest.Seq
	}
	return picker.RunBrowser(fmt.Sprintf("%s at %s", posting.Title, posting.Company), recs, latestSeq)
}
