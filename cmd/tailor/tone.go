package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/model"
)

var (
	toneCreateDescription string
	toneCreateProvider    string
	toneCreateModel       string
)

var toneCmd = &cobra.Command{
	Use:   "tone",
	Short: "Manage named tone configurations",
}

var toneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tones",
	RunE:  runToneList,
}

var toneShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a tone's prompt text",
	Args:  cobra.ExactArgs(1),
	RunE:  runToneShow,
}

var toneCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create or overwrite a tone",
	Args:  cobra.ExactArgs(1),
	RunE:  runToneCreate,
}

var toneDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a tone",
	Args:  cobra.ExactArgs(1),
	RunE:  runToneDelete,
}

func init() {
	toneCreateCmd.Flags().StringVarP(&toneCreateDescription, "description", "d", "", "prompt text describing the tone")
	toneCreateCmd.Flags().StringVar(&toneCreateProvider, "provider", "", "preferred model provider for this tone")
	toneCreateCmd.Flags().StringVar(&toneCreateModel, "model", "", "preferred model name for this tone")
	toneCmd.AddCommand(toneListCmd, toneShowCmd, toneCreateCmd, toneDeleteCmd)
	rootCmd.AddCommand(toneCmd)
}

func runToneList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	tones, err := a.tones.List()
	if err != nil {
		return err
	}
	if len(tones) == 0 {
		fmt.Println("No tones defined. Create one with `tailor tone create`.")
		return nil
	}
	for _, tc := range tones {
		fmt.Printf("%-28s used:%-3d %s\n", tc.Name, tc.UsageCount, truncate(tc.Description, 60))
	}
	return nil
}

func runToneShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	tc, err := a.tones.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (used %d times)\n", tc.Name, tc.UsageCount)
	if tc.ModelProvider != "" {
		fmt.Printf("Model: %s:%s\n", tc.ModelProvider, tc.ModelName)
	}
	fmt.Printf("\n%s\n", tc.Description)
	return nil
}

func runToneCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if toneCreateDescription == "" {
		return fmt.Errorf("a tone needs --description text")
	}
	tc := model.ToneConfiguration{
		Name:          args[0],
		Description:   toneCreateDescription,
		ModelProvider: toneCreateProvider,
		ModelName:     toneCreateModel,
	}
	if err := a.tones.Save(tc); err != nil {
		return err
	}
	fmt.Printf("Saved tone %q.\n", tc.Name)
	return nil
}

func runToneDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.tones.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted tone %q.\n", args[0])
	return nil
}
