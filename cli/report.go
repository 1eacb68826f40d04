package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastrep/fastrep/api"
	"github.com/fastrep/fastrep/model"
	"github.com/fastrep/fastrep/report"
)

// reportCommand renders the work-log report for a period and optionally
// sends it to the configured AI provider for summarization.
func (a *App) reportCommand() *cobra.Command {
	var (
		modeStr      string
		startStr     string
		endStr       string
		templateName string
		doSummarize  bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var start, end *model.Date
			if startStr != "" {
				d, err := model.ParseDate(startStr)
				if err != nil {
					return err
				}
				start = &d
			}
			if endStr != "" {
				d, err := model.ParseDate(endStr)
				if err != nil {
					return err
				}
				end = &d
			}

			mode := report.ModeCustom
			if start == nil && end == nil {
				var err error
				mode, err = report.ParseMode(modeStr)
				if err != nil {
					return err
				}
			}

			period, err := report.ComputeRange(mode, model.Today(), start, end)
			if err != nil {
				return err
			}

			entries, err := a.store.ListEntries(ctx, period.Start, period.End)
			if err != nil {
				return err
			}

			if templateName == "" {
				templateName, err = a.store.GetSetting(ctx, api.SettingDefaultTemplate, a.config.DefaultTemplate)
				if err != nil {
					return err
				}
			}

			text, err := report.Render(entries, period, templateName)
			if err != nil {
				return err
			}

			if !doSummarize {
				fmt.Fprintln(a.out, text)
				return nil
			}

			// Summarization failures never lose the report.
			summarizer, err := a.newSummarizer()
			if err != nil {
				return err
			}
			if summarizer == nil {
				fmt.Fprintln(a.errOut, "Warning: no AI provider available, printing the plain report")
				fmt.Fprintln(a.out, text)
				return nil
			}

			instructions, err := a.store.GetSetting(ctx, api.SettingAIInstructions, a.config.AI.Instructions)
			if err != nil {
				return err
			}

			summary, err := summarizer.Summarize(ctx, text, instructions)
			if err != nil {
				fmt.Fprintf(a.errOut, "Warning: summarization failed (%v), printing the plain report\n", err)
				fmt.Fprintln(a.out, text)
				return nil
			}

			fmt.Fprintln(a.out, summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeStr, "mode", "m", string(report.ModeWeekly), "Report mode: weekly, biweekly, monthly")
	cmd.Flags().StringVar(&startStr, "start", "", "Explicit start date as YYYY-MM-DD")
	cmd.Flags().StringVar(&endStr, "end", "", "Explicit end date as YYYY-MM-DD")
	cmd.Flags().StringVarP(&templateName, "template", "t", "", "Report template: classic, bold, modern")
	cmd.Flags().BoolVarP(&doSummarize, "summarize", "s", false, "Summarize the report with the configured AI provider")
	return cmd
}
