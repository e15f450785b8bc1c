package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toaster/internal/errors"
)

func errorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errors [code]",
		Short: "List error codes or explain one",
		Long: `Without an argument, list every error code toaster can report.
With a code, print its category, description and documentation link.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listErrorCodes(cmd)
			}
			return explainErrorCode(cmd, args[0])
		},
	}
}

func listErrorCodes(cmd *cobra.Command) error {
	codes := errors.GetAllCodes()
	rows := make([][]string, 0, len(codes))
	for _, code := range codes {
		tmpl, _ := errors.GetTemplate(code)
		rows = append(rows, []string{code, string(tmpl.Category), tmpl.Message})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Code", "Category", "Message"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
	return nil
}

func explainErrorCode(cmd *cobra.Command, code string) error {
	code = strings.ToUpper(code)
	tmpl, ok := errors.GetTemplate(code)
	if !ok {
		return errors.New("E122").
			WithDetail(fmt.Sprintf("%q is not a toaster error code.", code)).
			WithSuggestion("Run 'toaster errors' to list the known codes")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", code, tmpl.Message)
	info(cmd, "Category: %s", tmpl.Category)
	if tmpl.Detail != "" {
		info(cmd, "%s", tmpl.Detail)
	}
	if tmpl.DocURL != "" {
		info(cmd, "Learn more: %s", tmpl.DocURL)
	}
	return nil
}
