package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cody-schema/internal/app"
)

type defineOptions struct {
	Documents  []string
	OriginRoot string
}

func newDefineCommand() *cobra.Command {
	opts := defineOptions{}
	cmd := &cobra.Command{
		Use:   "define [pattern...]",
		Short: "Register the schemas of element documents in the definitions file",
		Example: `  cody-schema define 'boards/**/*.yaml'
  cody-schema define --definitions gen/schema-definitions.json docs/user.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefine(cmd.Context(), cmd, args, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Documents, "document", nil, "Document glob patterns")
	cmd.Flags().StringVar(&opts.OriginRoot, "origin-root", "", "Record document origins relative to this directory")
	_ = viper.BindPFlag("documents", cmd.Flags().Lookup("document"))
	_ = viper.BindPFlag("origin_root", cmd.Flags().Lookup("origin-root"))
	return cmd
}

func runDefine(ctx context.Context, cmd *cobra.Command, args []string, opts defineOptions) error {
	service := newAppService()
	result, err := service.Define(ctx, defineRequest(cmd, args, opts))
	if err != nil {
		return err
	}
	for _, defined := range result.Defined {
		fmt.Fprintf(cmd.OutOrStdout(), "defined: %s (%s)\n", defined.Name, defined.Origin)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "definitions: %s\n", result.DefinitionsPath)
	return nil
}

// defineRequest merges positional patterns with --document and the
// configured documents list.
func defineRequest(cmd *cobra.Command, args []string, opts defineOptions) app.DefineRequest {
	documents := resolveStrings(cmd, opts.Documents, "documents", "document")
	documents = append(append([]string(nil), documents...), args...)
	return app.DefineRequest{
		DefinitionsPath: viper.GetString("definitions"),
		Documents:       documents,
		OriginRoot:      resolveString(cmd, opts.OriginRoot, "origin_root", "origin-root"),
	}
}
