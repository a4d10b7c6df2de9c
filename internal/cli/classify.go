package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cody-schema/internal/app"
)

type classifyOptions struct {
	RefsDir string
}

func newClassifyCommand() *cobra.Command {
	opts := classifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify <definition>",
		Short: "Report whether a definition is an array or a state (object) type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.RefsDir, "refs-dir", "", "Base directory of external $ref documents")
	return cmd
}

func runClassify(ctx context.Context, cmd *cobra.Command, name string, opts classifyOptions) error {
	service := newAppService()
	result, err := service.Classify(ctx, app.ClassifyRequest{
		DefinitionsPath: viper.GetString("definitions"),
		RefsDir:         resolveString(cmd, opts.RefsDir, "refs_dir", "refs-dir"),
		Name:            name,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "definition: %s\n", result.Name)
	fmt.Fprintf(out, "exists: %t\n", result.Exists)
	fmt.Fprintf(out, "array: %t\n", result.IsArray)
	fmt.Fprintf(out, "state: %t\n", result.IsState)
	return nil
}
