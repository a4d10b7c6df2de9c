package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cody-schema/internal/app"
)

type compileOptions struct {
	File      string
	Namespace string
	Output    string
}

func newCompileCommand() *cobra.Command {
	opts := compileOptions{}
	cmd := &cobra.Command{
		Use:   "compile [shorthand]",
		Short: "Compile a shorthand string or object into JSON schema",
		Example: `  cody-schema compile 'string|format:email|maxLength:255'
  cody-schema compile --file profile.yaml --namespace /Model`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read shorthand from file (- for stdin)")
	cmd.Flags().StringVar(&opts.Namespace, "namespace", "/", "Namespace references resolve against")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write the schema to a file instead of stdout")
	_ = viper.BindPFlag("namespace", cmd.Flags().Lookup("namespace"))
	return cmd
}

func runCompile(ctx context.Context, cmd *cobra.Command, args []string, opts compileOptions) error {
	input, err := readInput(cmd, args, opts.File)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Compile(ctx, app.CompileRequest{
		Input:     input,
		Namespace: resolveString(cmd, opts.Namespace, "namespace", "namespace"),
	})
	if err != nil {
		return err
	}
	return writeSchema(cmd, opts.Output, result.Schema)
}
