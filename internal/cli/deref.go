package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cody-schema/internal/app"
)

type derefOptions struct {
	File      string
	Shorthand bool
	Namespace string
	RefsDir   string
	Output    string
}

func newDerefCommand() *cobra.Command {
	opts := derefOptions{}
	cmd := &cobra.Command{
		Use:   "deref [definition]",
		Short: "Inline every $ref of a definition or schema",
		Example: `  cody-schema deref /Model/UserState
  cody-schema deref --file schema.json
  cody-schema deref --shorthand --file - < user.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeref(cmd.Context(), cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Dereference the schema in this file (- for stdin)")
	cmd.Flags().BoolVar(&opts.Shorthand, "shorthand", false, "Treat the input file as shorthand")
	cmd.Flags().StringVar(&opts.Namespace, "namespace", "/", "Namespace for shorthand input")
	cmd.Flags().StringVar(&opts.RefsDir, "refs-dir", "", "Base directory of external $ref documents")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write the schema to a file instead of stdout")
	_ = viper.BindPFlag("refs_dir", cmd.Flags().Lookup("refs-dir"))
	return cmd
}

func runDeref(ctx context.Context, cmd *cobra.Command, args []string, opts derefOptions) error {
	req := app.DereferenceRequest{
		DefinitionsPath: viper.GetString("definitions"),
		RefsDir:         resolveString(cmd, opts.RefsDir, "refs_dir", "refs-dir"),
		Shorthand:       opts.Shorthand,
		Namespace:       resolveString(cmd, opts.Namespace, "namespace", "namespace"),
	}
	if len(args) > 0 {
		req.Name = args[0]
	} else {
		input, err := readInput(cmd, nil, opts.File)
		if err != nil {
			return err
		}
		req.Input = input
	}
	service := newAppService()
	result, err := service.Dereference(ctx, req)
	if err != nil {
		return err
	}
	return writeSchema(cmd, opts.Output, result.Schema)
}
