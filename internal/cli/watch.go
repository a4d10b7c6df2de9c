package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cody-schema/internal/app"
	"cody-schema/internal/types"
)

type watchOptions struct {
	defineOptions
	Roots []string
}

func newWatchCommand() *cobra.Command {
	opts := watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [pattern...]",
		Short: "Re-run define whenever an element document changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, args, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Documents, "document", nil, "Document glob patterns")
	cmd.Flags().StringVar(&opts.OriginRoot, "origin-root", "", "Record document origins relative to this directory")
	cmd.Flags().StringSliceVar(&opts.Roots, "root", nil, "Directories to watch (default: base directories of the patterns)")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, args []string, opts watchOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	service := newAppService()
	return service.Watch(ctx, app.WatchRequest{
		Define: defineRequest(cmd, args, opts.defineOptions),
		Roots:  opts.Roots,
		OnDefine: func(result app.DefineResult, err error) {
			if err != nil {
				message, details := types.Describe(err)
				fmt.Fprintf(out, "define failed: %s\n", message)
				if details != "" {
					fmt.Fprintf(out, "  %s\n", details)
				}
				return
			}
			fmt.Fprintf(out, "defined %d schemas into %s\n", len(result.Defined), result.DefinitionsPath)
		},
	})
}
