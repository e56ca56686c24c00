// Package cli implements blockctl, the operator command line for the shift block API.
package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shiftblocks/internal/client"
)

type rootOptions struct {
	server  string
	timeout time.Duration
}

func (o *rootOptions) client() client.Client {
	return client.Client{
		BaseURL:    o.server,
		HTTPClient: &http.Client{Timeout: o.timeout},
	}
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "blockctl",
		Short:         "Manage shift blocks and bookings over the HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	server := os.Getenv("BLOCKCTL_SERVER")
	if server == "" {
		server = client.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&opts.server, "server", server, "API base URL (env BLOCKCTL_SERVER)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 20*time.Second, "per-request timeout")

	root.AddCommand(newBlocksCmd(opts))
	root.AddCommand(newBookingsCmd(opts))
	root.AddCommand(newDemoCmd(opts))
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	var apiErr *client.Error
	if errors.As(err, &apiErr) && apiErr.Reason != "" {
		fmt.Fprintf(w, "error: %s: %s (%s)\n", apiErr.Code, apiErr.Message, apiErr.Reason)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
