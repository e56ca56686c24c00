package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"shiftblocks/internal/client"
	"shiftblocks/internal/view"
)

func newBlocksCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Create, list and change the status of blocks",
	}
	cmd.AddCommand(newBlocksListCmd(opts))
	cmd.AddCommand(newBlocksCreateCmd(opts))
	cmd.AddCommand(newBlockActionCmd(opts, "close", "Close a block for new bookings", client.Client.CloseBlock))
	cmd.AddCommand(newBlockActionCmd(opts, "reopen", "Reopen a closed block", client.Client.ReopenBlock))
	cmd.AddCommand(newBlockActionCmd(opts, "cancel", "Cancel a block and all of its bookings", client.Client.CancelBlock))
	return cmd
}

func newBlocksListCmd(opts *rootOptions) *cobra.Command {
	var (
		openOnly bool
		withBook bool
	)
	c := &cobra.Command{
		Use:   "list",
		Short: "List blocks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl := opts.client()
			var (
				blocks []view.Block
				err    error
			)
			if openOnly {
				blocks, err = cl.ListOpenBlocks(cmd.Context())
			} else {
				blocks, err = cl.ListBlocks(cmd.Context())
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, b := range blocks {
				printBlock(out, b)
				if withBook {
					for _, bk := range b.Bookings {
						fmt.Fprint(out, "  ")
						printBooking(out, bk)
					}
				}
			}
			return nil
		},
	}
	c.Flags().BoolVar(&openOnly, "open", false, "only blocks staff can book (staff view)")
	c.Flags().BoolVar(&withBook, "bookings", false, "print bookings under each block")
	return c
}

func newBlocksCreateCmd(opts *rootOptions) *cobra.Command {
	var req client.CreateBlockRequest
	c := &cobra.Command{
		Use:   "create",
		Short: "Create an open block",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.client().CreateBlock(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), "created ")
			printBlock(cmd.OutOrStdout(), b)
			return nil
		},
	}
	c.Flags().StringVar(&req.Title, "title", "", "block title")
	c.Flags().StringVar(&req.StartsAt, "starts-at", "", "local start YYYY-MM-DDTHH:MM")
	c.Flags().StringVar(&req.EndsAt, "ends-at", "", "local end YYYY-MM-DDTHH:MM")
	c.Flags().IntVar(&req.Capacity, "capacity", 1, "max approved bookings")
	c.Flags().StringVar(&req.Notes, "notes", "", "optional notes")
	_ = c.MarkFlagRequired("title")
	_ = c.MarkFlagRequired("starts-at")
	_ = c.MarkFlagRequired("ends-at")
	return c
}

func newBlockActionCmd(opts *rootOptions, use, short string, action func(client.Client, context.Context, string) (view.Block, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <block-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := action(opts.client(), cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printBlock(cmd.OutOrStdout(), b)
			return nil
		},
	}
}

func printBlock(w io.Writer, b view.Block) {
	fmt.Fprintf(w, "id=%s title=%q status=%s time=%q booked=%s pending=%d full=%t\n",
		b.ID, b.Title, b.Status, b.Range, b.Occupancy, b.Pending, b.Full)
}
