package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"shiftblocks/internal/client"
	"shiftblocks/internal/view"
)

func newBookingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Request, approve and cancel bookings",
	}
	cmd.AddCommand(newBookingsRequestCmd(opts))
	cmd.AddCommand(newBookingsMineCmd(opts))
	cmd.AddCommand(newBookingActionCmd(opts, "approve", "Approve a pending booking", client.Client.ApproveBooking))
	cmd.AddCommand(newBookingActionCmd(opts, "cancel", "Cancel a booking", client.Client.CancelBooking))
	return cmd
}

func newBookingsRequestCmd(opts *rootOptions) *cobra.Command {
	var name, email string
	c := &cobra.Command{
		Use:   "request <block-id>",
		Short: "Request a booking as an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bk, err := opts.client().RequestBooking(cmd.Context(), args[0], name, email)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), "requested ")
			printBooking(cmd.OutOrStdout(), bk)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "employee name")
	c.Flags().StringVar(&email, "email", "", "employee email")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("email")
	return c
}

func newBookingsMineCmd(opts *rootOptions) *cobra.Command {
	var email string
	c := &cobra.Command{
		Use:   "mine",
		Short: "List the bookings held under an email",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client().MyBookings(cmd.Context(), email)
			if err != nil {
				return err
			}
			for _, bk := range items {
				printBooking(cmd.OutOrStdout(), bk)
			}
			return nil
		},
	}
	c.Flags().StringVar(&email, "email", "", "employee email")
	_ = c.MarkFlagRequired("email")
	return c
}

func newBookingActionCmd(opts *rootOptions, use, short string, action func(client.Client, context.Context, string) (view.Booking, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <booking-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bk, err := action(opts.client(), cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printBooking(cmd.OutOrStdout(), bk)
			return nil
		},
	}
}

func printBooking(w io.Writer, bk view.Booking) {
	fmt.Fprintf(w, "id=%s block=%s employee=%q email=%s status=%s label=%q booked_at=%q\n",
		bk.ID, bk.BlockID, bk.EmployeeName, bk.EmployeeEmail, bk.Status, bk.StatusLabel, bk.BookedAtDisplay)
}
