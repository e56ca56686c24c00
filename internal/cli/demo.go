package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"shiftblocks/internal/client"
	"shiftblocks/internal/view"
)

const demoInputLayout = "2006-01-02T15:04"

// newDemoCmd walks one block through request, approval, a duplicate request,
// a second employee and a revocation, printing every outcome.
func newDemoCmd(opts *rootOptions) *cobra.Command {
	var (
		capacity int
		first    string
		second   string
	)
	c := &cobra.Command{
		Use:   "demo",
		Short: "Run the booking walkthrough against a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cl := opts.client()
			out := cmd.OutOrStdout()

			start := time.Now().Add(time.Hour).Truncate(time.Hour)
			b, err := cl.CreateBlock(ctx, client.CreateBlockRequest{
				Title:    "Demo – Objekt D",
				StartsAt: start.Format(demoInputLayout),
				EndsAt:   start.Add(4 * time.Hour).Format(demoInputLayout),
				Capacity: capacity,
				Notes:    "blockctl demo",
			})
			if err != nil {
				return err
			}
			fmt.Fprint(out, "1 create block      ")
			printBlock(out, b)

			bk1, err := cl.RequestBooking(ctx, b.ID, "Demo Eins", first)
			if err != nil {
				return err
			}
			fmt.Fprint(out, "2 request           ")
			printBooking(out, bk1)

			bk1, err = cl.ApproveBooking(ctx, bk1.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(out, "3 approve           ")
			printBooking(out, bk1)

			_, err = cl.RequestBooking(ctx, b.ID, "Demo Eins", first)
			if err := expectRejection(out, "4 request again     ", err, "DUPLICATE_BOOKING"); err != nil {
				return err
			}

			// With a single seat the staff surface refuses the second employee.
			bk2, err := cl.RequestBooking(ctx, b.ID, "Demo Zwei", second)
			if err != nil {
				if err := expectRejection(out, "5 second employee   ", err, "BLOCK_FULL"); err != nil {
					return err
				}
			} else {
				fmt.Fprint(out, "5 second employee   ")
				printBooking(out, bk2)
			}

			bk1, err = cl.CancelBooking(ctx, bk1.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(out, "6 cancel first      ")
			printBooking(out, bk1)

			all, err := cl.ListBlocks(ctx)
			if err != nil {
				return err
			}
			for _, blk := range all {
				if blk.ID != b.ID {
					continue
				}
				fmt.Fprint(out, "final               ")
				printBlock(out, blk)
				printBookings(out, blk.Bookings)
			}
			return nil
		},
	}
	c.Flags().IntVar(&capacity, "capacity", 1, "capacity of the demo block")
	c.Flags().StringVar(&first, "first-email", "a@x.com", "email of the first employee")
	c.Flags().StringVar(&second, "second-email", "b@x.com", "email of the second employee")
	return c
}

func expectRejection(w io.Writer, label string, err error, code string) error {
	if err == nil {
		return fmt.Errorf("%sexpected %s, request was accepted", label, code)
	}
	var apiErr *client.Error
	if !errors.As(err, &apiErr) || apiErr.Code != code {
		return err
	}
	fmt.Fprintf(w, "%srejected code=%s reason=%q\n", label, apiErr.Code, apiErr.Reason)
	return nil
}

func printBookings(w io.Writer, items []view.Booking) {
	for _, bk := range items {
		fmt.Fprint(w, "  ")
		printBooking(w, bk)
	}
}
