package views

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/models"
)

// ExpiredLabel is shown instead of the remaining days once a warranty has
// run out.
const ExpiredLabel = "Expired"

// Badge is the remaining-time label of a record, e.g. "12 days left".
func Badge(w *models.Warranty, now time.Time) string {
	days, ok := w.DaysUntilExpiry(now)
	if !ok {
		return "unknown expiry"
	}
	if days > 0 {
		return fmt.Sprintf("%d days left", days)
	}
	return ExpiredLabel
}

// Render prints the summary counters followed by the list.
func (d *Dashboard) Render(w io.Writer, now time.Time) {
	items := d.Items()
	s := summarize(items, now)

	fmt.Fprintf(w, "Active: %d  Expired: %d  Expiring soon: %d\n", s.Active, s.Expired, s.ExpiringSoon)

	if d.Loading() {
		fmt.Fprintln(w, "Loading...")
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "No warranties found. Add one to get started!")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tBRAND/MODEL\tSERIAL\tEXPIRES\tSTATUS")
	for i := range items {
		it := &items[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID,
			it.ProductName,
			it.BrandAndModel,
			it.SerialNumber,
			models.FormatDate(it.WarrantyExpiryDate),
			Badge(it, now),
		)
	}
	_ = tw.Flush()
}

func renderContacts(w io.Writer, c models.SupportContactInfo) {
	if c.IsZero() {
		return
	}
	fmt.Fprintln(w, "Customer support:")
	if c.Phone != "" {
		fmt.Fprintf(w, "  Phone:   %s\n", c.Phone)
	}
	if c.Email != "" {
		fmt.Fprintf(w, "  Email:   %s\n", c.Email)
	}
	if c.Website != "" {
		fmt.Fprintf(w, "  Website: %s\n", c.Website)
	}
}
