package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/models"
)

var ErrNotLoaded = errors.New("record not loaded")

// Detail is the read-only page of one record.
type Detail struct {
	env Env

	mu     sync.Mutex
	record *models.Warranty
}

func NewDetail(env Env) *Detail {
	return &Detail{env: env}
}

func (d *Detail) Load(ctx context.Context, id string) error {
	w, err := d.env.Warranties.Get(ctx, id)
	if err != nil {
		d.env.Fail(ctx, err, "Failed to fetch warranty details")
		return err
	}

	d.mu.Lock()
	d.record = w
	d.mu.Unlock()
	return nil
}

func (d *Detail) Record() *models.Warranty {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record
}

func (d *Detail) Render(w io.Writer, now time.Time) error {
	r := d.Record()
	if r == nil {
		return ErrNotLoaded
	}

	fmt.Fprintln(w, r.ProductName)

	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "Brand/Model:\t%s\n", r.BrandAndModel)
	fmt.Fprintf(tw, "Serial number:\t%s\n", r.SerialNumber)
	fmt.Fprintf(tw, "Purchase date:\t%s\n", models.FormatDate(r.PurchaseDate))
	fmt.Fprintf(tw, "Duration:\t%d months\n", r.WarrantyDuration)
	fmt.Fprintf(tw, "Expiry date:\t%s (%s)\n", models.FormatDate(r.WarrantyExpiryDate), Badge(r, now))
	fmt.Fprintf(tw, "Invoice number:\t%s\n", r.InvoiceNumber)
	fmt.Fprintf(tw, "User email:\t%s\n", r.UserEmail)
	if r.WarrantyDocs != "" {
		fmt.Fprintf(tw, "Document:\t%s\n", r.WarrantyDocs)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	renderContacts(w, r.SupportContactInfo)
	return nil
}
