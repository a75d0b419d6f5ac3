package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/client"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/router"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/views"
)

// clearValue empties an optional field when editing.
const clearValue = "-"

var fieldLabels = map[string]string{
	"productName":      "Product name",
	"brandAndModel":    "Brand and model",
	"serialNumber":     "Serial number",
	"purchaseDate":     "Purchase date (YYYY-MM-DD)",
	"invoiceNumber":    "Invoice number",
	"userEmail":        "Email for expiry reminders",
	"warrantyDuration": "Warranty duration (months)",
	"phone":            "Support phone (optional)",
	"email":            "Support email (optional)",
	"website":          "Support website (optional)",
}

func (a *App) dashboardScreen(ctx context.Context, _ map[string]string) error {
	if err := a.dashboard.FetchAll(ctx); err != nil {
		return err
	}
	a.dashboard.Render(a.out, a.now())
	return nil
}

func (a *App) detailScreen(ctx context.Context, params map[string]string) error {
	if err := a.detail.Load(ctx, params["id"]); err != nil {
		return err
	}
	return a.detail.Render(a.out, a.now())
}

func (a *App) createScreen(ctx context.Context, _ map[string]string) error {
	fmt.Fprintln(a.out, "Add a warranty")

	form := views.NewRecordForm()
	if err := a.fillForm(form, ""); err != nil {
		return err
	}

	return a.submitForm(ctx, form, func(ctx context.Context, body *client.RawBody) error {
		if _, err := a.warranties.Create(ctx, body); err != nil {
			a.env.Fail(ctx, err, "Failed to create warranty")
			return err
		}
		a.notify.Success("Warranty created successfully!")
		a.redirect(router.PathDashboard)
		return nil
	})
}

func (a *App) editScreen(ctx context.Context, params map[string]string) error {
	id := params["id"]

	rec, err := a.warranties.Get(ctx, id)
	if err != nil {
		a.env.Fail(ctx, err, "Failed to fetch warranty")
		return err
	}

	fmt.Fprintf(a.out, "Edit warranty %s (empty keeps the current value, %q clears an optional one)\n", rec.ProductName, clearValue)

	form := views.NewRecordFormFrom(rec)
	if err := a.fillForm(form, rec.WarrantyDocs); err != nil {
		return err
	}

	return a.submitForm(ctx, form, func(ctx context.Context, body *client.RawBody) error {
		if _, err := a.warranties.Update(ctx, id, body); err != nil {
			a.env.Fail(ctx, err, "Failed to update warranty")
			return err
		}
		a.notify.Success("Warranty updated successfully!")
		a.redirect(router.PathDashboard)
		return nil
	})
}

// fillForm prompts for every field in form order, then for the contacts and
// the document path. currentDoc is the link of an already uploaded document.
func (a *App) fillForm(form *views.RecordForm, currentDoc string) error {
	for _, name := range views.FieldNames {
		if err := a.promptField(form, name, false); err != nil {
			return err
		}
	}
	for _, name := range views.ContactFieldNames {
		if err := a.promptField(form, name, true); err != nil {
			return err
		}
	}

	prompt := "Warranty document path (optional)"
	if currentDoc != "" {
		prompt = fmt.Sprintf("Warranty document path (optional, current: %s)", currentDoc)
	}
	path, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if path != "" {
		form.SetFile(path)
	}
	return nil
}

func (a *App) promptField(form *views.RecordForm, name string, optional bool) error {
	current, err := form.Get(name)
	if err != nil {
		return err
	}

	v, err := getDefaultText(a.reader, fieldLabels[name], current, a.out)
	if err != nil {
		return err
	}
	if optional && v == clearValue {
		v = ""
	}
	return form.Set(name, v)
}

// submitForm submits and reports what the form itself rejected. Backend
// failures are reported by submit.
func (a *App) submitForm(ctx context.Context, form *views.RecordForm, submit views.SubmitFunc) error {
	var sent bool
	err := form.Submit(ctx, func(ctx context.Context, body *client.RawBody) error {
		sent = true
		return submit(ctx, body)
	})

	var fe views.FieldErrors
	switch {
	case errors.As(err, &fe):
		a.printFieldErrors(fe)
	case err != nil && !sent:
		a.notify.Error(err.Error())
	}
	return err
}
