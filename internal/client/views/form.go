package views

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/client"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/models"
)

var ErrUnknownField = errors.New("unknown field")

// DocumentField is the multipart field carrying the attachment.
const DocumentField = "warrantyDocument"

// SubmitFunc sends an encoded record. Create and edit screens pass different
// functions; the form itself does not know which one it serves.
type SubmitFunc func(ctx context.Context, body *client.RawBody) error

type recordFields struct {
	ProductName        string                    `json:"productName" validate:"required"`
	BrandAndModel      string                    `json:"brandAndModel" validate:"required"`
	SerialNumber       string                    `json:"serialNumber" validate:"required"`
	PurchaseDate       string                    `json:"purchaseDate" validate:"required,datetime=2006-01-02"`
	InvoiceNumber      string                    `json:"invoiceNumber" validate:"required"`
	UserEmail          string                    `json:"userEmail" validate:"required,email"`
	WarrantyDuration   string                    `json:"warrantyDuration" validate:"required,positive_int"`
	SupportContactInfo models.SupportContactInfo `json:"supportContactInfo"`
}

// FieldNames lists the scalar fields in form order.
var FieldNames = []string{
	"productName",
	"brandAndModel",
	"serialNumber",
	"purchaseDate",
	"invoiceNumber",
	"userEmail",
	"warrantyDuration",
}

// ContactFieldNames lists the nested support contact fields.
var ContactFieldNames = []string{"phone", "email", "website"}

// RecordForm is the shared create/edit form of a warranty record.
type RecordForm struct {
	machine
	fields   recordFields
	filePath string
}

func NewRecordForm() *RecordForm {
	return &RecordForm{}
}

// NewRecordFormFrom pre-fills the form for editing. Dates are cut to
// YYYY-MM-DD.
func NewRecordFormFrom(w *models.Warranty) *RecordForm {
	f := &RecordForm{}
	if w == nil {
		return f
	}

	f.fields = recordFields{
		ProductName:        w.ProductName,
		BrandAndModel:      w.BrandAndModel,
		SerialNumber:       w.SerialNumber,
		PurchaseDate:       models.FormatDate(w.PurchaseDate),
		InvoiceNumber:      w.InvoiceNumber,
		UserEmail:          w.UserEmail,
		SupportContactInfo: w.SupportContactInfo,
	}
	if w.WarrantyDuration > 0 {
		f.fields.WarrantyDuration = strconv.Itoa(w.WarrantyDuration)
	}
	return f
}

// Set updates one field. phone, email and website go to the nested support
// contact; every other known name is a top-level field.
func (f *RecordForm) Set(name, value string) error {
	if p := f.contactField(name); p != nil {
		*p = value
		return nil
	}
	p := f.field(name)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	*p = value
	return nil
}

// Get returns the current value of a field.
func (f *RecordForm) Get(name string) (string, error) {
	if p := f.contactField(name); p != nil {
		return *p, nil
	}
	if p := f.field(name); p != nil {
		return *p, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
}

func (f *RecordForm) field(name string) *string {
	switch name {
	case "productName":
		return &f.fields.ProductName
	case "brandAndModel":
		return &f.fields.BrandAndModel
	case "serialNumber":
		return &f.fields.SerialNumber
	case "purchaseDate":
		return &f.fields.PurchaseDate
	case "invoiceNumber":
		return &f.fields.InvoiceNumber
	case "userEmail":
		return &f.fields.UserEmail
	case "warrantyDuration":
		return &f.fields.WarrantyDuration
	}
	return nil
}

func (f *RecordForm) contactField(name string) *string {
	switch name {
	case "phone":
		return &f.fields.SupportContactInfo.Phone
	case "email":
		return &f.fields.SupportContactInfo.Email
	case "website":
		return &f.fields.SupportContactInfo.Website
	}
	return nil
}

func (f *RecordForm) SetFile(path string) {
	f.filePath = strings.TrimSpace(path)
}

func (f *RecordForm) ClearFile() {
	f.filePath = ""
}

func (f *RecordForm) File() string {
	return f.filePath
}

// Validate returns nil or FieldErrors.
func (f *RecordForm) Validate() error {
	return nilIfEmpty(check(f.fields))
}

// Payload encodes the form as multipart/form-data: each scalar field on its
// own, supportContactInfo as one JSON string, and the file (if any) under
// DocumentField with its detected content type.
func (f *RecordForm) Payload() (*client.RawBody, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, name := range FieldNames {
		if err := mw.WriteField(name, *f.field(name)); err != nil {
			return nil, err
		}
	}

	contact, err := json.Marshal(f.fields.SupportContactInfo)
	if err != nil {
		return nil, err
	}
	if err := mw.WriteField("supportContactInfo", string(contact)); err != nil {
		return nil, err
	}

	if f.filePath != "" {
		if err := writeFile(mw, f.filePath); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return &client.RawBody{ContentType: mw.FormDataContentType(), Data: buf.Bytes()}, nil
}

func writeFile(mw *multipart.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read attachment: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, DocumentField, filepath.Base(path)))
	h.Set("Content-Type", mimetype.Detect(data).String())

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}

// Submit validates, encodes and hands the body to submit.
func (f *RecordForm) Submit(ctx context.Context, submit SubmitFunc) error {
	var body *client.RawBody
	err := f.begin(func() error {
		if err := f.Validate(); err != nil {
			return err
		}
		var err error
		body, err = f.Payload()
		return err
	})
	if err != nil {
		return err
	}
	return f.end(submit(ctx, body))
}
