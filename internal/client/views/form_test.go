package views

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/client"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/models"
)

func filledForm(t *testing.T) *RecordForm {
	t.Helper()
	f := NewRecordForm()
	values := map[string]string{
		"productName":      "Smart TV",
		"brandAndModel":    "Samsung QLED Q80A",
		"serialNumber":     "SN123456789",
		"purchaseDate":     "2024-02-10",
		"invoiceNumber":    "INV-2023-456",
		"userEmail":        "a@b.com",
		"warrantyDuration": "24",
		"phone":            "+1 555 0100",
		"email":            "support@samsung.test",
		"website":          "https://samsung.test",
	}
	for k, v := range values {
		require.NoError(t, f.Set(k, v))
	}
	return f
}

type part struct {
	contentType string
	filename    string
	data        string
}

func parseMultipart(t *testing.T, body *client.RawBody) ([]string, map[string]part) {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(body.ContentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(bytes.NewReader(body.Data), params["boundary"])
	var order []string
	parts := map[string]part{}
	for {
		p, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(p)
		require.NoError(t, err)
		order = append(order, p.FormName())
		parts[p.FormName()] = part{contentType: p.Header.Get("Content-Type"), filename: p.FileName(), data: string(data)}
	}
	return order, parts
}

func TestSet_RoutesNestedFields(t *testing.T) {
	f := NewRecordForm()

	require.NoError(t, f.Set("email", "help@x.test"))
	require.NoError(t, f.Set("userEmail", "me@x.test"))

	assert.Equal(t, "help@x.test", f.fields.SupportContactInfo.Email)
	assert.Equal(t, "me@x.test", f.fields.UserEmail)

	v, err := f.Get("email")
	require.NoError(t, err)
	assert.Equal(t, "help@x.test", v)
}

func TestSet_UnknownField(t *testing.T) {
	f := NewRecordForm()
	require.ErrorIs(t, f.Set("price", "10"), ErrUnknownField)
	_, err := f.Get("price")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestNewRecordFormFrom_NormalizesDates(t *testing.T) {
	w := &models.Warranty{
		ProductName:        "Laptop",
		PurchaseDate:       "2024-01-15T00:00:00.000Z",
		WarrantyDuration:   12,
		SupportContactInfo: models.SupportContactInfo{Phone: "1"},
	}
	f := NewRecordFormFrom(w)

	v, _ := f.Get("purchaseDate")
	assert.Equal(t, "2024-01-15", v)
	v, _ = f.Get("warrantyDuration")
	assert.Equal(t, "12", v)
	v, _ = f.Get("phone")
	assert.Equal(t, "1", v)
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, filledForm(t).Validate())
}

func TestValidate_Errors(t *testing.T) {
	f := filledForm(t)
	require.NoError(t, f.Set("productName", ""))
	require.NoError(t, f.Set("purchaseDate", "10/02/2024"))
	require.NoError(t, f.Set("warrantyDuration", "-3"))
	require.NoError(t, f.Set("userEmail", "nope"))
	require.NoError(t, f.Set("email", "also-nope"))
	require.NoError(t, f.Set("website", "not a url"))

	err := f.Validate()
	require.ErrorIs(t, err, ErrValidation)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "is required", fe["productName"])
	assert.Equal(t, "must be a date in YYYY-MM-DD format", fe["purchaseDate"])
	assert.Equal(t, "must be a positive whole number", fe["warrantyDuration"])
	assert.Equal(t, "must be a valid email", fe["userEmail"])
	assert.Contains(t, fe, "supportContactInfo.email")
	assert.Contains(t, fe, "supportContactInfo.website")
}

func TestValidate_NestedOptional(t *testing.T) {
	f := filledForm(t)
	for _, name := range ContactFieldNames {
		require.NoError(t, f.Set(name, ""))
	}
	require.NoError(t, f.Validate())
}

func TestPayload_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"), 0o600))

	f := filledForm(t)
	f.SetFile(path)

	body, err := f.Payload()
	require.NoError(t, err)

	order, parts := parseMultipart(t, body)

	want := append(append([]string{}, FieldNames...), "supportContactInfo", DocumentField)
	assert.Equal(t, want, order)

	assert.Equal(t, "Smart TV", parts["productName"].data)
	assert.Equal(t, "24", parts["warrantyDuration"].data)

	var contact models.SupportContactInfo
	require.NoError(t, json.Unmarshal([]byte(parts["supportContactInfo"].data), &contact))
	assert.Equal(t, "support@samsung.test", contact.Email)

	doc := parts[DocumentField]
	assert.Equal(t, "invoice.pdf", doc.filename)
	assert.Equal(t, "application/pdf", doc.contentType)
	assert.Contains(t, doc.data, "%PDF-1.4")
}

func TestPayload_WithoutFile(t *testing.T) {
	f := filledForm(t)
	f.SetFile("/tmp/whatever")
	f.ClearFile()

	body, err := f.Payload()
	require.NoError(t, err)

	_, parts := parseMultipart(t, body)
	assert.NotContains(t, parts, DocumentField)
}

func TestPayload_MissingFile(t *testing.T) {
	f := filledForm(t)
	f.SetFile(filepath.Join(t.TempDir(), "missing.pdf"))

	_, err := f.Payload()
	require.ErrorContains(t, err, "read attachment")
}

func TestSubmit_InvalidDoesNotCallBackend(t *testing.T) {
	f := NewRecordForm()
	called := false

	err := f.Submit(context.Background(), func(context.Context, *client.RawBody) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, ErrValidation)
	assert.False(t, called)
	assert.Equal(t, StateIdle, f.State())
}

func TestSubmit_Delegates(t *testing.T) {
	f := filledForm(t)
	var got *client.RawBody

	err := f.Submit(context.Background(), func(_ context.Context, b *client.RawBody) error {
		got = b
		return nil
	})

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StateSuccess, f.State())
}

func TestSubmit_BackendError(t *testing.T) {
	f := filledForm(t)
	boom := errors.New("boom")

	err := f.Submit(context.Background(), func(context.Context, *client.RawBody) error { return boom })

	require.ErrorIs(t, err, boom)
	assert.Equal(t, StateIdle, f.State())
	assert.ErrorIs(t, f.Err(), boom)
}
