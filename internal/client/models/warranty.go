package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/warrantyreminder/internal/common"
)

type SupportContactInfo struct {
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Website string `json:"website" validate:"omitempty,url"`
}

func (s SupportContactInfo) IsZero() bool {
	return s == SupportContactInfo{}
}

// Warranty is a warranty record. Dates keep the backend's string form and are
// parsed on demand; WarrantyExpiryDate is authoritative for expiry.
type Warranty struct {
	ID                 string             `json:"_id,omitempty"`
	ProductName        string             `json:"productName"`
	BrandAndModel      string             `json:"brandAndModel"`
	SerialNumber       string             `json:"serialNumber"`
	PurchaseDate       string             `json:"purchaseDate"`
	WarrantyDuration   int                `json:"warrantyDuration"`
	WarrantyExpiryDate string             `json:"warrantyExpiryDate,omitempty"`
	InvoiceNumber      string             `json:"invoiceNumber"`
	UserEmail          string             `json:"userEmail"`
	SupportContactInfo SupportContactInfo `json:"supportContactInfo"`
	WarrantyDocs       string             `json:"warrantyDocs,omitempty"`
	CreatedAt          string             `json:"createdAt,omitempty"`
	UpdatedAt          string             `json:"updatedAt,omitempty"`
}

// UnmarshalJSON accepts "_id" or "id" and a warrantyDuration sent either as
// a number or as a numeric string.
func (w *Warranty) UnmarshalJSON(data []byte) error {
	type plain Warranty
	aux := struct {
		*plain
		MongoID  string          `json:"_id"`
		ID       string          `json:"id"`
		Duration json.RawMessage `json:"warrantyDuration"`
	}{plain: (*plain)(w)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	w.ID = firstNonEmpty(aux.MongoID, aux.ID)

	months, err := parseMonths(aux.Duration)
	if err != nil {
		return err
	}
	w.WarrantyDuration = months
	return nil
}

func parseMonths(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("warrantyDuration: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("warrantyDuration %q is not a number", s)
	}
	return int(v), nil
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, common.DateLayout}

// ParseDate parses the date formats the backend emits.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders s as YYYY-MM-DD, or returns it untouched when it
// cannot be parsed.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(common.DateLayout)
}

func (w *Warranty) Expiry() (time.Time, bool) {
	return ParseDate(w.WarrantyExpiryDate)
}

// DaysUntilExpiry is the remaining time rounded up to whole days. It is
// negative once the warranty has expired.
func (w *Warranty) DaysUntilExpiry(now time.Time) (int, bool) {
	exp, ok := w.Expiry()
	if !ok {
		return 0, false
	}
	days := exp.Sub(now).Hours() / 24
	return int(math.Ceil(days)), true
}

func (w *Warranty) IsExpired(now time.Time) bool {
	exp, ok := w.Expiry()
	return ok && exp.Before(now)
}

// ExpiresWithin reports now <= expiry <= now+window.
func (w *Warranty) ExpiresWithin(now time.Time, window time.Duration) bool {
	exp, ok := w.Expiry()
	if !ok {
		return false
	}
	return !exp.Before(now) && !exp.After(now.Add(window))
}
