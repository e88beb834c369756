package document

import (
	"errors"
	"math"

	auditreport "github.com/kakehashi-asia/auditreport"
)

// Validate checks the structural invariants of d: unique non-empty
// identifiers per list, finite non-negative counts and amounts, and known
// enumeration values. Free-text fields are not inspected.
func (d *Document) Validate() error {
	var errs []error
	add := func(sentinel error, format string, args ...any) {
		errs = append(errs, auditreport.Errorf("Validate", sentinel, format, args...))
	}

	if d.Summary.Score != "" && !d.Summary.Score.Valid() {
		add(auditreport.ErrInvalidValue, "summary.score %q", d.Summary.Score)
	}
	if d.Summary.ThreatsBlocked < 0 {
		add(auditreport.ErrInvalidValue, "summary.threatsBlocked is negative")
	}
	for i, t := range d.ThreatStats {
		if t.Count < 0 {
			add(auditreport.ErrInvalidValue, "threatStats[%d].count is negative", i)
		}
	}
	for i, a := range d.Assets {
		if !a.Status.Valid() {
			add(auditreport.ErrInvalidValue, "assets[%d].status %q", i, a.Status)
		}
	}
	for i, e := range d.Evidence {
		if !e.Category.Valid() {
			add(auditreport.ErrInvalidValue, "evidence[%d].category %q", i, e.Category)
		}
	}
	if !d.Invoice.Currency.Valid() {
		add(auditreport.ErrInvalidValue, "invoice.currency %q", d.Invoice.Currency)
	}
	for i, r := range d.ResourceStats.Storage {
		if !finite(r.Value) {
			add(auditreport.ErrInvalidValue, "resourceStats.storage[%d].value is not a finite number", i)
		}
	}
	for i, r := range d.ResourceStats.CPU {
		if !finite(r.Value) {
			add(auditreport.ErrInvalidValue, "resourceStats.cpu[%d].value is not a finite number", i)
		}
	}
	if !finite(d.Invoice.TaxRatePercent) {
		add(auditreport.ErrInvalidValue, "invoice.taxRatePercent is not a finite number")
	} else if d.Invoice.TaxRatePercent < 0 {
		add(auditreport.ErrInvalidValue, "invoice.taxRatePercent is negative")
	}
	for i, it := range d.Invoice.Items {
		if it.Quantity < 0 {
			add(auditreport.ErrInvalidValue, "invoice.items[%d].quantity is negative", i)
		}
		if !finite(it.UnitPrice) {
			add(auditreport.ErrInvalidValue, "invoice.items[%d].unitPrice is not a finite number", i)
		} else if it.UnitPrice < 0 {
			add(auditreport.ErrInvalidValue, "invoice.items[%d].unitPrice is negative", i)
		}
	}

	for _, l := range registry {
		if !l.identified() {
			continue
		}
		seen := make(map[string]bool)
		for i, id := range l.ids(d) {
			if id == "" {
				add(auditreport.ErrInvalidValue, "%s[%d] has an empty id", l.name(), i)
				continue
			}
			if seen[id] {
				add(auditreport.ErrDuplicateID, "%s id %q", l.name(), id)
			}
			seen[id] = true
		}
	}

	return errors.Join(errs...)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
