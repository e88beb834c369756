package document

import (
	"slices"
	"strings"

	auditreport "github.com/kakehashi-asia/auditreport"
)

// ListName identifies an identity-bearing list of the Document.
type ListName string

const (
	Assets    ListName = "assets"
	Evidence  ListName = "evidence"
	Changes   ListName = "changes"
	News      ListName = "news"
	LineItems ListName = "invoice.items"
)

// Lists returns the names of every identity-bearing list in schema order.
func Lists() []ListName {
	out := make([]ListName, len(registry))
	for i, l := range registry {
		out[i] = l.name()
	}
	return out
}

type listOps interface {
	name() ListName
	identified() bool
	resizable() bool
	length(d *Document) int
	ids(d *Document) []string
	insert(d *Document, entity any, id string) error
	removeAt(d *Document, i int)
}

type listSpec[T any] struct {
	list    ListName
	slice   func(d *Document) *[]T
	id      func(e *T) *string
	blank   func(d *Document) T
	growing bool
}

func (l listSpec[T]) name() ListName        { return l.list }
func (l listSpec[T]) identified() bool      { return l.id != nil }
func (l listSpec[T]) resizable() bool       { return l.growing }
func (l listSpec[T]) length(d *Document) int { return len(*l.slice(d)) }

func (l listSpec[T]) ids(d *Document) []string {
	s := *l.slice(d)
	out := make([]string, len(s))
	for i := range s {
		out[i] = *l.id(&s[i])
	}
	return out
}

func (l listSpec[T]) insert(d *Document, entity any, id string) error {
	var e T
	switch v := entity.(type) {
	case nil:
		e = l.blank(d)
	case T:
		e = v
	case *T:
		e = *v
	default:
		e = l.blank(d)
		if err := decodeWeak(v, &e); err != nil {
			return err
		}
	}
	*l.id(&e) = id
	s := l.slice(d)
	*s = append(*s, e)
	return nil
}

func (l listSpec[T]) removeAt(d *Document, i int) {
	s := l.slice(d)
	*s = slices.Delete(*s, i, i+1)
}

var registry = []listOps{
	listSpec[Asset]{
		list:  Assets,
		slice: func(d *Document) *[]Asset { return &d.Assets },
		id:    func(e *Asset) *string { return &e.ID },
		blank: func(*Document) Asset {
			return Asset{
				HostName: "Re:Veil-New",
				Role:     "Secure smartphone (Re:Veil)",
				OS:       "GrapheneOS",
				Status:   StatusHealthy,
				Detail:   "Initial Setup",
			}
		},
		growing: true,
	},
	listSpec[EvidenceItem]{
		list:  Evidence,
		slice: func(d *Document) *[]EvidenceItem { return &d.Evidence },
		id:    func(e *EvidenceItem) *string { return &e.ID },
		blank: func(*Document) EvidenceItem { return EvidenceItem{Category: CategoryActivity} },
	},
	listSpec[ChangeLogEntry]{
		list:  Changes,
		slice: func(d *Document) *[]ChangeLogEntry { return &d.Changes },
		id:    func(e *ChangeLogEntry) *string { return &e.ID },
		blank: func(d *Document) ChangeLogEntry {
			return ChangeLogEntry{
				Date:    d.Meta.Month + "/XX",
				Type:    "Maintenance",
				Content: "Describe the work",
				Result:  "Done",
				Owner:   "Owner",
			}
		},
		growing: true,
	},
	listSpec[NewsItem]{
		list:    News,
		slice:   func(d *Document) *[]NewsItem { return &d.News },
		id:      func(e *NewsItem) *string { return &e.ID },
		blank:   func(d *Document) NewsItem { return NewsItem{Title: "New Article", Date: d.Meta.IssueDate} },
		growing: true,
	},
	listSpec[LineItem]{
		list:    LineItems,
		slice:   func(d *Document) *[]LineItem { return &d.Invoice.Items },
		id:      func(e *LineItem) *string { return &e.ID },
		blank:   func(*Document) LineItem { return LineItem{Quantity: 1} },
		growing: true,
	},
}

func lookupList(op string, list ListName) (listOps, error) {
	for _, l := range registry {
		if l.name() == list {
			return l, nil
		}
	}
	return nil, auditreport.Errorf(op, auditreport.ErrUnknownList, "%q (known: %s)", list, knownLists())
}

func knownLists() string {
	names := make([]string, len(registry))
	for i, l := range registry {
		names[i] = string(l.name())
	}
	return strings.Join(names, ", ")
}

// Insert appends entity to list with a fresh identifier from ids and returns
// the new snapshot together with that identifier. entity may be the list's
// element type (or a pointer to it), a map of JSON field names to values, or
// nil for the list's blank template. Any identifier carried by entity is
// replaced.
func Insert(d *Document, list ListName, entity any, ids IDGenerator) (*Document, string, error) {
	const op = "Insert"

	l, err := lookupList(op, list)
	if err != nil {
		return d, "", err
	}
	if !l.resizable() {
		return d, "", auditreport.Errorf(op, auditreport.ErrFixedList, "%s", list)
	}
	if ids == nil {
		ids = NewSequence()
	}

	existing := make(map[string]bool)
	for _, id := range l.ids(d) {
		existing[id] = true
	}
	id := ids.NextID(list, func(s string) bool { return existing[s] })

	next := d.Clone()
	if err := l.insert(next, entity, id); err != nil {
		return d, "", auditreport.Errorf(op, auditreport.ErrInvalidValue, "%s entity: %v", list, err)
	}
	if err := next.Validate(); err != nil {
		return d, "", auditreport.NewError(op, err)
	}
	return next, id, nil
}

// RemoveAt deletes the member at index from list. Remaining members keep
// their identifiers and relative order. An out-of-range index fails with
// ErrIndexOutOfRange and returns d unchanged.
func RemoveAt(d *Document, list ListName, index int) (*Document, error) {
	const op = "RemoveAt"

	l, err := lookupList(op, list)
	if err != nil {
		return d, err
	}
	if !l.resizable() {
		return d, auditreport.Errorf(op, auditreport.ErrFixedList, "%s", list)
	}
	if n := l.length(d); index < 0 || index >= n {
		return d, auditreport.Errorf(op, auditreport.ErrIndexOutOfRange, "%s[%d] (length %d)", list, index, n)
	}

	next := d.Clone()
	l.removeAt(next, index)
	return next, nil
}

// RemoveByID deletes the member of list carrying id.
func RemoveByID(d *Document, list ListName, id string) (*Document, error) {
	const op = "RemoveByID"

	l, err := lookupList(op, list)
	if err != nil {
		return d, err
	}
	i := IndexOf(d, list, id)
	if i < 0 {
		return d, auditreport.Errorf(op, auditreport.ErrNotFound, "%s[%s]", list, id)
	}
	if !l.resizable() {
		return d, auditreport.Errorf(op, auditreport.ErrFixedList, "%s", list)
	}

	next := d.Clone()
	l.removeAt(next, i)
	return next, nil
}

// IndexOf returns the position of id in list, or -1.
func IndexOf(d *Document, list ListName, id string) int {
	l, err := lookupList("IndexOf", list)
	if err != nil {
		return -1
	}
	for i, got := range l.ids(d) {
		if got == id {
			return i
		}
	}
	return -1
}

// Len returns the number of members of list, or -1 for an unknown list.
func Len(d *Document, list ListName) int {
	l, err := lookupList("Len", list)
	if err != nil {
		return -1
	}
	return l.length(d)
}
