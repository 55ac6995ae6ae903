package order

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/errs"
)

// MaxNameLength bounds the display name of a printing.
const MaxNameLength = 100

// Problem keys reported by Form and Resolve.
const (
	KeyStatusError = "status_error"
	KeyNameError   = "name_error"
	KeyError       = "error"
)

var (
	// ErrPrintingIsNotConstructed is returned when a Printing was not created through
	// NewDraft or RestorePrinting.
	ErrPrintingIsNotConstructed = errors.New("Printing must be created via NewDraft constructor")
)

// Pricer computes the total of a set of line items at the moment it is called.
// Implementations read current catalog prices; nothing is cached on the printing.
type Pricer interface {
	Total(items []LineItem) (int64, error)
}

// Printing is the order aggregate root. It owns its line items and enforces
// the status machine described on Status.
//
// Printing follows these invariants:
//   - Line items and the display name change only while Draft
//   - A catalog item appears in at most one line item
//   - The total price is set exactly once, when the printing becomes Complete
//   - The moderator and completion time are set by either resolution
//
// Version is the optimistic concurrency token; repositories compare it on
// every write and advance it afterwards.
type Printing struct {
	id          kernel.UUID
	authorID    kernel.UUID
	moderatorID *kernel.UUID
	name        string
	status      Status
	createdAt   time.Time
	formedAt    *time.Time
	completedAt *time.Time
	totalPrice  *int64
	items       []LineItem
	version     int

	isConstructed bool
}

// NewDraft creates an empty draft owned by author.
func NewDraft(id, authorID kernel.UUID, now time.Time) (*Printing, error) {
	if err := errors.Join(id.Validate(), authorID.Validate()); err != nil {
		return nil, err
	}
	return &Printing{
		id:            id,
		authorID:      authorID,
		status:        Draft,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// State is the full persisted form of a printing, used by RestorePrinting.
type State struct {
	ID          kernel.UUID
	AuthorID    kernel.UUID
	ModeratorID *kernel.UUID
	Name        string
	Status      Status
	CreatedAt   time.Time
	FormedAt    *time.Time
	CompletedAt *time.Time
	TotalPrice  *int64
	Items       []LineItem
	Version     int
}

// RestorePrinting rebuilds a printing from persistence without replaying
// transitions. It still rejects structurally invalid state.
func RestorePrinting(s State) (*Printing, error) {
	if err := errors.Join(s.ID.Validate(), s.AuthorID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	seen := make(map[kernel.UUID]struct{}, len(s.Items))
	for _, item := range s.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[item.JobID()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("items", errors.New("duplicate line item "+item.JobID().String()))
		}
		seen[item.JobID()] = struct{}{}
	}

	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	return &Printing{
		id:            s.ID,
		authorID:      s.AuthorID,
		moderatorID:   s.ModeratorID,
		name:          s.Name,
		status:        s.Status,
		createdAt:     s.CreatedAt,
		formedAt:      s.FormedAt,
		completedAt:   s.CompletedAt,
		totalPrice:    s.TotalPrice,
		items:         items,
		version:       s.Version,
		isConstructed: true,
	}, nil
}

func (p *Printing) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPrintingIsNotConstructed
	}
	return nil
}

func (p *Printing) IsEqual(other *Printing) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Printing) ID() kernel.UUID {
	return p.id
}

func (p *Printing) AuthorID() kernel.UUID {
	return p.authorID
}

// ModeratorID is nil until the printing is resolved.
func (p *Printing) ModeratorID() *kernel.UUID {
	return p.moderatorID
}

func (p *Printing) Name() string {
	return p.name
}

func (p *Printing) Status() Status {
	return p.status
}

func (p *Printing) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Printing) FormedAt() *time.Time {
	return p.formedAt
}

func (p *Printing) CompletedAt() *time.Time {
	return p.completedAt
}

// TotalPrice is nil unless the printing is Complete.
func (p *Printing) TotalPrice() *int64 {
	return p.totalPrice
}

func (p *Printing) Version() int {
	return p.version
}

// AdvanceVersion is called by repositories after a successful write.
func (p *Printing) AdvanceVersion() {
	p.version++
}

// Items returns a copy of the line items in insertion order.
func (p *Printing) Items() []LineItem {
	out := make([]LineItem, len(p.items))
	copy(out, p.items)
	return out
}

// ItemCount is the number of distinct catalog items in the printing.
func (p *Printing) ItemCount() int {
	return len(p.items)
}

// Item returns the line item for jobID, if present.
func (p *Printing) Item(jobID kernel.UUID) (LineItem, bool) {
	if i := p.indexOf(jobID); i >= 0 {
		return p.items[i], true
	}
	return LineItem{}, false
}

// AddItem merges quantity into the line for jobID, creating it when absent.
func (p *Printing) AddItem(jobID kernel.UUID, quantity kernel.Quantity) (LineItem, error) {
	if err := p.status.ValidateMutable(); err != nil {
		return LineItem{}, err
	}

	if i := p.indexOf(jobID); i >= 0 {
		merged, err := p.items[i].quantity.Plus(quantity)
		if err != nil {
			return LineItem{}, err
		}
		p.items[i].quantity = merged
		return p.items[i], nil
	}

	item, err := NewLineItem(jobID, quantity)
	if err != nil {
		return LineItem{}, err
	}
	p.items = append(p.items, item)
	return item, nil
}

// UpdateItem sets the quantity of an existing line. A non-positive quantity
// removes the line; removed is true in that case.
func (p *Printing) UpdateItem(jobID kernel.UUID, quantity int) (item LineItem, removed bool, err error) {
	if err = p.status.ValidateMutable(); err != nil {
		return LineItem{}, false, err
	}
	i := p.indexOf(jobID)
	if i < 0 {
		return LineItem{}, false, errs.NewObjectNotFoundError("jobId", jobID)
	}

	if quantity <= 0 {
		p.removeAt(i)
		return LineItem{}, true, nil
	}

	q, err := kernel.NewQuantity(quantity)
	if err != nil {
		return LineItem{}, false, err
	}
	p.items[i].quantity = q
	return p.items[i], false, nil
}

// RemoveItem deletes the line for jobID. Removing an absent line is a no-op
// and reports false.
func (p *Printing) RemoveItem(jobID kernel.UUID) (bool, error) {
	if err := p.status.ValidateMutable(); err != nil {
		return false, err
	}
	i := p.indexOf(jobID)
	if i < 0 {
		return false, nil
	}
	p.removeAt(i)
	return true, nil
}

// Rename sets the display name while the printing is still a draft.
func (p *Printing) Rename(name string) error {
	if err := p.status.ValidateMutable(); err != nil {
		return err
	}
	return p.setName(name)
}

// Form submits the draft for moderation. An empty displayName keeps the name
// set earlier with Rename. Status and name problems are reported together
// under KeyStatusError and KeyNameError.
func (p *Printing) Form(displayName string, now time.Time) error {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = p.name
	}

	next, statusErr := p.status.Form()
	problems := &errs.Problems{}
	problems.Add(KeyStatusError, statusErr)
	problems.Add(KeyNameError, validateName(name))
	if err := problems.Err(); err != nil {
		return err
	}

	p.status = next
	p.name = name
	p.formedAt = &now
	return nil
}

// Resolve applies a moderator decision. The decision is parsed here so that a
// bad status and a bad decision are reported together, under KeyError and
// KeyStatusError. On complete the total is taken from pricer at this moment.
func (p *Printing) Resolve(moderatorID kernel.UUID, decision string, pricer Pricer, now time.Time) error {
	if err := moderatorID.Validate(); err != nil {
		return err
	}

	d, decisionErr := ParseDecision(decision)
	problems := &errs.Problems{}
	problems.Add(KeyError, p.status.ValidateResolve())
	problems.Add(KeyStatusError, decisionErr)
	if err := problems.Err(); err != nil {
		return err
	}

	next, err := p.status.Resolve(d)
	if err != nil {
		return err
	}

	var total *int64
	if next == Complete {
		sum, err := pricer.Total(p.Items())
		if err != nil {
			return err
		}
		total = &sum
	}

	p.status = next
	p.moderatorID = &moderatorID
	p.completedAt = &now
	p.totalPrice = total
	return nil
}

// SoftDelete marks the printing Deleted regardless of its status.
// It reports whether the status actually changed.
func (p *Printing) SoftDelete() bool {
	if p.status == Deleted {
		return false
	}
	p.status = p.status.Delete()
	return true
}

func (p *Printing) indexOf(jobID kernel.UUID) int {
	for i, item := range p.items {
		if item.jobID.IsEqual(jobID) {
			return i
		}
	}
	return -1
}

func (p *Printing) removeAt(i int) {
	p.items = append(p.items[:i], p.items[i+1:]...)
}

func (p *Printing) setName(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	p.name = name
	return nil
}

func validateName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", n, 1, MaxNameLength)
	}
	return nil
}
