package catalog

import (
	"errors"
	"strings"
	"unicode/utf8"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/errs"
)

// MaxNameLength bounds item and order display names.
const MaxNameLength = 100

var (
	// ErrItemIsNotConstructed is returned when an Item was not created through NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is the catalog aggregate root. Fields are private; every change goes
// through a method that keeps the invariants listed in the package docs.
type Item struct {
	id          kernel.UUID
	name        string
	description string
	price       kernel.Price
	imageURL    string
	visibility  Visibility

	isConstructed bool
}

// NewItem creates a visible item. Name and price problems are reported
// together under the "name" and "price" keys.
func NewItem(id kernel.UUID, name, description string, price int64) (*Item, error) {
	item := &Item{
		description:   description,
		visibility:    Visible,
		isConstructed: true,
	}

	if err := id.Validate(); err != nil {
		return nil, err
	}
	item.id = id

	problems := &errs.Problems{}
	problems.Add("name", item.setName(name))
	problems.Add("price", item.setPrice(price))
	if err := problems.Err(); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem rebuilds an item from persisted state.
func RestoreItem(
	id kernel.UUID,
	name, description string,
	price int64,
	imageURL string,
	visibility Visibility,
) (*Item, error) {
	p, err := kernel.NewPrice(price)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(id.Validate(), visibility.Validate()); err != nil {
		return nil, err
	}

	return &Item{
		id:            id,
		name:          name,
		description:   description,
		price:         p,
		imageURL:      imageURL,
		visibility:    visibility,
		isConstructed: true,
	}, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) Description() string {
	return i.description
}

func (i *Item) Price() kernel.Price {
	return i.price
}

// ImageURL is empty until an image is attached.
func (i *Item) ImageURL() string {
	return i.imageURL
}

func (i *Item) Visibility() Visibility {
	return i.visibility
}

func (i *Item) IsVisible() bool {
	return i.visibility == Visible
}

// Changes is a partial update; nil fields are left as they are.
type Changes struct {
	Name        *string
	Description *string
	Price       *int64
}

// Update applies changes atomically: either every field is valid and
// applied, or nothing changes and all problems are returned.
func (i *Item) Update(changes Changes) error {
	if !i.IsVisible() {
		return errs.NewObjectNotFoundError("jobId", i.id)
	}

	next := *i
	problems := &errs.Problems{}
	if changes.Name != nil {
		problems.Add("name", next.setName(*changes.Name))
	}
	if changes.Price != nil {
		problems.Add("price", next.setPrice(*changes.Price))
	}
	if err := problems.Err(); err != nil {
		return err
	}
	if changes.Description != nil {
		next.description = *changes.Description
	}

	*i = next
	return nil
}

// AttachImage records the reference returned by the asset store.
func (i *Item) AttachImage(url string) error {
	if !i.IsVisible() {
		return errs.NewObjectNotFoundError("jobId", i.id)
	}
	if strings.TrimSpace(url) == "" {
		return errs.NewValueIsRequiredError("image")
	}
	i.imageURL = url
	return nil
}

// SoftDelete hides the item. Deleting twice reports NotFound, as the item is
// already gone from the caller's point of view.
func (i *Item) SoftDelete() error {
	if !i.IsVisible() {
		return errs.NewObjectNotFoundError("jobId", i.id)
	}
	i.visibility = Deleted
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", n, 1, MaxNameLength)
	}
	i.name = name
	return nil
}

func (i *Item) setPrice(amount int64) error {
	p, err := kernel.NewPrice(amount)
	if err != nil {
		return err
	}
	i.price = p
	return nil
}
