package kernel

// Actor is the authenticated caller as supplied by the identity layer.
// The domain never manages credentials; it only reads who is acting and
// whether they are staff.
type Actor struct {
	id    UUID
	email string
	staff bool
}

func NewActor(id UUID, email string, staff bool) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, email: email, staff: staff}, nil
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Email() string {
	return a.email
}

func (a Actor) IsStaff() bool {
	return a.staff
}

// CanAccess reports whether the actor may see or act on something owned by owner.
func (a Actor) CanAccess(owner UUID) bool {
	return a.staff || a.id.IsEqual(owner)
}
