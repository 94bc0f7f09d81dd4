package kernel

import "errors"

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor factory function.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the authenticated identity performing an operation: a user id plus
// that user's fixed role. How the identity is established (token verification)
// is outside the core; every entry point simply receives an Actor.
//
// Actor is an immutable value object and safe to copy.
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates an Actor from a user id and role.
// Both must be valid; errors are aggregated.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role}, nil
}

// ID returns the actor's user id.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the actor's account role.
func (a Actor) Role() Role {
	return a.role
}

// Validate ensures the Actor was created via NewActor.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return ErrActorIsNotConstructed
	}
	if err := a.role.Validate(); err != nil {
		return ErrActorIsNotConstructed
	}
	return nil
}
