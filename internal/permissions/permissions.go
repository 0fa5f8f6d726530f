// Package permissions holds the single access-decision table for the API.
//
// Every service consults Allowed before touching a resource; there are no
// role checks anywhere else. The actor may be nil (anonymous request).
package permissions

import "critiq/internal/models"

// Action is an operation an actor attempts on a resource.
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

// Class identifies what kind of resource an access decision is about.
type Class int

const (
	ClassTitle Class = iota
	ClassGenre
	ClassCategory
	ClassReview
	ClassComment
	ClassUser
	ClassOwnProfile
)

// Resource describes the target of an access decision. OwnerID is only
// meaningful for review and comment resources.
type Resource struct {
	Class   Class
	OwnerID uint
}

// Allowed is the access decision table, evaluated in precedence order with
// the first matching rule winning.
func Allowed(actor *models.User, action Action, res Resource) bool {
	switch res.Class {
	case ClassTitle, ClassGenre, ClassCategory:
		if action == ActionRead {
			return true
		}
		return actor != nil && actor.IsAdmin()

	case ClassReview, ClassComment:
		switch action {
		case ActionRead:
			return true
		case ActionCreate:
			return actor != nil
		default: // update, delete
			if actor == nil {
				return false
			}
			return actor.ID == res.OwnerID || actor.IsModerator() || actor.IsAdmin()
		}

	case ClassOwnProfile:
		return actor != nil

	case ClassUser:
		return actor != nil && actor.IsAdmin()
	}

	return false
}

// Deny converts a failed decision into the right application error: 401 for
// anonymous actors on actions that need authentication, 403 otherwise.
func Deny(actor *models.User) error {
	if actor == nil {
		return models.NewUnauthorizedError("Authentication required")
	}
	return models.NewForbiddenError("You do not have permission to perform this action")
}
