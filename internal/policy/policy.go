// Package policy is the single authorization gate. Handlers never
// compare owner IDs inline; they ask Authorize and turn a denial into
// a 403 response.
package policy

import (
	"errors"

	"github.com/lumen-pub/inkwell/backend/internal/models"
)

// Action names every privacy-sensitive or mutating operation.
type Action string

const (
	ActionUpdateProfile     Action = "user.update"
	ActionUpdatePassword    Action = "user.password"
	ActionViewTrash         Action = "user.trash"
	ActionViewNotifications Action = "user.notifications"
	ActionManageArticle     Action = "article.manage"
	ActionViewRevisions     Action = "article.revisions"
)

var (
	// ErrUnauthorized means no identity was presented at all.
	ErrUnauthorized = errors.New("policy: no authenticated identity")
	// ErrForbidden means the identity lacks rights on the resource.
	ErrForbidden = errors.New("policy: access denied")
)

// Resource is anything with an owning user.
type Resource interface {
	OwnerID() uint
}

// Authorize reports whether actor may perform action on resource.
// Owners may always act on their own resources. Editors additionally
// hold the article.manage capability for any article.
func Authorize(actor *models.User, action Action, resource Resource) error {
	if actor == nil {
		return ErrUnauthorized
	}
	if actor.ID == resource.OwnerID() {
		return nil
	}
	switch action {
	case ActionManageArticle, ActionViewRevisions:
		if actor.Role == models.RoleEditor {
			return nil
		}
	}
	return ErrForbidden
}
