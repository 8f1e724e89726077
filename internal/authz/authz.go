// Package authz centralizes the authorization policy: a closed set of
// actions and one capability table, instead of role string comparisons
// scattered through handlers.
package authz

import "chitraboard/internal/models"

// Action names something a signed-in user can attempt.
type Action string

const (
	ActionManageUsers     Action = "manage_users"
	ActionChangeRole      Action = "change_role"
	ActionAuthorContent   Action = "author_content"
	ActionAssignActivity  Action = "assign_activity"
	ActionLinkParentChild Action = "link_parent_child"
	ActionPlayActivity    Action = "play_activity"
	ActionViewOwnProgress Action = "view_own_progress"
	ActionViewChildren    Action = "view_children_progress"
	ActionUseMarketplace  Action = "use_marketplace"
)

// capabilities is the single authorization table. Admins additionally
// hold every therapist capability.
var capabilities = map[models.Role]map[Action]bool{
	models.RoleAdmin: {
		ActionManageUsers:     true,
		ActionChangeRole:      true,
		ActionAuthorContent:   true,
		ActionAssignActivity:  true,
		ActionLinkParentChild: true,
		ActionViewChildren:    true,
		ActionUseMarketplace:  true,
	},
	models.RoleTherapist: {
		ActionManageUsers:     true,
		ActionAuthorContent:   true,
		ActionAssignActivity:  true,
		ActionLinkParentChild: true,
		ActionViewChildren:    true,
		ActionUseMarketplace:  true,
	},
	models.RoleChild: {
		ActionPlayActivity:    true,
		ActionViewOwnProgress: true,
	},
	models.RoleParent: {
		ActionViewChildren:   true,
		ActionUseMarketplace: true,
	},
}

// Can reports whether a role may perform an action. Unknown roles and
// unknown actions are denied.
func Can(role models.Role, action Action) bool {
	return capabilities[role][action]
}

// CanChangeRole reports whether actor may change target's role: only
// admins, and never their own.
func CanChangeRole(actor *models.Profile, targetID string) bool {
	if actor == nil {
		return false
	}
	return Can(actor.Role, ActionChangeRole) && actor.ID != targetID
}
