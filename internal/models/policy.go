package models

// CanEdit reports whether viewer may change the priority or completion of
// task: admins may edit any task, everyone else only the tasks they are
// responsible for.
func CanEdit(viewer User, task Task) bool {
	return viewer.Role == RoleAdmin || (viewer.ID != "" && viewer.ID == task.Responsible)
}
