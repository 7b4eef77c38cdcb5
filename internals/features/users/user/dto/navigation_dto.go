package dto

import "campushub_backend/internals/constants"

// NavItem is one entry of the role-scoped navigation menu.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

var studentMenu = []NavItem{
	{Label: "Dashboard", Path: "/dashboard", Icon: "home"},
	{Label: "Events", Path: "/events", Icon: "calendar"},
	{Label: "My Registrations", Path: "/registrations", Icon: "ticket"},
	{Label: "FAQs", Path: "/faqs", Icon: "help-circle"},
	{Label: "Ask a Teacher", Path: "/ask", Icon: "message-circle"},
	{Label: "Profile", Path: "/profile", Icon: "user"},
}

var teacherMenu = []NavItem{
	{Label: "Dashboard", Path: "/dashboard", Icon: "home"},
	{Label: "My Events", Path: "/teacher/events", Icon: "calendar"},
	{Label: "FAQs", Path: "/teacher/faqs", Icon: "help-circle"},
	{Label: "Inbox", Path: "/teacher/inbox", Icon: "inbox"},
	{Label: "Profile", Path: "/profile", Icon: "user"},
}

// MenuForRole returns the static menu for a role; unknown roles get nothing.
func MenuForRole(role string) []NavItem {
	switch role {
	case constants.RoleStudent:
		return studentMenu
	case constants.RoleTeacher:
		return teacherMenu
	default:
		return nil
	}
}
