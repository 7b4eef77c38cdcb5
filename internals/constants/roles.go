package constants

import "fmt"

// Roles are fixed at registration and never change afterwards.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

var AllowedRoles = []string{RoleStudent, RoleTeacher}

func IsValidRole(role string) bool {
	for _, r := range AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Role error message templates
const (
	ErrOnlyTeachersCanAccess = "Only teachers may access the %s feature."
	ErrOnlyStudentsCanAccess = "Only students may access the %s feature."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}
