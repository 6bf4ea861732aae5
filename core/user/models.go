package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/AhmadXRAUF940/attendance--tracker/core"
)

// Roles. An account is exactly one of these, fixed at creation.
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Institution ID prefixes, by convention only (not enforced by storage).
const (
	TeacherIDPrefix = "TCH-"
	StudentIDPrefix = "STD-"
)

var AllRoles = []string{RoleTeacher, RoleStudent}

type User struct {
	ID            int       `json:"id"`
	InstitutionID string    `json:"institution_id"`
	Role          string    `json:"role"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Rank          string    `json:"rank,omitempty"` // teachers only
	PasswordHash  []byte    `json:"-"`
	CreatedAt     time.Time `json:"created_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	InstitutionID   string `json:"institution_id" validate:"required,instid"`
	Role            string `json:"role" validate:"required,oneof=teacher student"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Rank            string `json:"rank" validate:"omitempty"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.InstitutionID = core.CleanString(nu.InstitutionID)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	nu.FirstName = core.CleanString(nu.FirstName)
	nu.LastName = core.CleanString(nu.LastName)
	nu.Rank = core.CleanString(nu.Rank)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.InstitutionID)
}
