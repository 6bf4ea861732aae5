package user

import (
	"context"
	"errors"
	"time"

	"github.com/AhmadXRAUF940/attendance--tracker/core"
)

var (
	// errors
	ErrNotFound            = errors.New("user not found")
	ErrInstitutionIDExists = errors.New("a user with this institution ID already exists")
)

type (
	Repository interface {
		CheckInstitutionIDUniqueness(ctx context.Context, institutionID string) error
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id int) (User, error)
		GetUserByInstitutionID(ctx context.Context, institutionID string) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckUniqueness(institutionID string) error {
	if err := svc.repo.CheckInstitutionIDUniqueness(context.Background(), institutionID); err != nil {
		if err == ErrInstitutionIDExists {
			return core.NewValidationError(err, core.FieldError{Field: "institution_id", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	usr := User{
		InstitutionID: nu.InstitutionID,
		Role:          nu.Role,
		FirstName:     nu.FirstName,
		LastName:      nu.LastName,
		Rank:          nu.Rank,
		CreatedAt:     time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByInstitutionID(ctx context.Context, instID string) (User, error) {
	return svc.repo.GetUserByInstitutionID(ctx, core.CleanString(instID))
}
