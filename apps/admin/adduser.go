package main

import (
	"context"

	"github.com/AhmadXRAUF940/attendance--tracker/core/user"
)

// addUser creates a user.User after running it through the same validation
// the API applies.
func (cli *commandLine) addUser(instID, role, first, last, rank, pwd string) error {
	ctx := context.Background()

	nu := user.NewUser{
		InstitutionID:   instID,
		Role:            role,
		FirstName:       first,
		LastName:        last,
		Rank:            rank,
		Password:        pwd,
		PasswordConfirm: pwd,
	}
	if err := nu.Validate(cli.validate, cli.usrSvc); err != nil {
		return err
	}

	usr, err := cli.usrSvc.Create(ctx, nu)
	if err != nil {
		return err
	}
	logger.Printf("created %s %q (id=%d)", usr.Role, usr.InstitutionID, usr.ID)
	return nil
}
