package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/AhmadXRAUF940/attendance--tracker/core/school"
	"github.com/AhmadXRAUF940/attendance--tracker/core/user"
	"github.com/AhmadXRAUF940/attendance--tracker/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword     // mockable
	migrateRunFunc   = database.RunMigration // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db        *sql.DB
	usrSvc    *user.Service
	schoolSvc *school.Service
	validate  *validator.Validate
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
	fmt.Println("  adduser -instid ID -role teacher|student -first FIRST -last LAST [-rank RANK] - create a user")
	fmt.Println("  seed - load demo grades, sections, teachers and students")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserInstID := addUserCmd.String("instid", "", "The user's institution ID, e.g. TCH-1001. The password will be prompted next.")
	addUserRole := addUserCmd.String("role", "", "The user's role: teacher or student.")
	addUserFirst := addUserCmd.String("first", "", "The user's first name.")
	addUserLast := addUserCmd.String("last", "", "The user's last name.")
	addUserRank := addUserCmd.String("rank", "", "The teacher's rank, e.g. \"Senior Teacher\".")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserInstID == "" || *addUserRole == "" || *addUserFirst == "" || *addUserLast == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserInstID, *addUserRole, *addUserFirst, *addUserLast, *addUserRank, string(pwd))
	case "seed":
		return cli.seed()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return migrateRunFunc(cli.db, args[0], arguments...)
}
