package main

import (
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/AhmadXRAUF940/attendance--tracker/core"
	"github.com/AhmadXRAUF940/attendance--tracker/core/school"
	"github.com/AhmadXRAUF940/attendance--tracker/core/user"
	"github.com/AhmadXRAUF940/attendance--tracker/storage/database"
	sqlxrepos "github.com/AhmadXRAUF940/attendance--tracker/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	dbx := sqlx.NewDb(db, conf.Database.Engine)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		db:        db,
		usrSvc:    user.NewService(sqlxrepos.NewUserRepository(dbx)),
		schoolSvc: school.NewService(sqlxrepos.NewSchoolRepository(dbx)),
		validate:  validate,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
