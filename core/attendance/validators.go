package attendance

import (
	"regexp"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/AhmadXRAUF940/attendance--tracker/core"
)

var (
	dateTag    = "attdate"
	dateText   = "must be a valid date in YYYY-MM-DD format"
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateLayout = "2006-01-02"

	monthTag    = "attmonth"
	monthText   = "must be a valid month in YYYY-MM format"
	monthRegex  = regexp.MustCompile(`^\d{4}-\d{2}$`)
	monthLayout = "2006-01"
)

// InitValidators registers this package's custom validators and their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(dateTag, dateValidation)
	core.RegisterCustomTranslation(validate, translator, dateTag, dateText)

	_ = validate.RegisterValidation(monthTag, monthValidation)
	core.RegisterCustomTranslation(validate, translator, monthTag, monthText)
}

// Custom Validators

// dateValidation checks the YYYY-MM-DD format. Dates are otherwise opaque
// strings; no timezone handling anywhere.
func dateValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if !dateRegex.MatchString(val) {
		return false
	}
	_, err := time.Parse(dateLayout, val)
	return err == nil
}

// monthValidation checks the YYYY-MM format.
func monthValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if !monthRegex.MatchString(val) {
		return false
	}
	_, err := time.Parse(monthLayout, val)
	return err == nil
}
