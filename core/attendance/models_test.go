package attendance

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/AhmadXRAUF940/attendance--tracker/core"
)

func newTestValidator() *validator.Validate {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func TestMarkSheet_Validate(t *testing.T) {
	validate := newTestValidator()

	tests := []struct {
		name    string
		sheet   MarkSheet
		wantErr bool
	}{
		{
			name:  "valid sheet",
			sheet: MarkSheet{Date: "2025-01-15", Records: []Mark{{StudentID: 1, Status: StatusPresent}}},
		},
		{
			name: "valid sheet with all statuses",
			sheet: MarkSheet{Date: "2025-01-15", Records: []Mark{
				{StudentID: 1, Status: StatusPresent},
				{StudentID: 2, Status: StatusAbsent},
				{StudentID: 3, Status: StatusLate},
				{StudentID: 4, Status: StatusExcused},
			}},
		},
		{
			name:    "missing date",
			sheet:   MarkSheet{Records: []Mark{{StudentID: 1, Status: StatusPresent}}},
			wantErr: true,
		},
		{
			name:    "malformed date",
			sheet:   MarkSheet{Date: "15/01/2025", Records: []Mark{{StudentID: 1, Status: StatusPresent}}},
			wantErr: true,
		},
		{
			name:    "impossible date",
			sheet:   MarkSheet{Date: "2025-02-30", Records: []Mark{{StudentID: 1, Status: StatusPresent}}},
			wantErr: true,
		},
		{
			name:    "no records",
			sheet:   MarkSheet{Date: "2025-01-15", Records: []Mark{}},
			wantErr: true,
		},
		{
			name:    "unknown status",
			sheet:   MarkSheet{Date: "2025-01-15", Records: []Mark{{StudentID: 1, Status: "X"}}},
			wantErr: true,
		},
		{
			name:    "lowercase status rejected",
			sheet:   MarkSheet{Date: "2025-01-15", Records: []Mark{{StudentID: 1, Status: "p"}}},
			wantErr: true,
		},
		{
			name:    "zero student ID",
			sheet:   MarkSheet{Date: "2025-01-15", Records: []Mark{{StudentID: 0, Status: StatusPresent}}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sheet.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("MarkSheet.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMonthQuery_Validate(t *testing.T) {
	validate := newTestValidator()

	tests := []struct {
		name    string
		month   string
		wantErr bool
	}{
		{name: "empty month is no filter", month: ""},
		{name: "valid month", month: "2025-01"},
		{name: "month out of range", month: "2025-13", wantErr: true},
		{name: "full date rejected", month: "2025-01-15", wantErr: true},
		{name: "garbage", month: "january", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mq := MonthQuery{Month: tt.month}
			if err := mq.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("MonthQuery.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
