package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/AhmadXRAUF940/attendance--tracker/core"
	"github.com/AhmadXRAUF940/attendance--tracker/core/attendance"
	"github.com/AhmadXRAUF940/attendance--tracker/core/school"
	"github.com/AhmadXRAUF940/attendance--tracker/core/user"
	broadcastsvc "github.com/AhmadXRAUF940/attendance--tracker/services/broadcast"
	dummydb "github.com/AhmadXRAUF940/attendance--tracker/storage/database/dummy"
)

var (
	conf       *core.Config
	usrRepo    user.Repository
	schoolRepo school.Repository
	attRepo    attendance.Repository
	recorder   *sectionRecorder
	hub        *broadcastsvc.Hub

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errNotAuthed    = httpErr{Error: "user not authenticated"}
	errNotFound     = httpErr{Error: "not found"}
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

// sectionRecorder stands in for the websocket hub in handler tests.
type sectionRecorder struct {
	sections []int
}

func (sr *sectionRecorder) AttendanceUpdated(sectionID int) {
	sr.sections = append(sr.sections, sectionID)
}

func setup(t *testing.T) *Server {
	t.Helper()

	conf = &core.Config{
		TestMode:  true,
		Env:       "TEST",
		AppName:   "AttendanceTracker",
		SecretKey: "secret",
		Server: core.ServerConfig{
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	usrRepo = dummydb.NewUserRepository(db)
	schoolRepo = dummydb.NewSchoolRepository(db)
	attRepo = dummydb.NewAttendanceRepository(db)
	recorder = new(sectionRecorder)

	// set up services
	logger := nopLogger{}
	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)

	// set up server
	hub = broadcastsvc.NewHub(logger)
	return NewServer(ServerDeps{
		Conf:          conf,
		Logger:        logger,
		UserSvc:       user.NewService(usrRepo),
		SchoolSvc:     school.NewService(schoolRepo),
		AttendanceSvc: attendance.NewService(attRepo, recorder),
		Hub:           hub,
		Validate:      validate,
		Translator:    translator,
	})
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	claims := GetUserClaims(conf, usr)
	token, err := GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
