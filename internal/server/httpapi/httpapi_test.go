package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/classroom-gateway/internal/errs"
	"github.com/and161185/classroom-gateway/internal/model"
	"github.com/and161185/classroom-gateway/internal/service"
	"github.com/and161185/classroom-gateway/internal/token"
)

type fakeAccountSvc struct {
	tm        *token.Manager
	passwords map[string]string
	accounts  map[string]model.SanitizedAccount
}

var _ service.AccountService = (*fakeAccountSvc)(nil)

func (f *fakeAccountSvc) Register(_ context.Context, email, password, role string) (model.SanitizedAccount, model.Session, error) {
	if email == "" || password == "" || role == "" {
		return model.SanitizedAccount{}, model.Session{}, fmt.Errorf("%w: all fields are required", errs.ErrInvalidInput)
	}
	if _, exists := f.accounts[email]; exists {
		return model.SanitizedAccount{}, model.Session{}, errs.ErrAlreadyExists
	}
	acc := model.SanitizedAccount{ID: uuid.Must(uuid.NewV4()), Email: email, Role: role}
	f.accounts[email] = acc
	f.passwords[email] = password
	tok, exp, err := f.tm.Issue(acc.ID, acc.Role)
	return acc, model.Session{Token: tok, ExpiresAt: exp}, err
}

func (f *fakeAccountSvc) Login(_ context.Context, email, password string) (model.SanitizedAccount, model.Session, error) {
	acc, ok := f.accounts[email]
	if !ok || f.passwords[email] != password {
		return model.SanitizedAccount{}, model.Session{}, errs.ErrUnauthorized
	}
	tok, exp, err := f.tm.Issue(acc.ID, acc.Role)
	return acc, model.Session{Token: tok, ExpiresAt: exp}, err
}

type fakeFileSvc struct {
	objects []model.StorageObject
	listErr error
}

var _ service.FileService = (*fakeFileSvc)(nil)

func (f *fakeFileSvc) Upload(_ context.Context, data []byte, name, contentType string) (model.StorageObject, error) {
	if len(data) == 0 {
		return model.StorageObject{}, fmt.Errorf("%w: no file uploaded", errs.ErrInvalidInput)
	}
	obj := model.StorageObject{
		Name:        name,
		Key:         fmt.Sprintf("uploads/%d_%s", len(f.objects), name),
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   time.Now(),
	}
	obj.URL = "https://files.test/" + obj.Key
	f.objects = append(f.objects, obj)
	return obj, nil
}

func (f *fakeFileSvc) List(_ context.Context) ([]model.StorageObject, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.objects, nil
}

func (f *fakeFileSvc) Delete(_ context.Context, key string) error {
	for i, obj := range f.objects {
		if obj.Key == key {
			f.objects = append(f.objects[:i], f.objects[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func newTestServer(t *testing.T) (http.Handler, *fakeAccountSvc, *fakeFileSvc) {
	t.Helper()
	tm := token.New([]byte("test-secret"), time.Hour)
	accounts := &fakeAccountSvc{tm: tm, passwords: map[string]string{}, accounts: map[string]model.SanitizedAccount{}}
	files := &fakeFileSvc{}
	return New(accounts, files, tm, zap.NewNop()), accounts, files
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func bearer(tok string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + tok}
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestServer(t)
	rr := doJSON(t, h, "GET", "/health", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("health status: %d", rr.Code)
	}
}

func TestRegister(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := doJSON(t, h, "POST", "/auth/register",
		map[string]string{"email": "u@example.com", "password": "pass", "role": "teacher"}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		User  model.SanitizedAccount `json:"user"`
		Token string                 `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" || resp.User.Email != "u@example.com" || resp.User.Role != "teacher" {
		t.Fatalf("bad response: %s", rr.Body.String())
	}

	// missing fields
	rr = doJSON(t, h, "POST", "/auth/register", map[string]string{"email": "u2@example.com"}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: %d", rr.Code)
	}

	// duplicate email
	rr = doJSON(t, h, "POST", "/auth/register",
		map[string]string{"email": "u@example.com", "password": "other", "role": "student"}, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate: %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "other") {
		t.Fatalf("conflict body leaks password: %s", rr.Body.String())
	}
}

func TestLogin_UniformFailure(t *testing.T) {
	h, _, _ := newTestServer(t)

	doJSON(t, h, "POST", "/auth/register",
		map[string]string{"email": "u@example.com", "password": "pass", "role": "student"}, nil)

	missing := doJSON(t, h, "POST", "/auth/login",
		map[string]string{"email": "nobody@example.com", "password": "x"}, nil)
	wrongPw := doJSON(t, h, "POST", "/auth/login",
		map[string]string{"email": "u@example.com", "password": "wrong"}, nil)

	if missing.Code != http.StatusUnauthorized || wrongPw.Code != http.StatusUnauthorized {
		t.Fatalf("statuses: %d / %d", missing.Code, wrongPw.Code)
	}
	if missing.Body.String() != wrongPw.Body.String() {
		t.Fatalf("failure bodies differ: %q vs %q", missing.Body.String(), wrongPw.Body.String())
	}

	ok := doJSON(t, h, "POST", "/auth/login",
		map[string]string{"email": "u@example.com", "password": "pass"}, nil)
	if ok.Code != http.StatusOK {
		t.Fatalf("login: %d %s", ok.Code, ok.Body.String())
	}
}

func registerAndToken(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := doJSON(t, h, "POST", "/auth/register",
		map[string]string{"email": "t@example.com", "password": "pass", "role": "teacher"}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Token
}

func uploadFile(t *testing.T, h http.Handler, tok, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestFiles_RequireAuth(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := doJSON(t, h, "GET", "/files", nil, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rr.Code)
	}
	rr = doJSON(t, h, "GET", "/files", nil, bearer("garbage"))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", rr.Code)
	}
}

func TestFiles_UploadAndList(t *testing.T) {
	h, _, _ := newTestServer(t)
	tok := registerAndToken(t, h)

	rr := uploadFile(t, h, tok, "notes.pdf", make([]byte, 1024))
	if rr.Code != http.StatusOK {
		t.Fatalf("upload: %d %s", rr.Code, rr.Body.String())
	}
	var up struct {
		Name string `json:"name"`
		URL  string `json:"url"`
		Size int64  `json:"size"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &up); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if up.Name != "notes.pdf" || up.Size != 1024 || up.URL == "" {
		t.Fatalf("bad upload response: %s", rr.Body.String())
	}

	rr = doJSON(t, h, "GET", "/files", nil, bearer(tok))
	if rr.Code != http.StatusOK {
		t.Fatalf("list: %d", rr.Code)
	}
	var entries []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	matches := 0
	for _, e := range entries {
		if e.Name == "notes.pdf" && e.URL == up.URL {
			matches++
		}
	}
	if matches != 1 {
		t.Fatalf("uploaded file listed %d times, want 1: %s", matches, rr.Body.String())
	}
}

func TestFiles_UploadMissingFile(t *testing.T) {
	h, _, _ := newTestServer(t)
	tok := registerAndToken(t, h)

	req := httptest.NewRequest("POST", "/files/upload", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("missing file: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "no file uploaded") {
		t.Fatalf("body: %s", rr.Body.String())
	}
}

func TestFiles_Delete(t *testing.T) {
	h, _, files := newTestServer(t)
	tok := registerAndToken(t, h)

	rr := uploadFile(t, h, tok, "old.txt", []byte("x"))
	if rr.Code != http.StatusOK {
		t.Fatalf("upload: %d", rr.Code)
	}
	key := files.objects[0].Key

	rr = doJSON(t, h, "DELETE", "/files/"+key, nil, bearer(tok))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: %d %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, h, "DELETE", "/files/"+key, nil, bearer(tok))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("delete absent: %d", rr.Code)
	}
}
