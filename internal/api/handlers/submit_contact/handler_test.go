package submit_contact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	submitContact "github.com/m04kA/SMC-WebsiteService/internal/usecase/submit_contact"
	"github.com/m04kA/SMC-WebsiteService/internal/view"
)

type fakeUseCase struct {
	resp *submitContact.Response
	err  error
	got  *submitContact.Request
}

func (uc *fakeUseCase) Execute(_ context.Context, req *submitContact.Request) (*submitContact.Response, error) {
	uc.got = req
	if uc.err != nil {
		return nil, uc.err
	}
	return uc.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newHandler(t *testing.T, uc SubmitContactUseCase) *Handler {
	t.Helper()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	return NewHandler(uc, renderer, noopLogger{})
}

func postForm(h *Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Acknowledged(t *testing.T) {
	uc := &fakeUseCase{resp: &submitContact.Response{Name: "Alice"}}
	h := newHandler(t, uc)

	rec := postForm(h, url.Values{
		"name":    {"Alice"},
		"email":   {"a@x.com"},
		"message": {"Hello"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you, Alice!")

	require.NotNil(t, uc.got)
	assert.Equal(t, "Hello", uc.got.Message)
}

func TestHandle_InvalidInput(t *testing.T) {
	uc := &fakeUseCase{err: submitContact.ErrInvalidInput}
	h := newHandler(t, uc)

	rec := postForm(h, url.Values{"name": {"Alice"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgMissingFields)
}

func TestHandleForm(t *testing.T) {
	h := newHandler(t, &fakeUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	rec := httptest.NewRecorder()
	h.HandleForm(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/contact"`)
}
