package dto

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func bindJSON(body string, obj interface{}) error {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return binding.JSON.Bind(req, obj)
}

func bindForm(body string, obj interface{}) error {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return binding.Form.Bind(req, obj)
}

// Whitespace-only names must not slip through as "present".
func TestRegisterRequestRejectsBlankFields(t *testing.T) {
	var req RegisterRequest

	err := bindJSON(`{"firstName":" ","lastName":" ","username":"jdoe","email":"j@d.io","password":"secret1"}`, &req)
	assert.Error(t, err)

	err = bindJSON(`{"firstName":"Jane","lastName":"Doe","username":"   ","email":"j@d.io","password":"secret1"}`, &req)
	assert.Error(t, err)

	err = bindJSON(`{"firstName":"Jane","lastName":"Doe","username":"jdoe","email":"j@d.io","password":"secret1"}`, &req)
	assert.NoError(t, err)
}

func TestVideoUploadRequestRejectsBlankTitle(t *testing.T) {
	var req VideoUploadRequest

	assert.Error(t, bindForm("title=+++&description=about", &req))
	assert.Error(t, bindForm("title=ok&description=++", &req))
	assert.NoError(t, bindForm("title=ok&description=about", &req))
}

func TestVideoUpdateRequestRejectsBlankTitle(t *testing.T) {
	var req VideoUpdateRequest

	assert.Error(t, bindJSON(`{"title":"   "}`, &req))
	assert.NoError(t, bindJSON(`{"title":"A ride"}`, &req))
	assert.NoError(t, bindJSON(`{"isPublished":false}`, &req))
}
