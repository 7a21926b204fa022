package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/drivedesk-gateway/pkg/errors"
)

func TestSchoolHandlerUpdate(t *testing.T) {
	stub := &mutatorStub{}
	h := NewSchoolHandler(stub)
	body, _ := json.Marshal(map[string]interface{}{"name": "Auto-école El Amel", "state": "Oran"})
	c, w := newTestContext(http.MethodPut, "/api/v1/dashboard/school", body)

	h.Update(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Oran", stub.schoolForms[0].State)
}

func TestSchoolHandlerSurfacesMissingSchool(t *testing.T) {
	stub := &mutatorStub{err: appErrors.ErrSchoolNotLoaded}
	h := NewSchoolHandler(stub)
	c, w := newTestContext(http.MethodPut, "/api/v1/dashboard/school", nil)

	h.Update(c)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
}
