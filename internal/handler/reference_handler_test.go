package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceHandlerStates(t *testing.T) {
	h := NewReferenceHandler()
	c, w := newTestContext(http.MethodGet, "/api/v1/states", nil)

	h.States(c)

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeEnvelope(t, w)
	assert.Len(t, payload["data"].([]interface{}), 48)
	assert.EqualValues(t, 48, payload["meta"].(map[string]interface{})["total"])
}
