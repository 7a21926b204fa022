package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-gateway/internal/models"
	appErrors "github.com/noah-isme/drivedesk-gateway/pkg/errors"
	"github.com/noah-isme/drivedesk-gateway/pkg/middleware/requestid"
)

type stubResolver struct{}

func (stubResolver) Principal(token string) (models.Principal, error) {
	if token == "bad" {
		return models.Principal{}, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return models.Principal{UserID: "mgr-" + token, Token: token}, nil
}

type captureRecorder struct {
	entries []models.AuditLog
}

func (r *captureRecorder) Record(entry models.AuditLog) {
	r.entries = append(r.entries, entry)
}

type captureObserver struct {
	path   string
	status int
}

func (o *captureObserver) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	o.path = path
	o.status = status
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	router := gin.New()
	router.GET("/x", Auth(stubResolver{}), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, header := range []string{"", "Basic abc", "Bearer bad"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestAuthStoresPrincipal(t *testing.T) {
	router := gin.New()
	var got models.Principal
	router.GET("/x", Auth(stubResolver{}), func(c *gin.Context) {
		got, _ = PrincipalFrom(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "bearer 42")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mgr-42", got.UserID)
	assert.Equal(t, "42", got.Token)
}

func TestAuditRecordsOnlySuccess(t *testing.T) {
	recorder := &captureRecorder{}
	router := gin.New()
	router.Use(requestid.Middleware())
	router.DELETE("/teachers/:id", Auth(stubResolver{}), Audit(recorder, models.AuditActionTeacherRemove, "teacher"), func(c *gin.Context) {
		if c.Query("fail") != "" {
			c.Status(http.StatusConflict)
			return
		}
		c.Status(http.StatusNoContent)
	})

	for _, target := range []string{"/teachers/t-1", "/teachers/t-2?fail=1"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, target, nil)
		req.Header.Set("Authorization", "Bearer 7")
		req.Header.Set(requestid.Header, "req-9")
		router.ServeHTTP(rec, req)
	}

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, models.AuditActionTeacherRemove, entry.Action)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, "t-1", *entry.ResourceID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "mgr-7", *entry.UserID)
	assert.Equal(t, "req-9", entry.RequestID)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	observer := &captureObserver{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.GET("/views/:tab", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/views/overview", nil))
	assert.Equal(t, "/views/:tab", observer.path)
	assert.Equal(t, http.StatusOK, observer.status)
}

func TestResponseMetaCollectsEntries(t *testing.T) {
	router := gin.New()
	router.Use(WithResponseMeta())
	var meta map[string]interface{}
	router.GET("/x", func(c *gin.Context) {
		SetMeta(c, "snapshot_version", int64(3))
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, int64(3), meta["snapshot_version"])
	assert.Contains(t, meta, "processing_time_ms")
}
