package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("a"), NewTestUUID("a"))
	assert.NotEqual(t, NewTestUUID("a"), NewTestUUID("b"))
	assert.Equal(t, NewTestUUID("test-organization"), TestOrganizationID())
}

func TestD(t *testing.T) {
	assert.True(t, D(t, "12.50").Equal(D(t, "12.5")))
}

func TestDate(t *testing.T) {
	d := Date(2024, time.March, 5)
	assert.Equal(t, "2024-03-05T00:00:00Z", d.Format(time.RFC3339))
}

func TestContextWithTimeout(t *testing.T) {
	ctx := ContextWithTimeout(t, time.Minute)
	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestAPIClient(t *testing.T) {
	org := TestOrganizationID()
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		_ = c.ShouldBindJSON(&body)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data": gin.H{
				"organization": c.GetHeader("X-Organization-ID"),
				"key":          c.GetHeader("Idempotency-Key"),
				"name":         body["name"],
			},
		})
	})
	engine.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   gin.H{"code": "ERR_CONFLICT", "message": "conflict"},
		})
	})

	client := NewAPIClient(t, engine, org)

	type echo struct {
		Organization string `json:"organization"`
		Key          string `json:"key"`
		Name         string `json:"name"`
	}
	got := DataAs[echo](t, client.WithHeader("Idempotency-Key", "k-1").Post("/echo", map[string]string{"name": "villa"}), http.StatusCreated)
	assert.Equal(t, org.String(), got.Organization)
	assert.Equal(t, "k-1", got.Key)
	assert.Equal(t, "villa", got.Name)

	// WithHeader does not leak into the original client
	plain := DataAs[echo](t, client.Post("/echo", nil), http.StatusCreated)
	assert.Empty(t, plain.Key)

	AssertError(t, client.Get("/fail"), http.StatusConflict, "ERR_CONFLICT")
}

func TestArchiveStore(t *testing.T) {
	s := NewArchiveStore("http://reports.local/files")
	ctx := context.Background()

	data := []byte("a,b\n")
	require.NoError(t, s.Put(ctx, "org/staff.csv", data, "text/csv"))
	data[0] = 'z'

	obj, ok := s.Get("org/staff.csv")
	require.True(t, ok)
	assert.Equal(t, "a,b\n", string(obj.Data))
	assert.Equal(t, "text/csv", obj.ContentType)

	u, _, err := s.DownloadURL(ctx, "org/staff.csv", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "http://reports.local/files/org/staff.csv", u)

	assert.Error(t, s.Put(ctx, "", nil, "text/csv"))
}
