package audit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"taskguard/internal/auth"
	"taskguard/internal/models"
)

// recorderDB opens gorm on the dummy dialector and swaps the create
// callback for one that captures the row (or injects a failure), so
// the recorder can be exercised without a database.
func recorderDB(t *testing.T, insertErr error) (*gorm.DB, *[]models.AuditLog) {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	var rows []models.AuditLog
	err = db.Callback().Create().Replace("gorm:create", func(tx *gorm.DB) {
		if insertErr != nil {
			tx.AddError(insertErr)
			return
		}
		if m, ok := tx.Statement.Dest.(*models.AuditLog); ok {
			rows = append(rows, *m)
		}
	})
	require.NoError(t, err)

	return db, &rows
}

func recorderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	grp := r.Group("/", Recorder(db, zap.NewNop()))
	grp.GET("/denied", func(c *gin.Context) {
		auth.SetPrincipal(c, &auth.Principal{ID: "u1"})
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	})
	grp.GET("/anonymous-denied", func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
	})
	grp.GET("/ok", func(c *gin.Context) {
		auth.SetPrincipal(c, &auth.Principal{ID: "u1"})
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r
}

func TestRecorderPersistsDenyWithActorAndIP(t *testing.T) {
	db, rows := recorderDB(t, nil)
	r := recorderRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/denied", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.Len(t, *rows, 1)
	row := (*rows)[0]
	assert.Equal(t, "deny", row.Decision)
	assert.Equal(t, "u1", row.ActorID)
	assert.Equal(t, "192.0.2.1", row.IP)
	assert.Equal(t, "GET /denied", row.Action)
	assert.Contains(t, string(row.Details), "403")
}

func TestRecorderDenyWithoutPrincipal(t *testing.T) {
	db, rows := recorderDB(t, nil)
	r := recorderRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/anonymous-denied", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	require.Len(t, *rows, 1)
	row := (*rows)[0]
	assert.Equal(t, "deny", row.Decision)
	assert.Empty(t, row.ActorID, "no principal existed when auth failed")
	assert.Equal(t, "192.0.2.1", row.IP)
}

func TestRecorderPersistsAllow(t *testing.T) {
	db, rows := recorderDB(t, nil)
	r := recorderRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, *rows, 1)
	assert.Equal(t, "allow", (*rows)[0].Decision)
	assert.Equal(t, "u1", (*rows)[0].ActorID)
}

func TestRecorderInsertFailureDoesNotFailRequest(t *testing.T) {
	db, rows := recorderDB(t, errors.New("insert failed"))
	r := recorderRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code, "audit writes are best-effort")
	assert.Empty(t, *rows)
}
