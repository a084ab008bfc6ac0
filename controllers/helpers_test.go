package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Azeezfasasi/lasu-mba-cloth/config"
	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/middleware"
	"github.com/Azeezfasasi/lasu-mba-cloth/models"
	"github.com/Azeezfasasi/lasu-mba-cloth/services"
	"github.com/Azeezfasasi/lasu-mba-cloth/stores"
	"github.com/Azeezfasasi/lasu-mba-cloth/tests/testutil"
	"github.com/Azeezfasasi/lasu-mba-cloth/tests/testutil/authtest"
)

const (
	staffSubject = "auth0|staff-1"
	adminInbox   = "admin@lasumba.test"
)

// testEnv is a router wired to real services over an in-memory database.
// Admin routes authenticate as the linked staff account.
type testEnv struct {
	db       *gorm.DB
	mail     *services.MockMailService
	images   *services.MockImageService
	notifier *services.Notifier
	staff    *models.User
	router   *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	mail := services.NewMockMailService()
	images := services.NewMockImageService()
	notifier := services.NewNotifier(logger.Nop(), nil, 100)
	notifier.Start()
	t.Cleanup(func() {
		notifier.Stop(context.Background())
	})

	users := stores.NewUserStore(db)
	notify := services.NewNotificationService(mail, users, notifier, adminInbox, 0, logger.Nop())
	staff := testutil.CreateLinkedUser(t, db, staffSubject, "staff@lasumba.test", models.RoleStaffMember)

	cloth := NewClothController(services.NewClothService(stores.NewClothStore(db), images, logger.Nop()))
	quote := NewQuoteController(services.NewQuoteService(stores.NewQuoteStore(db), users, notify, logger.Nop()))
	volunteer := NewVolunteerController(services.NewVolunteerService(stores.NewVolunteerStore(db), users, notify, logger.Nop()))
	upload := NewUploadController(images)
	health := NewHealthController(config.NewDatabase(db))

	router := gin.New()
	api := router.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/database/status", health.DatabaseStatus)
	api.GET("/cloth", cloth.List)
	api.GET("/cloth/featured", cloth.Featured)
	api.POST("/quote", quote.Create)
	api.POST("/volunteer", volunteer.Create)

	admin := api.Group("", authtest.Token(staffSubject, staff.Email), middleware.RequireStaff(users, nil, logger.Nop()))
	admin.POST("/cloth", cloth.Create)
	admin.PUT("/cloth", cloth.Update)
	admin.DELETE("/cloth", cloth.Delete)
	admin.PUT("/cloth/stock", cloth.UpdateStock)
	admin.GET("/quote", quote.List)
	admin.GET("/quote/:id", quote.Get)
	admin.PUT("/quote/:id", quote.Update)
	admin.DELETE("/quote/:id", quote.Delete)
	admin.PUT("/quote/:id/status", quote.ChangeStatus)
	admin.POST("/quote/:id/reply", quote.Reply)
	admin.PUT("/quote/:id/assign", quote.Assign)
	admin.GET("/volunteer", volunteer.List)
	admin.GET("/volunteer/:id", volunteer.Get)
	admin.PUT("/volunteer/:id", volunteer.Update)
	admin.DELETE("/volunteer/:id", volunteer.Delete)
	admin.POST("/upload", upload.Upload)
	admin.POST("/upload/sign", upload.Sign)
	admin.DELETE("/upload", upload.Delete)

	return &testEnv{db: db, mail: mail, images: images, notifier: notifier, staff: staff, router: router}
}


// do sends a request to the test router. body may be nil, a raw string or
// any value to be JSON encoded.
func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var response map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	}
	return w, response
}

func errorCode(response map[string]any) string {
	errBody, _ := response["error"].(map[string]any)
	code, _ := errBody["code"].(string)
	return code
}

// payload returns the object the envelope carries under key
func payload(t *testing.T, response map[string]any, key string) map[string]any {
	t.Helper()
	data, ok := response[key].(map[string]any)
	require.True(t, ok, "response has no %s object: %v", key, response)
	return data
}

func clothBody(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": "Breathable cotton jersey",
		"price":       15000,
		"color":       "Blue",
		"material":    "Cotton",
		"sizes": []map[string]any{
			{"size": "M", "quantity": 4},
			{"size": "L", "quantity": 0},
		},
		"images": []map[string]any{
			{"url": "https://media.test/cloth-designs/a.png", "publicId": "cloth-designs/a.png"},
		},
		"featured": true,
	}
}

func volunteerBody(email string) map[string]any {
	return map[string]any{
		"firstName":            "Ada",
		"lastName":             "Obi",
		"email":                email,
		"phone":                "08030000000",
		"program":              "MBA 2",
		"interestedActivities": []string{"Table Tennis"},
		"experience":           "No Experience",
	}
}
