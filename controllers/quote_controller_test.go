package controllers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azeezfasasi/lasu-mba-cloth/models"
	"github.com/Azeezfasasi/lasu-mba-cloth/tests/testutil"
)

func createQuote(t *testing.T, env *testEnv) string {
	t.Helper()
	w, response := env.do(t, http.MethodPost, "/api/quote", map[string]any{
		"name":       "Chidi Okeke",
		"email":      "Chidi@Example.com",
		"service":    "Jersey printing",
		"designType": "Custom",
		"message":    "Forty jerseys for the MBA 2 team",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return payload(t, response, "quote")["id"].(string)
}

func TestCreateQuote(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name           string
		body           any
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "missing email",
			body:           map[string]any{"name": "Chidi"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "invalid email",
			body:           map[string]any{"name": "Chidi", "email": "not-an-email"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "empty body",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := env.do(t, http.MethodPost, "/api/quote", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.expectedCode, errorCode(response))
		})
	}

	t.Run("stores pending quote and notifies", func(t *testing.T) {
		env.mail.Reset()
		id := createQuote(t, env)

		w, response := env.do(t, http.MethodGet, "/api/quote/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := payload(t, response, "quote")
		assert.Equal(t, "chidi@example.com", data["email"])
		assert.Equal(t, "pending", data["status"])
		assert.Empty(t, data["replies"])

		env.notifier.Wait()
		assert.Len(t, env.mail.SentTo("chidi@example.com"), 1)
		assert.Len(t, env.mail.SentTo(adminInbox), 1)
	})
}

func TestQuoteReply(t *testing.T) {
	env := newTestEnv(t)
	id := createQuote(t, env)
	outsider := testutil.CreateUser(t, env.db, "Plain", "User", "plain@lasumba.test", models.RoleUser)

	t.Run("session user is the sender", func(t *testing.T) {
		env.notifier.Wait()
		env.mail.Reset()

		w, response := env.do(t, http.MethodPost, "/api/quote/"+id+"/reply", map[string]any{
			"message":  "We can deliver in two weeks",
			"senderId": outsider.ID.String(),
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Reply sent successfully", response["message"])

		data := payload(t, response, "quote")
		assert.Equal(t, "replied", data["status"])
		replies := data["replies"].([]any)
		require.Len(t, replies, 1)
		reply := replies[0].(map[string]any)
		assert.Equal(t, env.staff.ID.String(), reply["sender"])
		assert.Equal(t, "We can deliver in two weeks", reply["message"])

		env.notifier.Wait()
		assert.Len(t, env.mail.SentTo("chidi@example.com"), 1)
	})

	t.Run("blank message", func(t *testing.T) {
		w, response := env.do(t, http.MethodPost, "/api/quote/"+id+"/reply", map[string]any{"message": "   "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Reply message is required", response["message"])
	})

	t.Run("unknown quote", func(t *testing.T) {
		w, _ := env.do(t, http.MethodPost, "/api/quote/"+uuid.NewString()+"/reply", map[string]any{"message": "hello"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestQuoteStatusAndAssignment(t *testing.T) {
	env := newTestEnv(t)
	id := createQuote(t, env)

	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		expectedStatus int
		checkResponse  func(t *testing.T, response map[string]any)
	}{
		{
			name:           "approve with details",
			method:         http.MethodPut,
			path:           "/api/quote/" + id + "/status",
			body:           map[string]any{"status": "approved", "details": "Deposit received"},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, response map[string]any) {
				data := payload(t, response, "quote")
				assert.Equal(t, "approved", data["status"])
				assert.Equal(t, "Deposit received", data["details"])
			},
		},
		{
			name:           "unknown status",
			method:         http.MethodPut,
			path:           "/api/quote/" + id + "/status",
			body:           map[string]any{"status": "archived"},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, response map[string]any) {
				assert.Equal(t, "Invalid status. Must be one of: pending, replied, approved, rejected, expired", response["message"])
			},
		},
		{
			name:           "assign to staff",
			method:         http.MethodPut,
			path:           "/api/quote/" + id + "/assign",
			body:           map[string]any{"assignedTo": env.staff.ID.String()},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, response map[string]any) {
				data := payload(t, response, "quote")
				assert.Equal(t, env.staff.ID.String(), data["assignedToId"])
				assert.Equal(t, "staff@lasumba.test", data["assignedTo"].(map[string]any)["email"])
			},
		},
		{
			name:           "assign to unknown user",
			method:         http.MethodPut,
			path:           "/api/quote/" + id + "/assign",
			body:           map[string]any{"assignedTo": uuid.NewString()},
			expectedStatus: http.StatusNotFound,
			checkResponse: func(t *testing.T, response map[string]any) {
				assert.Equal(t, "Assigned user not found", response["message"])
			},
		},
		{
			name:           "edit fields",
			method:         http.MethodPut,
			path:           "/api/quote/" + id,
			body:           map[string]any{"company": "LASU MBA Club"},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, response map[string]any) {
				data := payload(t, response, "quote")
				assert.Equal(t, "LASU MBA Club", data["company"])
				assert.Equal(t, "Chidi Okeke", data["name"])
			},
		},
		{
			name:           "malformed id",
			method:         http.MethodGet,
			path:           "/api/quote/not-a-uuid",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := env.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestListAndDeleteQuotes(t *testing.T) {
	env := newTestEnv(t)
	first := createQuote(t, env)
	createQuote(t, env)

	w, response := env.do(t, http.MethodGet, "/api/quote", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["quotes"].([]any), 2)

	w, response = env.do(t, http.MethodDelete, "/api/quote/"+first, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Quote deleted successfully", response["message"])

	w, _ = env.do(t, http.MethodGet, "/api/quote/"+first, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(t, http.MethodDelete, "/api/quote/"+first, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
