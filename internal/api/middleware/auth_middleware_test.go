package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/1804coins/storefront-api/internal/api/middleware"
	"github.com/1804coins/storefront-api/internal/models"
	"github.com/1804coins/storefront-api/internal/testutils"
	"github.com/1804coins/storefront-api/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-signing-key")

func createTestToken(t *testing.T, key []byte, expiresAt time.Time) string {
	t.Helper()

	claims := &models.Claims{
		UserID:   uuid.New(),
		Username: "collector",
		Email:    "collector@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err, "Failed to sign test token")

	return signed
}

func TestAuthenticate(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testSigningKey)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := middleware.ClaimsFromContext(r.Context())
		assert.True(t, ok, "Claims should be present after authentication")
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Success - Valid Token",
			authHeader:     "Bearer " + createTestToken(t, testSigningKey, time.Now().Add(time.Hour)),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Failure - Missing Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Authorization header is required",
		},
		{
			name:           "Failure - Wrong Scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid authorization format",
		},
		{
			name:           "Failure - Malformed Token",
			authHeader:     "Bearer not.a.token",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid or expired token",
		},
		{
			name:           "Failure - Wrong Signing Key",
			authHeader:     "Bearer " + createTestToken(t, []byte("some-other-key"), time.Now().Add(time.Hour)),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid or expired token",
		},
		{
			name:           "Failure - Expired Token",
			authHeader:     "Bearer " + createTestToken(t, testSigningKey, time.Now().Add(-time.Hour)),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/cart", nil, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			recorder := httptest.NewRecorder()

			// Act
			authMiddleware.Authenticate(nextHandler)(recorder, req)

			// Assert
			assert.Equal(t, tt.expectedStatus, recorder.Code)

			if tt.expectedError != "" {
				var resp *response.APIResponse
				err := json.Unmarshal(recorder.Body.Bytes(), &resp)
				require.NoError(t, err)
				assert.False(t, resp.Success)
				assert.Contains(t, resp.Error.Message, tt.expectedError)
			}
		})
	}
}
