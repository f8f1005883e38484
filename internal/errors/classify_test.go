package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ClassifyTestSuite struct {
	suite.Suite
}

func TestClassifySuite(t *testing.T) {
	suite.Run(t, new(ClassifyTestSuite))
}

func (s *ClassifyTestSuite) TestClassify_StructuredValidationDetail() {
	body := []byte(`{"detail":[{"loc":["body","amount"],"msg":"must be positive","type":"value_error"}]}`)

	apiErr := Classify(http.StatusUnprocessableEntity, body)

	s.Equal(ValidationField, apiErr.Code)
	s.Equal("amount: must be positive", apiErr.Message)
	s.Equal(http.StatusUnprocessableEntity, apiErr.Status)
}

func (s *ClassifyTestSuite) TestClassify_ValidationDetailUsesLastLocElement() {
	body := []byte(`{"detail":[{"loc":["body","nested","note"],"msg":"too long"}]}`)

	apiErr := Classify(http.StatusUnprocessableEntity, body)

	s.Equal("note: too long", apiErr.Message)
}

func (s *ClassifyTestSuite) TestClassify_ValidationDetailWithEmptyLoc() {
	body := []byte(`{"detail":[{"loc":[],"msg":"invalid payload"}]}`)

	apiErr := Classify(http.StatusUnprocessableEntity, body)

	s.Equal("field: invalid payload", apiErr.Message)
}

func (s *ClassifyTestSuite) TestClassify_ValidationDetailWithNumericLoc() {
	body := []byte(`{"detail":[{"loc":["body",0],"msg":"bad entry"}]}`)

	apiErr := Classify(http.StatusUnprocessableEntity, body)

	s.Equal("field: bad entry", apiErr.Message)
}

func (s *ClassifyTestSuite) TestClassify_UnparsableValidationBodyFallsToGeneric() {
	// A 422 whose detail is not a field array gets the generic
	// validation message even when a string detail is present.
	testCases := []struct {
		name string
		body []byte
	}{
		{"string detail on 422", []byte(`{"detail":"something went wrong"}`)},
		{"empty detail array", []byte(`{"detail":[]}`)},
		{"missing detail", []byte(`{}`)},
		{"malformed body", []byte(`{not json`)},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			apiErr := Classify(http.StatusUnprocessableEntity, tc.body)

			s.Equal(ValidationGeneral, apiErr.Code)
			s.Equal("Please check your input fields.", apiErr.Message)
		})
	}
}

func (s *ClassifyTestSuite) TestClassify_StringDetailWinsOverStatusMessage() {
	body := []byte(`{"detail":"Incorrect email or password"}`)

	apiErr := Classify(http.StatusUnauthorized, body)

	s.Equal(AuthInvalidCredentials, apiErr.Code)
	s.Equal("Incorrect email or password", apiErr.Message)
}

func (s *ClassifyTestSuite) TestClassify_MessageFieldWhenNoDetail() {
	body := []byte(`{"message":"upstream failed"}`)

	apiErr := Classify(http.StatusInternalServerError, body)

	s.Equal(ServerInternal, apiErr.Code)
	s.Equal("upstream failed", apiErr.Message)
}

func (s *ClassifyTestSuite) TestClassify_FixedMessagesForKnownStatuses() {
	testCases := []struct {
		status      int
		wantCode    ErrorCode
		wantMessage string
	}{
		{http.StatusUnauthorized, AuthInvalidCredentials, "Invalid email or password."},
		{http.StatusForbidden, PermissionDenied, "You do not have permission to perform this action."},
		{http.StatusNotFound, ResourceNotFound, "The requested resource was not found."},
		{http.StatusInternalServerError, ServerInternal, "Server error. Please try again later."},
	}

	for _, tc := range testCases {
		s.Run(fmt.Sprintf("status %d", tc.status), func() {
			apiErr := Classify(tc.status, nil)

			s.Equal(tc.wantCode, apiErr.Code)
			s.Equal(tc.wantMessage, apiErr.Message)
		})
	}
}

func (s *ClassifyTestSuite) TestClassify_UnknownStatusFallsBack() {
	apiErr := Classify(http.StatusTeapot, nil)

	s.Equal(UnknownError, apiErr.Code)
	s.Equal("An unexpected error occurred.", apiErr.Message)
}

func (s *ClassifyTestSuite) TestClassifyTransport() {
	apiErr := ClassifyTransport(fmt.Errorf("dial tcp: connection refused"))

	s.Equal(NetworkUnreachable, apiErr.Code)
	s.Equal("Network error. Please check your connection.", apiErr.Message)
}

func TestTaxonomyPredicates(t *testing.T) {
	authErr := Classify(http.StatusUnauthorized, nil)
	validationErr := Classify(http.StatusUnprocessableEntity, nil)
	notFoundErr := Classify(http.StatusNotFound, nil)
	networkErr := ClassifyTransport(fmt.Errorf("timeout"))

	assert.True(t, IsAuthError(authErr))
	assert.False(t, IsAuthError(validationErr))

	assert.True(t, IsValidationError(validationErr))
	assert.False(t, IsValidationError(authErr))

	assert.True(t, IsNotFoundError(notFoundErr))
	assert.True(t, IsNetworkError(networkErr))
	assert.False(t, IsNetworkError(fmt.Errorf("plain error")))
}

func TestSessionExpiredIsAuthError(t *testing.T) {
	err := &APIError{Code: AuthSessionExpired, Message: GetErrorMessage(AuthSessionExpired)}

	require.True(t, IsAuthError(err))
}
