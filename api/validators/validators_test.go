package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
)

type tenderBody struct {
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
	Items  []struct {
		Quantity int `json:"quantity" validate:"gt=0"`
	} `json:"items" validate:"required,min=1,dive"`
}

func postJSON(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	var body tenderBody
	err := DecodeJSONBody(postJSON(`{"amount":"12.50","items":[{"quantity":2}]}`), &body)
	require.NoError(t, err)
	assert.True(t, body.Amount.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, 2, body.Items[0].Quantity)
}

func TestDecodeJSONBodyReportsNestedFieldPaths(t *testing.T) {
	var body tenderBody
	err := DecodeJSONBody(postJSON(`{"amount":-1,"items":[{"quantity":0}]}`), &body)
	require.Error(t, err)

	apiErr := pkgerrors.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, pkgerrors.CodeValidation, apiErr.Code())

	details, ok := apiErr.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be greater than or equal to 0", details["amount"])
	assert.Equal(t, "must be greater than 0", details["items[0].quantity"])
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var body tenderBody
	err := DecodeJSONBody(postJSON(`{"amount":1,"items":[{"quantity":1}],"tip":5}`), &body)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyRequiresItems(t *testing.T) {
	var body tenderBody
	err := DecodeJSONBody(postJSON(`{"amount":1,"items":[]}`), &body)
	require.Error(t, err)

	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be at least 1", details["items"])
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=x&big=900", nil)

	v, err := ParseQueryInt(req, "limit", 50, 1, 200)
	require.NoError(t, err)
	assert.Equal(t, 25, v)

	v, err = ParseQueryInt(req, "missing", 50, 1, 200)
	require.NoError(t, err)
	assert.Equal(t, 50, v)

	_, err = ParseQueryInt(req, "bad", 50, 1, 200)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = ParseQueryInt(req, "big", 50, 1, 200)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseQueryTime(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=2024-03-01&to=2024-03-01&at=2024-03-01T10:30:00%2B08:00&bad=March", nil)

	from, err := ParseQueryTime(req, "from", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), from)

	to, err := ParseQueryTime(req, "to", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), to)

	at, err := ParseQueryTime(req, "at", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 2, 30, 0, 0, time.UTC), at)

	missing, err := ParseQueryTime(req, "missing", false)
	require.NoError(t, err)
	assert.True(t, missing.IsZero())

	_, err = ParseQueryTime(req, "bad", false)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Club", SanitizeString("  Club  ", 0))
	assert.Equal(t, "Jamó", SanitizeString("Jamón serrano", 4))
	assert.Equal(t, "ab", SanitizeString("ab c", 3))
}
