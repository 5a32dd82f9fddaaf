package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBooking(t *testing.T, slot string) (string, string) {
	t.Helper()

	staffID := createTestStaff(t)
	categoryID, serviceName := createTestCategory(t)
	date := nextDate(time.Friday)

	status, resp := makeRawRequest("POST", "/bookings",
		bookingPayload(staffID, categoryID, serviceName, date, slot), "")
	require.Equal(t, http.StatusCreated, status, "booking failed: %s", resp.Message)

	id := resp.GetString("id")
	require.NotEmpty(t, id)
	return id, staffID
}

func TestAppointmentTransitions(t *testing.T) {
	id, _ := createTestBooking(t, "09:15")

	// Auto-confirm is on by default, so confirming again is invalid.
	status, _ := makeRawRequest("POST", fmt.Sprintf("/appointments/%s/confirm", id), nil, authToken)
	assert.Equal(t, http.StatusConflict, status)

	status, resp := makeRawRequest("POST", fmt.Sprintf("/appointments/%s/complete", id), nil, authToken)
	require.Equal(t, http.StatusOK, status, "complete failed: %s", resp.Message)
	assert.Equal(t, "completed", resp.Data["status"])

	// Completed is terminal.
	status, _ = makeRawRequest("POST", fmt.Sprintf("/appointments/%s/cancel", id), nil, authToken)
	assert.Equal(t, http.StatusConflict, status)
}

func TestAppointmentDeleteRequiresCancelled(t *testing.T) {
	id, _ := createTestBooking(t, "09:30")

	status, _ := makeRawRequest("DELETE", fmt.Sprintf("/appointments/%s", id), nil, authToken)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = makeRawRequest("POST", fmt.Sprintf("/appointments/%s/cancel", id), nil, authToken)
	require.Equal(t, http.StatusOK, status)

	status, _ = makeRawRequest("DELETE", fmt.Sprintf("/appointments/%s", id), nil, authToken)
	assert.Equal(t, http.StatusOK, status)

	status, _ = makeRawRequest("GET", fmt.Sprintf("/appointments/%s", id), nil, authToken)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAppointmentListFilters(t *testing.T) {
	_, staffID := createTestBooking(t, "09:45")

	status, _ := makeRawRequest("GET", fmt.Sprintf("/appointments?staff_id=%s", staffID), nil, authToken)
	assert.Equal(t, http.StatusOK, status)

	status, _ = makeRawRequest("GET", "/appointments?status=nonsense", nil, authToken)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAppointmentEndpointsRequireAuth(t *testing.T) {
	status, _ := makeRawRequest("GET", "/appointments", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = makeRawRequest("GET", "/appointments", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)
}
