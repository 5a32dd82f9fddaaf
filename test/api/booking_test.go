package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStaff(t *testing.T) string {
	t.Helper()

	resp := makeRequest("POST", "/staff", map[string]interface{}{
		"name":      uniqueName("Stylist"),
		"specialty": "Hair",
	}, authToken)
	require.True(t, resp.IsSuccess(), "failed to create staff: %s", resp.Message)

	id := resp.GetString("id")
	require.NotEmpty(t, id)
	return id
}

func createTestCategory(t *testing.T) (string, string) {
	t.Helper()

	serviceName := uniqueName("Cut")
	resp := makeRequest("POST", "/categories", map[string]interface{}{
		"name": uniqueName("Hair"),
		"icon": "scissors",
		"subcategories": []map[string]interface{}{
			{"name": serviceName, "duration_min": 30, "price": 250},
		},
	}, authToken)
	require.True(t, resp.IsSuccess(), "failed to create category: %s", resp.Message)

	id := resp.GetString("id")
	require.NotEmpty(t, id)
	return id, serviceName
}

func getSlots(t *testing.T, staffID, date string) []string {
	t.Helper()

	resp := makeRequest("GET", fmt.Sprintf("/slots?staff_id=%s&date=%s", staffID, date), nil, "")
	require.True(t, resp.IsSuccess(), "failed to fetch slots: %s", resp.Message)

	raw, _ := resp.Data["slots"].([]interface{})
	slots := make([]string, 0, len(raw))
	for _, s := range raw {
		slots = append(slots, s.(string))
	}
	return slots
}

func bookingPayload(staffID, categoryID, serviceName, date, slot string) map[string]interface{} {
	return map[string]interface{}{
		"first_name":   "Ayşe",
		"last_name":    "Yılmaz",
		"phone":        "05551234567",
		"staff_id":     staffID,
		"category_id":  categoryID,
		"service_name": serviceName,
		"date":         date,
		"time":         slot,
	}
}

func TestBookingFlow(t *testing.T) {
	staffID := createTestStaff(t)
	categoryID, serviceName := createTestCategory(t)
	date := nextDate(time.Tuesday)

	slots := getSlots(t, staffID, date)
	require.Len(t, slots, 36)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:45", slots[len(slots)-1])

	status, resp := makeRawRequest("POST", "/bookings",
		bookingPayload(staffID, categoryID, serviceName, date, "10:00"), "")
	require.Equal(t, http.StatusCreated, status, "booking failed: %s", resp.Message)
	assert.Equal(t, "+905551234567", resp.Data["customer_phone"])
	assert.Equal(t, "confirmed", resp.Data["status"])
	assert.Equal(t, "online", resp.Data["source"])
	assert.Equal(t, 250.0, resp.Data["price"])

	// The booked slot disappears from availability.
	slots = getSlots(t, staffID, date)
	assert.Len(t, slots, 35)
	assert.NotContains(t, slots, "10:00")

	// Booking the same slot again is a conflict.
	status, _ = makeRawRequest("POST", "/bookings",
		bookingPayload(staffID, categoryID, serviceName, date, "10:00"), "")
	assert.Equal(t, http.StatusConflict, status)

	// A second staff member is unaffected.
	otherStaff := createTestStaff(t)
	status, _ = makeRawRequest("POST", "/bookings",
		bookingPayload(otherStaff, categoryID, serviceName, date, "10:00"), "")
	assert.Equal(t, http.StatusCreated, status)
}

func TestBookingValidation(t *testing.T) {
	staffID := createTestStaff(t)
	categoryID, serviceName := createTestCategory(t)
	date := nextDate(time.Wednesday)

	t.Run("missing fields", func(t *testing.T) {
		status, _ := makeRawRequest("POST", "/bookings", map[string]interface{}{
			"first_name": "Ayşe",
		}, "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("invalid phone", func(t *testing.T) {
		payload := bookingPayload(staffID, categoryID, serviceName, date, "11:00")
		payload["phone"] = "1234567890"
		status, _ := makeRawRequest("POST", "/bookings", payload, "")
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("unknown staff", func(t *testing.T) {
		payload := bookingPayload("00000000-0000-0000-0000-000000000001", categoryID, serviceName, date, "11:00")
		status, _ := makeRawRequest("POST", "/bookings", payload, "")
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("unknown service", func(t *testing.T) {
		payload := bookingPayload(staffID, categoryID, "No Such Service", date, "11:00")
		status, _ := makeRawRequest("POST", "/bookings", payload, "")
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("past date", func(t *testing.T) {
		payload := bookingPayload(staffID, categoryID, serviceName, "2020-01-06", "11:00")
		status, _ := makeRawRequest("POST", "/bookings", payload, "")
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("off-grid time", func(t *testing.T) {
		payload := bookingPayload(staffID, categoryID, serviceName, date, "10:07")
		status, _ := makeRawRequest("POST", "/bookings", payload, "")
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("sunday is closed", func(t *testing.T) {
		sunday := nextDate(time.Sunday)
		assert.Empty(t, getSlots(t, staffID, sunday))

		payload := bookingPayload(staffID, categoryID, serviceName, sunday, "11:00")
		status, _ := makeRawRequest("POST", "/bookings", payload, "")
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})
}

func TestBookingCreatesCustomer(t *testing.T) {
	staffID := createTestStaff(t)
	categoryID, serviceName := createTestCategory(t)
	date := nextDate(time.Thursday)

	payload := bookingPayload(staffID, categoryID, serviceName, date, "14:00")
	payload["phone"] = "05559876543"
	status, _ := makeRawRequest("POST", "/bookings", payload, "")
	require.Equal(t, http.StatusCreated, status)

	resp := makeRequest("GET", "/customers/by-phone/+905559876543", nil, authToken)
	require.True(t, resp.IsSuccess(), "customer lookup failed: %s", resp.Message)
	assert.Equal(t, "Ayşe Yılmaz", resp.Data["name"])
	assert.Equal(t, 250.0, resp.Data["total_spent"])

	// A repeat booking accumulates on the same record.
	payload["time"] = "15:00"
	status, _ = makeRawRequest("POST", "/bookings", payload, "")
	require.Equal(t, http.StatusCreated, status)

	resp = makeRequest("GET", "/customers/by-phone/+905559876543", nil, authToken)
	require.True(t, resp.IsSuccess())
	assert.Equal(t, 2.0, resp.Data["total_appointments"])
	assert.Equal(t, 500.0, resp.Data["total_spent"])
}
