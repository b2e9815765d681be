package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidComplaintTransition(t *testing.T) {
	cases := []struct {
		from, to ComplaintStatus
		ok       bool
	}{
		{ComplaintStatusPending, ComplaintStatusInProgress, true},
		{ComplaintStatusPending, ComplaintStatusResolved, true},
		{ComplaintStatusInProgress, ComplaintStatusResolved, true},
		{ComplaintStatusResolved, ComplaintStatusInProgress, true},
		{ComplaintStatusInProgress, ComplaintStatusPending, false},
		{ComplaintStatusResolved, ComplaintStatusPending, false},
		{ComplaintStatusResolved, ComplaintStatusResolved, false},
		{ComplaintStatusPending, ComplaintStatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, ValidComplaintTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestValidTaskTransition(t *testing.T) {
	cases := []struct {
		from, to TaskStatus
		ok       bool
	}{
		{TaskStatusScheduled, TaskStatusInProgress, true},
		{TaskStatusScheduled, TaskStatusCompleted, true},
		{TaskStatusScheduled, TaskStatusCancelled, true},
		{TaskStatusInProgress, TaskStatusCompleted, true},
		{TaskStatusInProgress, TaskStatusCancelled, true},
		{TaskStatusCompleted, TaskStatusInProgress, false},
		{TaskStatusCancelled, TaskStatusScheduled, false},
		{TaskStatusInProgress, TaskStatusScheduled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, ValidTaskTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTaskOverdue(t *testing.T) {
	now := time.Now()

	open := MaintenanceTask{Status: TaskStatusScheduled, DueDate: now.Add(-time.Hour)}
	assert.True(t, open.Overdue(now))

	future := MaintenanceTask{Status: TaskStatusInProgress, DueDate: now.Add(time.Hour)}
	assert.False(t, future.Overdue(now))

	done := MaintenanceTask{Status: TaskStatusCompleted, DueDate: now.Add(-time.Hour)}
	assert.False(t, done.Overdue(now))

	cancelled := MaintenanceTask{Status: TaskStatusCancelled, DueDate: now.Add(-time.Hour)}
	assert.False(t, cancelled.Overdue(now))
}

func TestPaginationNormalize(t *testing.T) {
	q := PaginationQuery{Page: 0, PageSize: 0}
	q.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PageSize)
	assert.Equal(t, 0, q.Offset())

	q = PaginationQuery{Page: -5, PageSize: 1000}
	q.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PageSize)

	q = PaginationQuery{Page: 3, PageSize: 25}
	q.Normalize()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.PageSize)
	assert.Equal(t, 50, q.Offset())
}

func TestValidSensorType(t *testing.T) {
	for _, valid := range []SensorType{SensorFlow, SensorPressure, SensorTemperature, SensorPH, SensorTurbidity, SensorQuality} {
		assert.True(t, ValidSensorType(valid), string(valid))
	}
	assert.False(t, ValidSensorType("humidity"))
	assert.False(t, ValidSensorType(""))
}
