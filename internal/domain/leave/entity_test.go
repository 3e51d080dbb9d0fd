package leave

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapLeaveApplication_UpstreamShape(t *testing.T) {
	data := []byte(`{
		"_id": 91,
		"employee": {"_id": "E7", "full_name": "Ravi Kumar", "email": "ravi@example.com"},
		"leave_type": {"leave_type_name": "Annual"},
		"from_date": "2024-04-01T00:00:00Z",
		"to_date": "2024-04-03",
		"remarks": "Family trip",
		"leave_status": "Submitted",
		"approver": {"name": "Meera"},
		"applied_on": "2024-03-20T08:00:00Z"
	}`)

	app, err := MapLeaveApplication(data)
	require.NoError(t, err)
	assert.Equal(t, "91", app.ID)
	assert.Equal(t, "E7", app.EmployeeID)
	assert.Equal(t, "Ravi Kumar", app.EmployeeName)
	assert.Equal(t, "Annual", app.LeaveType)
	assert.Equal(t, "2024-04-01", app.StartDate)
	assert.Equal(t, "2024-04-03", app.EndDate)
	assert.Equal(t, 3.0, app.Days)
	assert.Equal(t, StatusPending, app.Status)
	assert.Equal(t, "Meera", app.ReportingManager)
	require.NotNil(t, app.AppliedAt)
}

func TestMapLeaveApplication_Idempotent(t *testing.T) {
	data := []byte(`{"id":"L1","employee_id":"E1","employee_name":"Asha","leave_type":"Sick",
		"start_date":"2024-01-10","end_date":"2024-01-10","days":0.5,"status":"approved"}`)

	first, err := MapLeaveApplication(data)
	require.NoError(t, err)

	encoded, err := json.Marshal(first)
	require.NoError(t, err)
	second, err := MapLeaveApplication(encoded)
	require.NoError(t, err)

	again, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(encoded), string(again))
	assert.Equal(t, first, second)
}

func TestMapLeaveApplication_Rejects(t *testing.T) {
	_, err := MapLeaveApplication([]byte(`{"id":"L1","employee_id":"E1","leave_type":"Sick","start_date":"2024-01-10","end_date":"2024-01-02"}`))
	assert.Error(t, err)

	_, err = MapLeaveApplication([]byte(`{"id":"L1","employee_id":"E1","leave_type":"Sick","start_date":"2024-01-10","end_date":"2024-01-12","mood":"happy"}`))
	assert.Error(t, err)
}

func TestMapLeaveBalance_DerivesRemaining(t *testing.T) {
	b, err := MapLeaveBalance([]byte(`{"leave_type":{"name":"Annual"},"total_days":"18","used_days":4.5}`))
	require.NoError(t, err)
	assert.Equal(t, LeaveBalance{LeaveType: "Annual", Allocated: 18, Used: 4.5, Remaining: 13.5}, b)

	encoded, _ := json.Marshal(b)
	again, err := MapLeaveBalance(encoded)
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestMapLeaveType_Idempotent(t *testing.T) {
	first, err := MapLeaveType([]byte(`{"_id":"T1","leave_type_name":"Casual","max_days":12,"is_paid":"yes","status":"Active"}`))
	require.NoError(t, err)
	assert.True(t, first.Paid)

	encoded, _ := json.Marshal(first)
	second, err := MapLeaveType(encoded)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInclusiveDays(t *testing.T) {
	assert.Equal(t, 1, InclusiveDays("2024-02-28", "2024-02-28"))
	assert.Equal(t, 3, InclusiveDays("2024-02-28", "2024-03-01"))
	assert.Equal(t, 0, InclusiveDays("2024-03-01", "2024-02-28"))
	assert.Equal(t, 0, InclusiveDays("bad", "2024-02-28"))
}

func TestApplyLeaveRequest_Validate(t *testing.T) {
	req := ApplyLeaveRequest{LeaveType: "Annual", StartDate: "2024-05-10", EndDate: "2024-05-08", Reason: "Trip"}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end_date")

	req = ApplyLeaveRequest{LeaveType: "Annual", StartDate: "2024-05-10", EndDate: "2024-05-11", Reason: "Trip", HalfDay: true}
	assert.Error(t, req.Validate())

	req.EndDate = "2024-05-10"
	assert.NoError(t, req.Validate())
}

func TestReviewRequest_Validate(t *testing.T) {
	r := ReviewRequest{ID: "L1"}
	assert.NoError(t, r.Validate(false))
	assert.Error(t, r.Validate(true))

	r.Comment = "Overlaps release"
	assert.NoError(t, r.Validate(true))
}
