package payload

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_RejectsNonObjects(t *testing.T) {
	for _, body := range []string{`[]`, `null`, `"x"`, `{`} {
		_, err := Decode("asset", []byte(body))
		require.Error(t, err, body)
		assert.True(t, errors.Is(err, ErrUnexpectedShape), body)
	}
}

func TestObject_AliasesAndUnknownKeys(t *testing.T) {
	o, err := Decode("asset", []byte(`{"asset_name":"Laptop","serial_no":"SN1","color":"red"}`))
	require.NoError(t, err)

	assert.Equal(t, "Laptop", o.RequiredString("name", "asset_name"))
	assert.Equal(t, "SN1", o.String("serialNumber", "serial_number", "serial_no"))

	err = o.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedShape))
	assert.Contains(t, err.Error(), "asset.color: unknown field")
}

func TestObject_AllAliasesConsumed(t *testing.T) {
	o, err := Decode("leave_application", []byte(`{"applied_at":"2024-01-02T10:00:00Z","created_at":"2024-01-01T10:00:00Z"}`))
	require.NoError(t, err)

	ts := o.Time("appliedAt", "applied_at", "created_at")
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), *ts)
	assert.NoError(t, o.Err())
}

func TestObject_RequiredMissing(t *testing.T) {
	o, err := Decode("holiday", []byte(`{"name":null}`))
	require.NoError(t, err)

	o.RequiredString("name")
	o.RequiredDate("date", "holiday_date")
	err = o.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holiday.name: is required")
	assert.Contains(t, err.Error(), "holiday.date: is required")
}

func TestObject_ID(t *testing.T) {
	o, err := Decode("employee", []byte(`{"id":42}`))
	require.NoError(t, err)
	assert.Equal(t, "42", o.ID("id"))
	assert.NoError(t, o.Err())

	o, err = Decode("employee", []byte(`{"id":4.2}`))
	require.NoError(t, err)
	o.ID("id")
	assert.Error(t, o.Err())
}

func TestObject_Numbers(t *testing.T) {
	o, err := Decode("balance", []byte(`{"allocated":"12.5","used":3,"cost":"1500.50","bad":"x"}`))
	require.NoError(t, err)

	assert.Equal(t, 12.5, o.Float("allocated"))
	assert.Equal(t, 3, o.Int("used"))
	assert.Equal(t, "1500.5", o.Decimal("cost").String())
	assert.Nil(t, o.OptionalFloat("remaining"))
	o.Float("bad")
	assert.Error(t, o.Err())
}

func TestParseFlag(t *testing.T) {
	cases := []struct {
		raw    string
		want   bool
		wantOK bool
	}{
		{`true`, true, true},
		{`false`, false, true},
		{`1`, true, true},
		{`0`, false, true},
		{`"true"`, true, true},
		{`"No"`, false, true},
		{`2`, false, false},
		{`"maybe"`, false, false},
		{`{}`, false, false},
	}
	for _, c := range cases {
		got, ok := ParseFlag(json.RawMessage(c.raw))
		assert.Equal(t, c.wantOK, ok, c.raw)
		assert.Equal(t, c.want, got, c.raw)
	}
}

func TestObject_DateAndClock(t *testing.T) {
	o, err := Decode("shift", []byte(`{"date":"2024-03-01T00:00:00Z","start_time":"09:00:00","end":"5:30 PM"}`))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", o.Date("date"))
	assert.Equal(t, "09:00", o.Clock("startTime", "start_time"))
	assert.Equal(t, "17:30", o.Clock("endTime", "end"))
	assert.NoError(t, o.Err())
}

func TestObject_Enum(t *testing.T) {
	o, err := Decode("asset", []byte(`{"status":"Under Maintenance"}`))
	require.NoError(t, err)
	allowed := []string{"available", "under_maintenance"}
	assert.Equal(t, "under_maintenance", o.Enum(allowed, "available", "status"))
	assert.NoError(t, o.Err())

	o, err = Decode("asset", []byte(`{"status":"lost"}`))
	require.NoError(t, err)
	o.Enum(allowed, "available", "status")
	assert.Error(t, o.Err())

	o, err = Decode("asset", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "available", o.Enum(allowed, "available", "status"))
}

func TestUnwrap(t *testing.T) {
	assert.JSONEq(t, `[1,2]`, string(Unwrap([]byte(`{"success":true,"message":"ok","data":[1,2]}`))))
	assert.JSONEq(t, `{"data":1,"total":2}`, string(Unwrap([]byte(`{"data":1,"total":2}`))))
	assert.JSONEq(t, `[1]`, string(Unwrap([]byte(`[1]`))))
}

func TestMapList(t *testing.T) {
	names, err := MapList("holiday", []byte(`[{"name":"a"},{"name":"b"}]`), func(b []byte) (string, error) {
		o, err := Decode("holiday", b)
		if err != nil {
			return "", err
		}
		name := o.RequiredString("name")
		return name, o.Err()
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	_, err = MapList("holiday", []byte(`{"name":"a"}`), func(b []byte) (string, error) { return "", nil })
	assert.True(t, errors.Is(err, ErrUnexpectedShape))

	empty, err := MapList("holiday", []byte(`null`), func(b []byte) (string, error) { return "", nil })
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestObject_EnumWith(t *testing.T) {
	values := map[string]string{"available": "available", "in_use": "assigned", "assigned": "assigned"}
	o, err := Decode("asset", []byte(`{"status":"In Use"}`))
	require.NoError(t, err)
	assert.Equal(t, "assigned", o.EnumWith(values, "available", "status"))
	assert.NoError(t, o.Err())

	o, err = Decode("asset", []byte(`{"status":"stolen"}`))
	require.NoError(t, err)
	o.EnumWith(values, "available", "status")
	assert.Error(t, o.Err())
}

func TestObject_Ref(t *testing.T) {
	keys := []string{"id", "name"}
	cases := []struct{ body, want string }{
		{`{"emp":"E1"}`, "E1"},
		{`{"emp":7}`, "7"},
		{`{"emp":{"id":"E2","x":1}}`, "E2"},
		{`{"emp":{"name":"Annual"}}`, "Annual"},
		{`{"emp":null}`, ""},
	}
	for _, c := range cases {
		o, err := Decode("ref", []byte(c.body))
		require.NoError(t, err)
		assert.Equal(t, c.want, o.Ref(keys, "emp"), c.body)
		assert.NoError(t, o.Err(), c.body)
	}

	o, err := Decode("ref", []byte(`{"emp":[1]}`))
	require.NoError(t, err)
	o.Ref(keys, "emp")
	assert.Error(t, o.Err())
}
