package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{"plain number", `2`, 2, true},
		{"quoted number", `"2"`, 2, true},
		{"quoted with spaces", `" 42 "`, 42, true},
		{"negative", `-5`, -5, true},
		{"word", `"often"`, 0, false},
		{"float", `2.5`, 0, false},
		{"empty string", `""`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fi FlexInt
			err := json.Unmarshal([]byte(tt.input), &fi)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.want, fi.Int())
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFlexInt_MarshalsAsNumber(t *testing.T) {
	raw, err := json.Marshal(FlexInt(7))
	require.NoError(t, err)
	assert.Equal(t, `7`, string(raw))
}

func TestFlexInt_IntPtr(t *testing.T) {
	var nilInt *FlexInt
	assert.Nil(t, nilInt.IntPtr())

	fi := FlexInt(3)
	got := (&fi).IntPtr()
	require.NotNil(t, got)
	assert.Equal(t, 3, *got)
}

func TestFlexTime_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"rfc3339", `"2024-03-01T10:00:00Z"`, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), true},
		{"iso without zone", `"2024-03-01T10:00:00"`, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), true},
		{"space separated seconds", `"2024-03-01 10:00:00"`, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), true},
		{"space separated minutes", `"2024-03-01 10:00"`, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), true},
		{"garbage", `"yesterday"`, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ft FlexTime
			err := json.Unmarshal([]byte(tt.input), &ft)
			if tt.ok {
				require.NoError(t, err)
				assert.True(t, ft.ToTime().Equal(tt.want), "got %v", ft.ToTime())
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFlexTime_TimePtr(t *testing.T) {
	var nilTime *FlexTime
	assert.Nil(t, nilTime.TimePtr())

	ft := FlexTime{Time: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	got := (&ft).TimePtr()
	require.NotNil(t, got)
	assert.True(t, got.Equal(ft.Time))
}
