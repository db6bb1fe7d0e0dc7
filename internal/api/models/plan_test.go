package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruthgorge/expedition/internal/api/models"
)

func strp(s string) *string { return &s }

func TestSetDatesRequest_Parse(t *testing.T) {
	may1 := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input *string
		want  *time.Time
	}{
		{"iso", strp("2025-05-01"), &may1},
		{"long form", strp("May 1, 2025"), &may1},
		{"us slashes", strp("05/01/2025"), &may1},
		{"with time", strp("2025-05-01T18:30:00Z"), &may1},
		{"nil", nil, nil},
		{"blank", strp("  "), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, errs := models.SetDatesRequest{Start: tt.input}.Parse()
			require.Empty(t, errs)
			assert.Nil(t, end)
			if tt.want == nil {
				assert.Nil(t, start)
				return
			}
			require.NotNil(t, start)
			assert.True(t, tt.want.Equal(*start), "got %s", start)
		})
	}
}

func TestSetDatesRequest_ParseInvalid(t *testing.T) {
	_, _, errs := models.SetDatesRequest{Start: strp("someday"), End: strp("later")}.Parse()

	require.Len(t, errs, 2)
	assert.Equal(t, "start", errs[0].Field)
	assert.Equal(t, "invalid_date", errs[0].Code)
	assert.Equal(t, "end", errs[1].Field)
}
