package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JamesPrial/obsctl/internal/vault"
)

func Test_priorityValue_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    vault.Priority
		wantErr bool
	}{
		{in: "low", want: vault.PriorityLow},
		{in: "Medium", want: vault.PriorityMedium},
		{in: " HIGH ", want: vault.PriorityHigh},
		{in: "urgent", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		var v priorityValue
		err := v.Set(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, v.p)
		assert.Equal(t, tt.want.String(), v.String())
	}
}

func Test_statusValue_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    vault.Filter
		wantErr bool
	}{
		{in: "open", want: vault.FilterOpen},
		{in: "DONE", want: vault.FilterDone},
		{in: "all", want: vault.FilterAll},
		{in: "pending", wantErr: true},
	}
	for _, tt := range tests {
		var v statusValue
		err := v.Set(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, v.f)
	}
}

func Test_outputValue_Set(t *testing.T) {
	t.Parallel()

	v := outputText
	require.NoError(t, v.Set("JSON"))
	assert.Equal(t, outputJSON, v)
	require.NoError(t, v.Set("yaml"))
	assert.Equal(t, outputYAML, v)
	assert.Error(t, v.Set("csv"))
	assert.Equal(t, outputYAML, v, "failed Set keeps the previous value")
}
