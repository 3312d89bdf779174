package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picogrid/cosim-input/pkg/editor"
	"github.com/picogrid/cosim-input/pkg/models"
	"github.com/picogrid/cosim-input/pkg/store"
)

func TestParseFieldValue(t *testing.T) {
	intField := models.Field{Name: "number_of_panels", Type: models.FieldInteger}
	floatField := models.Field{Name: "latitude", Type: models.FieldFloat}
	strField := models.Field{Name: "id", Type: models.FieldString}
	timeField := models.Field{Name: "arrival_time", Type: models.FieldTime}

	tests := []struct {
		name    string
		field   models.Field
		input   string
		want    interface{}
		wantErr bool
	}{
		{"integer", intField, " 12 ", 12, false},
		{"integer rejects fraction", intField, "1.5", nil, true},
		{"float", floatField, "-33.9", -33.9, false},
		{"float rejects text", floatField, "north", nil, true},
		{"string kept", strField, "ev-7", "ev-7", false},
		{"time", timeField, "08:15", models.TimeOfDay{Hour: 8, Minute: 15}, false},
		{"time rejects garbage", timeField, "25:99", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFieldValue(tt.field, tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFieldValue(t *testing.T) {
	assert.Equal(t, "0.25", FormatFieldValue(0.25))
	assert.Equal(t, "3", FormatFieldValue(3))
	assert.Equal(t, "06:05", FormatFieldValue(models.TimeOfDay{Hour: 6, Minute: 5}))
	assert.Equal(t, "abc", FormatFieldValue("abc"))
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Hub height (m):", FieldLabel(models.Field{Description: "Hub height", Unit: "m"}))
	assert.Equal(t, "EV ID:", FieldLabel(models.Field{Description: "EV ID"}))
}

func TestPromptFieldSkipped(t *testing.T) {
	t.Setenv(SkipPromptsEnv, "true")
	rec := models.DefaultTurbine()
	f, ok := models.LookupField(rec.Fields(), "hub_height")
	require.True(t, ok)

	v, err := PromptField(rec, f)
	require.NoError(t, err)
	assert.Equal(t, rec.HubHeight, v)

	t.Setenv("COSIM_HUB_HEIGHT", "95")
	v, err = PromptField(rec, f)
	require.NoError(t, err)
	assert.Equal(t, 95.0, v)
}

func TestEditRecordsSkipped(t *testing.T) {
	t.Setenv(SkipPromptsEnv, "true")
	t.Setenv("COSIM_HUB_HEIGHT", "110")

	fs := store.New()
	store.PutRecords(fs, store.Turbines, []models.TurbineSpec{models.DefaultTurbine(), models.DefaultTurbine()})

	ed := editor.Open(fs, store.Turbines)
	committed, err := EditRecords(ed)
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Equal(t, editor.Committed, ed.State())

	for _, tb := range store.Records(fs, store.Turbines) {
		assert.Equal(t, 110.0, tb.HubHeight)
	}
}

func TestEditRecordsRejectedOverrideDiscards(t *testing.T) {
	t.Setenv(SkipPromptsEnv, "true")
	t.Setenv("COSIM_LATITUDE", "120")

	fs := store.New()
	ed := editor.Open(fs, store.SolarPanels)
	committed, err := EditRecords(ed)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.False(t, committed)
	assert.Equal(t, editor.Discarded, ed.State())
	assert.False(t, fs.Has(store.SolarPanels.CountKey))
}

func TestEditSettingsSkipped(t *testing.T) {
	t.Setenv(SkipPromptsEnv, "true")
	t.Setenv("COSIM_CONFIG_NAME", "ci")
	t.Setenv("COSIM_PRICE_HIGH", "0.4")

	fs := store.New()
	committed, err := EditSettings(editor.OpenSettings(fs))
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Equal(t, "ci", store.ReadSettings(fs).ConfigName)
	assert.Equal(t, 0.4, store.ReadSettings(fs).PriceHigh)

	t.Setenv("COSIM_PRICE_LOW", "0.9")
	ed := editor.OpenSettings(fs)
	committed, err = EditSettings(ed)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.False(t, committed)
	assert.Equal(t, editor.Discarded, ed.State())
	assert.Equal(t, 0.0, store.ReadSettings(fs).PriceLow)
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount("ev_count", " 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = ParseCount("ev_count", strconv.Itoa(editor.MaxCount))
	require.NoError(t, err)
	assert.Equal(t, editor.MaxCount, n)

	for _, in := range []string{"0", "-4", strconv.Itoa(editor.MaxCount + 1), "lots"} {
		_, err := ParseCount("ev_count", in)
		assert.ErrorIs(t, err, models.ErrValidation, in)
	}
}
