package display

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/nfrund/safeonboard/cmd/onboard-cli/internal/profile"
	"github.com/nfrund/safeonboard/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsTable(t *testing.T) {
	var buf bytes.Buffer
	StepsTable(&buf, wizard.DefaultCatalog())

	out := buf.String()
	assert.Contains(t, out, "STEP")
	assert.Contains(t, out, "1. Personal Details")
	assert.Contains(t, out, "profilePicture")
	assert.Contains(t, out, "Attachment")
	assert.Contains(t, out, "5. Credentials")
}

func TestStepsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, StepsJSON(&buf, wizard.DefaultCatalog()))

	var got struct {
		Steps []StepDisplay `json:"steps"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 5, got.Count)
	assert.Equal(t, "Services", got.Steps[3].Label)
	assert.Equal(t, "Set", got.Steps[3].Fields[0].Kind)
	assert.True(t, got.Steps[3].Fields[0].Required)
	assert.False(t, got.Steps[0].Fields[0].Required, "profile picture is optional")
}

func TestResults(t *testing.T) {
	var buf bytes.Buffer
	Results(&buf, []profile.Result{
		{Step: 1, Label: "Personal Details"},
		{Step: 3, Label: "Location", Errors: wizard.ValidationErrors{
			wizard.FieldTown:    "Town is required",
			wizard.FieldCountry: "Country is required",
		}},
	})

	assert.Equal(t,
		"✅ Step 1: Personal Details\n"+
			"❌ Step 3: Location\n"+
			"   country: Country is required\n"+
			"   town: Town is required\n",
		buf.String())
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "...", truncateString("abcdef", 3))
}
