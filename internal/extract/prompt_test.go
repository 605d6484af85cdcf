package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)

func TestBuildInstructionsInterpolatesDateAndTimezone(t *testing.T) {
	instr := BuildInstructions(testToday, "Asia/Kolkata")

	assert.Contains(t, instr, "Today's date: 2025-10-07")
	assert.Contains(t, instr, "Asia/Kolkata")
	assert.Contains(t, instr, "needs_clarification")
	assert.Contains(t, instr, "YYYY-MM-DD")
	assert.Contains(t, instr, "HH:MM")
}

func TestComposePayloadTextOnly(t *testing.T) {
	in, err := NewRawInput("eye checkup tomorrow at 9", nil, "")
	require.NoError(t, err)

	p := ComposePayload(in, testToday, "Asia/Kolkata")
	assert.Equal(t, "2025-10-07", p.CurrentDate)
	assert.Equal(t, "User's request: 'eye checkup tomorrow at 9'", p.Text)
	assert.Nil(t, p.Image)
}

func TestComposePayloadCarriesBothTextAndImage(t *testing.T) {
	in, err := NewRawInput("note on the photo is right", []byte("img"), "image/jpeg")
	require.NoError(t, err)

	p := ComposePayload(in, testToday, "Asia/Kolkata")
	assert.NotEmpty(t, p.Text)
	require.NotNil(t, p.Image)
	assert.Equal(t, "image/jpeg", p.Image.MediaType)
	assert.Equal(t, in.Image.Data, p.Image.Data)
}

func TestComposePayloadIsDeterministic(t *testing.T) {
	in, _ := NewRawInput("dermatology on the 3rd", nil, "")
	a := ComposePayload(in, testToday, "Asia/Kolkata")
	b := ComposePayload(in, testToday, "Asia/Kolkata")
	assert.Equal(t, a, b)
}
