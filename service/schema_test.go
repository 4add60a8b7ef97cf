package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldNames(t *testing.T) {
	assert.Equal(t, []string{
		"onlyScoringPlays",
		"gameAdvisories",
		"inPlayDelay",
		"noPlayDelay",
		"showScoreOnOut3",
	}, FieldNames(EntityChannel))

	assert.Equal(t, []string{"teamId"}, FieldNames(EntityServer))

	assert.Nil(t, FieldNames(EntityKind("user")))
}

func TestChannelField_UnknownName(t *testing.T) {
	_, err := channelField("inPlayDealy")
	assert.ErrorIs(t, err, ErrUnknownField)

	// Server fields are not reachable through the channel schema
	_, err = channelField("teamId")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestConfigField_ParseBool(t *testing.T) {
	f, err := channelField("gameAdvisories")
	require.NoError(t, err)

	v, err := f.Parse("true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = f.Parse("false")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	_, err = f.Parse("yes")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestConfigField_ParseInt(t *testing.T) {
	f, err := channelField("inPlayDelay")
	require.NoError(t, err)

	v, err := f.Parse("20")
	require.NoError(t, err)
	assert.Equal(t, int64(20), v)

	_, err = f.Parse("twenty")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestConfigField_ValidateRange(t *testing.T) {
	f, err := channelField("inPlayDelay")
	require.NoError(t, err)

	assert.NoError(t, f.Validate(int64(0)))
	assert.NoError(t, f.Validate(int64(300)))
	assert.ErrorIs(t, f.Validate(int64(-5)), ErrInvalidValue)
	assert.ErrorIs(t, f.Validate(int64(301)), ErrInvalidValue)
}

func TestConfigField_Defaults(t *testing.T) {
	delay, err := channelField("inPlayDelay")
	require.NoError(t, err)
	assert.Equal(t, int64(13), delay.Default)

	advisories, err := channelField("gameAdvisories")
	require.NoError(t, err)
	assert.Equal(t, true, advisories.Default)

	team, err := serverField("teamId")
	require.NoError(t, err)
	assert.Equal(t, int64(0), team.Default)
}
