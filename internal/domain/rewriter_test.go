package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/metaneutrons/logtidy/internal/model"
)

func TestApplyAssignment_SplicesMappedValues(t *testing.T) {
	source := []byte(`[LoggerMessage(EventId = 5, Level = LogLevel.Debug, Message = "a")]
[LoggerMessage(EventId = 9, Level = LogLevel.Debug, Message = "b")]
`)

	out, changed := ApplyAssignment(source, m.Assignment{5: 2000, 9: 2001})
	require.True(t, changed)

	assert.Contains(t, string(out), "EventId = 2000,")
	assert.Contains(t, string(out), "EventId = 2001,")
	assert.NotContains(t, string(out), "EventId = 5,")
}

func TestApplyAssignment_NoSubstringContamination(t *testing.T) {
	// Remapping 12 must not touch 1234: replacement splices exact digit
	// spans instead of searching the text for "12".
	source := []byte(`[LoggerMessage(EventId = 12, Level = LogLevel.Debug, Message = "a")]
[LoggerMessage(EventId = 1234, Level = LogLevel.Debug, Message = "b")]
`)

	out, changed := ApplyAssignment(source, m.Assignment{12: 2000, 1234: 2001})
	require.True(t, changed)

	assert.Contains(t, string(out), "EventId = 2000,")
	assert.Contains(t, string(out), "EventId = 2001,")
	assert.NotContains(t, string(out), "20004")
	assert.NotContains(t, string(out), "1234")
}

func TestApplyAssignment_IdentityIsNoOp(t *testing.T) {
	source := []byte(`[LoggerMessage(EventId = 2000, Level = LogLevel.Debug, Message = "a")]`)

	out, changed := ApplyAssignment(source, m.Assignment{2000: 2000})
	assert.False(t, changed)
	assert.Equal(t, source, out)
}

func TestApplyAssignment_UnmappedValuesKept(t *testing.T) {
	source := []byte(`[LoggerMessage(EventId = 7, Level = LogLevel.Debug, Message = "a")]`)

	out, changed := ApplyAssignment(source, m.Assignment{5: 2000})
	assert.False(t, changed)
	assert.Equal(t, source, out)
}

func TestApplyAssignment_DuplicateValueRewrittenEverywhere(t *testing.T) {
	source := []byte(`[LoggerMessage(EventId = 5, Level = LogLevel.Debug, Message = "a")]
[LoggerMessage(EventId = 5, Level = LogLevel.Debug, Message = "b")]
`)

	out, changed := ApplyAssignment(source, m.Assignment{5: 2000})
	require.True(t, changed)
	assert.NotContains(t, string(out), "EventId = 5,")
}

func TestStandardizeAnnotations_SingleLine(t *testing.T) {
	source := []byte(`    [LoggerMessage(2001, LogLevel.Information, "Zone {ZoneId} started")]
    private partial void LogZoneStarted(int zoneId);
`)

	out, changed := StandardizeAnnotations(source)
	require.True(t, changed)

	result := string(out)
	assert.Contains(t, result, "EventId = 2001,")
	assert.Contains(t, result, "Level = Microsoft.Extensions.Logging.LogLevel.Information,")
	assert.Contains(t, result, `Message = "Zone {ZoneId} started"`)
}

func TestStandardizeAnnotations_MultiLine(t *testing.T) {
	source := []byte(`    [LoggerMessage(
        2001,
        LogLevel.Warning,
        "Retry {Count} failed"
    )]
`)

	out, changed := StandardizeAnnotations(source)
	require.True(t, changed)

	result := string(out)
	assert.Contains(t, result, "EventId = 2001,")
	assert.Contains(t, result, "Level = Microsoft.Extensions.Logging.LogLevel.Warning,")
}

func TestStandardizeAnnotations_EscapedQuotesInMessage(t *testing.T) {
	source := []byte(`[LoggerMessage(3, LogLevel.Debug, "said \"hi\" loudly")]`)

	out, changed := StandardizeAnnotations(source)
	require.True(t, changed)
	assert.Contains(t, string(out), `Message = "said \"hi\" loudly"`)
}

func TestStandardizeAnnotations_NamedFormUntouched(t *testing.T) {
	source := []byte(`    [LoggerMessage(
        EventId = 2001,
        Level = Microsoft.Extensions.Logging.LogLevel.Information,
        Message = "Zone started"
    )]
`)

	out, changed := StandardizeAnnotations(source)
	assert.False(t, changed)
	assert.Equal(t, source, out)
}

func TestStandardizeAnnotations_Idempotent(t *testing.T) {
	source := []byte(`[LoggerMessage(2001, LogLevel.Information, "msg")]`)

	once, changed := StandardizeAnnotations(source)
	require.True(t, changed)

	twice, changedAgain := StandardizeAnnotations(once)
	assert.False(t, changedAgain)
	assert.Equal(t, once, twice)
}

func TestRewriteFile_RenumbersAndStandardizes(t *testing.T) {
	source := []byte(`public partial class AudioService
{
    [LoggerMessage(5, LogLevel.Information, "started")]
    private partial void LogStarted();

    [LoggerMessage(
        EventId = 9,
        Level = Microsoft.Extensions.Logging.LogLevel.Debug,
        Message = "stopped"
    )]
    private partial void LogStopped();
}
`)

	out, changed := RewriteFile(source, m.Assignment{5: 2000, 9: 2001})
	require.True(t, changed)

	result := string(out)
	assert.Contains(t, result, "EventId = 2000,")
	assert.Contains(t, result, "EventId = 2001,")
	// The positional annotation was converted to the named form.
	assert.NotContains(t, result, "[LoggerMessage(2000,")
}

func TestRewriteFile_NoChangeMeansNoWrite(t *testing.T) {
	source := []byte(`    [LoggerMessage(
        EventId = 2000,
        Level = Microsoft.Extensions.Logging.LogLevel.Information,
        Message = "ok"
    )]
`)

	_, changed := RewriteFile(source, m.Assignment{2000: 2000})
	assert.False(t, changed)
}

func TestRewriteFile_FormOnlyChangeStillWrites(t *testing.T) {
	// Values already correct, but the annotation is positional: the file
	// still needs a write for the form conversion.
	source := []byte(`[LoggerMessage(2000, LogLevel.Debug, "ok")]`)

	out, changed := RewriteFile(source, m.Assignment{2000: 2000})
	require.True(t, changed)
	assert.Contains(t, string(out), "EventId = 2000,")
}
