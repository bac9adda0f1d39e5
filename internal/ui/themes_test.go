package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yildizm/aidetect/internal/detect"
)

func TestSetThemeByName(t *testing.T) {
	t.Cleanup(func() { SetThemeByName("default") })

	for _, name := range GetAvailableThemes() {
		assert.True(t, SetThemeByName(name), name)
	}
	assert.True(t, SetThemeByName(""))
	assert.Equal(t, DefaultTheme, GetTheme())

	assert.False(t, SetThemeByName("neon"))
	assert.Equal(t, DefaultTheme, GetTheme())
}

func TestBucketColor(t *testing.T) {
	theme := GetTheme()

	assert.Equal(t, theme.Success, theme.BucketColor(detect.BucketLow))
	assert.Equal(t, theme.Warning, theme.BucketColor(detect.BucketMedium))
	assert.Equal(t, theme.Error, theme.BucketColor(detect.BucketHigh))
}

func TestResultStyleUsesBucketColor(t *testing.T) {
	styles := GetStyles()

	fg := styles.ResultStyle(detect.BucketHigh).GetForeground()
	assert.Equal(t, styles.Theme.Error, fg)
}
