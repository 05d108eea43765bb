package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
	assert.NotEmpty(t, GetGitCommit())
	assert.NotEmpty(t, GetBuildDate())
	assert.Contains(t, String(), GetVersion())
}

func TestIsPrerelease(t *testing.T) {
	orig := version
	t.Cleanup(func() { version = orig })

	version = "1.2.3"
	assert.False(t, IsPrerelease())

	version = "1.2.3-rc.1"
	assert.True(t, IsPrerelease())

	version = "not-a-version"
	assert.True(t, IsPrerelease())
}

func TestUserAgent(t *testing.T) {
	orig := version
	t.Cleanup(func() { version = orig })

	version = "v1.4.0"
	assert.True(t, strings.HasPrefix(UserAgent(), "mealfinder/1.4.0 ("))

	version = "garbage"
	assert.Equal(t, "mealfinder/garbage", UserAgent())
}
