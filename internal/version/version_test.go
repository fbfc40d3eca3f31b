package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version, GitCommit, BuildDate = "dev", "unknown", "unknown"
	assert.Equal(t, "dev", String())

	Version, GitCommit, BuildDate = "1.2.0", "abc1234", "unknown"
	assert.Equal(t, "1.2.0 (abc1234)", String())

	Version, GitCommit, BuildDate = "1.2.0", "abc1234", "2024-06-01"
	assert.Equal(t, "1.2.0 (abc1234, 2024-06-01)", String())
}
