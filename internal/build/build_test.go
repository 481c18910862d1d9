package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })

	Version, Commit, Date = "dev", "none", "unknown"
	assert.Equal(t, "dev", String())

	Version, Commit = "1.2.3", "abc1234"
	assert.Equal(t, "1.2.3 (abc1234)", String())

	Date = "2026-10-18T09:30:00Z"
	assert.Equal(t, "1.2.3 (abc1234, 2026-10-18T09:30:00Z)", String())
}
