package stringsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitAndTrim(" a , ,b ", ","))
	assert.Nil(t, SplitAndTrim("", ","))
}

func TestRemoveEmptyStrings(t *testing.T) {
	assert.Equal(t, []string{"x"}, RemoveEmptyStrings([]string{"", "x", ""}))
}
