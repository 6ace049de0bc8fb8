package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShrinkAndExpand(t *testing.T) {
	got, err := shrink("// abcdefgh", 5)
	require.NoError(t, err)
	assert.Equal(t, "// ab", got)

	got, err = shrink("short", 10)
	require.NoError(t, err)
	assert.Equal(t, "short", got)

	got, err = expand("// --", "--", 8)
	require.NoError(t, err)
	assert.Equal(t, "// -----", got)

	_, err = expand("//", "", 8)
	assert.Error(t, err)
}

func TestPopEmpty(t *testing.T) {
	_, err := pop("abc", 3)
	assert.ErrorIs(t, err, errPopEmpty)

	got, err := pop("abc", 0)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestMakeLineKeepsLeadingCode(t *testing.T) {
	rust := lang(t, "rust")
	s := Classify(rust, testThreshold, "x = 1; /* note */")
	require.Equal(t, BlockComment, s.Kind)
	got, err := makeLine(rust, s)
	require.NoError(t, err)
	assert.Equal(t, "x = 1; // note", got)

	_, err = makeLine(lang(t, "css"), Shape{Kind: BlockComment, Head: "/* ", Body: "x", Foot: " */"})
	assert.ErrorIs(t, err, errNoLineForm)
}

func TestReshapeBlockFootTooLong(t *testing.T) {
	_, err := reshapeBlock(Shape{Kind: BlockSeparator, Head: "/* ", Body: "=====", Foot: " */"}, 3)
	assert.ErrorIs(t, err, errPopEmpty)
}
