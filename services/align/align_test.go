package align

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DoAlignRejectsMissingArguments(t *testing.T) {
	_, err := DoAlign(context.Background(), "", "some text", "/mnt/work/out", "en", nil)
	assert.Error(t, err)

	_, err = DoAlign(context.Background(), "/mnt/assets/narration.wav", "some text", "", "en", nil)
	assert.Error(t, err)
}

func Test_NormalizeAlignmentLanguage(t *testing.T) {
	assert.Equal(t, "en", normalizeAlignmentLanguage("EN"))
	assert.Equal(t, "auto", normalizeAlignmentLanguage(""))
	assert.Equal(t, "auto", normalizeAlignmentLanguage("tlh"))
}
