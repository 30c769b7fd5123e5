package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParsePath(t *testing.T) {
	pathString := "/mnt/output/kids/6-8/story-0042_draft.mp4"

	path, err := Parse(pathString)

	assert.Nil(t, err)

	assert.Equal(t, OutputDrive, path.Drive)
	assert.Equal(t, "kids/6-8/story-0042_draft.mp4", path.Path)
	assert.Equal(t, ".mp4", path.Ext())
}

func Test_ParseUnknownRoot(t *testing.T) {
	_, err := Parse("/srv/somewhere/else.wav")

	assert.ErrorIs(t, err, ErrPathNotValid)
}

func Test_AppendAndDir(t *testing.T) {
	work := MustParse("/mnt/work/workflows/run-123")

	clip := work.Append("clips", "shot_002.mp4")
	assert.Equal(t, "workflows/run-123/clips/shot_002.mp4", clip.Path)
	assert.Equal(t, "shot_002.mp4", clip.Base())
	assert.Equal(t, "workflows/run-123/clips", clip.Dir().Path)
}

func Test_SetExt(t *testing.T) {
	p := New(WorkDrive, "mix/narration.wav")

	assert.Equal(t, "mix/narration.aac", p.SetExt("aac").Path)
}

func Test_DriveJSONRoundTrip(t *testing.T) {
	p := New(AssetDrive, "keyframes/frame_001.png")

	data, err := p.Drive.MarshalJSON()
	assert.Nil(t, err)
	assert.Equal(t, `"assets"`, string(data))

	var d Drive
	err = d.UnmarshalJSON(data)
	assert.Nil(t, err)
	assert.Equal(t, AssetDrive, d)

	err = d.UnmarshalJSON([]byte(`"floppy"`))
	assert.ErrorIs(t, err, ErrDriveNotFound)
}
