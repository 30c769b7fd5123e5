package transcode

import (
	"github.com/ansel1/merry/v2"
)

var (
	ErrAudioMix = merry.Sentinel("audio mix failed")
	ErrAssembly = merry.Sentinel("shot assembly failed")
	ErrEncode   = merry.Sentinel("final encode failed")
)
