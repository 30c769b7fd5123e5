package utils

import (
	"fmt"
)

var (
	Resolution4K       = MustResolution("3840x2160")
	Resolution1080     = MustResolution("1920x1080")
	ResolutionVertical = MustResolution("1080x1920")
)

type Resolution struct {
	Width  int
	Height int
}

func ResolutionFromString(str string) (*Resolution, error) {
	var r Resolution
	_, err := fmt.Sscanf(str, "%dx%d", &r.Width, &r.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resolution string %s, err: %v", str, err)
	}
	return &r, nil
}

func MustResolution(str string) *Resolution {
	r, err := ResolutionFromString(str)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Resolution) FFMpegString() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

func (r *Resolution) AspectRatio() float64 {
	return float64(r.Width) / float64(r.Height)
}

func (r *Resolution) EnsureEven() {
	if r.Height%2 != 0 {
		r.Height = r.Height + 1
	}

	if r.Width%2 != 0 {
		r.Width = r.Width + 1
	}
}

// ResizedToFit returns the biggest resolution in the aspect ratio of the
// source that fits into the target without cropping or stretching.
func (r *Resolution) ResizedToFit(target Resolution) Resolution {
	tAspect := target.AspectRatio()
	sAspect := r.AspectRatio()

	out := Resolution{
		Width:  target.Width,
		Height: target.Height,
	}

	if tAspect > sAspect {
		out.Width = int(float64(target.Height) * sAspect)
	} else {
		out.Height = int(float64(target.Width) / sAspect)
	}

	return out
}

// PaddedShareIn returns the fraction of the target frame area that would
// be padding if the source were letterboxed into the target.
func (r *Resolution) PaddedShareIn(target Resolution) float64 {
	fit := r.ResizedToFit(target)
	targetArea := float64(target.Width * target.Height)
	fitArea := float64(fit.Width * fit.Height)
	return 1 - fitArea/targetArea
}
