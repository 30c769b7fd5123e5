package paths

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/ansel1/merry/v2"
	"github.com/orsinium-labs/enum"
	"github.com/reelkit/media-assembly/environment"
)

type Drive enum.Member[string]

//goland:noinspection GoMixedReceiverTypes
func (d Drive) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Value)
}

//goland:noinspection GoMixedReceiverTypes
func (d *Drive) UnmarshalJSON(value []byte) error {
	var stringValue string
	err := json.Unmarshal(value, &stringValue)
	if err != nil {
		return err
	}
	drive := Drives.Parse(stringValue)
	if drive == nil {
		return ErrDriveNotFound
	}
	*d = *drive
	return nil
}

var (
	AssetDrive       = Drive{Value: "assets"}
	WorkDrive        = Drive{Value: "work"}
	OutputDrive      = Drive{Value: "output"}
	Drives           = enum.New(AssetDrive, WorkDrive, OutputDrive)
	ErrDriveNotFound = merry.Sentinel("drive not found")
	ErrPathNotValid  = merry.Sentinel("path not valid")
)

type Path struct {
	Drive Drive
	Path  string
}

func (p Path) Dir() Path {
	return Path{
		Drive: p.Drive,
		Path:  filepath.Dir(p.Path),
	}
}

// Local returns the path in a local unix style path.
func (p Path) Local() string {
	return filepath.Join(drivePrefixes[p.Drive].Client, p.Path)
}

// Ext returns the file extension
func (p Path) Ext() string {
	return filepath.Ext(p.Path)
}

func (p Path) Base() string {
	return filepath.Base(p.Path)
}

func (p Path) Append(path ...string) Path {
	return Path{
		Drive: p.Drive,
		Path:  filepath.Clean(filepath.Join(append([]string{p.Path}, path...)...)),
	}
}

// SetExt returns the path with the extension replaced. The extension is
// given without the leading dot.
func (p Path) SetExt(ext string) Path {
	base := strings.TrimSuffix(p.Path, filepath.Ext(p.Path))
	return Path{
		Drive: p.Drive,
		Path:  base + "." + ext,
	}
}

type prefix struct {
	Linux  string
	Client string
}

var drivePrefixes = map[Drive]prefix{
	AssetDrive:  {"/mnt/assets/", environment.GetAssetMountPrefix()},
	WorkDrive:   {"/mnt/work/", environment.GetWorkMountPrefix()},
	OutputDrive: {"/mnt/output/", environment.GetOutputMountPrefix()},
}

func Parse(path string) (Path, error) {
	for drive, ps := range drivePrefixes {
		prefixes := []string{ps.Linux, ps.Client}
		for _, p := range prefixes {
			if strings.HasPrefix(path, p) {
				return Path{
					Drive: drive,
					Path:  strings.TrimPrefix(path, p),
				}, nil
			}
		}
	}
	return Path{}, ErrPathNotValid
}

func MustParse(path string) Path {
	p, err := Parse(path)
	if err != nil {
		panic(err)
	}
	return p
}

func New(drive Drive, path string) Path {
	return Path{
		Drive: drive,
		Path:  path,
	}
}
