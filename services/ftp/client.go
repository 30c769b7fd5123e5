package ftp

import (
	"io"
	"os"
	gopath "path"
	"time"

	"github.com/jlaffaye/ftp"
)

type Client struct {
	conn *ftp.ServerConn
}

func NewClient(addr, username, password string) (*Client, error) {
	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(time.Second*5))
	if err != nil {
		return nil, err
	}

	err = conn.Login(username, password)
	if err != nil {
		return nil, err
	}

	return &Client{
		conn: conn,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Quit()
}

func (c *Client) Rename(from, to string) error {
	return c.conn.Rename(from, to)
}

// Upload streams the local file to remoteDir/name, creating the remote
// directory first. MakeDir on an existing directory is not an error worth
// failing the upload over.
func (c *Client) Upload(localPath, remoteDir, name string) error {
	_ = c.conn.MakeDir(remoteDir)

	file, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer func(file io.Closer) {
		_ = file.Close()
	}(file)

	return c.conn.Stor(gopath.Join(remoteDir, name), file)
}
