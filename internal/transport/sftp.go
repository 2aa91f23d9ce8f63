package transport

import (
	"io"
	"io/fs"
	"os"

	"github.com/pkg/sftp"
)

// SFTPFS implements core.FileSystem over an SFTP connection
type SFTPFS struct {
	client *sftp.Client
}

func NewSFTPFS(client *sftp.Client) *SFTPFS {
	return &SFTPFS{client: client}
}

func (f *SFTPFS) Stat(name string) (fs.FileInfo, error) {
	return f.client.Stat(name)
}

func (f *SFTPFS) ReadFile(name string) ([]byte, error) {
	file, err := f.client.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func (f *SFTPFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	file, err := f.client.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.Write(data); err != nil {
		return err
	}
	return f.client.Chmod(name, perm)
}

func (f *SFTPFS) MkdirAll(path string, perm os.FileMode) error {
	return f.client.MkdirAll(path)
}

// Close releases the SFTP subsystem without touching the SSH connection.
func (f *SFTPFS) Close() error {
	return f.client.Close()
}
