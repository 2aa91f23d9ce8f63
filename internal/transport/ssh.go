package transport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/melih-ucgun/decree/internal/config"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SSH manages all communication with a remote host.
type SSH struct {
	client *ssh.Client
	host   config.Host
}

// Dial opens a verified SSH connection to the given host.
func Dial(h config.Host) (*SSH, error) {
	var authMethods []ssh.AuthMethod

	if h.Password != "" {
		authMethods = append(authMethods, ssh.Password(h.Password))
	}

	if h.KeyPath != "" {
		key, err := os.ReadFile(h.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("could not read ssh key %s: %w", h.KeyPath, err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("could not parse ssh key %s: %w", h.KeyPath, err)
		}
		authMethods = append(authMethods, ssh.PublicKeys(signer))
	}

	if len(authMethods) == 0 {
		return nil, fmt.Errorf("host %s has neither password nor key_path configured", h.Name)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not determine home directory: %w", err)
	}
	knownHostsPath := filepath.Join(homeDir, ".ssh", "known_hosts")

	// verify the server identity, never fall back to an insecure callback
	hostKeyCallback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w (connect once with ssh to record the host key)", knownHostsPath, err)
	}

	clientConfig := &ssh.ClientConfig{
		User:            h.User,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         15 * time.Second,
	}

	port := h.Port
	if port == 0 {
		port = 22
	}

	addr := fmt.Sprintf("%s:%d", h.Address, port)
	client, err := ssh.Dial("tcp", addr, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", addr, err)
	}

	return &SSH{client: client, host: h}, nil
}

// Exec runs a command on the remote host and returns its combined output.
// The signature matches service.CommandFunc so a detected manager can run
// over this transport unchanged.
func (t *SSH) Exec(name string, args ...string) (string, error) {
	session, err := t.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("could not open ssh session: %w", err)
	}
	defer session.Close()

	cmd := name
	if len(args) > 0 {
		cmd += " " + strings.Join(args, " ")
	}

	output, err := session.CombinedOutput(cmd)
	return string(output), err
}

// Available reports whether a command exists on the remote host.
func (t *SSH) Available(name string) bool {
	_, err := t.Exec("command", "-v", name)
	return err == nil
}

// FileSystem opens an SFTP subsystem over the existing connection.
func (t *SSH) FileSystem() (*SFTPFS, error) {
	client, err := sftp.NewClient(t.client)
	if err != nil {
		return nil, fmt.Errorf("could not open sftp session on %s: %w", t.host.Name, err)
	}
	return NewSFTPFS(client), nil
}

// Close shuts down the SSH connection.
func (t *SSH) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}
