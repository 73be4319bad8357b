package listing

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/jlaffaye/ftp"
)

// FTPConfig holds the connection settings for an FTP file host.
type FTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	// Dir is an optional directory to change into after login (the hosts
	// keep per-tool subdirectories, e.g. "steekkaart").
	Dir     string
	Timeout time.Duration
}

// FTPSource lists and fetches files from an FTP host. Each call opens a
// fresh connection and closes it before returning; the hosts drop idle
// control connections too aggressively to make pooling worthwhile.
type FTPSource struct {
	cfg FTPConfig
}

// NewFTPSource creates an FTP-backed source. Port defaults to 21 and the
// dial timeout to 30 seconds when unset.
func NewFTPSource(cfg FTPConfig) *FTPSource {
	if cfg.Port == 0 {
		cfg.Port = 21
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &FTPSource{cfg: cfg}
}

// Name identifies the source in logs and lookup records.
func (s *FTPSource) Name() string {
	if s.cfg.Dir != "" {
		return fmt.Sprintf("ftp://%s/%s", s.cfg.Host, s.cfg.Dir)
	}
	return fmt.Sprintf("ftp://%s", s.cfg.Host)
}

// List logs in and returns the names in the configured directory (NLST).
func (s *FTPSource) List(ctx context.Context) ([]string, error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer s.close(conn)

	names, err := conn.NameList("")
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.Name(), err)
	}
	return names, nil
}

// Fetch downloads a single file into memory (RETR).
func (s *FTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer s.close(conn)

	resp, err := conn.Retr(name)
	if err != nil {
		return nil, fmt.Errorf("retrieving %s from %s: %w", name, s.Name(), err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("reading %s from %s: %w", name, s.Name(), err)
	}
	return data, nil
}

// dial connects, logs in and changes into the configured directory.
func (s *FTPSource) dial(ctx context.Context) (*ftp.ServerConn, error) {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	conn, err := ftp.Dial(addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(s.cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	if err := conn.Login(s.cfg.User, s.cfg.Password); err != nil {
		s.close(conn)
		return nil, fmt.Errorf("logging in to %s: %w", addr, err)
	}

	if s.cfg.Dir != "" {
		if err := conn.ChangeDir(s.cfg.Dir); err != nil {
			s.close(conn)
			return nil, fmt.Errorf("changing to directory %q on %s: %w", s.cfg.Dir, addr, err)
		}
	}

	return conn, nil
}

// close ends the session; a failed QUIT is not worth surfacing over the
// result of the transfer itself.
func (s *FTPSource) close(conn *ftp.ServerConn) {
	_ = conn.Quit()
}
