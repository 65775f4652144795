package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-retryablehttp"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported image url scheme")
	ErrFetchStatus       = errors.New("unexpected image response status")
	ErrImageTooLarge     = errors.New("image exceeds size limit")
	ErrInvalidDataURL    = errors.New("invalid data url")
	ErrPrivateAddress    = errors.New("image host resolves to a private address")
)

// ImageSource resolves an image reference from a layout node.
type ImageSource interface {
	Fetch(ctx context.Context, src string) (image.Image, error)
}

// FetchConfig tunes the HTTP image fetcher.
type FetchConfig struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMax time.Duration
	MaxBytes     int64
	UserAgent    string
	// AllowPrivate permits loopback, private and link-local hosts.
	AllowPrivate bool
}

// Fetcher downloads http(s) images through a retrying client and decodes
// data: URLs inline.
type Fetcher struct {
	client    *retryablehttp.Client
	maxBytes  int64
	userAgent string
}

func NewFetcher(cfg FetchConfig) *Fetcher {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if cfg.RetryWaitMax > 0 {
		retryClient.RetryWaitMin = cfg.RetryWaitMax / 10
		retryClient.RetryWaitMax = cfg.RetryWaitMax
	}
	if cfg.Timeout > 0 {
		retryClient.HTTPClient.Timeout = cfg.Timeout
	}
	if t, ok := retryClient.HTTPClient.Transport.(*http.Transport); ok && !cfg.AllowPrivate {
		dialer := &net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second, Control: rejectPrivate}
		t.DialContext = dialer.DialContext
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &Fetcher{client: retryClient, maxBytes: maxBytes, userAgent: cfg.UserAgent}
}

func (f *Fetcher) Fetch(ctx context.Context, src string) (image.Image, error) {
	if strings.HasPrefix(src, "data:") {
		data, err := decodeDataURL(src)
		if err != nil {
			return nil, err
		}
		if int64(len(data)) > f.maxBytes {
			return nil, ErrImageTooLarge
		}
		return decodeImage(data)
	}

	u, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse image url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrFetchStatus, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, ErrImageTooLarge
	}
	return decodeImage(body)
}

// rejectPrivate runs after DNS resolution, so it sees the address actually
// dialed.
func rejectPrivate(network, address string, _ syscall.RawConn) error {
	addrPort, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPrivateAddress, address)
	}
	ip := addrPort.Addr().Unmap()
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified() || ip.IsMulticast() {
		return fmt.Errorf("%w: %s", ErrPrivateAddress, ip)
	}
	return nil
}

func decodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// decodeDataURL handles data:[<mediatype>][;base64],<data>.
func decodeDataURL(src string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, ErrInvalidDataURL
	}
	if !strings.HasSuffix(header, ";base64") {
		data, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
		}
		return []byte(data), nil
	}

	// Query strings turn '+' into ' ' unless the caller escaped it.
	payload = strings.ReplaceAll(payload, " ", "+")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return data, nil
}
