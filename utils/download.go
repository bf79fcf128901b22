package utils

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// DownloadImage downloads an image from the internet and saves it into a temporary file.
// It is used for fetching remote backdrop images referenced by URL.
func DownloadImage(uri string) (*os.File, error) {
	res, err := http.Get(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to download the image file from URI: %s", uri)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download the image file from URI: %s, status %v", uri, res.Status)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read the response body: %w", err)
	}

	tmpfile, err := os.CreateTemp("", "backdrop")
	if err != nil {
		return nil, fmt.Errorf("unable to create a temporary file: %w", err)
	}

	if _, err := tmpfile.Write(data); err != nil {
		return nil, fmt.Errorf("unable to write the temporary file: %w", err)
	}
	if _, err := tmpfile.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	ctype, err := DetectContentType(tmpfile.Name())
	if err != nil {
		return nil, err
	}
	if !strings.Contains(ctype, "image") {
		os.Remove(tmpfile.Name())
		return nil, fmt.Errorf("the file downloaded from %s is not an image", uri)
	}

	return tmpfile, nil
}

// DetectContentType detects the file type by reading MIME type information of the file content.
func DetectContentType(fname string) (string, error) {
	file, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer file.Close()

	// Only the first 512 bytes are used to sniff the content type.
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	// Always returns a valid content-type and "application/octet-stream" if no others seemed to match.
	return http.DetectContentType(buffer[:n]), nil
}

// IsValidUrl tests a string to determine if it is a well structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
