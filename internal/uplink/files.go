package uplink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"

	"github.com/pktpoint/idec/internal/echoarea"
	"github.com/pktpoint/idec/internal/filearea"
)

// FileList fetches the public filearea catalog (f/list.txt scheme).
func (u *Uplink) FileList(ctx context.Context) ([]echoarea.ListItem, error) {
	body, err := u.get(ctx, "f/list.txt")
	if err != nil {
		return nil, err
	}
	return echoarea.ParseList(string(body))
}

// FileBlacklist fetches the blacklisted files (f/blacklist.txt
// scheme), one per line.
func (u *Uplink) FileBlacklist(ctx context.Context) ([]string, error) {
	body, err := u.get(ctx, "f/blacklist.txt")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(body)), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// FileCounts fetches per-filearea file counts (f/c scheme).
func (u *Uplink) FileCounts(ctx context.Context, fileareas []string) (echoarea.Counts, error) {
	body, err := u.get(ctx, append([]string{"f/c"}, fileareas...)...)
	if err != nil {
		return nil, err
	}
	return echoarea.ParseCounts(string(body))
}

// FileIndex fetches the two-level index of one or more fileareas (f/e
// scheme). When both start and end are non-zero a start:end slice
// segment is appended, as in MergedIndex.
func (u *Uplink) FileIndex(ctx context.Context, fileareas []string, start, end int) ([]filearea.Item, error) {
	segments := append([]string{"f/e"}, fileareas...)
	if start != 0 && end != 0 {
		segments = append(segments, sliceSegment(start, end))
	}
	body, err := u.get(ctx, segments...)
	if err != nil {
		return nil, err
	}
	return filearea.ParseIndex(string(body))
}

// DownloadFile fetches one file from a filearea by its fid (f/f
// scheme) and returns the raw bytes.
func (u *Uplink) DownloadFile(ctx context.Context, fileareaName, fid string) ([]byte, error) {
	return u.get(ctx, "f/f", fileareaName, fid)
}

// UploadFile uploads a file into a filearea (f/p scheme) as a
// multipart/form-data request carrying the client's auth string, the
// target filearea, a short description and the file content. Returns
// the uplink's plain text acknowledgement.
func (u *Uplink) UploadFile(ctx context.Context, fileareaName, description, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	for _, field := range []struct{ name, value string }{
		{"pauth", u.authstr},
		{"fecho", fileareaName},
		{"dsc", description},
	} {
		if err := form.WriteField(field.name, field.value); err != nil {
			return "", fmt.Errorf("encode field %s: %w", field.name, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	contentType := mime.TypeByExtension(path.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := form.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("encode file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("encode file %s: %w", filename, err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("finish multipart body: %w", err)
	}

	reqURL := u.url + "f/p"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &buf)
	if err != nil {
		return "", fmt.Errorf("build request %s: %w", reqURL, err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	body, err := u.do(req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// PrivateFileList fetches the uplink-wide file list, including files
// published for points only (x/filelist scheme). Requires auth.
func (u *Uplink) PrivateFileList(ctx context.Context) ([]filearea.ListItem, error) {
	body, err := u.postForm(ctx, "x/filelist", url.Values{"pauth": {u.authstr}})
	if err != nil {
		return nil, err
	}
	return filearea.ParseList(string(body))
}

// PrivateFile downloads one uplink file by name (x/file scheme).
// Requires auth.
func (u *Uplink) PrivateFile(ctx context.Context, filename string) ([]byte, error) {
	form := url.Values{
		"pauth":    {u.authstr},
		"filename": {filename},
	}
	return u.postForm(ctx, "x/file", form)
}
