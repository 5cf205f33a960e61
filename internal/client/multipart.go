package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// formField is one ordered text field of a multipart form. The legacy
// monetization endpoints only accept multipart payloads, even for plain
// field updates.
type formField struct {
	name  string
	value string
}

// filePart is an optional binary part of a multipart form.
type filePart struct {
	fieldName   string
	filename    string
	contentType string
	content     []byte
}

// encodeForm renders fields, and at most one file part, as a multipart body.
func encodeForm(fields []formField, file *filePart) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, field := range fields {
		err := writer.WriteField(field.name, field.value)
		if err != nil {
			return nil, "", fmt.Errorf("writing form field %q: %w", field.name, err)
		}
	}

	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.fieldName, file.filename))
		header.Set("Content-Type", file.contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating file part: %w", err)
		}

		_, err = part.Write(file.content)
		if err != nil {
			return nil, "", fmt.Errorf("writing file part: %w", err)
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// encodeFormOrError wraps encodeForm failures as invalid-argument errors:
// the request was never issued.
func encodeFormOrError(fields []formField, file *filePart) ([]byte, string, error) {
	body, contentType, err := encodeForm(fields, file)
	if err != nil {
		return nil, "", rbxcloud.NewInvalidArgumentError(err.Error())
	}

	return body, contentType, nil
}

// imageContentType maps an icon filename extension to its MIME type,
// defaulting to PNG.
func imageContentType(filename string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "bmp":
		return "image/bmp"
	case "tga":
		return "image/tga"
	default:
		return "image/png"
	}
}
