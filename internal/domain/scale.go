package domain

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"
	"time"
)

const scaleTemplateVersion byte = 4

// EncodeScaleProfile turns a raw profile into the form stored in CustomizeData.
func EncodeScaleProfile(profile string) string {
	if profile == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(profile))
}

func DecodeScaleProfile(data string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("decode scale profile: %w", err)
	}
	return string(raw), nil
}

// ScaleTemplate derives the portable template: base64(gzip(version + profile)).
func ScaleTemplate(profile string) (string, error) {
	if profile == "" {
		return "", nil
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(append([]byte{scaleTemplateVersion}, profile...)); err != nil {
		_ = zw.Close()
		return "", fmt.Errorf("compress scale template: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress scale template: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ProfileFromTemplate reverses ScaleTemplate.
func ProfileFromTemplate(template string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(template)
	if err != nil {
		return "", fmt.Errorf("decode scale template: %w", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("open scale template: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("read scale template: %w", err)
	}
	if len(data) == 0 || data[0] != scaleTemplateVersion {
		return "", fmt.Errorf("unsupported scale template version")
	}

	return string(data[1:]), nil
}

// ScaleEntry builds a scale history entry from a raw profile.
func ScaleEntry(profile, description string, at time.Time) (HistoryEntry, error) {
	template, err := ScaleTemplate(profile)
	if err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{
		Timestamp:   at,
		Description: description,
		Payload:     EncodeScaleProfile(profile),
		Template:    template,
	}, nil
}
