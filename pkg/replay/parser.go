package replay

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ohler55/ojg/oj"
)

const (
	// Magic is the little-endian marker of a replay container.
	Magic = uint32(0x11343212)
	// SupportedVersion is the only container layout this decoder accepts.
	SupportedVersion = uint32(2)

	headerLen = 12
)

// RawDocument is the decoded payload of a container: the flat metadata block
// followed by the nested battle sections, exactly as the client wrote them.
type RawDocument struct {
	Metadata map[string]any
	Sections []any
}

// Decode reads a replay container and returns its two JSON payload blocks.
// A wrong magic or version yields a *FormatError; blocks whose framing or
// edges do not line up yield a *StructuralError.
func Decode(r io.Reader) (*RawDocument, error) {
	var header [headerLen]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("short header: %v", err)}
	}
	magic := binary.LittleEndian.Uint32(header[0:4])
	version := binary.LittleEndian.Uint32(header[4:8])
	if magic != Magic {
		return nil, &FormatError{Reason: fmt.Sprintf("bad magic 0x%08x", magic), Magic: magic, Version: version}
	}
	if version != SupportedVersion {
		return nil, &FormatError{Reason: fmt.Sprintf("unsupported version %d", version), Magic: magic, Version: version}
	}

	first, err := readBlock(r, binary.LittleEndian.Uint32(header[8:12]), "metadata", '{', '}')
	if err != nil {
		return nil, err
	}
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, &StructuralError{Section: "sections", Reason: fmt.Sprintf("missing length prefix: %v", err)}
	}
	second, err := readBlock(r, binary.LittleEndian.Uint32(lenBuf[:]), "sections", '[', ']')
	if err != nil {
		return nil, err
	}

	meta, err := parseObject(first)
	if err != nil {
		return nil, &StructuralError{Section: "metadata", Reason: err.Error()}
	}
	sections, err := parseArray(second)
	if err != nil {
		return nil, &StructuralError{Section: "sections", Reason: err.Error()}
	}
	return &RawDocument{Metadata: meta, Sections: sections}, nil
}

// DecodeFile opens and decodes a container from disk.
func DecodeFile(path string) (*RawDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// ParseDocument decodes a container from memory and wraps it in a Document.
// The payload is parsed exactly once.
func ParseDocument(data []byte) (*Document, error) {
	raw, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return NewDocument(raw)
}

func readBlock(r io.Reader, length uint32, section string, open, closing byte) ([]byte, error) {
	if length == 0 {
		return nil, &StructuralError{Section: section, Reason: "empty block"}
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, &StructuralError{Section: section, Reason: fmt.Sprintf("truncated block: %v", err)}
	}
	if buf[0] != open || buf[len(buf)-1] != closing {
		return nil, &StructuralError{
			Section: section,
			Reason:  fmt.Sprintf("block edges %q..%q, want %q..%q", buf[0], buf[len(buf)-1], open, closing),
		}
	}
	return buf, nil
}

func parseObject(data []byte) (map[string]any, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("not a JSON object")
	}
	return m, nil
}

func parseArray(data []byte) ([]any, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, err
	}
	a, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("not a JSON array")
	}
	return a, nil
}
