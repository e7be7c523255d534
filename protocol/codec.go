package protocol

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// ReadRequest reads a single JSON request from the given reader.
// The JSON must be terminated by a newline.
func ReadRequest(r io.Reader) (*Request, error) {
	var req Request
	if err := readLine(r, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// WriteRequest encodes and writes a Request to the given writer.
func WriteRequest(w io.Writer, req *Request) error {
	return writeLine(w, req)
}

// ReadResponse reads a single JSON response from the reader.
func ReadResponse(r io.Reader) (*Response, error) {
	var resp Response
	if err := readLine(r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WriteResponse encodes and writes a Response to the writer.
func WriteResponse(w io.Writer, resp *Response) error {
	return writeLine(w, resp)
}

// DecodePayload converts a generic payload (as produced by json.Unmarshal
// into an any) into the typed struct out.
func DecodePayload(input any, out any) error {
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("encode error: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode error: %w", err)
	}
	return nil
}

func readLine(r io.Reader, v any) error {
	reader := bufio.NewReader(r)
	line, err := reader.ReadBytes('\n')
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	if err := json.Unmarshal(line, v); err != nil {
		return fmt.Errorf("decode error: %w", err)
	}
	return nil
}

func writeLine(w io.Writer, v any) error {
	bytes, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode error: %w", err)
	}
	bytes = append(bytes, '\n')
	_, err = w.Write(bytes)
	return err
}
