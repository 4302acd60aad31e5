package quic

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/freekieb7/cobble/http"
)

func TestReadRequestHead(t *testing.T) {
	head := "GET /widgets HTTP/3.0\r\nAccept: text/css\r\nX-Token: abc\r\n\r\n"
	br := bufio.NewReader(strings.NewReader(head + "payload"))

	req, err := readRequestHead(br)
	if err != nil {
		t.Fatal(err)
	}

	if req.Method != "GET" || req.Path != "/widgets" || req.Proto != "HTTP/3.0" {
		t.Errorf("unexpected request line: %s %s %s", req.Method, req.Path, req.Proto)
	}
	if v, _ := req.Header.Get("accept"); v != "text/css" {
		t.Errorf("unexpected accept header: %q", v)
	}
	if v, _ := req.Header.Get("x-token"); v != "abc" {
		t.Errorf("unexpected x-token header: %q", v)
	}

	// The payload must stay in the reader for the body source.
	rest, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		t.Fatal(err)
	}
	if rest != "payload" {
		t.Errorf("head parsing consumed payload bytes, got %q", rest)
	}
}

func TestReadRequestHeadMalformedLine(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("GET /widgets\r\n\r\n"))

	if _, err := readRequestHead(br); err == nil {
		t.Error("expected error for malformed request line")
	}
}

func TestReadRequestHeadMalformedHeader(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("GET / HTTP/3.0\r\nnocolon\r\n\r\n"))

	if _, err := readRequestHead(br); err == nil {
		t.Error("expected error for malformed header line")
	}
}

func TestEncodeResponseHead(t *testing.T) {
	head := &http.ResponseHead{
		Status: http.StatusOK,
		Proto:  http.Proto3,
	}
	head.Header.Add("content-length", "2")
	head.Header.Add("date", "Tue, 05 Nov 2024 12:00:00 GMT")

	expected := "HTTP/3.0 200 OK\r\n" +
		"content-length: 2\r\n" +
		"date: Tue, 05 Nov 2024 12:00:00 GMT\r\n" +
		"\r\n"

	if got := string(encodeResponseHead(head)); got != expected {
		t.Errorf("unexpected head encoding:\n%q\nwant:\n%q", got, expected)
	}
}

func TestAtoi(t *testing.T) {
	if n, err := atoi([]byte("42")); err != nil || n != 42 {
		t.Errorf("expected 42, got %d (%v)", n, err)
	}
	if _, err := atoi([]byte("")); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := atoi([]byte("4x2")); err == nil {
		t.Error("expected error for non-digit input")
	}
}
