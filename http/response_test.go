package http

import (
	"context"
	"errors"
	"testing"

	"github.com/freekieb7/cobble/body"
)

func TestResponseWithText(t *testing.T) {
	res := NewResponse(StatusOK).WithText("hello")

	if v, _ := res.Header.Get("content-type"); v != "text/plain; charset=utf-8" {
		t.Errorf("unexpected content-type: %s", v)
	}

	data, err := body.ReadAll(context.Background(), res.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("expected hello, got %s", data)
	}
}

func TestResponseWithJson(t *testing.T) {
	res := NewResponse(StatusOK).WithJson(map[string]int{"n": 1})

	if v, _ := res.Header.Get("content-type"); v != "application/json" {
		t.Errorf("unexpected content-type: %s", v)
	}

	data, err := body.ReadAll(context.Background(), res.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"n":1}` {
		t.Errorf("unexpected payload: %s", data)
	}
}

func TestResponseFromError(t *testing.T) {
	res := ResponseFromError(errors.New("boom"))

	if res.Status != StatusInternalServerError {
		t.Errorf("expected 500, got %d", res.Status)
	}

	data, err := body.ReadAll(context.Background(), res.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "boom" {
		t.Errorf("unexpected body: %s", data)
	}
}

func TestResponseFromStatusError(t *testing.T) {
	res := ResponseFromError(NewError(StatusNotFound, ""))

	if res.Status != StatusNotFound {
		t.Errorf("expected 404, got %d", res.Status)
	}

	data, err := body.ReadAll(context.Background(), res.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Not Found" {
		t.Errorf("unexpected body: %s", data)
	}
}

func TestStatusText(t *testing.T) {
	if StatusText(StatusTeapot) != "I'm a teapot" {
		t.Errorf("unexpected text: %s", StatusText(StatusTeapot))
	}
	if StatusText(599) != unknownStatusCode {
		t.Errorf("unexpected text for unknown code: %s", StatusText(599))
	}
}
