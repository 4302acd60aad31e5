package http

import (
	"encoding/json"

	"github.com/freekieb7/cobble/body"
)

// Response is the head and body produced by a handler. The dispatcher owns
// the body once the response is handed over and polls it to completion.
type Response struct {
	Status int
	Header Header
	Body   body.Body
}

func NewResponse(status int) *Response {
	return &Response{
		Status: status,
		Body:   body.NoBody{},
	}
}

func (res *Response) WithStatus(status int) *Response {
	res.Status = status
	return res
}

func (res *Response) WithHeader(name, value string) *Response {
	res.Header.Add(name, value)
	return res
}

func (res *Response) WithBody(b body.Body) *Response {
	res.Body = b
	return res
}

func (res *Response) WithText(payload string) *Response {
	res.Header.Set("content-type", "text/plain; charset=utf-8")
	res.Body = body.NewBytes([]byte(payload))
	return res
}

func (res *Response) WithJson(payload any) *Response {
	data, err := json.Marshal(payload)
	if err != nil {
		res.Status = StatusInternalServerError
		res.Header.Set("content-type", "text/plain; charset=utf-8")
		res.Body = body.NewBytes([]byte("encoding data to json failed"))
		return res
	}

	res.Header.Set("content-type", "application/json")
	res.Body = body.NewBytes(data)
	return res
}

// ResponseHead is the prepared wire form of a response head.
type ResponseHead struct {
	Status int
	Proto  string
	Header Header
}
