// Package ctx carries a pooled request context with JSON binding and
// response helpers used by every controller.
package ctx

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/apperr"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/bind"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/response"
)

type Context struct {
	Writer  http.ResponseWriter
	Request *http.Request
}

var pool = sync.Pool{
	New: func() any { return new(Context) },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.Writer = w
	c.Request = r
	return c
}

func release(c *Context) {
	c.Writer = nil
	c.Request = nil
	pool.Put(c)
}

// Handler adapts a Context-taking function to a plain http.HandlerFunc.
func Handler(fn func(*Context)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		fn(c)
	}
}

func (c *Context) Param(name string) string {
	return chi.URLParam(c.Request, name)
}

// ParamUint reads a positive integer URL parameter such as {id}.
func (c *Context) ParamUint(name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(map[string]string{name: "must be a positive integer"})
	}
	return uint(id), nil
}

func (c *Context) Query(name string) string {
	return c.Request.URL.Query().Get(name)
}

func (c *Context) QueryDefault(name, fallback string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return fallback
}

func (c *Context) QueryInt(name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// BindJSON decodes and validates the request body into dest.
// Malformed bodies and field failures both come back as validation errors.
func (c *Context) BindJSON(dest any) error {
	errs, err := bind.JSON(c.Request, dest)
	if err != nil {
		return &apperr.Error{Kind: apperr.KindValidation, Message: err.Error()}
	}
	if len(errs) > 0 {
		return apperr.Validation(errs)
	}
	return nil
}

// FormFile pulls a single uploaded file, capping the in-memory parse size.
func (c *Context) FormFile(name string, maxBytes int64) (multipart.File, *multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(maxBytes); err != nil {
		return nil, nil, &apperr.Error{Kind: apperr.KindValidation, Message: "invalid multipart body"}
	}
	file, header, err := c.Request.FormFile(name)
	if err != nil {
		return nil, nil, apperr.Validation(map[string]string{name: "file is required"})
	}
	return file, header, nil
}

func (c *Context) Success(data any) {
	response.Success(c.Writer, data)
}

func (c *Context) Created(data any) {
	response.Created(c.Writer, data)
}

func (c *Context) Paginated(items any, p response.Pagination) {
	response.Paginated(c.Writer, items, p)
}

// Error maps a domain error to the envelope and status code it deserves.
func (c *Context) Error(err error) {
	if fields := apperr.FieldsOf(err); fields != nil {
		response.ValidationError(c.Writer, fields)
		return
	}
	response.Error(c.Writer, apperr.Status(err), err.Error())
}

// Blob streams a generated file as a download.
func (c *Context) Blob(code int, contentType, filename string, data []byte) {
	c.Writer.Header().Set("Content-Type", contentType)
	c.Writer.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Writer.Header().Set("Content-Length", strconv.Itoa(len(data)))
	c.Writer.WriteHeader(code)
	_, _ = c.Writer.Write(data)
}
