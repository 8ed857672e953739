package logging

import "log/slog"

// Field names shared by every log line of the bridge.
const (
	FieldService    = "service"
	FieldBreadcrumb = "breadcrumb_id"
	FieldOperation  = "operation"
	FieldBroker     = "broker"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatus     = "status"
	FieldBytes      = "bytes"
	FieldError      = "error"
	FieldResponse   = "response"
)

func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

func Breadcrumb(id string) slog.Attr {
	return slog.String(FieldBreadcrumb, id)
}

func Operation(name string) slog.Attr {
	return slog.String(FieldOperation, name)
}

func Broker(kind string) slog.Attr {
	return slog.String(FieldBroker, kind)
}

func Method(method string) slog.Attr {
	return slog.String(FieldMethod, method)
}

func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

func Bytes(n int) slog.Attr {
	return slog.Int(FieldBytes, n)
}

// Error returns an attribute for err. A nil error yields an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// Response returns an attribute holding a serialized response body.
func Response(body []byte) slog.Attr {
	return slog.String(FieldResponse, string(body))
}
