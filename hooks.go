package spanfetch

import (
	"github.com/rs/zerolog"

	"github.com/illuscio-dev/spanfetch-go/fetcherrors"
)

// RequestInfo is the snapshot passed to the Before hook, after header
// composition and body encoding but before the transport call.
type RequestInfo struct {
	Method  string
	URL     string
	Headers map[string]string
	Debug   bool
}

// ResponseInfo is the snapshot passed to the After hook, once the response
// content-type has been read and before the body is decoded.
type ResponseInfo struct {
	Status      int
	StatusText  string
	URL         string
	ContentType string
}

// Hooks are optional observation points invoked around the transport call.
// Either field may be nil.
type Hooks struct {
	Before func(*RequestInfo)
	After  func(*ResponseInfo)
}

// DebugHooks returns the default debug-logging hook pair, writing structured
// events to the given logger.
func DebugHooks(logger zerolog.Logger) Hooks {
	return Hooks{
		Before: func(info *RequestInfo) {
			logger.Debug().
				Str("method", info.Method).
				Str("url", info.URL).
				Interface("headers", info.Headers).
				Msg("dispatching request")
		},
		After: func(info *ResponseInfo) {
			logger.Debug().
				Int("status", info.Status).
				Str("statusText", info.StatusText).
				Str("url", info.URL).
				Str("contentType", info.ContentType).
				Msg("response received")
		},
	}
}

func (opts *requestOptions) beforeHook(method string, url string, headers map[string]string) {
	if opts.hooks.Before == nil {
		return
	}
	opts.hooks.Before(&RequestInfo{
		Method:  method,
		URL:     url,
		Headers: headers,
		Debug:   opts.debug,
	})
}

func (opts *requestOptions) afterHook(meta *fetcherrors.ResponseMeta, contentType string) {
	if opts.hooks.After == nil {
		return
	}
	opts.hooks.After(&ResponseInfo{
		Status:      meta.Status,
		StatusText:  meta.StatusText,
		URL:         meta.URL,
		ContentType: contentType,
	})
}
