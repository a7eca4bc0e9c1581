// Content-negotiation wrapper around an injectable HTTP transport.
/*
Spanfetch issues one HTTP request, inspects the declared media type of the
response (and, on failure, of the error body) and deterministically decodes the
body into the correct structured representation: a decoded object, text, a
binary buffer, multipart form data or URL-encoded parameters. Failed responses
are classified into a small taxonomy of structured error values: RFC-7807
problem documents, vendor structured-error lists, generic JSON errors,
plain-text errors, or unsupported media.

Two entry points are exposed. FetchWrapped returns a MediaResponse that never
fails at the call expression for classified errors; the caller inspects Ok()
and Unwrap(). Fetch is the convenience form that unwraps the value and surfaces
classified failures as a returned *fetcherrors.FetchError.

Transport is injectable; the engine performs no retries, caching or streaming
decode, and reads each response body exactly once.
*/
package spanfetch
